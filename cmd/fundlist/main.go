// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fundlist CLI, the offline
// toolkit that prepares fund reference data for the site: it converts
// the raw CSV export into fund-list.json and maintains a local SQLite
// catalog built from it.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the fundlist CLI.
var rootCmd = &cobra.Command{
	Use:   "fundlist",
	Short: "Fund reference data preparation toolkit",
	Long: `fundlist prepares fund reference data for the fund information site.

The generate command converts the raw 基金基本資料.csv export into the
simplified fund-list.json the site consumes. The catalog commands keep a
local SQLite index of the generated list for ad-hoc lookup and export.

Invoked bare, fundlist runs generate against the site's fixed data paths
resolved relative to the fundlist executable.`,
	// Bare invocation performs the extraction; generate's flags stay on
	// the subcommand, so the bare form always uses the default paths.
	RunE: runGenerate,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fundlist.yaml or ~/.config/fundlist/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fundlist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fundlist"))
		}
	}

	viper.SetEnvPrefix("FUNDLIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
