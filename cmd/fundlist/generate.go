// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fundlist/internal/extract"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate fund-list.json from the raw CSV export",
	Long: `Generate reads the 基金基本資料.csv export (UTF-8, falling back to
Big5), skips its two metadata lines, locates the 基金碼 and 基金全稱
columns in the header, and writes every row carrying both values to
fund-list.json as an ordered {id, name} array.

Rows missing either value are dropped. Nothing is written when the file
is too short, a required header is absent, or neither encoding decodes.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := extract.DefaultConfig()

	if v := viper.GetString("extract.input_path"); v != "" {
		cfg.InputPath = v
	}
	if v := viper.GetString("extract.output_path"); v != "" {
		cfg.OutputPath = v
	}
	cfg.ReportSkipped = viper.GetBool("extract.report_skipped")

	if cmd.Flags().Changed("input") {
		cfg.InputPath, _ = cmd.Flags().GetString("input")
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("skipped") {
		cfg.ReportSkipped, _ = cmd.Flags().GetBool("skipped")
	}

	_, err := extract.Run(cfg, os.Stdout)
	return err
}

func init() {
	generateCmd.Flags().String("input", "", "source CSV path (default: <base>/public/data/fund/基金基本資料.csv)")
	generateCmd.Flags().String("output", "", "destination JSON path (default: <base>/src/data/fund-list.json)")
	generateCmd.Flags().Bool("skipped", false, "report the count of dropped rows")

	rootCmd.AddCommand(generateCmd)
}
