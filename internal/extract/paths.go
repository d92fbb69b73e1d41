// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"os"
	"path/filepath"

	"github.com/pdiddy/fundlist/pkg/types"
)

// DefaultConfig resolves the fixed source and destination paths relative
// to the running executable: two directories up, then into the site's
// data folders. Running with no flags and no config file reproduces the
// original fixed-path invocation exactly.
func DefaultConfig() types.ExtractConfig {
	base := baseDir()
	return types.ExtractConfig{
		InputPath:  filepath.Join(base, "public", "data", "fund", "基金基本資料.csv"),
		OutputPath: filepath.Join(base, "src", "data", "fund-list.json"),
	}
}

// baseDir is the project root the data folders hang off: two levels up
// from the executable. Falls back to the working directory when the
// executable path cannot be determined.
func baseDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(filepath.Dir(exe))
}
