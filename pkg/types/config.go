package types

// ExtractConfig holds settings for the fund list extraction stage.
type ExtractConfig struct {
	// InputPath is the source CSV (2 metadata lines, header, data rows).
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the destination JSON file. Its directory is created
	// if absent.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// ReportSkipped enables a diagnostic count of dropped rows in the
	// progress trace. Off by default; accepted output is identical
	// either way.
	ReportSkipped bool `json:"report_skipped" yaml:"report_skipped"`
}

// CatalogConfig holds settings for the fund catalog stage.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog (contains index/).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
