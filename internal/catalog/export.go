// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fundlist/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the full catalog to catalogDir/index/export.yaml,
// ordered by fund id.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	funds, err := s.exportFunds(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.catalogDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(funds)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the full catalog to catalogDir/index/export.json,
// ordered by fund id.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	funds, err := s.exportFunds(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.catalogDir, indexDir, "export.json")
	data, err := json.MarshalIndent(funds, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportFunds(ctx context.Context) ([]types.FundRecord, error) {
	funds, err := s.Search(ctx, SearchOptions{MaxResults: exportLimit})
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if funds == nil {
		funds = []types.FundRecord{}
	}
	return funds, nil
}
