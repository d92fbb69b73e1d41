// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/fundlist/pkg/types"
)

// IngestSummary holds counts from a catalog ingestion run.
type IngestSummary struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// Total returns the number of fund records processed.
func (s IngestSummary) Total() int {
	return s.Inserted + s.Updated + s.Unchanged
}

// Ingest reads a generated fund list JSON file and upserts every record
// into the catalog inside one transaction. Existing funds whose name
// changed are updated; identical records count as unchanged.
func (s *Store) Ingest(ctx context.Context, listPath string, w io.Writer) (IngestSummary, error) {
	data, err := os.ReadFile(listPath)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading fund list %s: %w", listPath, err)
	}

	var funds []types.FundRecord
	if err := json.Unmarshal(data, &funds); err != nil {
		return IngestSummary{}, fmt.Errorf("parsing fund list %s: %w", listPath, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary IngestSummary
	for _, f := range funds {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT name FROM funds WHERE id = ?`, f.ID).Scan(&current)
		switch {
		case err == nil && current == f.Name:
			summary.Unchanged++
			continue
		case err == nil:
			if _, err := tx.ExecContext(ctx,
				`UPDATE funds SET name = ? WHERE id = ?`, f.Name, f.ID); err != nil {
				return summary, fmt.Errorf("updating fund %s: %w", f.ID, err)
			}
			summary.Updated++
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO funds (id, name) VALUES (?, ?)`, f.ID, f.Name); err != nil {
				return summary, fmt.Errorf("inserting fund %s: %w", f.ID, err)
			}
			summary.Inserted++
		default:
			return summary, fmt.Errorf("checking fund %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing ingestion: %w", err)
	}

	fmt.Fprintf(w, "inserted: %d, updated: %d, unchanged: %d (total: %d)\n",
		summary.Inserted, summary.Updated, summary.Unchanged, summary.Total())
	return summary, nil
}
