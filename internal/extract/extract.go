// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts the semi-structured fund reference CSV export
// into the simplified fund list JSON consumed by the site. One run is a
// straight read, parse, filter, write sequence over the whole file.
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/fundlist/pkg/types"
)

const (
	// Header column names, matched literally against the header cells.
	colFundID   = "基金碼"
	colFundName = "基金全稱"

	// metadataLines is the number of leading lines skipped unconditionally;
	// the header follows them.
	metadataLines = 2
)

// Result holds the outcome of one extraction run.
type Result struct {
	// Records are the accepted funds in input order.
	Records []types.FundRecord

	// Skipped counts data rows dropped for a missing fund code or name.
	Skipped int

	// UsedBig5 reports whether the source needed the Big5 fallback.
	UsedBig5 bool
}

// columns holds the resolved positional indices of the required columns.
type columns struct {
	id   int
	name int
}

// bound is the highest index a row must cover to be usable.
func (c columns) bound() int {
	if c.id > c.name {
		return c.id
	}
	return c.name
}

// Run reads the source CSV at cfg.InputPath, extracts fund records, and
// writes them as JSON to cfg.OutputPath, printing a progress trace to w.
// Nothing is written unless the whole extraction succeeds: a short file,
// missing headers, or an undecodable source all abort before output.
func Run(cfg types.ExtractConfig, w io.Writer) (Result, error) {
	fmt.Fprintf(w, "Reading CSV from: %s\n", cfg.InputPath)

	raw, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("reading source CSV: %w", err)
	}

	text, usedBig5, err := decode(raw)
	if err != nil {
		return Result{}, err
	}
	if usedBig5 {
		fmt.Fprintln(w, "UTF-8 decode failed, trying Big5...")
	}

	lines := splitLines(text)
	if len(lines) < metadataLines+1 {
		return Result{UsedBig5: usedBig5}, fmt.Errorf(
			"source CSV is too short: %d line(s), need metadata lines and a header", len(lines))
	}

	cols, err := resolveColumns(lines[metadataLines])
	if err != nil {
		return Result{UsedBig5: usedBig5}, err
	}

	records, skipped := parseRows(lines[metadataLines+1:], cols)
	res := Result{Records: records, Skipped: skipped, UsedBig5: usedBig5}

	fmt.Fprintf(w, "Writing %d funds to: %s\n", len(records), cfg.OutputPath)
	if err := writeJSON(cfg.OutputPath, records); err != nil {
		return res, err
	}

	if cfg.ReportSkipped {
		fmt.Fprintf(w, "Skipped %d row(s) missing a fund code or name\n", skipped)
	}
	fmt.Fprintln(w, "Success!")
	return res, nil
}

// splitLines splits decoded text on newlines. A single trailing empty
// element from a final newline is dropped so line counts match the
// source; interior blank lines are kept and rejected later as rows.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// resolveColumns locates the fund code and fund name columns in the
// header line. The header is split on plain commas, not quote-aware: the
// export never quotes header cells, and the two names are matched
// literally. Either column missing is a fatal schema error reporting
// what was found instead.
func resolveColumns(headerLine string) (columns, error) {
	headers := strings.Split(strings.TrimSpace(headerLine), ",")

	cols := columns{id: -1, name: -1}
	for i, h := range headers {
		switch h {
		case colFundID:
			if cols.id < 0 {
				cols.id = i
			}
		case colFundName:
			if cols.name < 0 {
				cols.name = i
			}
		}
	}

	var missing []string
	if cols.id < 0 {
		missing = append(missing, colFundID)
	}
	if cols.name < 0 {
		missing = append(missing, colFundName)
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("required header(s) %s not found; available headers: %s",
			strings.Join(missing, ", "), strings.Join(headers, ", "))
	}
	return cols, nil
}

// parseRows extracts fund records from the data lines. Each line is
// parsed independently with quote-aware CSV splitting, so embedded
// commas and quotes inside a field survive. A row is accepted iff it
// covers both resolved indices and both values are non-empty after
// trimming; everything else counts as skipped.
func parseRows(lines []string, cols columns) ([]types.FundRecord, int) {
	records := []types.FundRecord{}
	skipped := 0

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		row, err := r.Read()
		if err != nil {
			skipped++
			continue
		}
		if len(row) <= cols.bound() {
			skipped++
			continue
		}

		id := strings.TrimSpace(row[cols.id])
		name := strings.TrimSpace(row[cols.name])
		if id == "" || name == "" {
			skipped++
			continue
		}
		records = append(records, types.FundRecord{ID: id, Name: name})
	}
	return records, skipped
}
