// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/fundlist/pkg/types"
)

// writeSource writes a CSV source file into a temp dir and returns a
// config pointing at it plus an output path inside the same dir.
func writeSource(t *testing.T, content string) types.ExtractConfig {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "基金基本資料.csv")
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return types.ExtractConfig{
		InputPath:  input,
		OutputPath: filepath.Join(dir, "out", "fund-list.json"),
	}
}

func readOutput(t *testing.T, path string) []types.FundRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var records []types.FundRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	return records
}

func TestRun(t *testing.T) {
	source := "meta1\n" +
		"meta2\n" +
		"基金碼,基金全稱\n" +
		"001,Alpha Growth Fund\n" +
		",Orphan Fund\n" +
		"002,\n" +
		"003,Beta Bond Fund\n"

	cfg := writeSource(t, source)
	var trace bytes.Buffer

	res, err := Run(cfg, &trace)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []types.FundRecord{
		{ID: "001", Name: "Alpha Growth Fund"},
		{ID: "003", Name: "Beta Bond Fund"},
	}
	got := readOutput(t, cfg.OutputPath)
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
	if res.UsedBig5 {
		t.Error("UsedBig5 = true for a UTF-8 source")
	}
	if !strings.Contains(trace.String(), "Writing 2 funds") {
		t.Errorf("trace %q missing record count", trace.String())
	}
	if !strings.Contains(trace.String(), "Success!") {
		t.Errorf("trace %q missing success marker", trace.String())
	}
}

func TestRun_HeaderOrderAndQuotedFields(t *testing.T) {
	source := "meta1\n" +
		"meta2\n" +
		"風險等級,基金全稱,基金碼\n" +
		"RR3,\"Lion, Global Balanced\",A10\n" +
		"RR2,\"He said \"\"stable\"\" fund\",A11\n" +
		"RR1,  Trimmed Fund  ,  A12 \n"

	cfg := writeSource(t, source)
	res, err := Run(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []types.FundRecord{
		{ID: "A10", Name: "Lion, Global Balanced"},
		{ID: "A11", Name: `He said "stable" fund`},
		{ID: "A12", Name: "Trimmed Fund"},
	}
	if len(res.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(res.Records), len(want))
	}
	for i := range want {
		if res.Records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, res.Records[i], want[i])
		}
	}
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{
			name:    "too short",
			source:  "meta1\nmeta2\n",
			wantErr: "too short",
		},
		{
			name:    "missing id header",
			source:  "meta1\nmeta2\n基金名,基金全稱\nx,y\n",
			wantErr: "基金碼",
		},
		{
			name:    "missing both headers",
			source:  "meta1\nmeta2\ncode,name\n1,2\n",
			wantErr: "available headers: code, name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeSource(t, tt.source)
			_, err := Run(cfg, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
			if _, statErr := os.Stat(cfg.OutputPath); !os.IsNotExist(statErr) {
				t.Error("output file written despite fatal error")
			}
		})
	}
}

func TestRun_Idempotent(t *testing.T) {
	source := "meta1\nmeta2\n基金碼,基金全稱\n001,Alpha\n002,Beta\n"
	cfg := writeSource(t, source)

	if _, err := Run(cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Run(cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("re-running on unchanged input changed the output bytes")
	}
}

func TestRun_NoDataRows(t *testing.T) {
	cfg := writeSource(t, "meta1\nmeta2\n基金碼,基金全稱\n")
	res, err := Run(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Records) != 0 {
		t.Fatalf("got %d records, want 0", len(res.Records))
	}
	data, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty fund list serialized as %q, want []", data)
	}
}

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantID  int
		wantNm  int
		wantErr bool
	}{
		{name: "standard order", header: "基金碼,基金全稱,幣別", wantID: 0, wantNm: 1},
		{name: "reversed", header: "基金全稱,基金碼", wantID: 1, wantNm: 0},
		{name: "trailing newline trimmed", header: "基金碼,基金全稱\r", wantID: 0, wantNm: 1},
		{name: "id missing", header: "基金,基金全稱", wantErr: true},
		{name: "exact match only", header: "\"基金碼\",基金全稱", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := resolveColumns(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveColumns: %v", err)
			}
			if cols.id != tt.wantID || cols.name != tt.wantNm {
				t.Errorf("cols = %+v, want id=%d name=%d", cols, tt.wantID, tt.wantNm)
			}
		})
	}
}

func TestParseRows_ShortRows(t *testing.T) {
	cols := columns{id: 0, name: 2}
	lines := []string{
		"001,extra,Alpha",
		"002", // cannot cover the name index
		"",    // blank line
		"003,,Gamma",
	}
	records, skipped := parseRows(lines, cols)

	want := []types.FundRecord{
		{ID: "001", Name: "Alpha"},
		{ID: "003", Name: "Gamma"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, records[i], want[i])
		}
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
}
