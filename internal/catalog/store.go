// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists the generated fund list in a local SQLite
// database with full-text name search, for ad-hoc lookup and export.
// The catalog is strictly downstream of the extraction stage: it is
// rebuilt from fund-list.json and never feeds back into it.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/fundlist/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "funds.db"
)

// Store manages the fund catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int

	// fts reports whether the funds_fts virtual table is usable. SQLite
	// ships FTS5 only when built with the sqlite_fts5 tag; without it
	// Search falls back to substring matching.
	fts bool
}

// NewStore opens or creates the catalog database at
// catalogDir/index/funds.db, creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CatalogDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		catalogDir: cfg.CatalogDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS funds (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}

	// FTS5 virtual table over the fund name, with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='funds_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE funds_fts USING fts5(name, content=funds, content_rowid=rowid)`,
		`CREATE TRIGGER funds_ai AFTER INSERT ON funds BEGIN
			INSERT INTO funds_fts(rowid, name) VALUES (new.rowid, new.name);
		END`,
		`CREATE TRIGGER funds_ad AFTER DELETE ON funds BEGIN
			INSERT INTO funds_fts(funds_fts, rowid, name) VALUES('delete', old.rowid, old.name);
		END`,
		`CREATE TRIGGER funds_au AFTER UPDATE ON funds BEGIN
			INSERT INTO funds_fts(funds_fts, rowid, name) VALUES('delete', old.rowid, old.name);
			INSERT INTO funds_fts(rowid, name) VALUES (new.rowid, new.name);
		END`,
	}
	for i, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			// "no such module: fts5" means this binary was built without
			// the sqlite_fts5 tag; the catalog stays usable on the
			// substring path.
			if i == 0 && strings.Contains(err.Error(), "no such module") {
				return nil
			}
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	s.fts = true

	return nil
}

// SearchOptions holds parameters for catalog queries.
type SearchOptions struct {
	// Query matches against the fund name: an FTS5 match string when
	// full-text search is compiled in, a plain substring otherwise.
	// Empty lists the catalog in fund id order.
	Query string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// likeEscaper quotes the LIKE wildcards in a substring query.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search queries the catalog. Full-text queries rank by FTS5 relevance;
// without FTS5 they degrade to case-sensitive substring match in id
// order. An empty query lists funds ordered by id.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]types.FundRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	switch {
	case opts.Query != "" && s.fts:
		qb.WriteString(`SELECT f.id, f.name FROM funds f
			JOIN funds_fts ON funds_fts.rowid = f.rowid
			WHERE funds_fts MATCH ?
			ORDER BY funds_fts.rank`)
		args = append(args, opts.Query)
	case opts.Query != "":
		qb.WriteString(`SELECT id, name FROM funds WHERE name LIKE ? ESCAPE '\' ORDER BY id`)
		args = append(args, "%"+likeEscaper.Replace(opts.Query)+"%")
	default:
		qb.WriteString(`SELECT id, name FROM funds ORDER BY id`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []types.FundRecord
	for rows.Next() {
		var r types.FundRecord
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
