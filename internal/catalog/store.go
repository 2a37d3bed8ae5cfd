// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog builds a SQLite index over the scraped works and authors
// so a collection can be searched and summarized without re-reading every
// record file.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/benyehuda-harvest/internal/store"
	"github.com/pdiddy/benyehuda-harvest/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	outputDir  string
	maxResults int
}

// NewStore opens or creates the catalog database at
// outputDir/index/catalog.db and creates the schema if missing.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.OutputDir, store.IndexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		outputDir:  cfg.OutputDir,
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS works (
			n INTEGER PRIMARY KEY,
			remote_id INTEGER,
			title TEXT,
			authors TEXT,
			language TEXT,
			text_length INTEGER,
			word_count INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY,
			name TEXT,
			birth_year INTEGER,
			death_year INTEGER
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='works_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		if _, err := s.db.Exec(
			`CREATE VIRTUAL TABLE works_fts USING fts5(title, content)`,
		); err != nil {
			return fmt.Errorf("creating FTS table: %w", err)
		}
	}

	return nil
}

// IndexSummary holds counts from a catalog indexing run.
type IndexSummary struct {
	Works   int
	Authors int
	Failed  int
}

// Index rebuilds the catalog from the record files under the output
// directory. It is a full rebuild: previous rows are dropped first.
// Unreadable records are counted as failed and reported but do not abort
// the rebuild.
func (s *Store) Index(ctx context.Context, w io.Writer) (IndexSummary, error) {
	var summary IndexSummary

	for _, stmt := range []string{
		`DELETE FROM works`,
		`DELETE FROM works_fts`,
		`DELETE FROM authors`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return summary, fmt.Errorf("clearing catalog: %w", err)
		}
	}

	worksDir := filepath.Join(s.outputDir, store.WorksDir)
	entries, err := os.ReadDir(worksDir)
	if err != nil {
		return summary, fmt.Errorf("reading works directory %s: %w", worksDir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "work_") || !strings.HasSuffix(name, ".json") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if err := s.indexWork(ctx, worksDir, name); err != nil {
			summary.Failed++
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			continue
		}
		summary.Works++
	}

	authorsDir := filepath.Join(s.outputDir, store.AuthorsDir)
	if entries, err := os.ReadDir(authorsDir); err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasPrefix(name, "author_") || !strings.HasSuffix(name, ".json") {
				continue
			}
			if err := s.indexAuthor(ctx, authorsDir, name); err != nil {
				summary.Failed++
				fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
				continue
			}
			summary.Authors++
		}
	}

	fmt.Fprintf(w, "\nCatalog summary: %d works, %d authors indexed, %d failed\n",
		summary.Works, summary.Authors, summary.Failed)
	return summary, nil
}

func (s *Store) indexWork(ctx context.Context, dir, name string) error {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "work_"), ".json"))
	if err != nil {
		return fmt.Errorf("bad record name: %w", err)
	}

	var rec types.Record
	if err := store.ReadRecord(filepath.Join(dir, name), &rec); err != nil {
		return err
	}

	title := metaString(rec.Details, "title")
	authors := metaString(rec.Details, "author_string", "authors")
	language := metaString(rec.Details, "orig_lang", "language")
	remoteID := metaInt(rec.Details, "id")

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO works (n, remote_id, title, authors, language, text_length, word_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n, remoteID, title, authors, language, len(rec.Content), len(strings.Fields(rec.Content)),
	); err != nil {
		return fmt.Errorf("inserting work: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO works_fts (rowid, title, content) VALUES (?, ?, ?)`,
		n, title, rec.Content,
	); err != nil {
		return fmt.Errorf("indexing work text: %w", err)
	}
	return nil
}

func (s *Store) indexAuthor(ctx context.Context, dir, name string) error {
	var author map[string]any
	if err := store.ReadRecord(filepath.Join(dir, name), &author); err != nil {
		return err
	}

	id := metaInt(author, "id")
	if id == 0 {
		return fmt.Errorf("author record has no id")
	}

	var birth, death int
	var authorName string
	if meta, ok := author["metadata"].(map[string]any); ok {
		authorName = asString(meta["name"])
		if person, ok := meta["person"].(map[string]any); ok {
			birth = asInt(person["birth_year"])
			death = asInt(person["death_year"])
		}
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO authors (id, name, birth_year, death_year) VALUES (?, ?, ?, ?)`,
		id, authorName, birth, death,
	); err != nil {
		return fmt.Errorf("inserting author: %w", err)
	}
	return nil
}

// SearchResult is one ranked full-text match over the indexed works.
type SearchResult struct {
	N        int     `json:"n"`
	RemoteID int     `json:"remote_id"`
	Title    string  `json:"title"`
	Authors  string  `json:"authors"`
	Snippet  string  `json:"snippet"`
	Rank     float64 `json:"-"`
}

// Search runs an FTS5 match over work titles and content, best matches
// first. A zero limit uses the store default.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT w.n, w.remote_id, w.title, w.authors,
			snippet(works_fts, 1, '', '', '...', 12), works_fts.rank
		FROM works_fts
		JOIN works w ON w.n = works_fts.rowid
		WHERE works_fts MATCH ?
		ORDER BY works_fts.rank
		LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.N, &r.RemoteID, &r.Title, &r.Authors, &r.Snippet, &r.Rank); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// metaString looks up the first of keys in details.metadata, falling back
// to the top level of the mapping.
func metaString(details map[string]any, keys ...string) string {
	if meta, ok := details["metadata"].(map[string]any); ok {
		for _, k := range keys {
			if v := asString(meta[k]); v != "" {
				return v
			}
		}
	}
	for _, k := range keys {
		if v := asString(details[k]); v != "" {
			return v
		}
	}
	return ""
}

func metaInt(details map[string]any, key string) int {
	if v := asInt(details[key]); v != 0 {
		return v
	}
	if meta, ok := details["metadata"].(map[string]any); ok {
		return asInt(meta[key])
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt converts the JSON number and string encodings the API mixes for
// identifier and year fields.
func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
