// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus owns the authoritative persisted set of analyzed papers.
// Papers are keyed by canonical ID: at most one record per logical paper,
// merged across fetch runs and domains. All other components read derived
// views of this store.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

const dbFile = "papers.db"

// MergeOutcome reports what an upsert did to the stored record.
type MergeOutcome int

const (
	// Inserted means no record existed for the canonical ID.
	Inserted MergeOutcome = iota
	// Updated means an existing record was merged with the candidate.
	Updated
	// Skipped means the candidate was equivalent to the stored record.
	Skipped
)

// String returns the lowercase outcome name.
func (o MergeOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Store manages the paper corpus SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the corpus database at dataDir/papers.db,
// creating the schema if it does not exist. WAL mode keeps reads
// snapshot-consistent while upserts run.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
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
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			abstract TEXT,
			authors TEXT,
			categories TEXT,
			primary_category TEXT,
			published TEXT,
			updated TEXT,
			pdf_url TEXT,
			abs_url TEXT,
			summary TEXT,
			key_contributions TEXT,
			methodology TEXT,
			tags TEXT,
			category TEXT,
			score INTEGER NOT NULL DEFAULT 0,
			score_reason TEXT,
			analyzed_at TEXT,
			provider TEXT,
			model TEXT,
			day TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_day ON papers(day)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_category ON papers(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert merges a candidate into the corpus under its canonical ID inside
// a single transaction, so a failed write never leaves a partial record.
// The merge is field-level: newer non-empty values win, tags are unioned,
// and a candidate equivalent to the stored record is a no-op reported as
// Skipped. Conflicting but equally-fresh values resolve by union rather
// than failing.
func (s *Store) Upsert(ctx context.Context, candidate types.AnalyzedPaper) (MergeOutcome, error) {
	if candidate.ID == "" {
		return Skipped, fmt.Errorf("upsert: empty canonical id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Skipped, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, found, err := scanPaper(tx.QueryRowContext(ctx, selectPaperSQL+` WHERE id = ?`, candidate.ID))
	if err != nil {
		return Skipped, fmt.Errorf("reading existing record %s: %w", candidate.ID, err)
	}

	outcome := Inserted
	record := candidate
	if found {
		merged, changed := merge(existing, candidate)
		if !changed {
			// Nothing to write; report for observability only.
			return Skipped, nil
		}
		record = merged
		outcome = Updated
	}

	if err := writePaper(ctx, tx, record); err != nil {
		return Skipped, fmt.Errorf("writing record %s: %w", record.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return Skipped, fmt.Errorf("committing record %s: %w", record.ID, err)
	}
	return outcome, nil
}

// merge combines an existing record with a fresh candidate. The candidate
// is newer when its Updated (or, failing that, AnalyzedAt) timestamp is
// not older than the existing one; newer non-empty field values win per
// field, never whole-record overwrite, so previously assigned tags and
// analysis are not lost. Returns the merged record and whether it differs
// from the existing one.
func merge(existing, candidate types.AnalyzedPaper) (types.AnalyzedPaper, bool) {
	newer := !candidateOlder(existing, candidate)

	out := existing
	overwrite := func(dst *string, src string) {
		if src != "" && (newer || *dst == "") {
			*dst = src
		}
	}

	overwrite(&out.Title, candidate.Title)
	overwrite(&out.Abstract, candidate.Abstract)
	overwrite(&out.PrimaryCategory, candidate.PrimaryCategory)
	overwrite(&out.PDFURL, candidate.PDFURL)
	overwrite(&out.AbsURL, candidate.AbsURL)
	overwrite(&out.Summary, candidate.Summary)
	overwrite(&out.Methodology, candidate.Methodology)
	overwrite(&out.Category, candidate.Category)
	overwrite(&out.ScoreReason, candidate.ScoreReason)
	overwrite(&out.Provider, candidate.Provider)
	overwrite(&out.Model, candidate.Model)

	if len(candidate.Authors) > 0 && (newer || len(out.Authors) == 0) {
		out.Authors = candidate.Authors
	}
	if len(candidate.KeyContributions) > 0 && (newer || len(out.KeyContributions) == 0) {
		out.KeyContributions = candidate.KeyContributions
	}

	// Tags and categories union regardless of freshness: a paper matched
	// under an additional domain keeps the tags from every analysis.
	out.Tags = unionStrings(existing.Tags, candidate.Tags)
	out.Categories = unionStrings(existing.Categories, candidate.Categories)

	if newer && candidate.Score != 0 {
		out.Score = candidate.Score
	}
	if !candidate.Published.IsZero() && (newer || out.Published.IsZero()) {
		out.Published = candidate.Published
	}
	if candidate.Updated.After(out.Updated) {
		out.Updated = candidate.Updated
	}
	if candidate.AnalyzedAt.After(out.AnalyzedAt) {
		out.AnalyzedAt = candidate.AnalyzedAt
	}

	return out, !equivalent(existing, out)
}

// candidateOlder reports whether the candidate's source fetch predates
// the stored record's.
func candidateOlder(existing, candidate types.AnalyzedPaper) bool {
	ce, cc := existing.Updated, candidate.Updated
	if ce.IsZero() && cc.IsZero() {
		ce, cc = existing.AnalyzedAt, candidate.AnalyzedAt
	}
	return !cc.IsZero() && !ce.IsZero() && cc.Before(ce)
}

// equivalent compares two records ignoring tag order.
func equivalent(a, b types.AnalyzedPaper) bool {
	na, nb := a, b
	na.Tags = sortedCopy(a.Tags)
	nb.Tags = sortedCopy(b.Tags)
	na.Categories = sortedCopy(a.Categories)
	nb.Categories = sortedCopy(b.Categories)

	ja, _ := json.Marshal(na)
	jb, _ := json.Marshal(nb)
	return string(ja) == string(jb)
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// unionStrings merges two string sets preserving first-seen order.
func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// List returns the whole corpus ordered by publication date descending,
// ties broken by canonical ID ascending. The read runs in one implicit
// snapshot; a concurrent upsert is either fully visible or not at all.
func (s *Store) List(ctx context.Context) ([]types.AnalyzedPaper, error) {
	return s.query(ctx, selectPaperSQL+` ORDER BY published DESC, id ASC`)
}

// LoadDay returns the papers persisted on one day (YYYY-MM-DD), in corpus order.
func (s *Store) LoadDay(ctx context.Context, day string) ([]types.AnalyzedPaper, error) {
	return s.query(ctx, selectPaperSQL+` WHERE day = ? ORDER BY published DESC, id ASC`, day)
}

// Days returns the distinct days present in the corpus, newest first.
func (s *Store) Days(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT day FROM papers WHERE day IS NOT NULL AND day != '' ORDER BY day DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

const selectPaperSQL = `SELECT id, title, abstract, authors, categories, primary_category,
	published, updated, pdf_url, abs_url, summary, key_contributions,
	methodology, tags, category, score, score_reason, analyzed_at, provider, model
	FROM papers`

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.AnalyzedPaper, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var papers []types.AnalyzedPaper
	for rows.Next() {
		p, _, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (types.AnalyzedPaper, bool, error) {
	var (
		p                           types.AnalyzedPaper
		authorsJSON, categoriesJSON sql.NullString
		contribJSON, tagsJSON       sql.NullString
		published, updated          sql.NullString
		analyzedAt                  sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.Abstract, &authorsJSON, &categoriesJSON, &p.PrimaryCategory,
		&published, &updated, &p.PDFURL, &p.AbsURL, &p.Summary, &contribJSON,
		&p.Methodology, &tagsJSON, &p.Category, &p.Score, &p.ScoreReason,
		&analyzedAt, &p.Provider, &p.Model,
	)
	if err == sql.ErrNoRows {
		return types.AnalyzedPaper{}, false, nil
	}
	if err != nil {
		return types.AnalyzedPaper{}, false, fmt.Errorf("scanning paper row: %w", err)
	}

	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &p.Authors)
	}
	if categoriesJSON.Valid {
		json.Unmarshal([]byte(categoriesJSON.String), &p.Categories)
	}
	if contribJSON.Valid {
		json.Unmarshal([]byte(contribJSON.String), &p.KeyContributions)
	}
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &p.Tags)
	}
	p.Published = parseTime(published)
	p.Updated = parseTime(updated)
	p.AnalyzedAt = parseTime(analyzedAt)

	return p, true, nil
}

func parseTime(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, ns.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func writePaper(ctx context.Context, tx *sql.Tx, p types.AnalyzedPaper) error {
	authorsJSON, _ := json.Marshal(p.Authors)
	categoriesJSON, _ := json.Marshal(p.Categories)
	contribJSON, _ := json.Marshal(p.KeyContributions)
	tagsJSON, _ := json.Marshal(p.Tags)

	day := ""
	if !p.AnalyzedAt.IsZero() {
		day = p.AnalyzedAt.UTC().Format("2006-01-02")
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO papers (id, title, abstract, authors, categories, primary_category,
			published, updated, pdf_url, abs_url, summary, key_contributions,
			methodology, tags, category, score, score_reason, analyzed_at, provider, model, day)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract, authors=excluded.authors,
			categories=excluded.categories, primary_category=excluded.primary_category,
			published=excluded.published, updated=excluded.updated,
			pdf_url=excluded.pdf_url, abs_url=excluded.abs_url,
			summary=excluded.summary, key_contributions=excluded.key_contributions,
			methodology=excluded.methodology, tags=excluded.tags,
			category=excluded.category, score=excluded.score,
			score_reason=excluded.score_reason, analyzed_at=excluded.analyzed_at,
			provider=excluded.provider, model=excluded.model`,
		p.ID, p.Title, p.Abstract, string(authorsJSON), string(categoriesJSON),
		p.PrimaryCategory, formatTime(p.Published), formatTime(p.Updated),
		p.PDFURL, p.AbsURL, p.Summary, string(contribJSON), p.Methodology,
		string(tagsJSON), p.Category, p.Score, p.ScoreReason,
		formatTime(p.AnalyzedAt), p.Provider, p.Model, day,
	)
	return err
}
