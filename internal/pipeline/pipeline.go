// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the ingestion batch: fetch raw papers, normalize
// them, match against the configured domains, analyze with the AI backend,
// apply the relevance threshold, and merge survivors into the corpus.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paper-tracker/internal/corpus"
	"github.com/pdiddy/paper-tracker/internal/domains"
	"github.com/pdiddy/paper-tracker/internal/ingest"
	"github.com/pdiddy/paper-tracker/internal/rank"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// Fetcher supplies the raw papers for one run.
type Fetcher interface {
	FetchAll(ctx context.Context, domains []types.DomainConfig, w io.Writer) ([]types.RawPaper, error)
}

// Analyzer produces the AI analysis for one paper; satisfied by
// *analyze.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, fields ingest.NormalizedFields) (types.AnalysisResult, error)
	Provider() string
	Model() string
}

// Summary counts what happened to each paper in one run. Per-paper
// failures are recorded here and reported, never abort the batch.
type Summary struct {
	Fetched        int
	Malformed      int
	NoDomain       int
	AnalysisFailed int
	BelowThreshold int
	Inserted       int
	Updated        int
	Skipped        int
	StoreFailed    int
}

// Persisted is the number of papers that reached the corpus.
func (s Summary) Persisted() int {
	return s.Inserted + s.Updated + s.Skipped
}

// HasFailures reports whether any per-paper stage failed.
func (s Summary) HasFailures() bool {
	return s.Malformed > 0 || s.AnalysisFailed > 0 || s.StoreFailed > 0
}

// Pipeline wires the stages together for one batch run.
type Pipeline struct {
	cfg      *types.Config
	fetcher  Fetcher
	analyzer Analyzer
	store    *corpus.Store
	ranker   rank.Ranker
}

// New builds a pipeline over the given collaborators.
func New(cfg *types.Config, fetcher Fetcher, analyzer Analyzer, store *corpus.Store) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		analyzer: analyzer,
		store:    store,
		ranker:   rank.Ranker{MinScore: cfg.Fetch.MinRelevanceScore},
	}
}

// Run executes one batch. Only batch-level failures (the fetch itself, or
// the store being unreachable) return an error; individual papers that
// fail any stage are counted in the summary and skipped. After the batch,
// the day's corpus slice is exported as the per-day JSON record.
func (p *Pipeline) Run(ctx context.Context, w io.Writer) (Summary, error) {
	var sum Summary

	raws, err := p.fetcher.FetchAll(ctx, p.cfg.Domains, w)
	if err != nil {
		return sum, fmt.Errorf("fetching papers: %w", err)
	}
	sum.Fetched = len(raws)
	fmt.Fprintf(w, "fetched %d papers\n", len(raws))

	day := time.Now().UTC().Format("2006-01-02")
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		p.process(ctx, raw, &sum, w)
	}

	if sum.Persisted() > 0 {
		if _, err := p.store.ExportDay(ctx, day); err != nil {
			return sum, fmt.Errorf("exporting day %s: %w", day, err)
		}
	}
	return sum, nil
}

// process runs one paper through normalize, match, analyze, rank, and
// upsert. Failures are counted on sum and logged to w.
func (p *Pipeline) process(ctx context.Context, raw types.RawPaper, sum *Summary, w io.Writer) {
	id, fields, err := ingest.Normalize(raw)
	if err != nil {
		sum.Malformed++
		fmt.Fprintf(w, "skipping record %q: %v\n", raw.ArxivID, err)
		return
	}

	match := domains.Evaluate(raw.Categories, fields, p.cfg.Domains)
	if !match.Matched() {
		sum.NoDomain++
		return
	}

	analysis, err := p.analyzer.Analyze(ctx, fields)
	if err != nil {
		sum.AnalysisFailed++
		fmt.Fprintf(w, "analysis failed for %s: %v\n", id, err)
		return
	}

	score := p.ranker.Score(analysis, match.Strength)
	if !p.ranker.Accepts(score) {
		sum.BelowThreshold++
		return
	}

	outcome, err := p.store.Upsert(ctx, p.buildPaper(id, raw, fields, analysis, score))
	if err != nil {
		sum.StoreFailed++
		fmt.Fprintf(w, "persisting %s: %v\n", id, err)
		return
	}
	switch outcome {
	case corpus.Inserted:
		sum.Inserted++
	case corpus.Updated:
		sum.Updated++
	case corpus.Skipped:
		sum.Skipped++
	}
}

// buildPaper assembles the persisted record; the store derives the day
// from AnalyzedAt.
func (p *Pipeline) buildPaper(id string, raw types.RawPaper, fields ingest.NormalizedFields, analysis types.AnalysisResult, score int) types.AnalyzedPaper {
	return types.AnalyzedPaper{
		ID:               id,
		Title:            fields.Title,
		Abstract:         fields.Abstract,
		Authors:          fields.Authors,
		Categories:       raw.Categories,
		PrimaryCategory:  raw.PrimaryCategory,
		Published:        raw.Published,
		Updated:          raw.Updated,
		PDFURL:           raw.PDFURL,
		AbsURL:           raw.AbsURL,
		Summary:          analysis.Summary,
		KeyContributions: analysis.KeyContributions,
		Methodology:      analysis.Methodology,
		Tags:             analysis.Tags,
		Category:         analysis.Category,
		Score:            score,
		ScoreReason:      analysis.RelevanceReason,
		AnalyzedAt:       time.Now().UTC(),
		Provider:         p.analyzer.Provider(),
		Model:            p.analyzer.Model(),
	}
}
