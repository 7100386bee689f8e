// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package site renders the static website from the analyzed-paper corpus:
// an index page, per-category listings, per-paper detail pages, and the
// search index artifact the client-side search loads.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/paper-tracker/internal/searchindex"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	recentCount        = 20
	highRelevanceMin   = 8
	highRelevanceCount = 10
)

// Generator renders the site into an output directory. Rendering is a
// pure sink: it reads the corpus snapshot it is given and never writes
// back to it.
type Generator struct {
	cfg       *types.Config
	outputDir string
	staticDir string
	tmpl      *template.Template
}

// New builds a generator writing to outputDir. staticDir may be empty;
// when set, its contents are copied into outputDir/static.
func New(cfg *types.Config, outputDir, staticDir string) (*Generator, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"formatDate": formatDate,
		"truncate":   truncate,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Generator{
		cfg:       cfg,
		outputDir: outputDir,
		staticDir: staticDir,
		tmpl:      tmpl,
	}, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	cut := string(runes[:length])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

type baseContext struct {
	Site          types.SiteConfig
	Categories    []string
	CategoryNames map[string]string
	GeneratedAt   time.Time
	TotalPapers   int
}

type indexContext struct {
	baseContext
	RecentPapers     []types.AnalyzedPaper
	HighRelevance    []types.AnalyzedPaper
	PapersByCategory map[string][]types.AnalyzedPaper
}

type categoryContext struct {
	baseContext
	CurrentCategory string
	CategoryName    string
	Papers          []types.AnalyzedPaper
}

type paperContext struct {
	baseContext
	Paper types.AnalyzedPaper
}

// Generate renders every page plus the search index from the corpus
// snapshot. Progress lines go to w.
func (g *Generator) Generate(papers []types.AnalyzedPaper, w io.Writer) error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	sorted := make([]types.AnalyzedPaper, len(papers))
	copy(sorted, papers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})

	byCategory := make(map[string][]types.AnalyzedPaper)
	for _, p := range sorted {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	base := baseContext{
		Site:          g.cfg.Site,
		Categories:    g.cfg.OutputCategories(),
		CategoryNames: categoryNames(g.cfg),
		GeneratedAt:   time.Now(),
		TotalPapers:   len(sorted),
	}

	if err := g.renderIndex(sorted, byCategory, base); err != nil {
		return err
	}
	for _, category := range base.Categories {
		if err := g.renderCategory(category, byCategory[category], base); err != nil {
			return err
		}
	}
	for _, p := range sorted {
		if err := g.renderPaper(p, base); err != nil {
			return err
		}
	}

	indexPath := filepath.Join(g.outputDir, "search_index.json")
	if err := searchindex.Write(searchindex.Build(sorted), indexPath); err != nil {
		return err
	}

	if err := g.copyStatic(); err != nil {
		return err
	}

	fmt.Fprintf(w, "site generated at %s: %d papers, %d categories\n",
		g.outputDir, len(sorted), len(byCategory))
	return nil
}

func categoryNames(cfg *types.Config) map[string]string {
	names := make(map[string]string, len(cfg.Domains))
	for _, d := range cfg.Domains {
		names[d.OutputCategory] = d.Name
	}
	return names
}

func (g *Generator) renderIndex(sorted []types.AnalyzedPaper, byCategory map[string][]types.AnalyzedPaper, base baseContext) error {
	recent := sorted
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}
	var high []types.AnalyzedPaper
	for _, p := range sorted {
		if p.Score >= highRelevanceMin {
			high = append(high, p)
			if len(high) == highRelevanceCount {
				break
			}
		}
	}

	ctx := indexContext{
		baseContext:      base,
		RecentPapers:     recent,
		HighRelevance:    high,
		PapersByCategory: byCategory,
	}
	return g.renderTo(filepath.Join(g.outputDir, "index.html"), "index.html", ctx)
}

func (g *Generator) renderCategory(category string, papers []types.AnalyzedPaper, base baseContext) error {
	name := category
	if d := g.cfg.DomainByOutputCategory(category); d != nil {
		name = d.Name
	}
	ctx := categoryContext{
		baseContext:     base,
		CurrentCategory: category,
		CategoryName:    name,
		Papers:          papers,
	}
	path := filepath.Join(g.outputDir, "category", category, "index.html")
	return g.renderTo(path, "paper_list.html", ctx)
}

func (g *Generator) renderPaper(p types.AnalyzedPaper, base baseContext) error {
	ctx := paperContext{baseContext: base, Paper: p}
	path := filepath.Join(g.outputDir, "paper", p.ID, "index.html")
	return g.renderTo(path, "paper_detail.html", ctx)
}

func (g *Generator) renderTo(path, name string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := g.tmpl.ExecuteTemplate(f, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

// copyStatic populates outputDir/static: from the configured static
// directory when one is set, otherwise from the embedded defaults.
func (g *Generator) copyStatic() error {
	dst := filepath.Join(g.outputDir, "static")
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("clearing static output: %w", err)
	}

	if g.staticDir == "" {
		return fs.WalkDir(staticFS, "static", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			target := filepath.Join(g.outputDir, path)
			if d.IsDir() {
				return os.MkdirAll(target, 0o755)
			}
			data, err := staticFS.ReadFile(path)
			if err != nil {
				return err
			}
			return os.WriteFile(target, data, 0o644)
		})
	}

	if _, err := os.Stat(g.staticDir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(g.staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(g.staticDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading static file %s: %w", path, err)
		}
		return os.WriteFile(target, data, 0o644)
	})
}
