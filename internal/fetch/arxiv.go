// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch queries the arXiv catalog API for recently published
// papers in the configured research domains. It is a collaborator of the
// core pipeline: its only job is to deliver RawPaper records; scoring,
// dedup, and persistence happen downstream.
package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/paper-tracker/internal/ingest"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// apiBase is the arXiv query endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// Client fetches papers from the arXiv API.
type Client struct {
	HTTP *http.Client
	cfg  types.FetchConfig
}

// NewClient builds a Client with defaults applied to the config.
func NewClient(cfg types.FetchConfig) *Client {
	if cfg.DaysBack <= 0 {
		cfg.DaysBack = 1
	}
	if cfg.MaxPapersPerDomain <= 0 {
		cfg.MaxPapersPerDomain = 50
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "paper-tracker/0.1"
	}
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// FetchAll queries every configured domain and returns the union of
// recent papers, deduplicated by canonical ID and sorted newest first.
// A failing domain query is reported to w and skipped; the remaining
// domains still run.
func (c *Client) FetchAll(ctx context.Context, domains []types.DomainConfig, w io.Writer) ([]types.RawPaper, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("no domains configured")
	}

	seen := make(map[string]bool)
	var papers []types.RawPaper

	for i, domain := range domains {
		if i > 0 && c.cfg.DomainDelay > 0 {
			select {
			case <-ctx.Done():
				return papers, ctx.Err()
			case <-time.After(c.cfg.DomainDelay):
			}
		}

		fmt.Fprintf(w, "fetching domain: %s\n", domain.Name)

		domainPapers, err := c.FetchDomain(ctx, domain)
		if err != nil {
			fmt.Fprintf(w, "  warning: domain %s failed: %v\n", domain.Name, err)
			continue
		}

		added := 0
		for _, p := range domainPapers {
			id := ingest.CanonicalID(p.ArxivID)
			if seen[id] {
				continue
			}
			seen[id] = true
			papers = append(papers, p)
			added++
		}
		fmt.Fprintf(w, "  found %d papers (%d new)\n", len(domainPapers), added)
	}

	sort.Slice(papers, func(i, j int) bool {
		return papers[i].Published.After(papers[j].Published)
	})
	return papers, nil
}

// FetchDomain queries the arXiv API for one domain and filters the
// results to the configured publication window.
func (c *Client) FetchDomain(ctx context.Context, domain types.DomainConfig) ([]types.RawPaper, error) {
	query := buildQuery(domain)

	params := url.Values{}
	params.Set("search_query", query)
	params.Set("start", "0")
	// Over-fetch to compensate for the date-window filter below.
	params.Set("max_results", fmt.Sprintf("%d", c.cfg.MaxPapersPerDomain*2))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := doWithRetry(ctx, c.HTTP, req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -c.cfg.DaysBack)
	seen := make(map[string]bool)
	var papers []types.RawPaper

	for _, entry := range feed.Entries {
		paper, ok := entryToPaper(entry)
		if !ok {
			continue
		}
		if paper.Published.Before(cutoff) {
			continue
		}
		id := ingest.CanonicalID(paper.ArxivID)
		if seen[id] {
			continue
		}
		seen[id] = true

		papers = append(papers, paper)
		if len(papers) >= c.cfg.MaxPapersPerDomain {
			break
		}
	}
	return papers, nil
}

// buildQuery constructs the arXiv search_query for a domain:
// (cat:A OR cat:B) AND (ti:"kw" OR abs:"kw" OR ...). A domain with no
// keywords queries on categories alone.
func buildQuery(domain types.DomainConfig) string {
	var catQuery, kwQuery string

	if len(domain.Categories) > 0 {
		parts := make([]string, 0, len(domain.Categories))
		for _, cat := range domain.Categories {
			parts = append(parts, "cat:"+cat)
		}
		catQuery = "(" + strings.Join(parts, " OR ") + ")"
	}

	if len(domain.Keywords) > 0 {
		var parts []string
		for _, kw := range domain.Keywords {
			parts = append(parts, fmt.Sprintf("ti:%q", kw), fmt.Sprintf("abs:%q", kw))
		}
		kwQuery = "(" + strings.Join(parts, " OR ") + ")"
	}

	switch {
	case catQuery != "" && kwQuery != "":
		return catQuery + " AND " + kwQuery
	case catQuery != "":
		return catQuery
	case kwQuery != "":
		return kwQuery
	}
	return "cat:cs.AI"
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Published       string         `xml:"published"`
	Updated         string         `xml:"updated"`
	Authors         []atomAuthor   `xml:"author"`
	Categories      []atomCategory `xml:"category"`
	PrimaryCategory atomCategory   `xml:"http://arxiv.org/schemas/atom primary_category"`
	Links           []atomLink     `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// entryToPaper converts one Atom entry to a RawPaper. Entries without a
// recognizable identifier are dropped.
func entryToPaper(entry atomEntry) (types.RawPaper, bool) {
	arxivID := idFromURL(entry.ID)
	if arxivID == "" {
		return types.RawPaper{}, false
	}

	p := types.RawPaper{
		ArxivID:         arxivID,
		Title:           strings.Join(strings.Fields(entry.Title), " "),
		Abstract:        strings.Join(strings.Fields(entry.Summary), " "),
		PrimaryCategory: entry.PrimaryCategory.Term,
		AbsURL:          entry.ID,
	}

	for _, a := range entry.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range entry.Categories {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	if p.PrimaryCategory == "" && len(p.Categories) > 0 {
		p.PrimaryCategory = p.Categories[0]
	}

	for _, l := range entry.Links {
		if l.Title == "pdf" {
			p.PDFURL = l.Href
		}
	}
	if p.PDFURL == "" {
		p.PDFURL = strings.Replace(entry.ID, "/abs/", "/pdf/", 1)
	}

	if t, err := time.Parse(time.RFC3339, entry.Published); err == nil {
		p.Published = t
	}
	if t, err := time.Parse(time.RFC3339, entry.Updated); err == nil {
		p.Updated = t
	}
	return p, true
}

// idFromURL pulls the arXiv ID (version suffix included) from the
// entry's <id> URL, e.g. "http://arxiv.org/abs/2401.12345v2".
func idFromURL(idURL string) string {
	const marker = "/abs/"
	idx := strings.Index(idURL, marker)
	if idx < 0 {
		return ""
	}
	return idURL[idx+len(marker):]
}
