// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package domains decides which configured research domains a paper
// belongs to. Matching is pure: no I/O, no state, deterministic for
// identical inputs. A paper that matches no domain is dropped from the
// pipeline entirely; this is the primary filtering mechanism.
package domains

import (
	"strings"

	"github.com/pdiddy/paper-tracker/internal/ingest"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// Match holds the outcome of matching one paper against the configured domains.
type Match struct {
	// Domains lists the output-category slugs of every matched domain,
	// in configuration order.
	Domains []string

	// Strength counts the distinct configured keywords found in the
	// paper's title or abstract across all matched domains. Category-only
	// matches contribute a strength of 1 each.
	Strength int
}

// Matched reports whether the paper belongs to at least one domain.
func (m Match) Matched() bool {
	return len(m.Domains) > 0
}

// Evaluate matches a normalized paper against the configured domains.
// A domain matches when the paper carries one of the domain's categories
// AND at least one configured keyword appears (case-insensitively) in the
// title or abstract. A domain with no keywords matches on category alone.
func Evaluate(categories []string, fields ingest.NormalizedFields, cfgs []types.DomainConfig) Match {
	var m Match
	seenKeywords := make(map[string]bool)

	for _, cfg := range cfgs {
		if !categoryOverlap(categories, cfg.Categories) {
			continue
		}

		if len(cfg.Keywords) == 0 {
			m.Domains = append(m.Domains, cfg.OutputCategory)
			m.Strength++
			continue
		}

		hit := false
		for _, kw := range cfg.Keywords {
			lower := strings.ToLower(kw)
			if lower == "" {
				continue
			}
			if strings.Contains(fields.TitleLower, lower) || strings.Contains(fields.AbstractLower, lower) {
				hit = true
				if !seenKeywords[lower] {
					seenKeywords[lower] = true
					m.Strength++
				}
			}
		}
		if hit {
			m.Domains = append(m.Domains, cfg.OutputCategory)
		}
	}

	return m
}

// categoryOverlap reports whether any paper category appears in the
// domain's category set.
func categoryOverlap(paperCats, domainCats []string) bool {
	for _, pc := range paperCats {
		for _, dc := range domainCats {
			if pc == dc {
				return true
			}
		}
	}
	return false
}
