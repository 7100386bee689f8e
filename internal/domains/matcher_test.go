package domains

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paper-tracker/internal/ingest"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

func fieldsFor(title, abstract string) ingest.NormalizedFields {
	id, f, err := ingest.Normalize(types.RawPaper{
		ArxivID:  "2401.00001",
		Title:    title,
		Abstract: abstract,
	})
	if err != nil || id == "" {
		panic(err)
	}
	return f
}

func TestEvaluateCategoryAndKeyword(t *testing.T) {
	cfgs := []types.DomainConfig{
		{
			Name:           "NLP Retrieval",
			Categories:     []string{"cs.CL"},
			Keywords:       []string{"retrieval"},
			OutputCategory: "nlp-retrieval",
		},
	}

	tests := []struct {
		name       string
		categories []string
		title      string
		abstract   string
		want       []string
	}{
		{
			"category and keyword match",
			[]string{"cs.CL", "cs.AI"}, "Dense Retrieval at Scale", "We study retrieval.",
			[]string{"nlp-retrieval"},
		},
		{
			"keyword match is case-insensitive",
			[]string{"cs.CL"}, "RETRIEVAL-Augmented Generation", "",
			[]string{"nlp-retrieval"},
		},
		{
			"keyword in abstract only",
			[]string{"cs.CL"}, "A Study", "A retrieval-augmented approach.",
			[]string{"nlp-retrieval"},
		},
		{
			"wrong category excluded despite keyword",
			[]string{"cs.CV"}, "Image Retrieval", "retrieval everywhere",
			nil,
		},
		{
			"right category but no keyword excluded",
			[]string{"cs.CL"}, "A Parsing Benchmark", "Syntax trees.",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Evaluate(tt.categories, fieldsFor(tt.title, tt.abstract), cfgs)
			if !reflect.DeepEqual(m.Domains, tt.want) {
				t.Errorf("Domains = %v, want %v", m.Domains, tt.want)
			}
		})
	}
}

func TestEvaluateCategoryOnlyDomain(t *testing.T) {
	cfgs := []types.DomainConfig{
		{Name: "All of CV", Categories: []string{"cs.CV"}, OutputCategory: "vision"},
	}

	m := Evaluate([]string{"cs.CV"}, fieldsFor("Anything", "at all"), cfgs)
	if !m.Matched() {
		t.Fatal("empty keyword list should match on category alone")
	}
	if m.Strength != 1 {
		t.Errorf("Strength = %d, want 1 for a category-only match", m.Strength)
	}
}

func TestEvaluateMultipleDomains(t *testing.T) {
	cfgs := []types.DomainConfig{
		{Categories: []string{"cs.CL"}, Keywords: []string{"memory"}, OutputCategory: "memory"},
		{Categories: []string{"cs.AI"}, Keywords: []string{"agent"}, OutputCategory: "agents"},
	}

	m := Evaluate([]string{"cs.CL", "cs.AI"}, fieldsFor("Memory for Agent Systems", ""), cfgs)
	want := []string{"memory", "agents"}
	if !reflect.DeepEqual(m.Domains, want) {
		t.Errorf("Domains = %v, want %v", m.Domains, want)
	}
	if m.Strength != 2 {
		t.Errorf("Strength = %d, want 2 distinct keywords", m.Strength)
	}
}

func TestEvaluateDuplicateKeywordCountedOnce(t *testing.T) {
	cfgs := []types.DomainConfig{
		{Categories: []string{"cs.CL"}, Keywords: []string{"memory"}, OutputCategory: "a"},
		{Categories: []string{"cs.CL"}, Keywords: []string{"memory"}, OutputCategory: "b"},
	}

	m := Evaluate([]string{"cs.CL"}, fieldsFor("On Memory", ""), cfgs)
	if len(m.Domains) != 2 {
		t.Fatalf("Domains = %v, want both", m.Domains)
	}
	if m.Strength != 1 {
		t.Errorf("Strength = %d, shared keyword should count once", m.Strength)
	}
}

func TestEvaluateNoDomainsConfigured(t *testing.T) {
	m := Evaluate([]string{"cs.CL"}, fieldsFor("Title", "abstract"), nil)
	if m.Matched() {
		t.Error("no configured domains should match nothing")
	}
}
