// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SiteConfig holds settings for the generated static site.
type SiteConfig struct {
	// Title is the site title shown on every page.
	Title string `json:"title" yaml:"title"`

	// Description is the site tagline.
	Description string `json:"description" yaml:"description"`

	// BaseURL is the public URL prefix, empty for relative links.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// LLMProvider identifies the AI backend used for paper analysis.
type LLMProvider string

const (
	ProviderClaude LLMProvider = "claude"
	ProviderOpenAI LLMProvider = "openai"
	ProviderOllama LLMProvider = "ollama"
)

// LLMConfig holds settings for the analysis stage's AI backend.
type LLMConfig struct {
	// Provider selects the backend: claude, openai, or ollama.
	Provider LLMProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "claude-sonnet-4-20250514").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for hosted providers.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Host is the server URL for local providers (default
	// "http://localhost:11434" for ollama).
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// MaxRetries is the number of retry attempts for failed analysis
	// calls within one run (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DomainConfig is a user-configured research-area filter. A paper is
// tracked when it falls in one of the domain's categories and, if keywords
// are configured, mentions at least one keyword in its title or abstract.
type DomainConfig struct {
	// Name is the human-readable domain name.
	Name string `json:"name" yaml:"name"`

	// Categories lists the arXiv categories the domain covers.
	Categories []string `json:"categories" yaml:"categories"`

	// Keywords filter papers within the categories. An empty list makes
	// this a category-only domain.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// OutputCategory is the slug used as the paper's output bucket.
	OutputCategory string `json:"output_category" yaml:"output_category"`
}

// FetchConfig holds settings for the catalog fetch stage.
type FetchConfig struct {
	// DaysBack is the publication date window in days (default 1).
	DaysBack int `json:"days_back" yaml:"days_back"`

	// MaxPapersPerDomain caps results per domain query (default 50).
	MaxPapersPerDomain int `json:"max_papers_per_domain" yaml:"max_papers_per_domain"`

	// MinRelevanceScore is the persistence threshold: papers scoring
	// below it are dropped, not stored (default 5).
	MinRelevanceScore int `json:"min_relevance_score" yaml:"min_relevance_score"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent with catalog API requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// DomainDelay is the pause between consecutive domain queries
	// (default 3s, keeps the catalog API happy).
	DomainDelay time.Duration `json:"domain_delay" yaml:"domain_delay"`
}

// StoreConfig holds settings for the corpus store.
type StoreConfig struct {
	// DataDir is the base data directory; the store lives at
	// DataDir/papers.db and day exports under DataDir/papers/.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config is the root configuration for the pipeline.
type Config struct {
	Site    SiteConfig     `json:"site" yaml:"site"`
	LLM     LLMConfig      `json:"llm" yaml:"llm"`
	Fetch   FetchConfig    `json:"fetch" yaml:"fetch"`
	Store   StoreConfig    `json:"store" yaml:"store"`
	Domains []DomainConfig `json:"domains" yaml:"domains"`
}

// OutputCategories returns the configured output bucket slugs in domain order.
func (c Config) OutputCategories() []string {
	cats := make([]string, 0, len(c.Domains))
	for _, d := range c.Domains {
		cats = append(cats, d.OutputCategory)
	}
	return cats
}

// DomainByOutputCategory returns the domain with the given output slug,
// or nil when none matches.
func (c Config) DomainByOutputCategory(slug string) *DomainConfig {
	for i := range c.Domains {
		if c.Domains[i].OutputCategory == slug {
			return &c.Domains[i]
		}
	}
	return nil
}
