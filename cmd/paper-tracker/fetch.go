// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/analyze"
	"github.com/pdiddy/paper-tracker/internal/corpus"
	"github.com/pdiddy/paper-tracker/internal/fetch"
	"github.com/pdiddy/paper-tracker/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch new papers from arXiv and analyze them",
	Long: `Fetch queries arXiv for each configured domain, analyzes the matching
papers with the configured AI backend, and merges everything that passes
the relevance threshold into the corpus. Papers already stored are updated
in place, never duplicated.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntP("days", "d", 0, "days to look back (default from config)")
	fetchCmd.Flags().Bool("dry-run", false, "fetch papers without analyzing or storing")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireDomains(cfg); err != nil {
		return err
	}
	if days, _ := cmd.Flags().GetInt("days"); days > 0 {
		cfg.Fetch.DaysBack = days
	}

	fmt.Printf("Configuration loaded: %d domains\n", len(cfg.Domains))
	fmt.Printf("LLM provider: %s / %s\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Printf("Looking back %d day(s)\n", cfg.Fetch.DaysBack)

	client := fetch.NewClient(cfg.Fetch)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		papers, err := client.FetchAll(cmd.Context(), cfg.Domains, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("\n[dry run] fetched %d papers:\n", len(papers))
		for i, p := range papers {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(papers)-10)
				break
			}
			fmt.Printf("  - %s\n", p.Title)
		}
		return nil
	}

	backend, err := analyze.NewBackend(cfg.LLM)
	if err != nil {
		return err
	}
	store, err := corpus.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	p := pipeline.New(cfg, client, analyze.New(backend, cfg.LLM, cfg.Domains), store)
	sum, err := p.Run(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\nfetched %d, no domain %d, below threshold %d\n",
		sum.Fetched, sum.NoDomain, sum.BelowThreshold)
	fmt.Printf("inserted %d, updated %d, unchanged %d\n",
		sum.Inserted, sum.Updated, sum.Skipped)
	if sum.HasFailures() {
		return fmt.Errorf("%d paper(s) failed: %d malformed, %d analysis, %d store",
			sum.Malformed+sum.AnalysisFailed+sum.StoreFailed,
			sum.Malformed, sum.AnalysisFailed, sum.StoreFailed)
	}
	return nil
}
