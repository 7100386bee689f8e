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
	"github.com/pdiddy/paper-tracker/internal/site"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, analyze and regenerate the site in one pass",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringP("output", "o", "docs", "output directory for the site")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireDomains(cfg); err != nil {
		return err
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

	client := fetch.NewClient(cfg.Fetch)
	p := pipeline.New(cfg, client, analyze.New(backend, cfg.LLM, cfg.Domains), store)
	sum, err := p.Run(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("pipeline: %d fetched, %d persisted\n", sum.Fetched, sum.Persisted())

	papers, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	gen, err := site.New(cfg, output, "")
	if err != nil {
		return err
	}
	if err := gen.Generate(papers, os.Stdout); err != nil {
		return err
	}

	if sum.HasFailures() {
		return fmt.Errorf("%d paper(s) failed during the run", sum.Malformed+sum.AnalysisFailed+sum.StoreFailed)
	}
	return nil
}
