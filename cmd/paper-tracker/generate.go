// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/corpus"
	"github.com/pdiddy/paper-tracker/internal/site"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the static site from the stored corpus",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "docs", "output directory for the site")
	generateCmd.Flags().String("static", "", "directory of static assets to copy (default: built-in)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := corpus.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	static, _ := cmd.Flags().GetString("static")
	gen, err := site.New(cfg, output, static)
	if err != nil {
		return err
	}
	return gen.Generate(papers, os.Stdout)
}
