// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-tracker/internal/clientsearch"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the built index the way the site's search box does",
	Long: `Search loads the generated search_index.json and runs the same ranking
the site's client-side search uses: case-insensitive substring matching
over title, summary, tags and authors with additive weights, top 8
results.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("index", "docs/search_index.json", "path to the search index artifact")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	indexPath, _ := cmd.Flags().GetString("index")

	var index clientsearch.Index
	if err := index.LoadFile(indexPath); err != nil {
		return fmt.Errorf("loading index: %w (run 'paper-tracker generate' first)", err)
	}

	query := strings.Join(args, " ")
	results := index.Search(query)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Printf("no results for %q\n", query)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WEIGHT\tSCORE\tDATE\tID\tTITLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", r.SearchScore, r.Score, r.Date, r.ID, r.Title)
	}
	return w.Flush()
}
