// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated site locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		output, _ := cmd.Flags().GetString("output")

		if _, err := os.Stat(output); os.IsNotExist(err) {
			return fmt.Errorf("site directory %s does not exist; run 'paper-tracker generate' first", output)
		}

		addr := fmt.Sprintf(":%d", port)
		fmt.Printf("Serving %s at http://localhost%s\n", output, addr)
		return http.ListenAndServe(addr, http.FileServer(http.Dir(output)))
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8000, "port to listen on")
	serveCmd.Flags().StringP("output", "o", "docs", "site directory to serve")

	rootCmd.AddCommand(serveCmd)
}
