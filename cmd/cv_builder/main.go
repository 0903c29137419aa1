// Package main provides the entry point for the CV Builder HTTP API server and tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_builder",
	Short: "CV Builder HTTP API Server",
	Long:  "CV Builder stores structured CV data and projects it through layout templates to HTML and PDF, with a live preview API for editors.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
