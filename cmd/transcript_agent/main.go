// Package main provides the entry point for the transcript pipeline server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "transcript_agent",
	Short: "YouTube transcript pipeline server",
	Long:  "Transcript Agent fetches YouTube captions, cleans them into readable text, and produces extractive summaries, either directly or via a progress-tracked REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
