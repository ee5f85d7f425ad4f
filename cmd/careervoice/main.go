// Package main provides the entry point for the CareerVoice CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careervoice",
	Short: "CareerVoice CV generation service",
	Long:  "CareerVoice turns voice interview transcripts into professional CVs, served over a REST API or generated offline from transcript files.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
