package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/careervoice/internal/jobs"
	"github.com/jonathan/careervoice/internal/observability"
)

var (
	jobsQuery string
	jobsPages int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Search the job board for matching postings",
	RunE:  runJobs,
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsQuery, "query", "q", "", "Keyword filter for title, company and tags")
	jobsCmd.Flags().IntVar(&jobsPages, "pages", 1, "Number of job board pages to fetch (1-10)")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	if jobsPages < 1 || jobsPages > 10 {
		return fmt.Errorf("pages must be between 1 and 10, got %d", jobsPages)
	}

	opts := jobs.DefaultOptions()
	if base := os.Getenv("JOBS_BASE_URL"); base != "" {
		opts.BaseURL = base
	}
	client := jobs.NewClient(opts)

	matches, err := client.Search(cmd.Context(), jobsQuery, jobsPages)
	if err != nil {
		return fmt.Errorf("job board request failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintJobs(matches)
	return nil
}
