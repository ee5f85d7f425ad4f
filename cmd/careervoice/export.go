package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/careervoice/internal/export"
	"github.com/jonathan/careervoice/internal/markdown"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <cv.md>",
	Short: "Export a markdown CV to another format",
	Long: `Export a previously generated markdown CV as DOCX or PDF.

PDF export renders the CV through headless Chrome, which must be
installed on the host.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "docx", "Output format: md, docx or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default: derived from the candidate name)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := export.Format(exportFormat)
	if !format.Valid() {
		return fmt.Errorf("unsupported format %q (expected md, docx or pdf)", exportFormat)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read CV: %w", err)
	}
	cv := markdown.Parse(string(raw))

	var data []byte
	switch format {
	case export.FormatDOCX:
		data, err = export.DOCX(cv)
	case export.FormatPDF:
		data, err = export.NewPDFRenderer().RenderPDF(cmd.Context(), cv)
	default:
		data = export.Markdown(cv)
	}
	if err != nil {
		return fmt.Errorf("failed to export CV: %w", err)
	}

	out := exportOutput
	if out == "" {
		out = export.Filename(cv.PersonalInfo.Name, format)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	log.Printf("Exported %s (%d bytes)", out, len(data))
	return nil
}
