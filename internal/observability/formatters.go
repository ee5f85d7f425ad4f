// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/careervoice/internal/jobs"
	"github.com/jonathan/careervoice/internal/transcript"
	"github.com/jonathan/careervoice/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTranscript outputs a summary of the interview transcript.
func (p *Printer) PrintTranscript(log *transcript.Log) {
	if log == nil || log.Len() == 0 {
		return
	}

	agentLines, userLines := 0, 0
	for _, line := range log.Lines() {
		if line.Speaker == transcript.RoleAgent {
			agentLines++
		} else {
			userLines++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total lines:     %d\n", log.Len()))
	sb.WriteString(fmt.Sprintf("Agent lines:     %d\n", agentLines))
	sb.WriteString(fmt.Sprintf("Candidate lines: %d", userLines))

	p.printBox("INTERVIEW TRANSCRIPT", sb.String())
}

// PrintCV outputs a human-readable summary of the assembled CV.
func (p *Printer) PrintCV(cv *types.StructuredCV) {
	if cv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orUnknown(cv.PersonalInfo.Name)))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orUnknown(cv.JobTitle)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orUnknown(cv.PersonalInfo.Email)))
	if cv.PersonalInfo.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", cv.PersonalInfo.Location))
	}
	sb.WriteString("\n")

	if len(cv.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(cv.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", cv.Skills[i]))
		}
		if len(cv.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cv.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(cv.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(cv.Experience), 3)
		for i := 0; i < count; i++ {
			entry := cv.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", entry.Role))
			if entry.Company != "" {
				sb.WriteString(fmt.Sprintf(" — %s", entry.Company))
			}
			sb.WriteString("\n")
		}
		if len(cv.Experience) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cv.Experience)-3))
		}
		sb.WriteString("\n")
	}

	if len(cv.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education entries:      %d\n", len(cv.Education)))
	}
	if len(cv.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("Certifications:         %d\n", len(cv.Certifications)))
	}

	p.printBox("ASSEMBLED CV", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs the top job board matches.
func (p *Printer) PrintJobs(matches []jobs.Job) {
	if len(matches) == 0 {
		p.printBox("JOB MATCHES", "No matching postings found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matching postings:\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, job.Title))
		sb.WriteString(fmt.Sprintf("    %s — %s", job.CompanyName, job.Location))
		if job.Remote {
			sb.WriteString(" (remote)")
		}
		sb.WriteString("\n")
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more postings", len(matches)-maxItemsToShow))
	}

	p.printBox("JOB MATCHES", sb.String())
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
