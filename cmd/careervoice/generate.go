package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/careervoice/internal/assemble"
	"github.com/jonathan/careervoice/internal/enhance"
	"github.com/jonathan/careervoice/internal/llm"
	"github.com/jonathan/careervoice/internal/markdown"
	"github.com/jonathan/careervoice/internal/observability"
	"github.com/jonathan/careervoice/internal/transcript"
	"github.com/jonathan/careervoice/internal/types"
)

var (
	generateInput   string
	generateOutput  string
	generateEnhance bool
	generateVerbose bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a CV from an interview transcript file",
	Long: `Generate a CV in markdown from a saved interview transcript.

The transcript file contains one line per utterance, prefixed with the
speaker ("Agent:" or "You:"). Unprefixed lines are treated as candidate
speech. With --enhance the assembled CV is rewritten by the LLM, which
requires GEMINI_API_KEY to be set.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Path to the transcript file (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Path for the generated markdown (default: stdout)")
	generateCmd.Flags().BoolVar(&generateEnhance, "enhance", false, "Enhance the CV with the LLM")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print transcript and CV summaries")
	_ = generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	interview, err := loadTranscript(generateInput)
	if err != nil {
		return err
	}
	if interview.Len() == 0 {
		return fmt.Errorf("transcript %s contains no interview lines", generateInput)
	}

	printer := observability.NewPrinter(os.Stderr)
	if generateVerbose {
		printer.PrintTranscript(interview)
	}

	cv := assemble.Basic(interview)
	if generateEnhance {
		enhanced, err := enhanceCV(ctx, interview)
		if err != nil {
			log.Printf("Enhancement failed, keeping basic CV: %v", err)
		} else {
			cv = enhanced
		}
	}

	if generateVerbose {
		printer.PrintCV(cv)
	}

	rendered := markdown.Render(cv)
	if generateOutput == "" {
		fmt.Fprintln(os.Stdout, rendered)
		return nil
	}
	if err := os.WriteFile(generateOutput, []byte(rendered+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", generateOutput, err)
	}
	log.Printf("CV written to %s", generateOutput)
	return nil
}

// enhanceCV builds a Gemini client from the environment and runs the
// enhancement pass over the assembled CV.
func enhanceCV(ctx context.Context, interview *transcript.Log) (*types.StructuredCV, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for --enhance")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	return assemble.Enhanced(ctx, interview, enhance.New(client))
}

// loadTranscript reads a transcript file into a Log. Each line is
// "Agent: ..." or "You: ..."; unprefixed lines count as candidate speech.
func loadTranscript(path string) (*transcript.Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()

	interview := transcript.NewLog()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		speaker, text := splitSpeaker(line)
		interview.AppendText(speaker, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return interview, nil
}

func splitSpeaker(line string) (transcript.Role, string) {
	switch {
	case strings.HasPrefix(line, "Agent:"):
		return transcript.RoleAgent, strings.TrimSpace(strings.TrimPrefix(line, "Agent:"))
	case strings.HasPrefix(line, "You:"):
		return transcript.RoleUser, strings.TrimSpace(strings.TrimPrefix(line, "You:"))
	case strings.HasPrefix(line, "User:"):
		return transcript.RoleUser, strings.TrimSpace(strings.TrimPrefix(line, "User:"))
	default:
		return transcript.RoleUser, line
	}
}
