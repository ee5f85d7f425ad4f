// Package enhance upgrades an extracted CV into richer prose via the LLM
// client. Model output is schema-validated before it is adopted; any
// failure surfaces as an error so callers can fall back to the basic CV.
package enhance

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/careervoice/internal/llm"
	"github.com/jonathan/careervoice/internal/prompts"
	"github.com/jonathan/careervoice/internal/schemas"
	"github.com/jonathan/careervoice/internal/types"
)

//go:embed schema.json
var cvSchema string

// ResponseError reports which stage of enhancement failed.
type ResponseError struct {
	Stage string // "generate", "validate" or "decode"
	Cause error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("cv enhancement failed during %s: %v", e.Stage, e.Cause)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// GeminiEnhancer produces an enhanced CV from interview context using the
// tiered LLM client. It implements assemble.Enhancer.
type GeminiEnhancer struct {
	client llm.Client
	tier   llm.ModelTier
}

// New creates an enhancer on the standard model tier.
func New(client llm.Client) *GeminiEnhancer {
	return NewWithTier(client, llm.TierStandard)
}

// NewWithTier creates an enhancer on a specific model tier.
func NewWithTier(client llm.Client, tier llm.ModelTier) *GeminiEnhancer {
	return &GeminiEnhancer{client: client, tier: tier}
}

// Enhance asks the model for a complete structured CV built from the given
// context text and validates the response against the CV schema.
func (e *GeminiEnhancer) Enhance(ctx context.Context, contextText string) (*types.StructuredCV, error) {
	prompt := prompts.Format(prompts.MustGet("cv.json", "enhance-cv"), map[string]string{
		"Context": contextText,
	})

	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		return nil, &ResponseError{Stage: "generate", Cause: err}
	}

	if err := schemas.ValidateJSONString(cvSchema, raw); err != nil {
		log.Printf("enhanced CV rejected by schema: %v", err)
		return nil, &ResponseError{Stage: "validate", Cause: err}
	}

	var cv types.StructuredCV
	if err := json.Unmarshal([]byte(raw), &cv); err != nil {
		return nil, &ResponseError{Stage: "decode", Cause: err}
	}
	cv.Normalize()
	return &cv, nil
}
