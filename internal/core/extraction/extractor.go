package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/eventlens/internal/config"
	"github.com/agenthands/eventlens/internal/core/common"
	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/llm"
)

var ErrMissingSummary = errors.New("event must include a summary field")

type Extractor struct {
	LLM     llm.LLMClient
	Prompts config.ExtractionPrompts
}

func NewExtractor(llmClient llm.LLMClient, prompts config.ExtractionPrompts) *Extractor {
	return &Extractor{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// WithCategory appends the humanitarian label the way the extraction prompt
// expects to find it.
func WithCategory(tweet, category string) string {
	return fmt.Sprintf("%s, Category: %s", tweet, category)
}

// Extract asks the LLM for the structured fields of the event described by
// the tweet. The reply keeps whatever extra fields the model chose to add.
func (e *Extractor) Extract(ctx context.Context, in model.ExtractionContext) (*model.EventRecord, error) {
	existing := in.ExistingSummary
	if existing == "" {
		existing = "None"
	}
	prompt := fmt.Sprintf(e.Prompts.Event, in.Tweet, existing)

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate event: %w", err)
	}

	ev, err := common.ParseJSON[model.EventRecord](response)
	if err != nil {
		return nil, fmt.Errorf("failed to extract event: %w", err)
	}
	if strings.TrimSpace(ev.Summary) == "" {
		return nil, ErrMissingSummary
	}

	return &ev, nil
}
