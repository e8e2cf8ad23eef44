package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/eventlens/internal/config"
	"github.com/agenthands/eventlens/internal/core/common"
	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/llm"
)

// Classifier runs the two classification passes over a tweet: informative
// or not, then one humanitarian category.
type Classifier struct {
	LLM     llm.LLMClient
	Prompts config.ExtractionPrompts
}

func NewClassifier(llmClient llm.LLMClient, prompts config.ExtractionPrompts) *Classifier {
	return &Classifier{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

func (c *Classifier) IsInformative(ctx context.Context, tweet string) (bool, error) {
	prompt := fmt.Sprintf(c.Prompts.Informative, tweet)

	response, err := c.LLM.Generate(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("failed to classify tweet: %w", err)
	}

	result, err := common.ParseJSON[model.InformativeResult](response)
	if err != nil {
		return false, fmt.Errorf("failed to parse informative label: %w", err)
	}

	label := normalizeLabel(result.Label)
	switch label {
	case model.LabelInformative:
		return true, nil
	case model.LabelNonInformative:
		return false, nil
	default:
		return false, fmt.Errorf("unknown informative label %q", result.Label)
	}
}

// Humanitarian returns one of model.HumanitarianCategories. Replies outside
// the list fall back to other_relevant_information.
func (c *Classifier) Humanitarian(ctx context.Context, tweet string) (string, error) {
	prompt := fmt.Sprintf(c.Prompts.Humanitarian, tweet)

	response, err := c.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to classify humanitarian category: %w", err)
	}

	result, err := common.ParseJSON[model.HumanitarianResult](response)
	if err != nil {
		return "", fmt.Errorf("failed to parse humanitarian category: %w", err)
	}

	category := normalizeLabel(result.Category)
	for _, known := range model.HumanitarianCategories {
		if category == known {
			return known, nil
		}
	}
	return "other_relevant_information", nil
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
