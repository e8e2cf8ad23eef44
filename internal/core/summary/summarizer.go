package summary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/eventlens/internal/config"
	"github.com/agenthands/eventlens/internal/core/common"
	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/llm"
)

// ChunkSize bounds how many summaries go into one merge prompt.
const ChunkSize = 20

type Summarizer struct {
	LLM     llm.LLMClient
	Prompts config.SummaryPrompts
}

func NewSummarizer(llmClient llm.LLMClient, prompts config.SummaryPrompts) *Summarizer {
	return &Summarizer{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// JoinSummaries is the merge used when no LLM is available.
func JoinSummaries(summaries []string) string {
	return strings.Join(nonEmpty(summaries), " ")
}

// MergeSummaries folds the summaries of events being merged into one.
// Large inputs are merged chunk by chunk and the partial results merged
// again.
func (s *Summarizer) MergeSummaries(ctx context.Context, summaries []string) (string, error) {
	summaries = nonEmpty(summaries)
	switch {
	case len(summaries) == 0:
		return "", nil
	case len(summaries) == 1:
		return summaries[0], nil
	case s.LLM == nil:
		return JoinSummaries(summaries), nil
	}

	if len(summaries) <= ChunkSize {
		var list strings.Builder
		for _, sum := range summaries {
			fmt.Fprintf(&list, "- %s\n", sum)
		}

		prompt := fmt.Sprintf(s.Prompts.Merge, list.String())
		response, err := s.LLM.Generate(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("failed to generate merged summary: %w", err)
		}

		result, err := common.ParseJSON[model.MergedSummary](response)
		if err != nil || strings.TrimSpace(result.Summary) == "" {
			return strings.TrimSpace(response), nil
		}
		return result.Summary, nil
	}

	var partial []string
	for i := 0; i < len(summaries); i += ChunkSize {
		end := i + ChunkSize
		if end > len(summaries) {
			end = len(summaries)
		}
		merged, err := s.MergeSummaries(ctx, summaries[i:end])
		if err != nil {
			log.Printf("summary: chunk %d merge failed, joining instead: %v", i/ChunkSize, err)
			merged = JoinSummaries(summaries[i:end])
		}
		partial = append(partial, merged)
	}

	return s.MergeSummaries(ctx, partial)
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
