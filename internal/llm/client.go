package llm

import (
	"context"
)

// LLMClient produces text for classification, extraction and summary
// prompts.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbedderClient turns an event summary into a vector for similarity
// matching.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RerankerClient orders documents by relevance to query and returns their
// indices.
type RerankerClient interface {
	Rank(ctx context.Context, query string, documents []string) ([]int, error)
}
