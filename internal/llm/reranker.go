package llm

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
)

const rerankDocRunes = 200

const rerankPrompt = `You order disaster events by how well they answer a search.
Search: %s

Events:
%s
List the event numbers from most to least relevant, separated by commas, e.g. 0, 2, 1.
Reply with the numbers only.`

var indexPattern = regexp.MustCompile(`\d+`)

// SimpleLLMReranker asks the generator to order event documents for a
// search query. Any failure keeps the given order.
type SimpleLLMReranker struct {
	LLM LLMClient
}

func NewSimpleLLMReranker(client LLMClient) *SimpleLLMReranker {
	return &SimpleLLMReranker{LLM: client}
}

func (r *SimpleLLMReranker) Rank(ctx context.Context, query string, docs []string) ([]int, error) {
	if len(docs) < 2 {
		return identity(len(docs)), nil
	}

	var sb strings.Builder
	for i, d := range docs {
		if runes := []rune(d); len(runes) > rerankDocRunes {
			d = string(runes[:rerankDocRunes]) + "..."
		}
		fmt.Fprintf(&sb, "[%d] %s\n", i, d)
	}

	resp, err := r.LLM.Generate(ctx, fmt.Sprintf(rerankPrompt, query, sb.String()))
	if err != nil {
		log.Printf("llm: rerank failed, keeping filter order: %v", err)
		return identity(len(docs)), nil
	}
	return CompleteOrder(parseIndices(resp), len(docs)), nil
}

func identity(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// CompleteOrder turns any index list into a permutation of 0..n-1: it drops
// out-of-range and repeated indices and appends the missing ones in their
// original order.
func CompleteOrder(indices []int, n int) []int {
	seen := make([]bool, n)
	out := make([]int, 0, n)
	for _, i := range indices {
		if i < 0 || i >= n || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			out = append(out, i)
		}
	}
	return out
}

func parseIndices(s string) []int {
	var indices []int
	for _, m := range indexPattern.FindAllString(s, -1) {
		if i, err := strconv.Atoi(m); err == nil {
			indices = append(indices, i)
		}
	}
	return indices
}
