package server

import (
	"context"
	"strings"
)

// MockLLM answers by prompt prefix, falling back to Response.
type MockLLM struct {
	Responses map[string]string
	Response  string
	Calls     int
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	for marker, resp := range m.Responses {
		if strings.HasPrefix(prompt, marker) {
			return resp, nil
		}
	}
	return m.Response, nil
}

type MockReranker struct {
	Order []int
	Query string
}

func (m *MockReranker) Rank(ctx context.Context, query string, docs []string) ([]int, error) {
	m.Query = query
	return m.Order, nil
}
