package core

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// MockLLM answers by the first marker found in the prompt, falling back to
// Response.
type MockLLM struct {
	Responses map[string]string
	Response  string
	Err       error
	Calls     int
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	for marker, resp := range m.Responses {
		if strings.HasPrefix(prompt, marker) {
			return resp, nil
		}
	}
	return m.Response, nil
}

type MockEmbedder struct {
	Vectors map[string][]float32
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return nil, errors.New("no vector")
}

type MockBus struct {
	mu      sync.Mutex
	Sources []string
}

func (m *MockBus) Refresh(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sources = append(m.Sources, source)
	return 1
}
