package summary

import (
	"context"
)

// MockLLMClient answers every prompt with Response and keeps the prompts it
// saw.
type MockLLMClient struct {
	Response string
	Err      error
	Calls    int
	Prompts  []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
