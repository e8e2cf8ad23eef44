package extraction

import (
	"context"
	"strings"
)

// MockLLMClient answers with Response, or with the first Responses entry
// whose key appears in the prompt.
type MockLLMClient struct {
	Response  string
	Responses map[string]string
	Err       error
	Prompts   []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	for key, resp := range m.Responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return m.Response, nil
}
