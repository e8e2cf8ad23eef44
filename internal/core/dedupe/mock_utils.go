package dedupe

import (
	"context"
	"errors"
)

// MockEmbedderClient maps texts to fixed vectors.
type MockEmbedderClient struct {
	Vectors map[string][]float32
	Err     error
	Calls   int
}

func (m *MockEmbedderClient) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	v, ok := m.Vectors[text]
	if !ok {
		return nil, errors.New("no vector for text")
	}
	return v, nil
}
