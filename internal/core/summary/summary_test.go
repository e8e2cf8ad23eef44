package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agenthands/eventlens/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSummaries(t *testing.T) {
	mockLLM := &MockLLMClient{
		Response: `{"summary": "Flooding in Dhaka killed 12 and cut power."}`,
	}
	summarizer := NewSummarizer(mockLLM, config.SummaryPrompts{Merge: "merge %s"})

	merged, err := summarizer.MergeSummaries(context.Background(), []string{
		"Flooding in Dhaka killed 12.",
		"Power is out across Dhaka.",
	})

	require.NoError(t, err)
	assert.Equal(t, "Flooding in Dhaka killed 12 and cut power.", merged)
	assert.Equal(t, 1, mockLLM.Calls)
}

func TestMergeSummaries_Trivial(t *testing.T) {
	mockLLM := &MockLLMClient{}
	summarizer := NewSummarizer(mockLLM, config.SummaryPrompts{Merge: "merge %s"})

	merged, err := summarizer.MergeSummaries(context.Background(), []string{"", "only one", "  "})
	require.NoError(t, err)
	assert.Equal(t, "only one", merged)
	assert.Zero(t, mockLLM.Calls)

	merged, err = NewSummarizer(nil, config.SummaryPrompts{}).MergeSummaries(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a b", merged)
}

func TestMergeSummaries_PlainTextReply(t *testing.T) {
	mockLLM := &MockLLMClient{Response: "  A combined summary.  "}
	summarizer := NewSummarizer(mockLLM, config.SummaryPrompts{Merge: "merge %s"})

	merged, err := summarizer.MergeSummaries(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "A combined summary.", merged)
}

func TestMergeSummaries_Chunked(t *testing.T) {
	mockLLM := &MockLLMClient{Response: `{"summary": "part"}`}
	summarizer := NewSummarizer(mockLLM, config.SummaryPrompts{Merge: "merge %s"})

	var in []string
	for i := 0; i < ChunkSize*2+1; i++ {
		in = append(in, fmt.Sprintf("s%d", i))
	}

	merged, err := summarizer.MergeSummaries(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "part", merged)
	// two full chunks, the single leftover needs no call, then the final merge
	assert.Equal(t, 3, mockLLM.Calls)
}

func TestMergeSummaries_Error(t *testing.T) {
	mockLLM := &MockLLMClient{Err: errors.New("down")}
	summarizer := NewSummarizer(mockLLM, config.SummaryPrompts{Merge: "merge %s"})

	_, err := summarizer.MergeSummaries(context.Background(), []string{"a", "b"})
	assert.ErrorContains(t, err, "down")
}
