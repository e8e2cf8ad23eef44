package dashboard

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/agenthands/eventlens/internal/client"
	"github.com/agenthands/eventlens/internal/core/model"
)

type MockAPI struct {
	Events    []*model.EventRecord
	StatsResp *model.Stats
	Submit    *client.SubmitResponse
	Err       error
	// Block, when set, holds SubmitTweet until it is closed.
	Block chan struct{}

	SubmitCalls atomic.Int32
	ListCalls   atomic.Int32

	mu       sync.Mutex
	Mutation []string
}

func (m *MockAPI) record(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mutation = append(m.Mutation, s)
}

func (m *MockAPI) AllEvents(ctx context.Context) ([]*model.EventRecord, error) {
	m.ListCalls.Add(1)
	return m.Events, m.Err
}

func (m *MockAPI) Stats(ctx context.Context) (*model.Stats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.StatsResp, nil
}

func (m *MockAPI) SubmitTweet(ctx context.Context, tweet string) (*client.SubmitResponse, error) {
	m.SubmitCalls.Add(1)
	if m.Block != nil {
		<-m.Block
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Submit, nil
}

func (m *MockAPI) AdminEvents(ctx context.Context) ([]*model.EventRecord, error) {
	return m.Events, m.Err
}

func (m *MockAPI) UpdateEvent(ctx context.Context, id string, patch *model.EventRecord) (*client.MutationResponse, error) {
	m.record("update " + id)
	if m.Err != nil {
		return nil, m.Err
	}
	return &client.MutationResponse{Message: "Event updated successfully"}, nil
}

func (m *MockAPI) DeleteEvent(ctx context.Context, id string) (*client.MutationResponse, error) {
	m.record("delete " + id)
	if m.Err != nil {
		return nil, m.Err
	}
	return &client.MutationResponse{Message: "Event deleted successfully"}, nil
}

func (m *MockAPI) MergeEvents(ctx context.Context, ids []string, mergeData *model.EventRecord) (*client.MutationResponse, error) {
	m.record("merge")
	if m.Err != nil {
		return nil, m.Err
	}
	return &client.MutationResponse{Message: "Events merged successfully"}, nil
}

func (m *MockAPI) BulkDelete(ctx context.Context, ids []string) (*client.MutationResponse, error) {
	m.record("bulk")
	if m.Err != nil {
		return nil, m.Err
	}
	return &client.MutationResponse{Message: "deleted", Deleted: len(ids)}, nil
}

type MockNotifier struct {
	mu     sync.Mutex
	Infos  []string
	Errors []string
}

func (m *MockNotifier) Info(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Infos = append(m.Infos, msg)
}

func (m *MockNotifier) Error(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, msg)
}

func (m *MockNotifier) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Errors)
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
