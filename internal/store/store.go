package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/eventlens/internal/core/model"
)

var ErrNotFound = errors.New("event not found")

// notFound wraps ErrNotFound with the offending id.
func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// EventStore persists event records. Records handed out are copies; callers
// may modify them freely.
type EventStore interface {
	List(ctx context.Context) ([]*model.EventRecord, error)
	Get(ctx context.Context, id string) (*model.EventRecord, error)
	// Add stores a record with an id that is not yet present.
	Add(ctx context.Context, ev *model.EventRecord) error
	// Replace overwrites the record with the same id.
	Replace(ctx context.Context, ev *model.EventRecord) error
	// Delete removes every listed id. Missing ids are reported after the
	// others are gone.
	Delete(ctx context.Context, ids ...string) error
	Close() error
}

func cloneAll(events []*model.EventRecord) []*model.EventRecord {
	out := make([]*model.EventRecord, len(events))
	for i, ev := range events {
		out[i] = ev.Clone()
	}
	return out
}
