package dashboard

import (
	"context"
	"fmt"

	"github.com/agenthands/eventlens/internal/core/filter"
	"github.com/agenthands/eventlens/internal/core/model"
)

// Admin is the curation console: search over the admin listing plus the
// edit, delete, merge and bulk delete mutations. Every successful mutation
// publishes a refresh.
type Admin struct {
	API      API
	Bus      Publisher
	Notifier Notifier

	guard Guard
}

func NewAdmin(api API, b Publisher, notifier Notifier) *Admin {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Admin{API: api, Bus: b, Notifier: notifier}
}

func (a *Admin) Loading() bool {
	return a.guard.Busy()
}

// Search lists events matching query in event type, locations or category.
// An empty query lists everything.
func (a *Admin) Search(ctx context.Context, query string) ([]*model.EventRecord, error) {
	events, err := a.API.AdminEvents(ctx)
	if err != nil {
		a.Notifier.Error(errorMessage("Failed to fetch events", err))
		return nil, err
	}
	sel := filter.NewSelection()
	sel.Query = query
	return sel.Apply(events), nil
}

func (a *Admin) mutate(what, source string, fn func() (string, error)) error {
	return a.guard.Do(func() error {
		msg, err := fn()
		if err != nil {
			a.Notifier.Error(errorMessage("Failed to "+what, err))
			return err
		}
		a.Notifier.Info(msg)
		if a.Bus != nil {
			a.Bus.Refresh(source)
		}
		return nil
	})
}

func (a *Admin) Update(ctx context.Context, id string, patch *model.EventRecord) error {
	return a.mutate("update event", "adminUpdate", func() (string, error) {
		resp, err := a.API.UpdateEvent(ctx, id, patch)
		if err != nil {
			return "", err
		}
		return resp.Message, nil
	})
}

func (a *Admin) Delete(ctx context.Context, id string) error {
	return a.mutate("delete event", "adminDelete", func() (string, error) {
		resp, err := a.API.DeleteEvent(ctx, id)
		if err != nil {
			return "", err
		}
		return resp.Message, nil
	})
}

// Merge needs at least two selected events; the check happens before any
// request.
func (a *Admin) Merge(ctx context.Context, ids []string, mergeData *model.EventRecord) error {
	if len(ids) < 2 {
		a.Notifier.Error("Select at least two events to merge")
		return fmt.Errorf("merge needs at least two events, got %d", len(ids))
	}
	return a.mutate("merge events", "adminMerge", func() (string, error) {
		resp, err := a.API.MergeEvents(ctx, ids, mergeData)
		if err != nil {
			return "", err
		}
		return resp.Message, nil
	})
}

func (a *Admin) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		a.Notifier.Error("No events selected")
		return fmt.Errorf("no events selected")
	}
	return a.mutate("delete events", "adminBulkDelete", func() (string, error) {
		resp, err := a.API.BulkDelete(ctx, ids)
		if err != nil {
			return "", err
		}
		return resp.Message, nil
	})
}
