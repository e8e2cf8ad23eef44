package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/driver"
)

// MemgraphStore keeps each event as an :Event node holding its JSON
// document, linked to shared :Location nodes.
type MemgraphStore struct {
	Driver driver.GraphDriver

	mu  sync.Mutex
	seq int64
}

func NewMemgraphStore(ctx context.Context, d driver.GraphDriver) (*MemgraphStore, error) {
	if err := d.BuildIndices(ctx); err != nil {
		return nil, fmt.Errorf("failed to build indices: %w", err)
	}
	s := &MemgraphStore{Driver: d}

	res, err := d.ExecuteRead(ctx, driver.MaxSeqQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read event sequence: %w", err)
	}
	if len(res.Records) > 0 {
		v, _ := res.Records[0].Get("seq")
		s.seq = cast.ToInt64(v)
	}
	return s, nil
}

func decodePayloads(res []*recordView) ([]*model.EventRecord, error) {
	events := make([]*model.EventRecord, 0, len(res))
	for _, r := range res {
		var ev model.EventRecord
		if err := json.Unmarshal([]byte(r.payload), &ev); err != nil {
			return nil, fmt.Errorf("failed to decode stored event: %w", err)
		}
		events = append(events, &ev)
	}
	return events, nil
}

type recordView struct {
	payload string
}

func (s *MemgraphStore) query(ctx context.Context, q string, params map[string]interface{}) ([]*recordView, error) {
	res, err := s.Driver.ExecuteRead(ctx, q, params)
	if err != nil {
		return nil, err
	}
	out := make([]*recordView, 0, len(res.Records))
	for _, rec := range res.Records {
		payload, _ := rec.Get("payload")
		out = append(out, &recordView{payload: cast.ToString(payload)})
	}
	return out, nil
}

func (s *MemgraphStore) List(ctx context.Context) ([]*model.EventRecord, error) {
	rows, err := s.query(ctx, driver.ListEventsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return decodePayloads(rows)
}

func (s *MemgraphStore) Get(ctx context.Context, id string) (*model.EventRecord, error) {
	rows, err := s.query(ctx, driver.GetEventQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if len(rows) == 0 {
		return nil, notFound(id)
	}
	events, err := decodePayloads(rows[:1])
	if err != nil {
		return nil, err
	}
	return events[0], nil
}

func (s *MemgraphStore) save(ctx context.Context, ev *model.EventRecord, seq int64) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	params := map[string]interface{}{
		"id":         ev.ID,
		"seq":        seq,
		"payload":    string(payload),
		"event_type": ev.EventType,
		"category":   ev.Category,
		"summary":    ev.Summary,
		"timestamp":  ev.Timestamp,
		"locations":  toInterfaces(ev.LocationList()),
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveEventQuery, params); err != nil {
		return fmt.Errorf("failed to save event %s: %w", ev.ID, err)
	}
	return nil
}

func (s *MemgraphStore) Add(ctx context.Context, ev *model.EventRecord) error {
	if ev.ID == "" {
		return fmt.Errorf("event id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.existing(ctx, []string{ev.ID})
	if err != nil {
		return err
	}
	if existing[ev.ID] {
		return fmt.Errorf("event %s already exists", ev.ID)
	}
	s.seq++
	return s.save(ctx, ev, s.seq)
}

func (s *MemgraphStore) Replace(ctx context.Context, ev *model.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.existing(ctx, []string{ev.ID})
	if err != nil {
		return err
	}
	if !existing[ev.ID] {
		return notFound(ev.ID)
	}
	// seq is only set on create, so the record keeps its position
	if err := s.save(ctx, ev, 0); err != nil {
		return err
	}
	// the save may have dropped the last link to a location
	return s.pruneLocations(ctx)
}

func (s *MemgraphStore) pruneLocations(ctx context.Context) error {
	if _, err := s.Driver.ExecuteQuery(ctx, driver.PruneLocationsQuery, nil); err != nil {
		return fmt.Errorf("failed to prune locations: %w", err)
	}
	return nil
}

func (s *MemgraphStore) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	res, err := s.Driver.ExecuteQuery(ctx, driver.DeleteEventsQuery, map[string]interface{}{"ids": toInterfaces(ids)})
	if err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	deleted := map[string]bool{}
	if len(res.Records) > 0 {
		v, _ := res.Records[0].Get("ids")
		for _, id := range cast.ToStringSlice(v) {
			deleted[id] = true
		}
	}
	if err := s.pruneLocations(ctx); err != nil {
		return err
	}

	var result *multierror.Error
	for _, id := range ids {
		if !deleted[id] {
			result = multierror.Append(result, notFound(id))
		}
	}
	return result.ErrorOrNil()
}

func (s *MemgraphStore) existing(ctx context.Context, ids []string) (map[string]bool, error) {
	res, err := s.Driver.ExecuteRead(ctx, driver.ExistingIDsQuery, map[string]interface{}{"ids": toInterfaces(ids)})
	if err != nil {
		return nil, fmt.Errorf("failed to look up events: %w", err)
	}
	found := map[string]bool{}
	if len(res.Records) > 0 {
		v, _ := res.Records[0].Get("ids")
		for _, id := range cast.ToStringSlice(v) {
			found[id] = true
		}
	}
	return found, nil
}

func (s *MemgraphStore) Close() error {
	return s.Driver.Close(context.Background())
}

func toInterfaces(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
