package store

import (
	"context"
	"errors"
	"testing"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/driver"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemgraphStore_List(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.MaxSeqQuery: records("seq", int64(4)),
		driver.ListEventsQuery: records("payload",
			`{"id":"1","event_type":"Flood","locations":"Dhaka","zeta":1}`,
			`{"id":"2","event_type":"Fire"}`,
		),
	}}
	s, err := NewMemgraphStore(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, d.Indexed)
	assert.Equal(t, int64(4), s.seq)

	events, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Flood", events[0].EventType)
	assert.Equal(t, "zeta", events[0].Fields()[3].Key)
}

func TestMemgraphStore_Add(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.ExistingIDsQuery: records("ids", []interface{}{}),
	}}
	s, err := NewMemgraphStore(context.Background(), d)
	require.NoError(t, err)

	ev := &model.EventRecord{ID: "n1", EventType: "Flood", Locations: "Dhaka, Sylhet, dhaka", Summary: "s"}
	require.NoError(t, s.Add(context.Background(), ev))

	save := d.last(driver.SaveEventQuery)
	require.NotNil(t, save)
	assert.Equal(t, "n1", save.Params["id"])
	assert.Equal(t, int64(1), save.Params["seq"])
	assert.Equal(t, []interface{}{"Dhaka", "Sylhet"}, save.Params["locations"])
	assert.Contains(t, save.Params["payload"], `"event_type":"Flood"`)
}

func TestMemgraphStore_AddDuplicate(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.ExistingIDsQuery: records("ids", []interface{}{"n1"}),
	}}
	s, err := NewMemgraphStore(context.Background(), d)
	require.NoError(t, err)

	err = s.Add(context.Background(), &model.EventRecord{ID: "n1"})
	assert.Error(t, err)
	assert.Nil(t, d.last(driver.SaveEventQuery))
}

func TestMemgraphStore_GetAndReplaceMissing(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{}}
	s, err := NewMemgraphStore(context.Background(), d)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "zz")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Replace(context.Background(), &model.EventRecord{ID: "zz"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemgraphStore_ReplacePrunesLocations(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.ExistingIDsQuery: records("ids", []interface{}{"n1"}),
	}}
	s, err := NewMemgraphStore(context.Background(), d)
	require.NoError(t, err)

	ev := &model.EventRecord{ID: "n1", EventType: "Flood", Locations: "Khulna", Summary: "moved"}
	require.NoError(t, s.Replace(context.Background(), ev))

	save := d.last(driver.SaveEventQuery)
	require.NotNil(t, save)
	assert.Equal(t, int64(0), save.Params["seq"])
	assert.Equal(t, []interface{}{"Khulna"}, save.Params["locations"])

	saveAt, pruneAt := -1, -1
	for i, q := range d.Executed {
		switch q.Query {
		case driver.SaveEventQuery:
			saveAt = i
		case driver.PruneLocationsQuery:
			pruneAt = i
		}
	}
	require.NotEqual(t, -1, pruneAt, "orphaned locations must be pruned")
	assert.Greater(t, pruneAt, saveAt)
}

func TestMemgraphStore_Delete(t *testing.T) {
	d := &MockDriver{Results: map[string]neo4j.EagerResult{
		driver.DeleteEventsQuery: records("ids", []interface{}{"a"}),
	}}
	s, err := NewMemgraphStore(context.Background(), d)
	require.NoError(t, err)

	err = s.Delete(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "b")
	assert.NotNil(t, d.last(driver.PruneLocationsQuery))
}

func TestMemgraphStore_DriverError(t *testing.T) {
	d := &MockDriver{Err: errors.New("connection refused")}
	_, err := NewMemgraphStore(context.Background(), d)
	assert.ErrorContains(t, err, "connection refused")
}
