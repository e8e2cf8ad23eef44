package filter

import (
	"testing"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func sample() []*model.EventRecord {
	return []*model.EventRecord{
		{ID: "1", EventType: "fire", Locations: "A", Category: "c1"},
		{ID: "2", EventType: "flood", Locations: "B", Category: "c1"},
	}
}

func ids(events []*model.EventRecord) []string {
	out := []string{}
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestNewIndex(t *testing.T) {
	events := append(sample(), &model.EventRecord{ID: "3", EventType: "fire", Locations: " B , C,", Category: "c2"})

	idx := NewIndex(events)

	assert.Equal(t, []string{"fire", "flood"}, idx.EventTypes)
	assert.Equal(t, []string{"A", "B", "C"}, idx.Locations)
	assert.Equal(t, []string{"c1", "c2"}, idx.Categories)
	assert.Equal(t, idx.Locations, idx.Values(FacetLocations))
}

func TestSelection_Conjunction(t *testing.T) {
	events := sample()
	s := NewSelection()

	s.Select(FacetEventTypes, "fire")
	assert.Equal(t, []string{"1"}, ids(s.Apply(events)))

	s.Select(FacetCategories, "c1")
	assert.Equal(t, []string{"1"}, ids(s.Apply(events)))

	s.ClearAll()
	s.Select(FacetEventTypes, "fire", "flood")
	assert.Equal(t, []string{"1", "2"}, ids(s.Apply(events)))
}

func TestSelection_QueryAndFacet(t *testing.T) {
	s := NewSelection()
	s.Select(FacetEventTypes, "flood")
	s.Query = "A"

	assert.Empty(t, s.Apply(sample()))
}

func TestSelection_QueryCaseInsensitive(t *testing.T) {
	s := NewSelection()
	s.Query = "FLO"
	assert.Equal(t, []string{"2"}, ids(s.Apply(sample())))
}

func TestSelection_LocationAnyMatch(t *testing.T) {
	events := []*model.EventRecord{{ID: "1", Locations: "X, Y"}, {ID: "2", Locations: "Z"}}
	s := NewSelection()
	s.Select(FacetLocations, "Y")
	assert.Equal(t, []string{"1"}, ids(s.Apply(events)))
}

func TestSelection_ClearAllIdempotent(t *testing.T) {
	s := NewSelection()
	assert.Equal(t, 0, s.ActiveCount())

	s.ClearAll()

	assert.Equal(t, 0, s.ActiveCount())
	assert.Equal(t, "", s.Query)
	for _, f := range Facets {
		assert.Empty(t, s.Selected(f))
	}
}

func TestSelection_ToggleAndCount(t *testing.T) {
	s := NewSelection()
	s.Toggle(FacetEventTypes, "fire")
	s.Toggle(FacetLocations, "A")
	s.Query = "x"
	assert.Equal(t, 3, s.ActiveCount())

	s.Toggle(FacetEventTypes, "fire")
	assert.False(t, s.Has(FacetEventTypes, "fire"))
	assert.Equal(t, 2, s.ActiveCount())

	s.ClearAll()
	assert.Equal(t, 0, s.ActiveCount())
}
