package projection

import (
	"encoding/json"
	"testing"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) *model.EventRecord {
	t.Helper()
	var e model.EventRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	return &e
}

func TestGlobal_Deterministic(t *testing.T) {
	events := []*model.EventRecord{
		decode(t, `{"id":"a","event_type":"fire","locations":"X, Y"}`),
		decode(t, `{"id":"b","event_type":"flood","locations":"Y"}`),
		decode(t, `{"id":"c","event_type":"storm"}`),
	}

	first := Global(events, DefaultLayout())
	second := Global(events, DefaultLayout())
	assert.Equal(t, first, second)

	a, ok := first.Node("a")
	require.True(t, ok)
	assert.Equal(t, -400.0, a.X)
	assert.Equal(t, 0.0, a.Y)

	b, _ := first.Node("b")
	assert.Equal(t, 0.0, b.X)

	c, _ := first.Node("c")
	assert.Equal(t, -400.0, c.X)
	assert.Equal(t, 300.0, c.Y)
}

func TestGlobal_LocationDeduplication(t *testing.T) {
	events := []*model.EventRecord{
		decode(t, `{"id":"1","event_type":"fire","locations":"Springfield"}`),
		decode(t, `{"id":"2","event_type":"flood","locations":" Springfield "}`),
	}

	g := Global(events, DefaultLayout())

	var locs []model.GraphNode
	for _, n := range g.Nodes {
		if n.Group == model.GroupLocation {
			locs = append(locs, n)
		}
	}
	require.Len(t, locs, 1)
	assert.Equal(t, "loc_Springfield", locs[0].ID)

	require.Len(t, g.Links, 2)
	for _, l := range g.Links {
		assert.Equal(t, "loc_Springfield", l.Target)
		assert.Equal(t, model.EdgeEventLocation, l.Group)
	}
	assert.Equal(t, "1", g.Links[0].Source)
	assert.Equal(t, "2", g.Links[1].Source)
}

func TestGlobal_CaseInsensitiveLocations(t *testing.T) {
	events := []*model.EventRecord{
		decode(t, `{"id":"1","locations":"Springfield"}`),
		decode(t, `{"id":"2","locations":"springfield"}`),
	}
	g := Global(events, DefaultLayout())
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, "loc_Springfield", g.Links[1].Target)
}

func TestGlobal_EmptyLocations(t *testing.T) {
	events := []*model.EventRecord{
		decode(t, `{"id":"1","event_type":"fire"}`),
		decode(t, `{"id":"2","event_type":"fire","locations":""}`),
	}

	var g *model.Graph
	assert.NotPanics(t, func() { g = Global(events, DefaultLayout()) })
	assert.Len(t, g.Nodes, 2)
	assert.Empty(t, g.Links)
}

func TestGlobal_LocationSpread(t *testing.T) {
	g := Global([]*model.EventRecord{decode(t, `{"id":"1","locations":"A, B"}`)}, DefaultLayout())

	a, _ := g.Node("loc_A")
	b, _ := g.Node("loc_B")
	assert.Equal(t, -480.0, a.X)
	assert.Equal(t, -320.0, b.X)
	assert.Equal(t, 140.0, a.Y)
}

func TestSelected_FieldCoverage(t *testing.T) {
	ev := decode(t, `{"id":1,"event_type":"flood","category":"weather","summary":"x"}`)

	g := Selected(ev, DefaultLayout())

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "flood", g.Nodes[0].ID)
	assert.Equal(t, model.GroupRoot, g.Nodes[0].Group)
	assert.Equal(t, 0.0, g.Nodes[0].X)
	assert.Equal(t, 0.0, g.Nodes[0].Y)

	assert.Equal(t, "category: weather", g.Nodes[1].ID)
	assert.Equal(t, model.GroupMeta, g.Nodes[1].Group)
	assert.Equal(t, "summary: x", g.Nodes[2].ID)
	assert.Equal(t, model.GroupSummary, g.Nodes[2].Group)

	for _, n := range g.Nodes[1:] {
		assert.NotContains(t, n.ID, "id:")
		assert.NotContains(t, n.ID, "event_type:")
	}
	require.Len(t, g.Links, 2)
	assert.Equal(t, "flood", g.Links[0].Source)
}

func TestSelected_RootFallbackAndNestedValues(t *testing.T) {
	ev := decode(t, `{"id":"9","people_killed":12,"infrastructure_damage":{"bridges":2}}`)

	g := Selected(ev, DefaultLayout())

	assert.Equal(t, "Event", g.Nodes[0].ID)
	assert.Equal(t, "people_killed: 12", g.Nodes[1].Label)
	assert.Equal(t, model.GroupPeople, g.Nodes[1].Group)
	assert.Equal(t, `infrastructure_damage: {"bridges":2}`, g.Nodes[2].Label)
	assert.Equal(t, model.GroupInfra, g.Nodes[2].Group)
}

func TestSelected_FieldIdentity(t *testing.T) {
	layout := DefaultLayout()
	layout.FieldIdentity = IdentityField

	g := Selected(decode(t, `{"event_type":"fire","summary":"x"}`), layout)

	assert.Equal(t, "field_summary", g.Nodes[1].ID)
	assert.Equal(t, "summary: x", g.Nodes[1].Label)
	assert.Equal(t, "field_summary", g.Links[0].Target)
}

func TestSelected_Nil(t *testing.T) {
	assert.True(t, Selected(nil, DefaultLayout()).Empty())
}

func TestFieldGroup(t *testing.T) {
	assert.Equal(t, model.GroupPeople, FieldGroup("people_trapped"))
	assert.Equal(t, model.GroupLocation, FieldGroup("locations"))
	assert.Equal(t, model.GroupMeta, FieldGroup("other_details"))
	assert.Equal(t, model.GroupDefault, FieldGroup("timestamp"))
	assert.Equal(t, model.GroupSummary, FieldGroup("people_summary"))
}
