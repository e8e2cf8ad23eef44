package community

import (
	"testing"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestComponentDetector(t *testing.T) {
	nodes := []model.GraphNode{
		{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"},
	}
	edges := []model.GraphEdge{
		{Source: "1", Target: "2"},
		{Source: "2", Target: "3"},
		// 4 is isolated
	}

	communities, err := NewDetector(AlgorithmComponents).Detect(nodes, edges)

	assert.NoError(t, err)
	assert.Len(t, communities, 1)
	assert.Len(t, communities[0], 3)

	ids := make(map[string]bool)
	for _, n := range communities[0] {
		ids[n.ID] = true
	}
	assert.True(t, ids["1"])
	assert.True(t, ids["2"])
	assert.True(t, ids["3"])
}

func TestEventClusters(t *testing.T) {
	g := &model.Graph{
		Nodes: []model.GraphNode{
			{ID: "e1", Group: model.GroupEvent},
			{ID: "e2", Group: model.GroupEvent},
			{ID: "e3", Group: model.GroupEvent},
			{ID: "loc_A", Group: model.GroupLocation},
			{ID: "loc_B", Group: model.GroupLocation},
		},
		Links: []model.GraphEdge{
			{Source: "e1", Target: "loc_A"},
			{Source: "e2", Target: "loc_A"},
			{Source: "e3", Target: "loc_B"},
		},
	}

	for _, algo := range []string{AlgorithmLPA, AlgorithmComponents} {
		n, err := EventClusters(NewDetector(algo), g)
		assert.NoError(t, err)
		assert.Equal(t, 1, n, algo)
	}

	n, err := EventClusters(NewDetector(AlgorithmLPA), &model.Graph{})
	assert.NoError(t, err)
	assert.Zero(t, n)
}
