package projection

import (
	"strings"

	"github.com/agenthands/eventlens/internal/core/model"
)

// LocationNodeID is the shared id of a location node.
func LocationNodeID(name string) string {
	return "loc_" + name
}

// Global projects every event onto a grid, hanging each event's locations
// below it. Location nodes are shared between events that name the same
// place (compared case-insensitively).
func Global(events []*model.EventRecord, layout Layout) *model.Graph {
	g := &model.Graph{
		Mode:  model.ModeGlobal,
		Nodes: []model.GraphNode{},
		Links: []model.GraphEdge{},
	}

	locByKey := make(map[string]string)
	for i, ev := range events {
		x, y := layout.cell(i, layout.ColSpacing, layout.RowSpacing)

		label := ev.EventType
		if label == "" {
			label = layout.RootFallbackName
		}
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:    ev.ID,
			Label: label,
			Group: model.GroupEvent,
			Val:   2,
			X:     x,
			Y:     y,
			Event: ev,
		})

		locs := ev.LocationList()
		n := len(locs)
		for j, name := range locs {
			key := strings.ToLower(name)
			id, ok := locByKey[key]
			if !ok {
				id = LocationNodeID(name)
				locByKey[key] = id
				g.Nodes = append(g.Nodes, model.GraphNode{
					ID:    id,
					Label: name,
					Group: model.GroupLocation,
					Val:   1,
					X:     x + (float64(j)-float64(n-1)/2)*layout.LocationSpacing,
					Y:     y + layout.LocationOffsetY,
				})
			}
			g.Links = append(g.Links, model.GraphEdge{
				Source: ev.ID,
				Target: id,
				Group:  model.EdgeEventLocation,
			})
		}
	}
	return g
}
