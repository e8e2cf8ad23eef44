package projection

import (
	"fmt"
	"strings"

	"github.com/agenthands/eventlens/internal/core/model"
)

// fieldGroups is matched in order; the first key contained in the field
// name wins.
var fieldGroups = []struct {
	substr string
	group  string
}{
	{"summary", model.GroupSummary},
	{"people", model.GroupPeople},
	{"infrastructure", model.GroupInfra},
	{"location", model.GroupLocation},
	{"category", model.GroupMeta},
	{"other_details", model.GroupMeta},
}

func FieldGroup(key string) string {
	for _, fg := range fieldGroups {
		if strings.Contains(key, fg.substr) {
			return fg.group
		}
	}
	return model.GroupDefault
}

// Selected projects one event: a root node named after the event type and
// one node per remaining field. With the default label identity two nodes
// whose "key: value" labels coincide share one id.
func Selected(ev *model.EventRecord, layout Layout) *model.Graph {
	g := &model.Graph{
		Mode:  model.ModeSelected,
		Nodes: []model.GraphNode{},
		Links: []model.GraphEdge{},
	}
	if ev == nil {
		return g
	}

	rootID := ev.EventType
	if rootID == "" {
		rootID = layout.RootFallbackName
	}
	g.Nodes = append(g.Nodes, model.GraphNode{
		ID:    rootID,
		Label: rootID,
		Group: model.GroupRoot,
		Val:   2,
		Event: ev,
	})

	i := 0
	for _, f := range ev.Fields() {
		if f.Key == model.FieldID || f.Key == model.FieldEventType {
			continue
		}
		x, y := layout.cell(i, layout.FieldColSpacing, layout.FieldRowSpacing)
		y += layout.FieldRowSpacing
		i++

		label := fmt.Sprintf("%s: %s", f.Key, f.Value.Text())
		id := label
		if layout.FieldIdentity == IdentityField {
			id = "field_" + f.Key
		}
		group := FieldGroup(f.Key)

		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:    id,
			Label: label,
			Group: group,
			Val:   1,
			X:     x,
			Y:     y,
		})
		g.Links = append(g.Links, model.GraphEdge{
			Source: rootID,
			Target: id,
			Group:  group,
		})
	}
	return g
}

// Project dispatches on mode. Selected mode with no event yields an empty
// graph.
func Project(mode model.GraphMode, events []*model.EventRecord, selected *model.EventRecord, layout Layout) *model.Graph {
	if mode == model.ModeSelected {
		return Selected(selected, layout)
	}
	return Global(events, layout)
}
