package model

type GraphMode string

const (
	ModeGlobal   GraphMode = "global"
	ModeSelected GraphMode = "selected"
)

// Node groups. Field groups of the selected view share the same namespace.
const (
	GroupRoot     = "root"
	GroupEvent    = "event"
	GroupLocation = "location"
	GroupSummary  = "summary"
	GroupPeople   = "people"
	GroupInfra    = "infra"
	GroupMeta     = "meta"
	GroupDefault  = "default"

	EdgeEventLocation = "event-location"
)

type GraphNode struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Group string       `json:"group"`
	Val   float64      `json:"val"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Event *EventRecord `json:"event,omitempty"`
}

type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Group  string `json:"group"`
}

type Graph struct {
	Mode  GraphMode   `json:"mode"`
	Nodes []GraphNode `json:"nodes"`
	Links []GraphEdge `json:"links"`
}

func (g *Graph) Empty() bool {
	return g == nil || len(g.Nodes) == 0
}

// Node looks a node up by id.
func (g *Graph) Node(id string) (*GraphNode, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}
