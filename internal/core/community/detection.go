package community

import (
	"github.com/agenthands/eventlens/internal/core/model"
)

// Detector groups the nodes of a graph into communities. Singletons are
// never reported.
type Detector interface {
	Detect(nodes []model.GraphNode, edges []model.GraphEdge) ([][]model.GraphNode, error)
}

const (
	AlgorithmLPA        = "lpa"
	AlgorithmComponents = "components"
)

// NewDetector picks a detector by name, defaulting to label propagation.
func NewDetector(algorithm string) Detector {
	if algorithm == AlgorithmComponents {
		return &ComponentDetector{}
	}
	return NewLabelPropagationDetector()
}

// ComponentDetector reports connected components.
type ComponentDetector struct{}

func (d *ComponentDetector) Detect(nodes []model.GraphNode, edges []model.GraphEdge) ([][]model.GraphNode, error) {
	nodeMap := make(map[string]model.GraphNode)
	adj := make(map[string][]string)

	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	for _, e := range edges {
		if _, ok := nodeMap[e.Source]; !ok {
			continue
		}
		if _, ok := nodeMap[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[string]bool)
	var communities [][]model.GraphNode

	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		var ids []string
		d.dfs(n.ID, adj, visited, &ids)
		if len(ids) < 2 {
			continue
		}
		community := make([]model.GraphNode, 0, len(ids))
		for _, id := range ids {
			community = append(community, nodeMap[id])
		}
		communities = append(communities, community)
	}

	return communities, nil
}

func (d *ComponentDetector) dfs(u string, adj map[string][]string, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}

// EventClusters counts communities holding at least two event nodes.
func EventClusters(d Detector, g *model.Graph) (int, error) {
	if g.Empty() {
		return 0, nil
	}
	communities, err := d.Detect(g.Nodes, g.Links)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range communities {
		events := 0
		for _, n := range c {
			if n.Group == model.GroupEvent {
				events++
			}
		}
		if events >= 2 {
			count++
		}
	}
	return count, nil
}
