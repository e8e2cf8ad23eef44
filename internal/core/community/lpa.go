package community

import (
	"sort"

	"github.com/agenthands/eventlens/internal/core/model"
)

// LabelPropagationDetector implements community detection using Label Propagation Algorithm (LPA).
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(nodes []model.GraphNode, edges []model.GraphEdge) ([][]model.GraphNode, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	// node -> neighbour -> weight; parallel edges strengthen a tie
	adj := make(map[string]map[string]int)
	nodeMap := make(map[string]model.GraphNode)

	for _, n := range nodes {
		nodeMap[n.ID] = n
		adj[n.ID] = make(map[string]int)
	}

	for _, e := range edges {
		if _, ok := nodeMap[e.Source]; !ok {
			continue
		}
		if _, ok := nodeMap[e.Target]; !ok {
			continue
		}
		adj[e.Source][e.Target]++
		adj[e.Target][e.Source]++
	}

	labels := make(map[string]string)
	order := make([]string, len(nodes))
	for i, n := range nodes {
		labels[n.ID] = n.ID
		order[i] = n.ID
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0

		for _, u := range order {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			counts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				counts[label] += weight
				if counts[label] > maxCount {
					maxCount = counts[label]
				}
			}

			var candidates []string
			for label, count := range counts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}

			// Lexicographically largest label breaks ties deterministically.
			sort.Strings(candidates)
			best := candidates[len(candidates)-1]

			if labels[u] != best {
				labels[u] = best
				changed++
			}
		}

		if changed == 0 {
			break
		}
	}

	clusters := make(map[string][]model.GraphNode)
	var labelOrder []string
	for _, id := range order {
		label := labels[id]
		if _, seen := clusters[label]; !seen {
			labelOrder = append(labelOrder, label)
		}
		clusters[label] = append(clusters[label], nodeMap[id])
	}

	var communities [][]model.GraphNode
	for _, label := range labelOrder {
		if cluster := clusters[label]; len(cluster) >= 2 {
			communities = append(communities, cluster)
		}
	}

	return communities, nil
}
