package viewport

import (
	"unicode/utf8"

	"github.com/agenthands/eventlens/internal/core/model"
)

const (
	FallbackColor = "#cccccc"
	StrokeColor   = "#000000"
	TextColor     = "#ffffff"
	Ellipsis      = "…"

	baseFontSize = 10.0
	labelPadding = 6.0
	charWidth    = 0.6
)

var NodeColors = map[string]string{
	model.GroupRoot:     "#333333",
	model.GroupEvent:    "#1976d2",
	model.GroupSummary:  "#ffb74d",
	model.GroupPeople:   "#ef5350",
	model.GroupInfra:    "#42a5f5",
	model.GroupLocation: "#66bb6a",
	model.GroupMeta:     "#ba68c8",
	model.GroupDefault:  "#90a4ae",
}

var EdgeColors = map[string]string{
	model.EdgeEventLocation: "#81c784",
	model.GroupSummary:      "#ffa726",
	model.GroupPeople:       "#e57373",
	model.GroupInfra:        "#64b5f6",
	model.GroupLocation:     "#81c784",
	model.GroupMeta:         "#ce93d8",
	model.GroupDefault:      "#b0bec5",
}

func NodeColor(group string) string {
	if c, ok := NodeColors[group]; ok {
		return c
	}
	return FallbackColor
}

func EdgeColor(group string) string {
	if c, ok := EdgeColors[group]; ok {
		return c
	}
	return FallbackColor
}

// Truncate cuts s to budget runes and marks the cut with an ellipsis.
func Truncate(s string, budget int) string {
	if budget <= 0 || utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget]) + Ellipsis
}

// NodeShape is everything needed to draw one node: an ellipse sized to its
// label, filled by group colour, with centred text.
type NodeShape struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	RX        float64 `json:"rx"`
	RY        float64 `json:"ry"`
	FontSize  float64 `json:"font_size"`
	Fill      string  `json:"fill"`
	Stroke    string  `json:"stroke"`
	TextColor string  `json:"text_color"`
}

type EdgeShape struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Color  string  `json:"color"`
}

type Painter struct {
	LabelBudget int
}

func NewPainter(labelBudget int) *Painter {
	return &Painter{LabelBudget: labelBudget}
}

// PaintNode sizes a node for the given zoom scale. Font size shrinks with
// zoom so labels keep a constant on-screen size.
func (p *Painter) PaintNode(n model.GraphNode, scale float64) NodeShape {
	if scale <= 0 {
		scale = 1
	}
	label := n.Label
	if label == "" {
		label = n.ID
	}
	text := Truncate(label, p.LabelBudget)
	fontSize := baseFontSize / scale
	width := float64(utf8.RuneCountInString(text))*fontSize*charWidth + labelPadding*2
	height := fontSize * 2

	return NodeShape{
		ID:        n.ID,
		Text:      text,
		X:         n.X,
		Y:         n.Y,
		RX:        width / 2,
		RY:        height / 2,
		FontSize:  fontSize,
		Fill:      NodeColor(n.Group),
		Stroke:    StrokeColor,
		TextColor: TextColor,
	}
}

// Paint lays out every node and edge of g. Edges to unknown nodes are
// dropped.
func (p *Painter) Paint(g *model.Graph, scale float64) ([]NodeShape, []EdgeShape) {
	if g == nil {
		return nil, nil
	}
	pos := make(map[string]model.GraphNode, len(g.Nodes))
	nodes := make([]NodeShape, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		pos[n.ID] = n
		nodes = append(nodes, p.PaintNode(n, scale))
	}
	edges := make([]EdgeShape, 0, len(g.Links))
	for _, l := range g.Links {
		src, ok1 := pos[l.Source]
		dst, ok2 := pos[l.Target]
		if !ok1 || !ok2 {
			continue
		}
		edges = append(edges, EdgeShape{
			Source: l.Source,
			Target: l.Target,
			X1:     src.X,
			Y1:     src.Y,
			X2:     dst.X,
			Y2:     dst.Y,
			Color:  EdgeColor(l.Group),
		})
	}
	return nodes, edges
}
