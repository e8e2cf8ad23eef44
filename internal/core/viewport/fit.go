package viewport

import (
	"math"

	"github.com/agenthands/eventlens/internal/core/model"
)

type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// GraphBounds is the bounding box of all pinned coordinates.
func GraphBounds(g *model.Graph) (Bounds, bool) {
	if g.Empty() {
		return Bounds{}, false
	}
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range g.Nodes {
		b.MinX = math.Min(b.MinX, n.X)
		b.MinY = math.Min(b.MinY, n.Y)
		b.MaxX = math.Max(b.MaxX, n.X)
		b.MaxY = math.Max(b.MaxY, n.Y)
	}
	return b, true
}

// FitZoom is the largest zoom that shows b inside a width x height view
// with padding on every side.
func FitZoom(b Bounds, width, height, padding, minZoom, maxZoom float64) float64 {
	availW := width - 2*padding
	availH := height - 2*padding
	if availW <= 0 || availH <= 0 {
		return clamp(1, minZoom, maxZoom)
	}
	bw := math.Max(b.Width(), 1)
	bh := math.Max(b.Height(), 1)
	return clamp(math.Min(availW/bw, availH/bh), minZoom, maxZoom)
}

// BiasedCenter is the centroid of b moved left by bias screen pixels, so
// the graph sits right of panels overlapping the view's left edge.
func BiasedCenter(b Bounds, zoom, bias float64) (float64, float64) {
	cx, cy := b.Center()
	if zoom <= 0 {
		zoom = 1
	}
	return cx - bias/zoom, cy
}

func clamp(v, lo, hi float64) float64 {
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
