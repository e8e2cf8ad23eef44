package viewport

import (
	"strings"
	"testing"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func events() []*model.EventRecord {
	return []*model.EventRecord{
		{ID: "1", EventType: "fire", Locations: "A"},
		{ID: "2", EventType: "flood", Locations: "B"},
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 2))
	assert.Equal(t, "ñá…", Truncate("ñáé", 2))
}

func TestPaintNode(t *testing.T) {
	p := NewPainter(60)

	shape := p.PaintNode(model.GraphNode{ID: "n", Label: strings.Repeat("x", 80), Group: model.GroupPeople}, 1)

	assert.Equal(t, 61, len([]rune(shape.Text)))
	assert.Equal(t, "#ef5350", shape.Fill)
	assert.Equal(t, StrokeColor, shape.Stroke)
	assert.Equal(t, 10.0, shape.FontSize)
	assert.InDelta(t, (61*10*0.6+12)/2, shape.RX, 1e-9)
	assert.Equal(t, 10.0, shape.RY)

	unknown := p.PaintNode(model.GraphNode{ID: "u", Group: "mystery"}, 2)
	assert.Equal(t, FallbackColor, unknown.Fill)
	assert.Equal(t, 5.0, unknown.FontSize)
	assert.Equal(t, "u", unknown.Text)
}

func TestPaint_DropsDanglingEdges(t *testing.T) {
	g := &model.Graph{
		Nodes: []model.GraphNode{{ID: "a"}, {ID: "b", X: 10}},
		Links: []model.GraphEdge{{Source: "a", Target: "b", Group: model.EdgeEventLocation}, {Source: "a", Target: "zz"}},
	}
	nodes, edges := NewPainter(60).Paint(g, 1)
	assert.Len(t, nodes, 2)
	require.Len(t, edges, 1)
	assert.Equal(t, "#81c784", edges[0].Color)
	assert.Equal(t, 10.0, edges[0].X2)
}

func TestFitZoom(t *testing.T) {
	b := Bounds{MinX: -100, MinY: 0, MaxX: 100, MaxY: 100}
	assert.InDelta(t, 2.0, FitZoom(b, 480, 1000, 40, 0.05, 8), 1e-9)
	assert.Equal(t, 8.0, FitZoom(Bounds{}, 1000, 1000, 40, 0.05, 8))
	assert.Equal(t, 1.0, FitZoom(b, 10, 10, 40, 0.05, 8))
}

func TestBiasedCenter(t *testing.T) {
	x, y := BiasedCenter(Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}, 2, 80)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 25.0, y)
}

func TestController_FitsOnDataChange(t *testing.T) {
	c := NewController(DefaultOptions(), projection.DefaultLayout())
	assert.True(t, c.View().Empty)
	assert.Equal(t, EmptyGlobalMessage, c.View().Message)

	cmds := c.SetEvents(events())

	require.Len(t, cmds, 2)
	assert.Equal(t, CmdFit, cmds[0].Kind)
	assert.Equal(t, CmdCenter, cmds[1].Kind)
	assert.Equal(t, DefaultOptions().SettleDelay, cmds[0].Delay)
	assert.Equal(t, DefaultOptions().FitDuration, cmds[0].Duration)
	assert.False(t, c.View().Empty)
	assert.Equal(t, cmds[0].Zoom, c.View().Zoom)
}

func TestController_ResizeAndRefresh(t *testing.T) {
	c := NewController(DefaultOptions(), projection.DefaultLayout())
	c.SetEvents(events())
	before := c.View().Zoom

	cmds := c.Resize(1920, 1280)
	require.Len(t, cmds, 2)
	assert.Zero(t, cmds[0].Delay)
	assert.Greater(t, c.View().Zoom, before)

	assert.Nil(t, c.Resize(1920, 1280))
	assert.Len(t, c.Refresh(), 2)
}

func TestController_Zoom(t *testing.T) {
	c := NewController(DefaultOptions(), projection.DefaultLayout())
	c.SetEvents(events())
	z := c.View().Zoom
	nodesBefore := append([]model.GraphNode(nil), c.View().Graph.Nodes...)

	in := c.ZoomIn()
	assert.Equal(t, CmdZoom, in.Kind)
	assert.InDelta(t, z*1.2, in.Zoom, 1e-9)
	out := c.ZoomOut()
	assert.InDelta(t, z, out.Zoom, 1e-9)
	assert.Equal(t, nodesBefore, c.View().Graph.Nodes)
}

func TestController_ModeToggleAndSelection(t *testing.T) {
	c := NewController(DefaultOptions(), projection.DefaultLayout())
	c.SetEvents(events())

	assert.Nil(t, c.SetMode(model.ModeSelected))
	assert.True(t, c.View().Empty)
	assert.Equal(t, EmptySelectedMessage, c.View().Message)

	cmds := c.Select(events()[0])
	assert.Len(t, cmds, 2)
	assert.Equal(t, "fire", c.View().Graph.Nodes[0].ID)

	c.SetMode(model.ModeGlobal)
	assert.Equal(t, model.ModeGlobal, c.View().Graph.Mode)
}

func TestController_Click(t *testing.T) {
	c := NewController(DefaultOptions(), projection.DefaultLayout())
	var picked *model.EventRecord
	c.OnSelect = func(e *model.EventRecord) { picked = e }
	c.SetEvents(events())

	assert.False(t, c.Click("loc_A"))
	assert.Nil(t, picked)
	assert.False(t, c.Click("missing"))

	assert.True(t, c.Click("2"))
	require.NotNil(t, picked)
	assert.Equal(t, "flood", picked.EventType)
}
