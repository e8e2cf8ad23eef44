package render

import (
	"strings"
	"testing"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/projection"
	"github.com/agenthands/eventlens/internal/core/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Global(t *testing.T) {
	c := viewport.NewController(viewport.DefaultOptions(), projection.DefaultLayout())
	c.SetEvents([]*model.EventRecord{
		{ID: "1", EventType: "Flood <big>", Locations: "Dhaka, Sylhet"},
		{ID: "2", EventType: "Fire", Locations: "Dhaka"},
	})

	out, err := NewRenderer(viewport.NewPainter(60)).RenderString(c.View())
	require.NoError(t, err)

	assert.Equal(t, 4, strings.Count(out, "<ellipse"))
	assert.Equal(t, 3, strings.Count(out, "<line"))
	assert.Contains(t, out, `fill="#1976d2"`)
	assert.Contains(t, out, `fill="#66bb6a"`)
	assert.Contains(t, out, "Flood &lt;big&gt;")
	assert.NotContains(t, out, "<big>")
	assert.Contains(t, out, `marker-end="url(#arrow-0)"`)
	assert.Contains(t, out, `data-mode="global"`)
}

func TestRender_Empty(t *testing.T) {
	c := viewport.NewController(viewport.DefaultOptions(), projection.DefaultLayout())
	c.SetMode(model.ModeSelected)

	out, err := NewRenderer(viewport.NewPainter(60)).RenderString(c.View())
	require.NoError(t, err)
	assert.Contains(t, out, viewport.EmptySelectedMessage)
	assert.NotContains(t, out, "<ellipse")
}

func TestTransform(t *testing.T) {
	v := viewport.View{Width: 200, Height: 100, Zoom: 2, CenterX: 10, CenterY: -5}
	assert.Equal(t, "translate(100 50) scale(2) translate(-10 5)", Transform(v))
}
