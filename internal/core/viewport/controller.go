package viewport

import (
	"log"
	"time"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/projection"
)

const (
	EmptyGlobalMessage   = "No events available"
	EmptySelectedMessage = "Select an event to view its graph"
)

type Options struct {
	Padding        float64
	FitDuration    time.Duration
	SettleDelay    time.Duration
	ZoomFactor     float64
	ZoomDuration   time.Duration
	HorizontalBias float64
	MinZoom        float64
	MaxZoom        float64
	LabelBudget    int
	Width          float64
	Height         float64
}

func DefaultOptions() Options {
	return Options{
		Padding:        40,
		FitDuration:    400 * time.Millisecond,
		SettleDelay:    300 * time.Millisecond,
		ZoomFactor:     1.2,
		ZoomDuration:   300 * time.Millisecond,
		HorizontalBias: 80,
		MinZoom:        0.05,
		MaxZoom:        8,
		LabelBudget:    60,
		Width:          960,
		Height:         640,
	}
}

type CommandKind string

const (
	CmdFit    CommandKind = "fit"
	CmdCenter CommandKind = "center"
	CmdZoom   CommandKind = "zoom"
)

// Command is an instruction for the drawing surface. Delay is how long to
// wait before applying it, Duration how long to animate it.
type Command struct {
	Kind     CommandKind   `json:"kind"`
	Zoom     float64       `json:"zoom,omitempty"`
	X        float64       `json:"x,omitempty"`
	Y        float64       `json:"y,omitempty"`
	Padding  float64       `json:"padding,omitempty"`
	Delay    time.Duration `json:"delay"`
	Duration time.Duration `json:"duration"`
}

type View struct {
	Mode    model.GraphMode `json:"mode"`
	Graph   *model.Graph    `json:"graph"`
	Empty   bool            `json:"empty"`
	Message string          `json:"message,omitempty"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Zoom    float64         `json:"zoom"`
	CenterX float64         `json:"center_x"`
	CenterY float64         `json:"center_y"`
}

// Controller owns the graph on screen. Every data, size or mode change
// recomputes the graph from scratch and answers with the commands that fit
// and centre it.
type Controller struct {
	Options  Options
	Layout   projection.Layout
	OnSelect func(*model.EventRecord)

	events   []*model.EventRecord
	selected *model.EventRecord
	view     View
}

func NewController(opts Options, layout projection.Layout) *Controller {
	c := &Controller{
		Options: opts,
		Layout:  layout,
		view: View{
			Mode:   model.ModeGlobal,
			Width:  opts.Width,
			Height: opts.Height,
			Zoom:   1,
		},
	}
	c.recompute()
	return c
}

func (c *Controller) View() View {
	return c.view
}

func (c *Controller) Mode() model.GraphMode {
	return c.view.Mode
}

func (c *Controller) SetEvents(events []*model.EventRecord) []Command {
	c.events = events
	if c.view.Mode != model.ModeGlobal {
		return nil
	}
	return c.recompute()
}

func (c *Controller) Select(ev *model.EventRecord) []Command {
	c.selected = ev
	if c.view.Mode != model.ModeSelected {
		return nil
	}
	return c.recompute()
}

func (c *Controller) SetMode(mode model.GraphMode) []Command {
	if mode != model.ModeSelected {
		mode = model.ModeGlobal
	}
	c.view.Mode = mode
	return c.recompute()
}

func (c *Controller) Resize(width, height float64) []Command {
	if width == c.view.Width && height == c.view.Height {
		return nil
	}
	c.view.Width = width
	c.view.Height = height
	return c.fit(0)
}

// Refresh re-fits the current graph without recomputing it.
func (c *Controller) Refresh() []Command {
	return c.fit(0)
}

func (c *Controller) ZoomIn() Command {
	return c.zoomBy(c.Options.ZoomFactor)
}

func (c *Controller) ZoomOut() Command {
	return c.zoomBy(1 / c.Options.ZoomFactor)
}

func (c *Controller) zoomBy(factor float64) Command {
	c.view.Zoom = clamp(c.view.Zoom*factor, c.Options.MinZoom, c.Options.MaxZoom)
	return Command{Kind: CmdZoom, Zoom: c.view.Zoom, Duration: c.Options.ZoomDuration}
}

// Click handles a click on a node. Nodes backed by an event are handed to
// OnSelect; it reports whether that happened.
func (c *Controller) Click(nodeID string) bool {
	if c.view.Graph == nil {
		return false
	}
	n, ok := c.view.Graph.Node(nodeID)
	if !ok {
		return false
	}
	if n.Event == nil {
		log.Printf("viewport: clicked node %q has no event", nodeID)
		return false
	}
	if c.OnSelect != nil {
		c.OnSelect(n.Event)
	}
	return true
}

func (c *Controller) recompute() []Command {
	g := projection.Project(c.view.Mode, c.events, c.selected, c.Layout)
	c.view.Graph = g
	c.view.Empty = g.Empty()
	c.view.Message = ""
	if c.view.Empty {
		c.view.Message = EmptyGlobalMessage
		if c.view.Mode == model.ModeSelected {
			c.view.Message = EmptySelectedMessage
		}
		return nil
	}
	return c.fit(c.Options.SettleDelay)
}

func (c *Controller) fit(delay time.Duration) []Command {
	b, ok := GraphBounds(c.view.Graph)
	if !ok {
		return nil
	}
	zoom := FitZoom(b, c.view.Width, c.view.Height, c.Options.Padding, c.Options.MinZoom, c.Options.MaxZoom)
	cx, cy := BiasedCenter(b, zoom, c.Options.HorizontalBias)
	c.view.Zoom = zoom
	c.view.CenterX = cx
	c.view.CenterY = cy
	return []Command{
		{Kind: CmdFit, Zoom: zoom, Padding: c.Options.Padding, Delay: delay, Duration: c.Options.FitDuration},
		{Kind: CmdCenter, X: cx, Y: cy, Delay: delay, Duration: c.Options.FitDuration},
	}
}
