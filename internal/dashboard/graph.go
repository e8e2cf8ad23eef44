package dashboard

import (
	"sync"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/projection"
	"github.com/agenthands/eventlens/internal/core/viewport"
	"github.com/agenthands/eventlens/internal/render"
)

// GraphPanel draws the event graph locally from the feed's events. Clicking
// an event node selects it and, in selected mode, shows its field graph.
type GraphPanel struct {
	Controller *viewport.Controller
	Renderer   *render.Renderer
	OnSelect   func(*model.EventRecord)

	mu       sync.Mutex
	selected *model.EventRecord
}

func NewGraphPanel(opts viewport.Options, layout projection.Layout) *GraphPanel {
	p := &GraphPanel{
		Controller: viewport.NewController(opts, layout),
		Renderer:   render.NewRenderer(viewport.NewPainter(opts.LabelBudget)),
	}
	p.Controller.OnSelect = p.selectEvent
	return p
}

// selectEvent runs inside Click with mu held.
func (p *GraphPanel) selectEvent(ev *model.EventRecord) {
	p.selected = ev
	p.Controller.Select(ev)
}

// Update replaces the events, keeping the selection when the event still
// exists.
func (p *GraphPanel) Update(snap Snapshot) []viewport.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected != nil {
		var found *model.EventRecord
		for _, ev := range snap.Events {
			if ev.ID == p.selected.ID {
				found = ev
				break
			}
		}
		p.selected = found
		p.Controller.Select(found)
	}
	return p.Controller.SetEvents(snap.Events)
}

func (p *GraphPanel) Click(nodeID string) bool {
	p.mu.Lock()
	ok := p.Controller.Click(nodeID)
	ev := p.selected
	p.mu.Unlock()
	if ok && p.OnSelect != nil {
		p.OnSelect(ev)
	}
	return ok
}

func (p *GraphPanel) SetMode(mode model.GraphMode) []viewport.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Controller.SetMode(mode)
}

func (p *GraphPanel) Resize(width, height float64) []viewport.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Controller.Resize(width, height)
}

func (p *GraphPanel) Selected() *model.EventRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

func (p *GraphPanel) SVG() (string, error) {
	p.mu.Lock()
	view := p.Controller.View()
	p.mu.Unlock()
	return p.Renderer.RenderString(view)
}

func (p *GraphPanel) ZoomIn() viewport.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Controller.ZoomIn()
}

func (p *GraphPanel) ZoomOut() viewport.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Controller.ZoomOut()
}

// Fit re-fits the current graph, the refresh button of the panel.
func (p *GraphPanel) Fit() []viewport.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Controller.Refresh()
}
