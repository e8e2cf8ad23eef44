package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/viewport"
)

type GraphResponse struct {
	View     viewport.View        `json:"view"`
	Nodes    []viewport.NodeShape `json:"nodes"`
	Edges    []viewport.EdgeShape `json:"edges"`
	Commands []viewport.Command   `json:"commands"`
}

// buildView runs a fresh controller over the stored events. Query params:
// mode (global|selected), id (the selected event), width and height.
func (s *Server) buildView(c *gin.Context) (*viewport.Controller, []viewport.Command, bool) {
	events, ok := s.listEvents(c)
	if !ok {
		return nil, nil, false
	}

	ctrl := viewport.NewController(s.Viewport, s.Layout)
	ctrl.SetEvents(events)

	if id := c.Query("id"); id != "" {
		ev, err := s.Store.Get(c.Request.Context(), id)
		if err != nil {
			if statusFor(err) == http.StatusNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
				return nil, nil, false
			}
			fail(c, "load event", err)
			return nil, nil, false
		}
		ctrl.Select(ev)
	}

	width := cast.ToFloat64(c.Query("width"))
	height := cast.ToFloat64(c.Query("height"))
	if width > 0 && height > 0 {
		ctrl.Resize(width, height)
	}

	var cmds []viewport.Command
	mode := model.GraphMode(c.DefaultQuery("mode", string(model.ModeGlobal)))
	if mode != ctrl.Mode() {
		cmds = ctrl.SetMode(mode)
	} else {
		cmds = ctrl.Refresh()
	}
	return ctrl, cmds, true
}

func (s *Server) Graph(c *gin.Context) {
	ctrl, cmds, ok := s.buildView(c)
	if !ok {
		return
	}
	view := ctrl.View()
	nodes, edges := s.Renderer.Painter.Paint(view.Graph, view.Zoom)
	c.JSON(http.StatusOK, GraphResponse{
		View:     view,
		Nodes:    nodes,
		Edges:    edges,
		Commands: cmds,
	})
}

func (s *Server) GraphSVG(c *gin.Context) {
	ctrl, _, ok := s.buildView(c)
	if !ok {
		return
	}
	svg, err := s.Renderer.RenderString(ctrl.View())
	if err != nil {
		fail(c, "render graph", err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(svg))
}
