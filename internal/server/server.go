package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/eventlens/internal/core"
	"github.com/agenthands/eventlens/internal/core/filter"
	"github.com/agenthands/eventlens/internal/core/projection"
	"github.com/agenthands/eventlens/internal/core/stats"
	"github.com/agenthands/eventlens/internal/core/viewport"
	"github.com/agenthands/eventlens/internal/llm"
	"github.com/agenthands/eventlens/internal/render"
	"github.com/agenthands/eventlens/internal/store"
)

type Server struct {
	Store      store.EventStore
	Pipeline   *core.Pipeline
	Stats      *stats.Calculator
	Reranker   llm.RerankerClient
	Auth       *Auth
	Metrics    *Metrics
	Layout     projection.Layout
	Viewport   viewport.Options
	Renderer   *render.Renderer
	CORSOrigin []string
}

func NewServer(st store.EventStore, pipeline *core.Pipeline, calc *stats.Calculator, auth *Auth, layout projection.Layout, vp viewport.Options) *Server {
	return &Server{
		Store:    st,
		Pipeline: pipeline,
		Stats:    calc,
		Auth:     auth,
		Metrics:  NewMetrics(),
		Layout:   layout,
		Viewport: vp,
		Renderer: render.NewRenderer(viewport.NewPainter(vp.LabelBudget)),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), s.Metrics.Middleware(), s.cors())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", s.Metrics.Handler())
	r.GET("/graph.svg", s.GraphSVG)

	api := r.Group("/api")
	api.GET("/allEvents", s.AllEvents)
	api.GET("/events/:id", s.GetEvent)
	api.GET("/getEventTypes", s.facetHandler(filter.FacetEventTypes))
	api.GET("/getEventLocations", s.facetHandler(filter.FacetLocations))
	api.GET("/getEventCategories", s.facetHandler(filter.FacetCategories))
	api.GET("/getFilteredEvents", s.FilteredEvents)
	api.POST("/submitTweet", s.SubmitTweet)
	api.GET("/stats", s.GetStats)
	api.GET("/graph", s.Graph)

	api.POST("/admin/login", s.Login)
	admin := api.Group("/admin", s.Auth.Middleware())
	admin.GET("/events", s.AdminEvents)
	admin.PUT("/events/:id", s.UpdateEvent)
	admin.DELETE("/events/:id", s.DeleteEvent)
	admin.POST("/events/merge", s.MergeEvents)
	admin.POST("/events/bulk-delete", s.BulkDelete)

	return r
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && s.allowOrigin(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) allowOrigin(origin string) bool {
	for _, o := range s.CORSOrigin {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// SplitOrigins parses the comma-separated cors_origins setting.
func SplitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
