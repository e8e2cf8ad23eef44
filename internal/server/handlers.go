package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/eventlens/internal/core/filter"
	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/llm"
)

var facetEmptyMessages = map[filter.Facet]string{
	filter.FacetEventTypes: "No event types found",
	filter.FacetLocations:  "No locations found",
	filter.FacetCategories: "No categories found",
}

func (s *Server) listEvents(c *gin.Context) ([]*model.EventRecord, bool) {
	events, err := s.Store.List(c.Request.Context())
	if err != nil {
		fail(c, "load events", err)
		return nil, false
	}
	s.Metrics.StoredEvents(len(events))
	return events, true
}

func (s *Server) AllEvents(c *gin.Context) {
	events, ok := s.listEvents(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) GetEvent(c *gin.Context) {
	ev, err := s.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		fail(c, "load event", err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) facetHandler(f filter.Facet) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, ok := s.listEvents(c)
		if !ok {
			return
		}
		values := filter.NewIndex(events).Values(f)
		if len(values) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": facetEmptyMessages[f]})
			return
		}
		c.JSON(http.StatusOK, values)
	}
}

// FilteredEvents applies facet selections given as repeated query
// parameters, an optional text query and, with rank=1, LLM reranking of the
// matches against the query.
func (s *Server) FilteredEvents(c *gin.Context) {
	events, ok := s.listEvents(c)
	if !ok {
		return
	}

	sel := filter.NewSelection()
	sel.Select(filter.FacetEventTypes, c.QueryArray("event_types")...)
	sel.Select(filter.FacetLocations, c.QueryArray("locations")...)
	sel.Select(filter.FacetCategories, c.QueryArray("categories")...)
	sel.Query = strings.TrimSpace(c.Query("q"))

	filtered := sel.Apply(events)
	if len(filtered) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No matching events found"})
		return
	}

	if c.Query("rank") == "1" && sel.Query != "" && s.Reranker != nil {
		filtered = s.rerank(c, sel.Query, filtered)
	}
	c.JSON(http.StatusOK, filtered)
}

func (s *Server) rerank(c *gin.Context, query string, events []*model.EventRecord) []*model.EventRecord {
	docs := make([]string, len(events))
	for i, ev := range events {
		docs[i] = strings.TrimSpace(ev.EventType + ": " + ev.Summary)
	}
	order, err := s.Reranker.Rank(c.Request.Context(), query, docs)
	if err != nil {
		log.Printf("rerank failed, keeping filter order: %v", err)
		return events
	}
	ranked := make([]*model.EventRecord, 0, len(events))
	for _, i := range llm.CompleteOrder(order, len(events)) {
		ranked = append(ranked, events[i])
	}
	return ranked
}

type SubmitTweetRequest struct {
	Tweet string `json:"tweet"`
}

func (s *Server) SubmitTweet(c *gin.Context) {
	var req SubmitTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Tweet) == "" {
		s.Metrics.Submission("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tweet is required"})
		return
	}

	out, err := s.Pipeline.SubmitTweet(c.Request.Context(), req.Tweet)
	if err != nil {
		s.Metrics.Submission("error")
		fail(c, "process tweet", err)
		return
	}

	if out.Result == nil {
		s.Metrics.Submission("non_informative")
	} else {
		s.Metrics.Submission(string(out.Result.Action))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) GetStats(c *gin.Context) {
	events, ok := s.listEvents(c)
	if !ok {
		return
	}
	st, err := s.Stats.Compute(events)
	if err != nil {
		fail(c, "compute stats", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
