package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/eventlens/internal/core/model"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MergeRequest struct {
	EventIDs  []string           `json:"event_ids"`
	MergeData *model.EventRecord `json:"merge_data"`
}

type BulkDeleteRequest struct {
	EventIDs []string `json:"event_ids"`
}

func (s *Server) Login(c *gin.Context) {
	if !s.Auth.Enabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin login is not enabled"})
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}
	tok, err := s.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		fail(c, "log in", err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

func (s *Server) AdminEvents(c *gin.Context) {
	events, ok := s.listEvents(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) UpdateEvent(c *gin.Context) {
	var patch model.EventRecord
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event data"})
		return
	}
	ev, err := s.Pipeline.Update(c.Request.Context(), c.Param("id"), &patch)
	s.Metrics.Mutation("update", err)
	if err != nil {
		fail(c, "update event", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully", "event": ev})
}

func (s *Server) DeleteEvent(c *gin.Context) {
	err := s.Pipeline.Delete(c.Request.Context(), c.Param("id"))
	s.Metrics.Mutation("delete", err)
	if err != nil {
		fail(c, "delete event", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (s *Server) MergeEvents(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid merge request"})
		return
	}
	ev, err := s.Pipeline.Merge(c.Request.Context(), req.EventIDs, req.MergeData)
	s.Metrics.Mutation("merge", err)
	if err != nil {
		fail(c, "merge events", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Events merged successfully", "event": ev})
}

func (s *Server) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delete request"})
		return
	}
	n, err := s.Pipeline.BulkDelete(c.Request.Context(), req.EventIDs)
	s.Metrics.Mutation("bulk_delete", err)
	if err != nil {
		fail(c, "delete events", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d events deleted successfully", n), "deleted": n})
}
