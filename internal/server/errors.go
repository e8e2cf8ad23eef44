package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/eventlens/internal/core"
	"github.com/agenthands/eventlens/internal/core/extraction"
	"github.com/agenthands/eventlens/internal/store"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, extraction.ErrMissingSummary):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and answers with {error}. Internal errors get the generic
// message, the rest their own text.
func fail(c *gin.Context, what string, err error) {
	status := statusFor(err)
	log.Printf("%s: %v", what, err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Failed to " + what
	}
	c.JSON(status, gin.H{"error": msg})
}
