// README: Shared handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuescout/internal/extraction"
	"venuescout/internal/ratelimit"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeExtractionError maps the two caller-visible failure classes; anything
// else is an internal error (the pipeline itself never leaks LLM failures).
func writeExtractionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extraction.ErrInvalidQuery):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ratelimit.ErrLimitExceeded):
		writeError(c, http.StatusTooManyRequests, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
