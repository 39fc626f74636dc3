// README: Usage stats endpoint.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"venuescout/internal/usage"
)

type StatsHandler struct {
	store *usage.Store
}

func NewStatsHandler(store *usage.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Stats handles GET /api/stats: extraction counts for the last 24 hours,
// split by pipeline path.
func (h *StatsHandler) Stats(c *gin.Context) {
	llm, fallback, err := h.store.CountSince(c.Request.Context(), time.Now().Add(-24*time.Hour))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"windowHours": 24,
		"llm":         llm,
		"fallback":    fallback,
	})
}
