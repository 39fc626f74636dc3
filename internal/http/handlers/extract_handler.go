// README: Extraction endpoint; thin pass-through to the pipeline.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"venuescout/internal/extraction"
)

type ExtractHandler struct {
	svc *extraction.Service
}

func NewExtractHandler(svc *extraction.Service) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

type extractReq struct {
	Query   string              `json:"query"`
	Context *extraction.Context `json:"context,omitempty"`
}

// Extract handles POST /api/extract.
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}

	result, err := h.svc.ExtractEntities(c.Request.Context(), req.Query, req.Context)
	if err != nil {
		writeExtractionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}
