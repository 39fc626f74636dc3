// README: Venue search endpoint chaining extraction and Places lookup.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"venuescout/internal/extraction"
	"venuescout/internal/venues"
)

type VenuesHandler struct {
	extract *extraction.Service
	venues  *venues.Service
}

func NewVenuesHandler(extract *extraction.Service, venueSvc *venues.Service) *VenuesHandler {
	return &VenuesHandler{extract: extract, venues: venueSvc}
}

type venueSearchResp struct {
	Extraction *extraction.Result `json:"extraction"`
	Venues     []venues.Venue     `json:"venues"`
}

// Search handles POST /api/venues/search: extract parameters from the query,
// then look up matching venues. A failed lookup still returns the extraction,
// so the caller can refine and retry.
func (h *VenuesHandler) Search(c *gin.Context) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(c, http.StatusBadRequest, "missing query")
		return
	}

	result, err := h.extract.ExtractEntities(c.Request.Context(), req.Query, req.Context)
	if err != nil {
		writeExtractionError(c, err)
		return
	}

	resp := venueSearchResp{Extraction: result}
	if found, err := h.venues.Search(c.Request.Context(), result.Entities); err == nil {
		resp.Venues = found
	}
	writeJSON(c, http.StatusOK, resp)
}
