// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venuescout/internal/extraction"
	"venuescout/internal/http/handlers"
	"venuescout/internal/http/middleware"
	"venuescout/internal/usage"
	"venuescout/internal/venues"
)

// RouterDeps wires the handler layer. Venues and Usage are optional; their
// routes are only registered when configured.
type RouterDeps struct {
	Extraction *extraction.Service
	Venues     *venues.Service
	Usage      *usage.Store
	Logger     *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))

	extractHandler := handlers.NewExtractHandler(deps.Extraction)
	r.POST("/api/extract", extractHandler.Extract)

	if deps.Venues != nil {
		venuesHandler := handlers.NewVenuesHandler(deps.Extraction, deps.Venues)
		r.POST("/api/venues/search", venuesHandler.Search)
	}

	if deps.Usage != nil {
		statsHandler := handlers.NewStatsHandler(deps.Usage)
		r.GET("/api/stats", statsHandler.Stats)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
