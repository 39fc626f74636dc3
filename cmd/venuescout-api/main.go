// README: Entry point; loads config, wires the pipeline, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"venuescout/internal/ai"
	"venuescout/internal/cache"
	"venuescout/internal/config"
	"venuescout/internal/extraction"
	httptransport "venuescout/internal/http"
	"venuescout/internal/infra"
	"venuescout/internal/ratelimit"
	"venuescout/internal/usage"
	"venuescout/internal/venues"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newLLMClient(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("llm init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	usageStore := usage.NewStore(dbPool)

	extractionSvc := extraction.NewService(extraction.ServiceDeps{
		Client:  client,
		Cache:   cache.NewRedis(redisClient),
		Limiter: ratelimit.NewRedis(redisClient, cfg.RateLimit.RequestsPerWindow, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second),
		Usage:   usageStore,
		Logger:  logger,
	})

	var venueSvc *venues.Service
	if cfg.Maps.APIKey != "" {
		venueSvc, err = venues.NewService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	}

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Extraction: extractionSvc,
		Venues:     venueSvc,
		Usage:      usageStore,
		Logger:     logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("model", client.Model()))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// newLLMClient selects the provider from config.
func newLLMClient(ctx context.Context, cfg config.AIConfig) (ai.Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch cfg.Provider {
	case "openai":
		return ai.NewOpenAIClient(cfg.OpenAIKey, cfg.Model, "", timeout), nil
	default:
		return ai.NewGeminiClient(ctx, cfg.GeminiKey, cfg.Model, timeout)
	}
}
