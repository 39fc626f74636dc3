// README: Extraction orchestrator; the pipeline entry point.
package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"venuescout/internal/ai"
)

const (
	// cacheTTL is how long a completed extraction stays addressable.
	cacheTTL = time.Hour

	// rateLimitKey is the fixed bucket shared by all LLM extractions.
	rateLimitKey = "llm-extraction"

	// fallbackModel marks results produced without the LLM.
	fallbackModel = "pattern-fallback"
)

// htmlTagRe spots embedded markup; queries containing it are rejected.
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// Cache is the narrow contract for the result cache. Implementations must be
// safe for concurrent use and return misses as (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) (*Result, error)
	Set(ctx context.Context, key string, value *Result, ttl time.Duration) error
}

// RateLimiter rejects with an error when the bucket is exhausted. The error
// propagates to the caller untouched; backoff is the caller's problem.
type RateLimiter interface {
	CheckLimit(ctx context.Context, key string) error
}

// UsageRecorder receives one record per completed extraction.
type UsageRecorder interface {
	RecordExtraction(ctx context.Context, sessionID, model string, fallback bool, processingMs int64) error
}

// ServiceDeps wires the orchestrator's collaborators. Cache, Limiter and
// Usage may be nil; the pipeline runs without them.
type ServiceDeps struct {
	Client  ai.Client
	Cache   Cache
	Limiter RateLimiter
	Usage   UsageRecorder
	Logger  *zap.Logger
}

// Service orchestrates prompt construction, the LLM call, response recovery
// and the deterministic fallback. Stateless across calls; safe for
// concurrent use as long as its collaborators are.
type Service struct {
	client  ai.Client
	cache   Cache
	limiter RateLimiter
	usage   UsageRecorder
	log     *zap.Logger

	now       func() time.Time
	sessionID func() string
}

// NewService creates a Service from its dependencies.
func NewService(deps ServiceDeps) *Service {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		client:    deps.Client,
		cache:     deps.Cache,
		limiter:   deps.Limiter,
		usage:     deps.Usage,
		log:       log,
		now:       time.Now,
		sessionID: uuid.NewString,
	}
}

// ExtractEntities runs the full pipeline for one query. It returns an error
// only for invalid input or an exhausted rate limit; every failure on the LLM
// path is logged and silently downgraded to the pattern fallback.
func (s *Service) ExtractEntities(ctx context.Context, query string, qctx *Context) (*Result, error) {
	start := s.now()

	trimmed, err := validateQuery(query)
	if err != nil {
		return nil, err
	}

	key := cacheKey(trimmed, qctx)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("cache lookup failed", zap.Error(err))
		} else if cached != nil {
			// Only the flag changes; the cached entities stay untouched.
			out := *cached
			out.Metadata.FromCache = true
			return &out, nil
		}
	}

	if s.limiter != nil {
		// The one hard error besides invalid input: it reflects the caller's
		// own request volume, not backend unreliability.
		if err := s.limiter.CheckLimit(ctx, rateLimitKey); err != nil {
			return nil, err
		}
	}

	result, err := s.extractWithLLM(ctx, trimmed, qctx, start)
	if err != nil {
		s.log.Warn("llm extraction failed, using pattern fallback",
			zap.String("category", ai.Category(err)),
			zap.Error(err))
		result = s.fallbackResult(trimmed, start)
	} else if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, cacheTTL); err != nil {
			s.log.Warn("cache write failed", zap.Error(err))
		}
	}

	s.recordUsage(ctx, result)
	return result, nil
}

// validateQuery enforces the input preconditions before any I/O happens.
func validateQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < MinQueryLen {
		return "", fmt.Errorf("%w: must be at least %d characters", ErrInvalidQuery, MinQueryLen)
	}
	if len(trimmed) > MaxQueryLen {
		return "", fmt.Errorf("%w: must be at most %d characters", ErrInvalidQuery, MaxQueryLen)
	}
	if htmlTagRe.MatchString(trimmed) {
		return "", fmt.Errorf("%w: markup is not allowed", ErrInvalidQuery)
	}
	return trimmed, nil
}

// cacheKey content-addresses a query plus its context. The context is
// marshalled from a fixed-field struct (and Go sorts map keys), so identical
// contexts always produce identical keys regardless of construction order.
func cacheKey(query string, qctx *Context) string {
	ctxJSON, _ := json.Marshal(qctx)
	return "extract:" + base64.StdEncoding.EncodeToString([]byte(query+string(ctxJSON)))
}

func (s *Service) extractWithLLM(ctx context.Context, query string, qctx *Context, start time.Time) (*Result, error) {
	qc := Context{}
	if qctx != nil {
		qc = *qctx
	}
	if qc.DateContext == "" {
		qc.DateContext = "today is " + s.now().Format("Monday, January 2, 2006")
	}

	resp, err := s.client.Chat(ctx, ai.ChatRequest{Messages: BuildPrompt(query, &qc)})
	if err != nil {
		return nil, err
	}

	parsed, err := parseResponse(resp.Content, s.now())
	if err != nil {
		return nil, err
	}

	suggestions := parsed.Suggestions
	if len(suggestions) == 0 {
		suggestions = generateSuggestions(parsed.Entities, parsed.Confidence)
	}

	done := s.now()
	return &Result{
		SessionID:   s.sessionID(),
		Entities:    parsed.Entities,
		Confidence:  parsed.Confidence,
		Reasoning:   parsed.Reasoning,
		Suggestions: suggestions,
		Metadata: Metadata{
			ProcessingMs: done.Sub(start).Milliseconds(),
			EvalCount:    resp.EvalCount,
			Timestamp:    done,
			Model:        resp.Model,
		},
	}, nil
}

// fallbackResult builds a low-confidence result from pattern matching alone.
// It cannot fail.
func (s *Service) fallbackResult(query string, start time.Time) *Result {
	entities, conf := fallbackExtract(query)
	done := s.now()
	return &Result{
		SessionID:   s.sessionID(),
		Entities:    entities,
		Confidence:  conf,
		Suggestions: generateSuggestions(entities, conf),
		Metadata: Metadata{
			ProcessingMs: done.Sub(start).Milliseconds(),
			Timestamp:    done,
			Model:        fallbackModel,
			Fallback:     true,
		},
	}
}

func (s *Service) recordUsage(ctx context.Context, result *Result) {
	if s.usage == nil {
		return
	}
	err := s.usage.RecordExtraction(ctx, result.SessionID, result.Metadata.Model,
		result.Metadata.Fallback, result.Metadata.ProcessingMs)
	if err != nil {
		s.log.Warn("usage recording failed", zap.Error(err))
	}
}
