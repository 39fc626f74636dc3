// README: Data model for the entity extraction pipeline.
package extraction

import (
	"errors"
	"time"
)

// Query bounds enforced before any collaborator is touched.
const (
	MinQueryLen = 3
	MaxQueryLen = 2000
)

// MaxAmenities caps the amenity list after deduplication.
const MaxAmenities = 10

// ErrInvalidQuery signals a precondition violation on the input query.
// It is the only extraction-owned error that reaches the caller; everything
// on the LLM path degrades to the pattern fallback instead.
var ErrInvalidQuery = errors.New("invalid query")

// Context carries optional conversational context for one extraction call.
// It is never persisted beyond the request.
type Context struct {
	PreviousQuery string            `json:"previousQuery,omitempty"`
	UserLocation  string            `json:"userLocation,omitempty"`
	DateContext   string            `json:"dateContext,omitempty"`
	Preferences   map[string]string `json:"userPreferences,omitempty"`
}

// Budget is kept only when at least one of Min/Max is a positive number.
type Budget struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// Entities is the canonical extraction output shape.
// Nil means "not found"; present values are already normalized.
type Entities struct {
	Location  *string    `json:"location"`
	Date      *time.Time `json:"date"`
	Capacity  *int       `json:"capacity"`
	EventType *string    `json:"eventType"`
	Duration  *float64   `json:"duration"`
	Budget    *Budget    `json:"budget"`
	Amenities []string   `json:"amenities"`
}

// Confidence holds per-field and overall certainty, each in [0,1].
type Confidence struct {
	Overall   float64 `json:"overall"`
	Location  float64 `json:"location"`
	Date      float64 `json:"date"`
	Capacity  float64 `json:"capacity"`
	EventType float64 `json:"eventType"`
}

// Metadata describes how a result was produced.
type Metadata struct {
	ProcessingMs int64     `json:"processingTimeMs"`
	EvalCount    int       `json:"evalCount,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Model        string    `json:"model"`
	FromCache    bool      `json:"fromCache"`
	Fallback     bool      `json:"fallback"`
}

// Result is the unit returned to the caller and written to cache.
type Result struct {
	SessionID   string     `json:"sessionId"`
	Entities    Entities   `json:"entities"`
	Confidence  Confidence `json:"confidence"`
	Reasoning   string     `json:"reasoning,omitempty"`
	Suggestions []string   `json:"suggestions"`
	Metadata    Metadata   `json:"metadata"`
}
