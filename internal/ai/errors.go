// README: Failure categories every provider maps its errors onto.
package ai

import "errors"

// The extraction pipeline treats these categories identically (all funnel
// into the deterministic fallback), but they must stay distinguishable in
// logs, so providers wrap rather than replace them.
var (
	// ErrConnection covers unreachable backends, timeouts and transport failures.
	ErrConnection = errors.New("llm backend unreachable")

	// ErrQuota covers provider-side rate limits and exhausted quotas.
	ErrQuota = errors.New("llm quota exceeded")

	// ErrModel covers unknown or invalid model identifiers.
	ErrModel = errors.New("llm model not found")
)

// Category returns a short log label for a provider error.
func Category(err error) string {
	switch {
	case errors.Is(err, ErrConnection):
		return "connection"
	case errors.Is(err, ErrQuota):
		return "quota"
	case errors.Is(err, ErrModel):
		return "model"
	default:
		return "generic"
	}
}
