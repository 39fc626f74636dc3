// README: Unified LLM client contract shared by all providers.
package ai

import "context"

// Message is a single chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the full conversation for one completion call.
type ChatRequest struct {
	Messages []Message
}

// ChatResponse is the provider-agnostic completion result.
type ChatResponse struct {
	// Content is the raw model output, before any recovery parsing.
	Content string

	// Model identifies which model produced the response.
	Model string

	// EvalCount is the provider-reported token/eval count, 0 when unknown.
	EvalCount int
}

// Client defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.)
// without touching the extraction pipeline.
type Client interface {
	// Chat sends the messages and returns the model's text reply.
	// Failures are classified with the sentinel errors in errors.go.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Model returns the configured model identifier.
	Model() string
}
