// README: Gemini provider via Google's official SDK.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

// DefaultTimeout bounds a single model call when no explicit timeout is
// configured. Past it the call is treated as a connection failure.
const DefaultTimeout = 30 * time.Second

// GeminiClient implements Client using Google's Gemini models.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	name    string
	timeout time.Duration
}

// NewGeminiClient initializes a new Gemini client.
// apiKey should be provided from environment variables. timeout bounds each
// Chat call; zero means DefaultTimeout.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	if model == "" {
		model = defaultGeminiModel
	}
	gm := client.GenerativeModel(model)

	// Force JSON responses; the recovery parser still defends against
	// markdown wrapping in case the model ignores the MIME type.
	gm.ResponseMIMEType = "application/json"
	gm.SetTemperature(0.1)

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiClient{client: client, model: gm, name: model, timeout: timeout}, nil
}

// Close cleans up the Gemini client resources.
func (c *GeminiClient) Close() {
	c.client.Close()
}

func (c *GeminiClient) Model() string { return c.name }

// Chat sends the messages as a single combined prompt and returns the reply text.
// Gemini supports SystemInstruction, but appending the system turn directly keeps
// prompt construction identical across providers, which matters for cache keys.
func (c *GeminiClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var prompt strings.Builder
	for i, m := range req.Messages {
		if i > 0 {
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(m.Content)
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: API returned empty candidates")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok && strings.TrimSpace(string(txt)) != "" {
			parts = append(parts, string(txt))
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("gemini: API returned empty text parts")
	}

	out := &ChatResponse{Content: strings.Join(parts, "\n"), Model: c.name}
	if resp.UsageMetadata != nil {
		out.EvalCount = int(resp.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}

// classifyGeminiError maps SDK errors onto the shared failure categories.
func classifyGeminiError(err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		switch apiErr.Code {
		case 429:
			return fmt.Errorf("%w: %v", ErrQuota, err)
		case 404:
			return fmt.Errorf("%w: %v", ErrModel, err)
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "429"):
		return fmt.Errorf("%w: %v", ErrQuota, err)
	case strings.Contains(msg, "not found") || strings.Contains(msg, "invalid model"):
		return fmt.Errorf("%w: %v", ErrModel, err)
	case strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "connection") ||
		strings.Contains(msg, "unavailable") || strings.Contains(msg, "context canceled"):
		return fmt.Errorf("%w: %v", ErrConnection, err)
	default:
		return fmt.Errorf("gemini: generate content: %w", err)
	}
}
