// README: OpenAI provider over the chat completions HTTP API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIClient implements Client against the OpenAI chat completions endpoint.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	name    string
	http    *http.Client
}

// NewOpenAIClient returns a client for the given key and model.
// baseURL may be empty; it is overridable so tests can point at a local
// server. timeout bounds each call; zero means DefaultTimeout.
func NewOpenAIClient(apiKey, model, baseURL string, timeout time.Duration) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		name:    model,
		// The timeout guards against stalled connections while context
		// cancellation is still honoured via NewRequestWithContext.
		http: &http.Client{Timeout: timeout},
	}
}

func (c *OpenAIClient) Model() string { return c.name }

type openAIRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Chat sends the messages to the chat completions endpoint and returns the reply.
func (c *OpenAIClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	reqBody, err := json.Marshal(openAIRequest{Model: c.name, Messages: req.Messages})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrConnection, err)
	}

	if err := classifyOpenAIStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	var or openAIResponse
	if err := json.Unmarshal(body, &or); err != nil {
		return nil, fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if or.Error != nil {
		return nil, fmt.Errorf("openai: api error: %s", or.Error.Message)
	}
	if len(or.Choices) == 0 {
		return nil, fmt.Errorf("openai: API returned empty choices array")
	}

	return &ChatResponse{
		Content:   or.Choices[0].Message.Content,
		Model:     c.name,
		EvalCount: or.Usage.TotalTokens,
	}, nil
}

// classifyOpenAIStatus maps non-2xx statuses onto the shared failure categories.
func classifyOpenAIStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrQuota, status)
	case status == http.StatusNotFound || bytes.Contains(body, []byte("model_not_found")):
		return fmt.Errorf("%w: status %d", ErrModel, status)
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrConnection, status)
	default:
		return fmt.Errorf("openai: unexpected status %d: %s", status, bytes.TrimSpace(body))
	}
}
