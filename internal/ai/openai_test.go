package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newStubServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOpenAIChatSuccess(t *testing.T) {
	srv := newStubServer(http.StatusOK, `{
		"choices": [{"message": {"role": "assistant", "content": "{\"ok\":true}"}}],
		"usage": {"total_tokens": 42}
	}`)
	defer srv.Close()

	client := NewOpenAIClient("key", "test-model", srv.URL, time.Second)
	resp, err := client.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hello"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != `{"ok":true}` {
		t.Errorf("content: %q", resp.Content)
	}
	if resp.EvalCount != 42 {
		t.Errorf("eval count: %d", resp.EvalCount)
	}
	if resp.Model != "test-model" {
		t.Errorf("model: %q", resp.Model)
	}
}

func TestOpenAIChatErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"quota", http.StatusTooManyRequests, `{"error": {"message": "rate limited"}}`, ErrQuota},
		{"model", http.StatusNotFound, `{"error": {"message": "no such model", "code": "model_not_found"}}`, ErrModel},
		{"server down", http.StatusBadGateway, "bad gateway", ErrConnection},
	}
	for _, tc := range cases {
		srv := newStubServer(tc.status, tc.body)
		client := NewOpenAIClient("key", "test-model", srv.URL, time.Second)
		_, err := client.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
		srv.Close()
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestOpenAIChatUnreachable(t *testing.T) {
	srv := newStubServer(http.StatusOK, "{}")
	srv.Close() // nothing listens anymore

	client := NewOpenAIClient("key", "", srv.URL, time.Second)
	_, err := client.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
	if !errors.Is(err, ErrConnection) {
		t.Errorf("got %v, want ErrConnection", err)
	}
}

func TestOpenAIChatEmptyChoices(t *testing.T) {
	srv := newStubServer(http.StatusOK, `{"choices": []}`)
	defer srv.Close()

	client := NewOpenAIClient("key", "", srv.URL, time.Second)
	_, err := client.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
	if err == nil {
		t.Fatal("empty choices should be an error")
	}
}

func TestCategory(t *testing.T) {
	cases := map[error]string{
		ErrConnection:       "connection",
		ErrQuota:            "quota",
		ErrModel:            "model",
		errors.New("weird"): "generic",
	}
	for err, want := range cases {
		if got := Category(err); got != want {
			t.Errorf("Category(%v) = %q, want %q", err, got, want)
		}
	}
}
