package extraction

import (
	"strings"
	"testing"
)

func TestBuildPromptDeterministic(t *testing.T) {
	ctx := &Context{
		PreviousQuery: "venues in Berlin",
		UserLocation:  "Hamburg",
		DateContext:   "today is Friday, March 14, 2025",
		Preferences:   map[string]string{"style": "modern", "accessibility": "required", "floor": "ground"},
	}

	first := BuildPrompt("workshop space for 20", ctx)
	for i := 0; i < 20; i++ {
		again := BuildPrompt("workshop space for 20", ctx)
		if len(again) != len(first) {
			t.Fatalf("message count changed: %d vs %d", len(again), len(first))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("prompt not byte-identical on iteration %d:\n%q\nvs\n%q", i, first[j], again[j])
			}
		}
	}
}

func TestBuildPromptRendersContext(t *testing.T) {
	ctx := &Context{
		PreviousQuery: "venues in Berlin",
		UserLocation:  "Hamburg",
		DateContext:   "today is Friday, March 14, 2025",
		Preferences:   map[string]string{"b": "2", "a": "1"},
	}
	messages := BuildPrompt("workshop space for 20", ctx)
	if len(messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(messages))
	}
	if messages[0].Role != "system" || messages[1].Role != "user" {
		t.Fatalf("unexpected roles: %s, %s", messages[0].Role, messages[1].Role)
	}

	user := messages[1].Content
	for _, want := range []string{
		"Current date: today is Friday, March 14, 2025",
		"User location: Hamburg",
		"Previous query: venues in Berlin",
		"Preferences: a=1, b=2", // sorted keys
		"Query: workshop space for 20",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q:\n%s", want, user)
		}
	}
}

func TestBuildPromptWithoutContext(t *testing.T) {
	messages := BuildPrompt("party venue", nil)
	user := messages[1].Content
	if user != "Query: party venue" {
		t.Errorf("bare query should render without context lines, got %q", user)
	}
	if !strings.Contains(messages[0].Content, "JSON Schema") {
		t.Error("system prompt lost its schema section")
	}
}
