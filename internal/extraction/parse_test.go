package extraction

import (
	"strings"
	"testing"
	"time"
)

var parseNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

const validResponse = `{
  "entities": {
    "location": "mad",
    "date": "2025-06-01",
    "capacity": "50",
    "eventType": "Corporate Meeting",
    "duration": "half day",
    "budget": {"min": null, "max": 800, "currency": "euros"},
    "amenities": ["wifi", "beamer"]
  },
  "confidence": {"overall": 0.9, "location": 0.95, "date": 0.85, "capacity": 0.95, "eventType": 0.9},
  "reasoning": "clear query",
  "suggestions": []
}`

func TestParseResponseNormalizesEntities(t *testing.T) {
	parsed, err := parseResponse(validResponse, parseNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := parsed.Entities
	if e.Location == nil || *e.Location != "Madrid" {
		t.Errorf("location not normalized: %v", e.Location)
	}
	if e.Capacity == nil || *e.Capacity != 50 {
		t.Errorf("string capacity not coerced: %v", e.Capacity)
	}
	if e.EventType == nil || *e.EventType != "meeting" {
		t.Errorf("event type not canonicalized: %v", e.EventType)
	}
	if e.Duration == nil || *e.Duration != 4 {
		t.Errorf("duration phrase not resolved: %v", e.Duration)
	}
	if e.Budget == nil || e.Budget.Currency != "EUR" {
		t.Errorf("currency not normalized: %+v", e.Budget)
	}
	if len(e.Amenities) != 2 || e.Amenities[0] != "WiFi" || e.Amenities[1] != "Projector" {
		t.Errorf("amenities not canonicalized: %v", e.Amenities)
	}
	if parsed.Confidence.Overall != 0.9 {
		t.Errorf("confidence lost: %+v", parsed.Confidence)
	}
}

func TestParseResponseStripsFormattingNoise(t *testing.T) {
	wrapped := []string{
		"```json\n" + validResponse + "\n```",
		"```\n" + validResponse + "\n```",
		"Here is the extraction you asked for:\n\n" + validResponse + "\n\nLet me know if you need more.",
	}
	for _, raw := range wrapped {
		parsed, err := parseResponse(raw, parseNow)
		if err != nil {
			t.Fatalf("failed to recover wrapped response: %v\nraw: %s", err, raw[:40])
		}
		if parsed.Entities.Location == nil || *parsed.Entities.Location != "Madrid" {
			t.Errorf("recovered response lost entities")
		}
	}
}

func TestParseResponseBracketMatchingHonorsStrings(t *testing.T) {
	raw := strings.Replace(validResponse, `"clear query"`, `"braces {inside} a \"string\" value"`, 1)
	parsed, err := parseResponse("noise "+raw+" trailing", parseNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(parsed.Reasoning, "{inside}") {
		t.Errorf("reasoning mangled: %q", parsed.Reasoning)
	}
}

func TestParseResponseConfidenceGate(t *testing.T) {
	bad := []struct {
		name string
		raw  string
	}{
		{"above one", strings.Replace(validResponse, `"overall": 0.9`, `"overall": 1.5`, 1)},
		{"negative", strings.Replace(validResponse, `"date": 0.85`, `"date": -0.1`, 1)},
		{"non numeric", strings.Replace(validResponse, `"capacity": 0.95`, `"capacity": "high"`, 1)},
		{"missing field", strings.Replace(validResponse, `"eventType": 0.9`, `"ignored": 0.9`, 1)},
	}
	for _, tc := range bad {
		if _, err := parseResponse(tc.raw, parseNow); err == nil {
			t.Errorf("%s: invalid confidence accepted", tc.name)
		}
	}
}

func TestParseResponseRejectsBadEnvelopes(t *testing.T) {
	bad := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no object", "the model refuses to answer"},
		{"unbalanced", `{"entities": {"location": "Madrid"`},
		{"missing entities", `{"confidence": {"overall": 0.5, "location": 0, "date": 0, "capacity": 0, "eventType": 0}}`},
		{"missing confidence", `{"entities": {"location": "Madrid"}}`},
		{"array payload", `[1, 2, 3]`},
	}
	for _, tc := range bad {
		if _, err := parseResponse(tc.raw, parseNow); err == nil {
			t.Errorf("%s: bad envelope accepted", tc.name)
		}
	}
}
