// README: Recovery parser for free-form LLM output.
package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// llmPayload is the trusted-shape envelope after recovery. Entity values stay
// untyped because the model routinely returns strings where numbers belong;
// the normalizer sorts that out field by field.
type llmPayload struct {
	Entities    map[string]any  `json:"entities"`
	Confidence  json.RawMessage `json:"confidence"`
	Reasoning   string          `json:"reasoning"`
	Suggestions []string        `json:"suggestions"`
}

// parsedResponse is what the orchestrator consumes from a successful parse.
type parsedResponse struct {
	Entities    Entities
	Confidence  Confidence
	Reasoning   string
	Suggestions []string
}

// parseResponse strips formatting noise from raw model output, extracts the
// first balanced JSON object, validates the envelope and confidence bounds,
// and normalizes every entity value. Any violation is an error; the
// orchestrator turns errors on this path into a fallback extraction.
func parseResponse(raw string, now time.Time) (*parsedResponse, error) {
	cleaned := stripCodeFences(raw)
	obj, err := extractJSONObject(cleaned)
	if err != nil {
		return nil, err
	}

	var payload llmPayload
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal llm response: %w", err)
	}
	if payload.Entities == nil {
		return nil, fmt.Errorf("llm response missing entities")
	}
	if len(payload.Confidence) == 0 {
		return nil, fmt.Errorf("llm response missing confidence")
	}

	conf, err := validateConfidence(payload.Confidence)
	if err != nil {
		return nil, err
	}

	return &parsedResponse{
		Entities:    normalizeEntities(payload.Entities, now),
		Confidence:  *conf,
		Reasoning:   payload.Reasoning,
		Suggestions: payload.Suggestions,
	}, nil
}

// stripCodeFences removes triple-backtick wrapping, with or without a
// language tag. Prose around the fence is left for extractJSONObject.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first balanced {...} span, tracking strings
// and escapes so braces inside values do not break the match.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in llm response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in llm response")
}

// validateConfidence enforces the gate: all five fields present, numeric and
// inside [0,1]. A single bad score invalidates the whole response.
func validateConfidence(raw json.RawMessage) (*Confidence, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal confidence: %w", err)
	}

	conf := &Confidence{}
	for name, dst := range map[string]*float64{
		"overall":   &conf.Overall,
		"location":  &conf.Location,
		"date":      &conf.Date,
		"capacity":  &conf.Capacity,
		"eventType": &conf.EventType,
	} {
		v, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("confidence field %q missing", name)
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("confidence field %q is not a number", name)
		}
		if f < 0 || f > 1 {
			return nil, fmt.Errorf("confidence field %q out of range: %v", name, f)
		}
		*dst = f
	}
	return conf, nil
}
