// README: Deterministic pattern-based extractor used when the LLM path fails.
package extraction

import (
	"regexp"
	"strings"
)

// The fallback trades accuracy for availability: location, capacity and event
// type come from regex and keyword matching; date and amenities stay empty
// because resolving them reliably needs language understanding the patterns
// cannot provide. Confidence is kept deliberately low so callers know to
// verify the result.
const (
	fallbackBaseConfidence  = 0.2
	fallbackFieldConfidence = 0.3
	fallbackFieldBonus      = 0.1
)

// locationPatterns are tried in order; the first candidate that survives the
// stoplist wins. Capture group 1 is the candidate place name.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bvenue\s+(?:in|at|near)\s+([a-zA-Z][a-zA-Z]*(?:\s[A-Z][a-zA-Z]*)*)`),
	regexp.MustCompile(`\b(?i:in|at|near)\s+([A-Z][a-zA-Z]*(?:\s[A-Z][a-zA-Z]*)?)`),
	regexp.MustCompile(`(?i)\b(?:in|at|near)\s+([a-zA-Z]+)`),
}

// locationStoplist filters generic nouns that the prepositional patterns
// mistake for place names.
var locationStoplist = map[string]bool{
	"venue": true, "venues": true, "meeting": true, "meetings": true,
	"room": true, "rooms": true, "space": true, "spaces": true,
	"hall": true, "halls": true, "place": true, "places": true,
	"conference": true, "event": true, "events": true, "person": true,
	"people": true, "morning": true, "afternoon": true, "evening": true,
	"the": true, "a": true, "an": true, "my": true, "our": true,
	"town": true, "city": true, "budget": true, "total": true,
	"least": true, "most": true,
}

var capacityPattern = regexp.MustCompile(`(?i)\b(\d{1,6})\s*\+?\s*(?:people|persons|person|attendees|attendee|guests|guest|participants|pax|seats|delegates)\b`)

// eventKeywords are checked as substrings in order; first match wins, so the
// more specific phrases come first.
var eventKeywords = []string{
	"team building",
	"wedding",
	"conference",
	"workshop",
	"seminar",
	"webinar",
	"networking",
	"exhibition",
	"retreat",
	"reception",
	"birthday",
	"party",
	"training",
	"meeting",
}

// fallbackExtract never fails: whatever the input, it returns well-formed
// entities and heuristic confidence in [0.2, 0.4].
func fallbackExtract(query string) (Entities, Confidence) {
	entities := Entities{
		Location:  fallbackLocation(query),
		Capacity:  fallbackCapacity(query),
		EventType: fallbackEventType(query),
	}

	conf := Confidence{}
	found := 0
	if entities.Location != nil {
		conf.Location = fallbackFieldConfidence
		found++
	}
	if entities.Capacity != nil {
		conf.Capacity = fallbackFieldConfidence
		found++
	}
	if entities.EventType != nil {
		conf.EventType = fallbackFieldConfidence
	}
	conf.Overall = fallbackBaseConfidence + float64(found)*fallbackFieldBonus
	return entities, conf
}

func fallbackLocation(query string) *string {
	for _, pattern := range locationPatterns {
		m := pattern.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		candidate := trimLocationCandidate(m[1])
		if candidate == "" {
			continue
		}
		return NormalizeLocation(candidate)
	}
	return nil
}

// trimLocationCandidate cuts the candidate at the first stoplisted word and
// rejects it entirely when nothing usable remains.
func trimLocationCandidate(candidate string) string {
	words := strings.Fields(candidate)
	var kept []string
	for _, w := range words {
		if locationStoplist[strings.ToLower(w)] {
			break
		}
		kept = append(kept, w)
		if len(kept) == 3 {
			break
		}
	}
	return strings.Join(kept, " ")
}

func fallbackCapacity(query string) *int {
	m := capacityPattern.FindStringSubmatch(query)
	if m == nil {
		return nil
	}
	return NormalizeCapacity(m[1])
}

func fallbackEventType(query string) *string {
	lower := strings.ToLower(query)
	for _, keyword := range eventKeywords {
		if strings.Contains(lower, keyword) {
			return NormalizeEventType(keyword)
		}
	}
	return nil
}
