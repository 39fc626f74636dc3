// README: Deterministic prompt construction for the extraction LLM call.
package extraction

import (
	"fmt"
	"sort"
	"strings"

	"venuescout/internal/ai"
)

// systemPrompt is fixed: no timestamps, no randomness. Identical inputs must
// produce byte-identical prompts so the orchestrator's cache key stays
// meaningful.
const systemPrompt = `Role: You are the entity extraction core for "VenueScout", a venue search assistant.
Your ONLY job is to extract structured search parameters from the user's free-text query.

RULES:

1. EXTRACT, NEVER INVENT:
   - Only extract values the user actually stated or clearly implied.
   - Use null for anything not mentioned. Do NOT guess a city, date or capacity.

2. FIELD SEMANTICS:
   - "location": the city or area where the venue is wanted.
   - "date": the event date as YYYY-MM-DD, resolved against the current date in the context block. Relative dates ("next Wednesday", "tomorrow") MUST be resolved to an absolute date.
   - "capacity": number of attendees as an integer.
   - "eventType": the kind of event (meeting, conference, wedding, workshop, party, ...).
   - "duration": event length in hours as a number ("half day" = 4, "full day" = 8).
   - "budget": {"min": number|null, "max": number|null, "currency": string|null}. "around 800 euros" means max 800, currency EUR.
   - "amenities": list of required facilities (WiFi, projector, catering, parking, ...).

3. CONFIDENCE SCORING:
   - Every confidence value MUST be a number between 0 and 1.
   - Score each of location, date, capacity and eventType by how explicitly the user stated it; "overall" reflects the whole extraction.
   - Use 0 for fields you extracted nothing for.

4. OUTPUT:
   - Respond with ONE JSON object matching the schema below.
   - No prose, no markdown, no code fences around the JSON.

JSON Schema:
{
  "entities": {
    "location": "string or null",
    "date": "YYYY-MM-DD or null",
    "capacity": integer or null,
    "eventType": "string or null",
    "duration": number or null,
    "budget": {"min": number|null, "max": number|null, "currency": "string or null"} or null,
    "amenities": ["string"]
  },
  "confidence": {
    "overall": number,
    "location": number,
    "date": number,
    "capacity": number,
    "eventType": number
  },
  "reasoning": "one short sentence",
  "suggestions": ["string"]
}

Worked example:
Query: "conference room for 50 people in Madrid next Wednesday with WiFi and projector, budget around 800 euros"
Output:
{
  "entities": {
    "location": "Madrid",
    "date": "2025-03-19",
    "capacity": 50,
    "eventType": "conference",
    "duration": null,
    "budget": {"min": null, "max": 800, "currency": "EUR"},
    "amenities": ["WiFi", "projector"]
  },
  "confidence": {"overall": 0.9, "location": 0.95, "date": 0.85, "capacity": 0.95, "eventType": 0.9},
  "reasoning": "All main parameters stated explicitly; date resolved from 'next Wednesday'.",
  "suggestions": []
}`

// BuildPrompt renders the system instruction and the per-call user block.
// Preferences are emitted with sorted keys so output is reproducible.
func BuildPrompt(query string, ctx *Context) []ai.Message {
	var user strings.Builder
	if ctx != nil {
		if ctx.DateContext != "" {
			fmt.Fprintf(&user, "Current date: %s\n", ctx.DateContext)
		}
		if ctx.UserLocation != "" {
			fmt.Fprintf(&user, "User location: %s\n", ctx.UserLocation)
		}
		if ctx.PreviousQuery != "" {
			fmt.Fprintf(&user, "Previous query: %s\n", ctx.PreviousQuery)
		}
		if len(ctx.Preferences) > 0 {
			keys := make([]string, 0, len(ctx.Preferences))
			for k := range ctx.Preferences {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			pairs := make([]string, 0, len(keys))
			for _, k := range keys {
				pairs = append(pairs, k+"="+ctx.Preferences[k])
			}
			fmt.Fprintf(&user, "Preferences: %s\n", strings.Join(pairs, ", "))
		}
	}
	fmt.Fprintf(&user, "Query: %s", query)

	return []ai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user.String()},
	}
}
