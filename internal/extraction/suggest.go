// README: Deterministic follow-up suggestions for incomplete extractions.
package extraction

// Confidence below this threshold marks a scored field as worth re-asking.
const suggestionThreshold = 0.7

// Overall confidence below this adds the generic "be more specific" hint.
const lowOverallThreshold = 0.6

// generateSuggestions emits one human-readable prompt per weak or missing
// field, in a fixed order (location, date, capacity, eventType, budget,
// amenities, overall) so output is reproducible.
func generateSuggestions(entities Entities, conf Confidence) []string {
	var out []string
	if entities.Location == nil || conf.Location < suggestionThreshold {
		out = append(out, "Consider specifying a city or location")
	}
	if entities.Date == nil || conf.Date < suggestionThreshold {
		out = append(out, "Adding a date helps narrow down available venues")
	}
	if entities.Capacity == nil || conf.Capacity < suggestionThreshold {
		out = append(out, "Mention how many people will attend")
	}
	if entities.EventType == nil || conf.EventType < suggestionThreshold {
		out = append(out, "Describe the type of event (meeting, conference, wedding, ...)")
	}
	if entities.Budget == nil {
		out = append(out, "Include a budget range to filter venues by price")
	}
	if len(entities.Amenities) == 0 {
		out = append(out, "List any amenities you need, such as WiFi or catering")
	}
	if conf.Overall < lowOverallThreshold {
		out = append(out,
			"Try to be more specific about what you are looking for",
			"Example: \"conference room for 30 people in Barcelona on 2025-06-12 with projector\"")
	}
	return out
}
