// README: Pure normalization of raw extracted values into canonical forms.
package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The normalizers accept `any` because LLM output is untrusted: a number may
// arrive as a string, a list as a single value. Unparsable input degrades to
// nil rather than failing the extraction. None of these functions error.

// locationAbbrev expands common city abbreviations to their proper names.
var locationAbbrev = map[string]string{
	"nyc": "New York",
	"ny":  "New York",
	"la":  "Los Angeles",
	"sf":  "San Francisco",
	"bcn": "Barcelona",
	"mad": "Madrid",
	"ams": "Amsterdam",
	"ber": "Berlin",
	"muc": "Munich",
	"lon": "London",
	"ldn": "London",
	"par": "Paris",
	"rom": "Rome",
	"mil": "Milan",
	"lis": "Lisbon",
	"vie": "Vienna",
}

// eventTypeSynonyms maps raw event descriptions to canonical types.
// Canonical values map to themselves so normalization is idempotent.
var eventTypeSynonyms = map[string]string{
	"meeting":           "meeting",
	"corporate meeting": "meeting",
	"business meeting":  "meeting",
	"team meeting":      "meeting",
	"board meeting":     "meeting",
	"conference":        "conference",
	"congress":          "conference",
	"summit":            "conference",
	"convention":        "conference",
	"workshop":          "workshop",
	"training":          "workshop",
	"training session":  "workshop",
	"seminar":           "seminar",
	"webinar":           "seminar",
	"wedding":           "wedding",
	"wedding reception": "wedding",
	"party":             "party",
	"birthday":          "party",
	"birthday party":    "party",
	"celebration":       "party",
	"team building":     "team building",
	"team-building":     "team building",
	"offsite":           "retreat",
	"retreat":           "retreat",
	"networking":        "networking",
	"networking event":  "networking",
	"exhibition":        "exhibition",
	"trade show":        "exhibition",
	"reception":         "reception",
}

// durationPhrases resolves common wordings before the numeric regex runs.
var durationPhrases = map[string]float64{
	"half day":  4,
	"half-day":  4,
	"full day":  8,
	"full-day":  8,
	"all day":   8,
	"whole day": 8,
	"morning":   4,
	"afternoon": 4,
	"evening":   3,
}

// currencySynonyms maps words and symbols to 3-letter codes.
var currencySynonyms = map[string]string{
	"eur": "EUR", "euro": "EUR", "euros": "EUR", "€": "EUR",
	"usd": "USD", "dollar": "USD", "dollars": "USD", "$": "USD", "bucks": "USD",
	"gbp": "GBP", "pound": "GBP", "pounds": "GBP", "£": "GBP",
	"chf": "CHF", "franc": "CHF", "francs": "CHF",
	"jpy": "JPY", "yen": "JPY", "¥": "JPY",
	"sek": "SEK", "nok": "NOK", "dkk": "DKK",
	"aud": "AUD", "cad": "CAD",
}

// amenitySynonyms canonicalizes amenity names; canonical forms map to themselves.
var amenitySynonyms = map[string]string{
	"wifi": "WiFi", "wi-fi": "WiFi", "wireless": "WiFi", "wireless internet": "WiFi", "internet": "WiFi",
	"projector": "Projector", "beamer": "Projector", "projection": "Projector",
	"parking": "Parking", "car park": "Parking",
	"catering": "Catering", "food service": "Catering",
	"av equipment": "AV Equipment", "av": "AV Equipment", "audio visual": "AV Equipment",
	"sound system": "Sound System", "speakers": "Sound System", "audio system": "Sound System",
	"microphone": "Microphone", "mic": "Microphone",
	"whiteboard": "Whiteboard", "flipchart": "Flipchart",
	"stage":            "Stage",
	"air conditioning": "Air Conditioning", "ac": "Air Conditioning", "aircon": "Air Conditioning",
	"kitchen":           "Kitchen",
	"wheelchair access": "Wheelchair Access", "wheelchair accessible": "Wheelchair Access", "accessible": "Wheelchair Access",
	"video conferencing": "Video Conferencing", "videoconference": "Video Conferencing", "video conference": "Video Conferencing",
	"natural light": "Natural Light",
	"terrace":       "Terrace", "outdoor space": "Terrace", "garden": "Garden",
	"bar": "Bar", "coffee": "Coffee", "coffee machine": "Coffee",
}

var (
	firstIntRe = regexp.MustCompile(`-?\d+`)
	hoursRe    = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:h\b|hr|hrs|hour|hours)?`)
	minutesRe  = regexp.MustCompile(`(\d+)\s*(?:min|mins|minute|minutes)`)
	floatRe    = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)
	alpha3Re   = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

const (
	capacityMin = 1
	capacityMax = 100000
	durationMin = 0.5
	durationMax = 24.0
)

// NormalizeLocation trims the raw value, expands known abbreviations and
// re-cases unmatched input to Title Case.
func NormalizeLocation(v any) *string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return nil
	}
	if full, ok := locationAbbrev[strings.ToLower(s)]; ok {
		return &full
	}
	t := titleCase(s)
	return &t
}

// NormalizeDate parses the raw value and discards dates strictly before today.
// Comparison is date-only; time-of-day never matters.
func NormalizeDate(v any, now time.Time) *time.Time {
	var t time.Time
	switch raw := v.(type) {
	case time.Time:
		t = raw
	case *time.Time:
		if raw == nil {
			return nil
		}
		t = *raw
	default:
		s := strings.TrimSpace(asString(v))
		if s == "" {
			return nil
		}
		layouts := []string{
			"2006-01-02",
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006/01/02",
			"01/02/2006",
			"January 2, 2006",
			"Jan 2, 2006",
			"2 January 2006",
		}
		parsed := false
		for _, layout := range layouts {
			if p, err := time.Parse(layout, s); err == nil {
				t = p
				parsed = true
				break
			}
		}
		if !parsed {
			return nil
		}
	}

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil
	}
	return &day
}

// NormalizeCapacity extracts an attendee count, flooring fractions and
// clamping into [1, 100000]. Strings yield their first embedded integer.
func NormalizeCapacity(v any) *int {
	var f float64
	switch raw := v.(type) {
	case float64:
		f = raw
	case int:
		f = float64(raw)
	case int64:
		f = float64(raw)
	case string:
		m := firstIntRe.FindString(raw)
		if m == "" {
			return nil
		}
		f = parseFloatSafe(m)
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	// Clamp as float before converting so absurd magnitudes cannot overflow.
	f = math.Floor(f)
	if f < capacityMin {
		f = capacityMin
	}
	if f > capacityMax {
		f = capacityMax
	}
	n := int(f)
	return &n
}

// NormalizeEventType canonicalizes via the synonym table; unmatched input is
// passed through unchanged so new vocabulary is not discarded.
func NormalizeEventType(v any) *string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return nil
	}
	if canonical, ok := eventTypeSynonyms[strings.ToLower(s)]; ok {
		return &canonical
	}
	return &s
}

// NormalizeDuration resolves duration phrases before falling back to a
// numeric-hours parse, then rounds to the nearest half hour within [0.5, 24].
func NormalizeDuration(v any) *float64 {
	var hours float64
	switch raw := v.(type) {
	case float64:
		hours = raw
	case int:
		hours = float64(raw)
	case int64:
		hours = float64(raw)
	case string:
		s := strings.ToLower(strings.TrimSpace(raw))
		if s == "" {
			return nil
		}
		if h, ok := durationPhrases[s]; ok {
			hours = h
			break
		}
		if m := minutesRe.FindStringSubmatch(s); m != nil {
			hours = float64(atoiSafe(m[1])) / 60
			break
		}
		if m := hoursRe.FindStringSubmatch(s); m != nil {
			hours = parseFloatSafe(m[1])
			break
		}
		return nil
	default:
		return nil
	}

	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return nil
	}
	rounded := math.Round(hours*2) / 2
	if rounded < durationMin {
		return nil
	}
	if rounded > durationMax {
		rounded = durationMax
	}
	return &rounded
}

// NormalizeBudget keeps a budget only when at least one of min/max is a
// positive number, and maps the currency to a 3-letter code.
func NormalizeBudget(v any) *Budget {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	min := positiveAmount(m["min"])
	max := positiveAmount(m["max"])
	if min == nil && max == nil {
		return nil
	}

	b := &Budget{Min: min, Max: max}
	cur := strings.TrimSpace(asString(m["currency"]))
	if cur != "" {
		if code, ok := currencySynonyms[strings.ToLower(cur)]; ok {
			b.Currency = code
		} else if alpha3Re.MatchString(cur) {
			b.Currency = strings.ToUpper(cur)
		}
	}
	return b
}

// NormalizeAmenities canonicalizes, case-folds, deduplicates and caps the
// amenity list at MaxAmenities entries.
func NormalizeAmenities(v any) []string {
	var raw []string
	switch list := v.(type) {
	case []string:
		raw = list
	case []any:
		for _, item := range list {
			raw = append(raw, asString(item))
		}
	case string:
		raw = strings.Split(list, ",")
	default:
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, item := range raw {
		s := strings.TrimSpace(item)
		if s == "" {
			continue
		}
		canonical, ok := amenitySynonyms[strings.ToLower(s)]
		if !ok {
			canonical = titleCase(s)
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
		if len(out) >= MaxAmenities {
			break
		}
	}
	return out
}

// normalizeEntities runs every field of a raw decoded entity map through its
// normalizer. Used by both the LLM recovery path and tests.
func normalizeEntities(raw map[string]any, now time.Time) Entities {
	return Entities{
		Location:  NormalizeLocation(raw["location"]),
		Date:      NormalizeDate(raw["date"], now),
		Capacity:  NormalizeCapacity(raw["capacity"]),
		EventType: NormalizeEventType(raw["eventType"]),
		Duration:  NormalizeDuration(raw["duration"]),
		Budget:    NormalizeBudget(raw["budget"]),
		Amenities: NormalizeAmenities(raw["amenities"]),
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s == nil {
			return ""
		}
		return *s
	default:
		return ""
	}
}

func positiveAmount(v any) *float64 {
	var f float64
	switch raw := v.(type) {
	case float64:
		f = raw
	case int:
		f = float64(raw)
	case int64:
		f = float64(raw)
	case string:
		m := floatRe.FindString(raw)
		if m == "" {
			return nil
		}
		f = parseFloatSafe(m)
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return nil
	}
	return &f
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloatSafe(s string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest, so repeated normalization is stable.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		for j, r := range runes {
			if r >= 'a' && r <= 'z' {
				if j == 0 || runes[j-1] == '-' {
					runes[j] = r - 32
				}
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
