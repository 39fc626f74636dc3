package extraction

import (
	"strings"
	"testing"
)

func TestFallbackExtractMadridQuery(t *testing.T) {
	entities, conf := fallbackExtract("conference room for 50 people in Madrid next Wednesday with WiFi and projector, budget around 800 euros")

	if entities.Location == nil || *entities.Location != "Madrid" {
		t.Errorf("location: got %v, want Madrid", entities.Location)
	}
	if entities.Capacity == nil || *entities.Capacity != 50 {
		t.Errorf("capacity: got %v, want 50", entities.Capacity)
	}
	if entities.EventType == nil || *entities.EventType != "conference" {
		t.Errorf("event type: got %v, want conference", entities.EventType)
	}
	// Date and amenity extraction are deliberately absent from the fallback.
	if entities.Date != nil {
		t.Errorf("fallback should not guess dates, got %v", entities.Date)
	}
	if len(entities.Amenities) != 0 {
		t.Errorf("fallback should not guess amenities, got %v", entities.Amenities)
	}
	if conf.Overall != 0.4 {
		t.Errorf("overall confidence: got %v, want 0.4", conf.Overall)
	}
}

func TestFallbackExtractStoplist(t *testing.T) {
	entities, _ := fallbackExtract("need a room at the venue for our meeting")
	if entities.Location != nil {
		t.Errorf("generic nouns mistaken for a location: %q", *entities.Location)
	}
}

func TestFallbackExtractCapacityNouns(t *testing.T) {
	cases := map[string]int{
		"workshop for 25 attendees": 25,
		"dinner for 12 guests":      12,
		"seminar, 200 pax":          200,
		"place with seats":          0, // no number
		"we are 10":                 0, // no people noun
	}
	for query, want := range cases {
		entities, _ := fallbackExtract(query)
		if want == 0 {
			if entities.Capacity != nil {
				t.Errorf("%q: got capacity %d, want none", query, *entities.Capacity)
			}
			continue
		}
		if entities.Capacity == nil || *entities.Capacity != want {
			t.Errorf("%q: got capacity %v, want %d", query, entities.Capacity, want)
		}
	}
}

func TestFallbackExtractNeverPanicsAndBounded(t *testing.T) {
	adversarial := []string{
		"",
		"   ",
		"hi",
		strings.Repeat("in in in at near ", 500),
		strings.Repeat("(((((", 2000),
		"((((a{{{{[[[[<<<<",
		"in " + strings.Repeat("A", 5000),
		"𝕦𝕟𝕚𝕔𝕠𝕕𝕖 party at 🎉🎉🎉",
		"room for 99999999999999999999 people in X",
		"<script>alert(1)</script> meeting in Oslo",
	}
	for _, query := range adversarial {
		entities, conf := fallbackExtract(query)
		if conf.Overall < 0.2 || conf.Overall > 0.4 {
			t.Errorf("%q: overall confidence %v outside [0.2, 0.4]", query, conf.Overall)
		}
		if entities.Capacity != nil && (*entities.Capacity < 1 || *entities.Capacity > 100000) {
			t.Errorf("%q: capacity %d out of bounds", query, *entities.Capacity)
		}
		if entities.Amenities != nil && len(entities.Amenities) > 0 {
			t.Errorf("%q: unexpected amenities %v", query, entities.Amenities)
		}
	}
}

func TestFallbackEventTypeFirstMatchWins(t *testing.T) {
	entities, _ := fallbackExtract("wedding reception with a planning meeting beforehand")
	if entities.EventType == nil || *entities.EventType != "wedding" {
		t.Errorf("got %v, want wedding (more specific keyword first)", entities.EventType)
	}
}
