// README: Thin Google Places wrapper for venue lookup from extracted entities.
package venues

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"venuescout/internal/extraction"
)

// Venue is a simplified place result.
type Venue struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"placeId"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
}

// maxResults bounds the list returned to callers.
const maxResults = 5

// Service handles interactions with the Google Places API. It carries no
// search logic of its own; the extracted entities fully determine the query.
type Service struct {
	client *maps.Client
}

// NewService creates a Service with the given API key.
func NewService(apiKey string) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client}, nil
}

// Search runs a text search built from the extracted entities.
// At minimum a location is required; without one there is nothing to search.
func (s *Service) Search(ctx context.Context, entities extraction.Entities) ([]Venue, error) {
	if entities.Location == nil {
		return nil, fmt.Errorf("venue search requires a location")
	}

	query := buildQuery(entities)
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Venue
	for _, r := range resp.Results {
		results = append(results, Venue{
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
		})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}

// buildQuery renders something like "conference venue for 50 people in Madrid".
func buildQuery(entities extraction.Entities) string {
	var b strings.Builder
	if entities.EventType != nil {
		b.WriteString(*entities.EventType)
		b.WriteString(" ")
	}
	b.WriteString("venue")
	if entities.Capacity != nil {
		fmt.Fprintf(&b, " for %d people", *entities.Capacity)
	}
	fmt.Fprintf(&b, " in %s", *entities.Location)
	return b.String()
}
