// README: Venue discovery backed by the Google Places API.
package places

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"midway/internal/types"
)

// GoogleService handles interactions with Google Places.
type GoogleService struct {
	client *maps.Client
}

func NewGoogleService(client *maps.Client) *GoogleService {
	return &GoogleService{client: client}
}

// SearchNearby runs a category-scoped nearby search around center.
// An empty result is a legitimate outcome, not an error.
func (s *GoogleService) SearchNearby(ctx context.Context, center types.Point, radiusMeters int, category, keyword string) ([]Venue, error) {
	// Google caps the nearby search radius at 50km.
	if radiusMeters > 50000 {
		radiusMeters = 50000
	}

	r := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: center.Lat, Lng: center.Lng},
		Radius:   uint(radiusMeters),
		Type:     maps.PlaceType(GooglePlaceType(category)),
		Keyword:  keyword,
	}

	resp, err := s.client.NearbySearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: google nearby search: %v", ErrUpstream, err)
	}
	return fromSearchResults(resp.Results), nil
}

// SearchText runs a free-text search biased to center, used as the broadened
// fallback when the scoped nearby search finds nothing.
func (s *GoogleService) SearchText(ctx context.Context, query string, center types.Point, radiusMeters int) ([]Venue, error) {
	r := &maps.TextSearchRequest{
		Query:    query,
		Location: &maps.LatLng{Lat: center.Lat, Lng: center.Lng},
		Radius:   uint(radiusMeters),
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: google text search: %v", ErrUpstream, err)
	}
	return fromSearchResults(resp.Results), nil
}

func fromSearchResults(results []maps.PlacesSearchResult) []Venue {
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	venues := make([]Venue, 0, len(results))
	for _, p := range results {
		address := p.Vicinity
		if address == "" {
			address = p.FormattedAddress
		}
		if address == "" {
			address = "Address not available"
		}
		category := "Place"
		if len(p.Types) > 0 {
			category = formatPlaceType(p.Types[0])
		}
		venues = append(venues, Venue{
			ID:       p.PlaceID,
			Name:     p.Name,
			Address:  address,
			Location: types.Point{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
			Category: category,
			Rating:   float64(p.Rating),
		})
	}
	return venues
}
