// README: Alternative venue discovery backed by the Foursquare v3 places API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"midway/internal/types"
)

// FoursquareService implements the same search surface as GoogleService so
// deployments without a Google key can still discover venues.
type FoursquareService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewFoursquareService(baseURL, apiKey string) *FoursquareService {
	if baseURL == "" {
		baseURL = "https://api.foursquare.com/v3"
	}
	return &FoursquareService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

type fsqPlace struct {
	FsqID    string `json:"fsq_id"`
	Name     string `json:"name"`
	Location struct {
		Address          string `json:"address"`
		FormattedAddress string `json:"formatted_address"`
		Locality         string `json:"locality"`
	} `json:"location"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Rating float64 `json:"rating"`
}

func (s *FoursquareService) SearchNearby(ctx context.Context, center types.Point, radiusMeters int, category, keyword string) ([]Venue, error) {
	q := url.Values{}
	q.Set("categories", FoursquareCategoryID(category))
	if keyword != "" {
		q.Set("query", keyword)
	}
	return s.search(ctx, center, radiusMeters, q)
}

func (s *FoursquareService) SearchText(ctx context.Context, query string, center types.Point, radiusMeters int) ([]Venue, error) {
	q := url.Values{}
	q.Set("query", query)
	return s.search(ctx, center, radiusMeters, q)
}

func (s *FoursquareService) search(ctx context.Context, center types.Point, radiusMeters int, q url.Values) ([]Venue, error) {
	// Foursquare caps the radius at 100km.
	if radiusMeters > 100000 {
		radiusMeters = 100000
	}
	q.Set("ll", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("limit", strconv.Itoa(maxResults))
	q.Set("sort", "RELEVANCE")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/places/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: foursquare search: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: foursquare search status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed struct {
		Results []fsqPlace `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: foursquare decode: %v", ErrUpstream, err)
	}

	venues := make([]Venue, 0, len(parsed.Results))
	for _, p := range parsed.Results {
		address := p.Location.FormattedAddress
		if address == "" {
			address = p.Location.Address
		}
		if address == "" {
			address = p.Location.Locality
		}
		if address == "" {
			address = "Address not available"
		}
		category := "Unknown"
		if len(p.Categories) > 0 {
			category = p.Categories[0].Name
		}
		venues = append(venues, Venue{
			ID:       p.FsqID,
			Name:     p.Name,
			Address:  address,
			Location: types.Point{Lat: p.Geocodes.Main.Latitude, Lng: p.Geocodes.Main.Longitude},
			Category: category,
			Rating:   p.Rating,
		})
	}
	return venues, nil
}
