// README: Nominatim geocoding collaborator with injected cache and request throttling.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"midway/internal/types"
)

// ErrNotFound is returned when an address resolves to nothing.
var ErrNotFound = errors.New("address not found")

// ErrUpstream marks a geocoding provider failure.
var ErrUpstream = errors.New("geocoding provider unavailable")

const userAgent = "Midway/1.0 (fair meeting point service)"

// Result is a resolved address.
type Result struct {
	Location    types.Point `json:"location"`
	DisplayName string      `json:"display_name"`
}

// Service resolves free-text addresses via Nominatim. Nominatim's usage policy
// allows at most one request per second, so every cache miss passes through a
// token-bucket limiter. Cache and limiter live here, not in the core.
type Service struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
}

// NewService creates a geocoder. minIntervalSeconds spaces out upstream
// requests (1.1 recommended). cache may be nil to disable caching.
func NewService(baseURL string, minIntervalSeconds float64, cache Cache) *Service {
	return &Service{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(1/minIntervalSeconds), 1),
		cache:      cache,
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve geocodes an address to a coordinate and display name.
func (s *Service) Resolve(ctx context.Context, address string) (Result, error) {
	key := cacheKey(address)
	if s.cache != nil {
		if r, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return r, nil
		} else if err != nil {
			log.Printf("geocode cache get: %v", err)
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")

	var places []nominatimPlace
	if err := s.getJSON(ctx, "/search?"+q.Encode(), &places); err != nil {
		return Result{}, err
	}
	if len(places) == 0 {
		return Result{}, fmt.Errorf("%w: %q", ErrNotFound, address)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: bad latitude %q", ErrUpstream, places[0].Lat)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: bad longitude %q", ErrUpstream, places[0].Lon)
	}

	result := Result{
		Location:    types.Point{Lat: lat, Lng: lng},
		DisplayName: places[0].DisplayName,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			log.Printf("geocode cache set: %v", err)
		}
	}
	return result, nil
}

// Reverse maps a coordinate back to a display name. Failure degrades to
// "Unknown location" rather than failing the caller.
func (s *Service) Reverse(ctx context.Context, p types.Point) string {
	if err := s.limiter.Wait(ctx); err != nil {
		return "Unknown location"
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lng, 'f', -1, 64))
	q.Set("format", "json")

	var place nominatimPlace
	if err := s.getJSON(ctx, "/reverse?"+q.Encode(), &place); err != nil {
		log.Printf("reverse geocode: %v", err)
		return "Unknown location"
	}
	if place.DisplayName == "" {
		return "Unknown location"
	}
	return place.DisplayName
}

func (s *Service) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func cacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(address))
}
