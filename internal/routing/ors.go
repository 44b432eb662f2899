// README: OpenRouteService matrix client for driving, walking, and cycling.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"midway/internal/types"
)

// ORSClient calls the openrouteservice v2 matrix API.
type ORSClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewORSClient(baseURL, apiKey string) *ORSClient {
	return &ORSClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// orsProfile maps our transport modes to ORS routing profiles. Transit has no
// ORS profile and must go through the Google provider instead.
func orsProfile(mode types.TransportMode) string {
	switch mode {
	case types.ModeWalking:
		return "foot-walking"
	case types.ModeCycling:
		return "cycling-regular"
	default:
		return "driving-car"
	}
}

type orsMatrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
}

// Pointer elements: ORS reports unroutable pairs as JSON null.
type orsMatrixResponse struct {
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

// ComputeMatrix requests durations and distances from every source to every
// destination. ORS expects [lng, lat] coordinate order and a single combined
// locations list indexed by sources/destinations.
func (c *ORSClient) ComputeMatrix(ctx context.Context, sources, destinations []types.Point, mode types.TransportMode) (Matrix, error) {
	locations := make([][]float64, 0, len(sources)+len(destinations))
	for _, s := range sources {
		locations = append(locations, []float64{s.Lng, s.Lat})
	}
	for _, d := range destinations {
		locations = append(locations, []float64{d.Lng, d.Lat})
	}

	srcIdx := make([]int, len(sources))
	for i := range sources {
		srcIdx[i] = i
	}
	dstIdx := make([]int, len(destinations))
	for i := range destinations {
		dstIdx[i] = len(sources) + i
	}

	body, err := json.Marshal(orsMatrixRequest{
		Locations:    locations,
		Sources:      srcIdx,
		Destinations: dstIdx,
		Metrics:      []string{"duration", "distance"},
	})
	if err != nil {
		return Matrix{}, err
	}

	url := fmt.Sprintf("%s/v2/matrix/%s", c.baseURL, orsProfile(mode))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Matrix{}, err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Matrix{}, fmt.Errorf("%w: ors matrix: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Matrix{}, fmt.Errorf("%w: ors matrix status %d: %s", ErrUpstream, resp.StatusCode, msg)
	}

	var parsed orsMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Matrix{}, fmt.Errorf("%w: ors matrix decode: %v", ErrUpstream, err)
	}

	return Matrix{
		Durations: densify(parsed.Durations),
		Distances: densify(parsed.Distances),
	}, nil
}

// densify converts nullable matrix entries into the -1 no-route sentinel.
func densify(rows [][]*float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				out[i][j] = -1
				continue
			}
			out[i][j] = *v
		}
	}
	return out
}
