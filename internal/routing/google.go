// README: Google Distance Matrix client; the only provider with transit support.
package routing

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"midway/internal/types"
)

// Google Distance Matrix caps a single request at 25 origins and 100
// elements (origins × destinations).
const (
	maxOriginsPerRequest  = 25
	maxElementsPerRequest = 100
)

// GoogleTransitClient computes transit travel matrices via the Google Maps
// Distance Matrix API. ORS has no transit profile, so transit participants are
// always routed through here.
type GoogleTransitClient struct {
	client *maps.Client
}

func NewGoogleTransitClient(client *maps.Client) *GoogleTransitClient {
	return &GoogleTransitClient{client: client}
}

// ComputeMatrix requests transit durations from every source to every
// destination, batching origins to stay inside the API element limits.
// Elements without a route come back as -1.
func (c *GoogleTransitClient) ComputeMatrix(ctx context.Context, sources, destinations []types.Point, mode types.TransportMode) (Matrix, error) {
	if len(destinations) == 0 {
		return Matrix{}, nil
	}

	batch := maxElementsPerRequest / len(destinations)
	if batch > maxOriginsPerRequest {
		batch = maxOriginsPerRequest
	}
	if batch < 1 {
		batch = 1
	}

	dests := make([]string, len(destinations))
	for i, d := range destinations {
		dests[i] = fmt.Sprintf("%f,%f", d.Lat, d.Lng)
	}

	var out Matrix
	for start := 0; start < len(sources); start += batch {
		end := start + batch
		if end > len(sources) {
			end = len(sources)
		}
		origins := make([]string, 0, end-start)
		for _, s := range sources[start:end] {
			origins = append(origins, fmt.Sprintf("%f,%f", s.Lat, s.Lng))
		}

		resp, err := c.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
			Origins:       origins,
			Destinations:  dests,
			Mode:          maps.TravelModeTransit,
			DepartureTime: "now",
		})
		if err != nil {
			return Matrix{}, fmt.Errorf("%w: google distance matrix: %v", ErrUpstream, err)
		}

		for _, row := range resp.Rows {
			durations := make([]float64, len(row.Elements))
			distances := make([]float64, len(row.Elements))
			for j, el := range row.Elements {
				if el.Status != "OK" {
					durations[j] = -1
					distances[j] = -1
					continue
				}
				durations[j] = el.Duration.Seconds()
				distances[j] = float64(el.Distance.Meters)
			}
			out.Durations = append(out.Durations, durations)
			out.Distances = append(out.Distances, distances)
		}
	}

	return out, nil
}
