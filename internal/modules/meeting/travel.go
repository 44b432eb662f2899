// README: Travel-time aggregation across transport modes and routing providers.
package meeting

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"midway/internal/routing"
	"midway/internal/types"
)

// unreachable orders after every real duration.
var unreachable = math.Inf(1)

// Aggregator merges per-mode matrix calls into per-participant travel time
// vectors. Driving, walking, and cycling go through the road provider;
// transit must use the transit provider, which is the only one that supports
// it.
type Aggregator struct {
	road    routing.MatrixProvider
	transit routing.MatrixProvider
}

func NewAggregator(road, transit routing.MatrixProvider) *Aggregator {
	return &Aggregator{road: road, transit: transit}
}

func (a *Aggregator) provider(mode types.TransportMode) routing.MatrixProvider {
	if mode == types.ModeTransit {
		return a.transit
	}
	return a.road
}

type modeGroup struct {
	mode    types.TransportMode
	members []Participant
	matrix  routing.Matrix
}

// partitionByMode groups participants by transport mode, preserving first
// encounter order so results are deterministic.
func partitionByMode(participants []Participant) []*modeGroup {
	var groups []*modeGroup
	index := make(map[types.TransportMode]*modeGroup)
	for _, p := range participants {
		g, ok := index[p.Mode]
		if !ok {
			g = &modeGroup{mode: p.Mode}
			index[p.Mode] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, p)
	}
	return groups
}

// fetch issues one matrix call per distinct mode, concurrently, and joins
// before returning. No partial results: any provider failure fails the whole
// aggregation.
func (a *Aggregator) fetch(ctx context.Context, groups []*modeGroup, destinations []types.Point) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, grp := range groups {
		grp := grp
		g.Go(func() error {
			sources := make([]types.Point, len(grp.members))
			for i, p := range grp.members {
				sources[i] = p.Location
			}
			m, err := a.provider(grp.mode).ComputeMatrix(ctx, sources, destinations, grp.mode)
			if err != nil {
				return err
			}
			if len(m.Durations) != len(grp.members) {
				return fmt.Errorf("matrix rows = %d, want %d for mode %s", len(m.Durations), len(grp.members), grp.mode)
			}
			grp.matrix = m
			return nil
		})
	}
	return g.Wait()
}

// Durations computes each participant's travel time to every destination.
// The returned vectors follow destination order. Missing or negative entries
// collapse to the unreachable sentinel (+Inf) so they order last; they are
// never treated as zero or silently skipped.
func (a *Aggregator) Durations(ctx context.Context, participants []Participant, destinations []types.Point) (map[string][]float64, error) {
	groups := partitionByMode(participants)
	if err := a.fetch(ctx, groups, destinations); err != nil {
		return nil, err
	}

	travelTimes := make(map[string][]float64, len(participants))
	for _, grp := range groups {
		for i, p := range grp.members {
			row := grp.matrix.Durations[i]
			times := make([]float64, len(row))
			for j, d := range row {
				if d < 0 {
					times[j] = unreachable
					continue
				}
				times[j] = d
			}
			travelTimes[p.Name] = times
		}
	}
	return travelTimes, nil
}

// Details computes each participant's travel figures to a single destination,
// keeping the raw -1 sentinel for callers that report per-participant
// reachability.
func (a *Aggregator) Details(ctx context.Context, participants []Participant, destination types.Point) ([]TravelTimeResult, error) {
	groups := partitionByMode(participants)
	if err := a.fetch(ctx, groups, []types.Point{destination}); err != nil {
		return nil, err
	}

	results := make([]TravelTimeResult, 0, len(participants))
	for _, grp := range groups {
		for i, p := range grp.members {
			results = append(results, TravelTimeResult{
				ParticipantName: p.Name,
				DurationSeconds: grp.matrix.Durations[i][0],
				DistanceMeters:  grp.matrix.Distances[i][0],
				Mode:            grp.mode,
			})
		}
	}
	return results, nil
}
