// README: Fair meeting-point pipeline: two-pass grid refinement then venue ranking.
package meeting

import (
	"context"
	"log"

	"midway/internal/ai"
	"midway/internal/config"
	"midway/internal/places"
	"midway/internal/types"
)

const (
	gridSize       = 5
	coarseRadiusKm = 20.0
	fineRadiusKm   = 3.0

	venueSearchRadiusMeters = 3000
	topCoarseCandidates     = 3
)

// VenueSearcher discovers venues near a point. Implemented by the Google and
// Foursquare place services.
type VenueSearcher interface {
	SearchNearby(ctx context.Context, center types.Point, radiusMeters int, category, keyword string) ([]places.Venue, error)
	SearchText(ctx context.Context, query string, center types.Point, radiusMeters int) ([]places.Venue, error)
}

// Service runs the meeting-point search end to end.
type Service struct {
	agg     *Aggregator
	venues  VenueSearcher
	scoring config.ScoringConfig
}

func NewService(agg *Aggregator, venues VenueSearcher, scoring config.ScoringConfig) *Service {
	return &Service{agg: agg, venues: venues, scoring: scoring}
}

// FindFairMeetingPoint locates the point that minimizes travel-time spread
// across participants and returns venues near it, ranked fairest-first.
//
// Two passes: a coarse grid around the participant centroid picks promising
// regions, then fine grids around the top coarse winners sharpen the pick.
// Every fallback degrades toward the centroid rather than failing the search.
func (s *Service) FindFairMeetingPoint(ctx context.Context, participants []Participant, intent ai.InterpretedIntent) (*Result, error) {
	if len(participants) < 2 {
		return nil, ErrTooFewParticipants
	}

	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}

	center := centroid(participants)
	best, err := s.refine(ctx, participants, names, center)
	if err != nil {
		return nil, err
	}

	venues, radius, err := s.discoverVenues(ctx, best, intent)
	if err != nil {
		return nil, err
	}

	ranked, err := s.rankVenues(ctx, venues, participants, intent)
	if err != nil {
		return nil, err
	}

	return &Result{
		Venues:     ranked,
		SearchArea: SearchArea{Center: best, RadiusMeters: radius},
	}, nil
}

// refine runs the coarse and fine grid passes and returns the winning point.
func (s *Service) refine(ctx context.Context, participants []Participant, names []string, center types.Point) (types.Point, error) {
	coarse := candidateGrid(center, coarseRadiusKm, gridSize)
	durations, err := s.agg.Durations(ctx, participants, coarse)
	if err != nil {
		return types.Point{}, err
	}

	scored := scoreCandidates(coarse, durations, names)
	topCoarse := selectTop(scored, topCoarseCandidates, s.scoring)
	if len(topCoarse) == 0 {
		// Every coarse candidate had an unreachable participant. The centroid
		// is still a sensible meeting area, so degrade to it.
		log.Printf("no reachable coarse candidates, falling back to centroid")
		return center, nil
	}

	var fine []types.Point
	for _, c := range topCoarse {
		fine = append(fine, candidateGrid(c.Location, fineRadiusKm, gridSize)...)
	}
	fine = dedupePoints(fine)

	fineDurations, err := s.agg.Durations(ctx, participants, fine)
	if err != nil {
		return types.Point{}, err
	}

	fineScored := scoreCandidates(fine, fineDurations, names)
	winner := selectTop(fineScored, 1, s.scoring)
	if len(winner) == 0 {
		return topCoarse[0].Location, nil
	}
	return winner[0].Location, nil
}

// discoverVenues searches around the chosen point. When the category-scoped
// search finds nothing it retries with an unscoped text query over twice the
// radius before giving up.
func (s *Service) discoverVenues(ctx context.Context, center types.Point, intent ai.InterpretedIntent) ([]places.Venue, int, error) {
	radius := venueSearchRadiusMeters
	venues, err := s.venues.SearchNearby(ctx, center, radius, intent.Category, intent.Keyword())
	if err != nil {
		return nil, 0, err
	}
	if len(venues) > 0 {
		return venues, radius, nil
	}

	radius *= 2
	log.Printf("no %s venues within %dm, widening to %dm", intent.Category, venueSearchRadiusMeters, radius)
	venues, err = s.venues.SearchText(ctx, intent.Category, center, radius)
	if err != nil {
		return nil, 0, err
	}
	return venues, radius, nil
}
