// README: Venue ranking: travel recomputation, fairness + relevance scoring, explanations.
package meeting

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"midway/internal/ai"
	"midway/internal/places"
)

const (
	// maxVenues caps the ranked result set.
	maxVenues = 10
	// venueEnrichLimit bounds concurrent per-venue travel lookups so venue
	// ranking respects routing provider rate limits.
	venueEnrichLimit = 4

	relevanceBase          = 0.5
	relevanceRatingWeight  = 0.3
	relevanceCategoryBonus = 0.2
)

// rankVenues recomputes true point-to-point travel times for every venue,
// scores fairness and relevance, and returns the venues best-first. Venue
// enrichment runs concurrently with bounded parallelism and joins before the
// sort; one venue's failure drops that venue only, never the others.
func (s *Service) rankVenues(ctx context.Context, venues []places.Venue, participants []Participant, intent ai.InterpretedIntent) ([]RankedVenue, error) {
	enriched := make([]*RankedVenue, len(venues))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(venueEnrichLimit)
	for i, venue := range venues {
		i, venue := i, venue
		g.Go(func() error {
			rv, err := s.enrichVenue(gctx, venue, participants, intent)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("venue %q enrichment failed, dropping: %v", venue.Name, err)
				return nil
			}
			enriched[i] = rv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]RankedVenue, 0, len(venues))
	for _, rv := range enriched {
		if rv != nil {
			ranked = append(ranked, *rv)
		}
	}

	w := s.scoring
	sort.SliceStable(ranked, func(a, b int) bool {
		return venueSortScore(ranked[a], w.VenueFairnessWeight, w.VenueTotalTimeWeight, w.VenueRelevanceWeight) >
			venueSortScore(ranked[b], w.VenueFairnessWeight, w.VenueTotalTimeWeight, w.VenueRelevanceWeight)
	})

	if len(ranked) > maxVenues {
		ranked = ranked[:maxVenues]
	}
	return ranked, nil
}

// venueSortScore combines fairness with an inverse-hours transform of total
// time. The relevance term is a flat weight, identical for every venue, so
// computed relevance does not affect ordering. Intentional: kept for
// compatibility with the established ranking behavior.
func venueSortScore(v RankedVenue, fairnessW, totalW, relevanceW float64) float64 {
	return v.FairnessScore*fairnessW + (1/(1+v.TotalTimeSeconds/3600))*totalW + relevanceW
}

// enrichVenue computes one venue's travel analysis. Returns nil (no error)
// when every participant is unreachable; dispersion statistics cover only the
// reachable subset.
func (s *Service) enrichVenue(ctx context.Context, venue places.Venue, participants []Participant, intent ai.InterpretedIntent) (*RankedVenue, error) {
	travelTimes, err := s.agg.Details(ctx, participants, venue.Location)
	if err != nil {
		return nil, err
	}

	valid := make([]float64, 0, len(travelTimes))
	for _, t := range travelTimes {
		if t.DurationSeconds > 0 {
			valid = append(valid, t.DurationSeconds)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	var total float64
	minTime, maxTime := valid[0], valid[0]
	for _, d := range valid {
		total += d
		if d < minTime {
			minTime = d
		}
		if d > maxTime {
			maxTime = d
		}
	}
	mean := total / float64(len(valid))

	var variance float64
	for _, d := range valid {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(valid))

	cov := 0.0
	if mean > 0 {
		cov = math.Sqrt(variance) / mean
	}

	relevance := relevanceBase
	if venue.Rating > 0 {
		relevance += (venue.Rating / 10) * relevanceRatingWeight
	}
	if strings.Contains(strings.ToLower(venue.Category), strings.ToLower(intent.Category)) {
		relevance += relevanceCategoryBonus
	}

	return &RankedVenue{
		Venue:            venue,
		TravelTimes:      travelTimes,
		Variance:         variance,
		TotalTimeSeconds: total,
		MaxTimeSeconds:   maxTime,
		FairnessScore:    1 / (1 + cov),
		RelevanceScore:   relevance,
		Explanation:      explainSpread(minTime, maxTime, mean),
	}, nil
}

// explainSpread phrases the gap between the fastest and slowest reachable
// participant in three tiers.
func explainSpread(minTime, maxTime, mean float64) string {
	diffMinutes := int(math.Round((maxTime - minTime) / 60))
	avgMinutes := int(math.Round(mean / 60))

	switch {
	case diffMinutes <= 5:
		return fmt.Sprintf("Great fairness! Everyone arrives within 5 minutes of each other (avg %d min).", avgMinutes)
	case diffMinutes <= 10:
		return fmt.Sprintf("Good balance. Travel times differ by about %d minutes (avg %d min).", diffMinutes, avgMinutes)
	default:
		return fmt.Sprintf("Some variation in travel times (%d min difference, avg %d min).", diffMinutes, avgMinutes)
	}
}
