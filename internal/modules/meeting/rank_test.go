package meeting

import (
	"context"
	"errors"
	"strings"
	"testing"

	"midway/internal/ai"
	"midway/internal/config"
	"midway/internal/places"
	"midway/internal/routing"
	"midway/internal/types"
)

var venueWeights = config.ScoringConfig{
	VarianceWeight:       0.5,
	TotalTimeWeight:      0.3,
	MaxTimeWeight:        0.2,
	VenueFairnessWeight:  0.5,
	VenueTotalTimeWeight: 0.3,
	VenueRelevanceWeight: 0.2,
}

// durationsByVenue keys stub durations on the destination latitude so each
// venue gets its own row.
func rankService(t *testing.T, durationsByVenue map[float64][]float64) *Service {
	t.Helper()
	provider := &stubProvider{fn: func(sources, destinations []types.Point, _ types.TransportMode) (routing.Matrix, error) {
		row, ok := durationsByVenue[destinations[0].Lat]
		if !ok {
			return routing.Matrix{}, errors.New("unexpected destination")
		}
		m := routing.Matrix{}
		for i := range sources {
			m.Durations = append(m.Durations, []float64{row[i]})
			m.Distances = append(m.Distances, []float64{row[i] * 10})
		}
		return m, nil
	}}
	return NewService(NewAggregator(provider, provider), nil, venueWeights)
}

func rankParticipants(n int) []Participant {
	names := []string{"A", "B", "C"}
	ps := make([]Participant, n)
	for i := range ps {
		ps[i] = Participant{Name: names[i], Mode: types.ModeDriving, Location: types.Point{Lat: 51.5, Lng: -0.1 * float64(i)}}
	}
	return ps
}

func TestExplainSpreadTiers(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantPart string
	}{
		{"tight spread", 300, 540, "Great fairness!"},
		{"moderate spread", 300, 900, "Good balance."},
		{"wide spread", 300, 1200, "Some variation"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := explainSpread(tc.min, tc.max, (tc.min+tc.max)/2)
			if !strings.HasPrefix(got, tc.wantPart) {
				t.Errorf("explanation %q, want prefix %q", got, tc.wantPart)
			}
		})
	}
}

func TestEnrichVenueScores(t *testing.T) {
	svc := rankService(t, map[float64][]float64{10: {600, 600, 600}})
	venue := places.Venue{Name: "Cafe One", Location: types.Point{Lat: 10}, Category: "Cafe", Rating: 8}
	intent := ai.InterpretedIntent{Category: "cafe"}

	rv, err := svc.enrichVenue(context.Background(), venue, rankParticipants(3), intent)
	if err != nil {
		t.Fatalf("enrichVenue: %v", err)
	}
	if rv == nil {
		t.Fatal("venue dropped unexpectedly")
	}
	if rv.FairnessScore != 1 {
		t.Errorf("fairness = %f, want 1 for equal times", rv.FairnessScore)
	}
	if rv.TotalTimeSeconds != 1800 || rv.MaxTimeSeconds != 600 {
		t.Errorf("total/max = %f/%f", rv.TotalTimeSeconds, rv.MaxTimeSeconds)
	}
	// 0.5 base + 0.8*0.3 rating + 0.2 category match.
	want := 0.5 + 0.24 + 0.2
	if diff := rv.RelevanceScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("relevance = %f, want %f", rv.RelevanceScore, want)
	}
	if !strings.HasPrefix(rv.Explanation, "Great fairness!") {
		t.Errorf("explanation = %q", rv.Explanation)
	}
}

func TestEnrichVenueUnratedNoMatch(t *testing.T) {
	svc := rankService(t, map[float64][]float64{10: {600, 900, 1200}})
	venue := places.Venue{Name: "Hall", Location: types.Point{Lat: 10}, Category: "Event Space"}
	intent := ai.InterpretedIntent{Category: "cafe"}

	rv, err := svc.enrichVenue(context.Background(), venue, rankParticipants(3), intent)
	if err != nil {
		t.Fatalf("enrichVenue: %v", err)
	}
	if rv.RelevanceScore != 0.5 {
		t.Errorf("relevance = %f, want base 0.5", rv.RelevanceScore)
	}
}

func TestEnrichVenueIgnoresUnreachable(t *testing.T) {
	svc := rankService(t, map[float64][]float64{10: {600, -1, 600}})
	venue := places.Venue{Name: "Cafe", Location: types.Point{Lat: 10}}

	rv, err := svc.enrichVenue(context.Background(), venue, rankParticipants(3), ai.InterpretedIntent{Category: "cafe"})
	if err != nil {
		t.Fatalf("enrichVenue: %v", err)
	}
	if rv.TotalTimeSeconds != 1200 {
		t.Errorf("total = %f, want 1200 over reachable subset", rv.TotalTimeSeconds)
	}
	if rv.Variance != 0 {
		t.Errorf("variance = %f, want 0 over reachable subset", rv.Variance)
	}
	if len(rv.TravelTimes) != 3 {
		t.Errorf("travel times = %d entries, want all 3 participants reported", len(rv.TravelTimes))
	}
}

func TestEnrichVenueAllUnreachable(t *testing.T) {
	svc := rankService(t, map[float64][]float64{10: {-1, -1, -1}})
	venue := places.Venue{Name: "Island", Location: types.Point{Lat: 10}}

	rv, err := svc.enrichVenue(context.Background(), venue, rankParticipants(3), ai.InterpretedIntent{Category: "cafe"})
	if err != nil {
		t.Fatalf("enrichVenue: %v", err)
	}
	if rv != nil {
		t.Errorf("venue kept despite no reachable participant: %+v", rv)
	}
}

func TestRankVenuesOrdersAndTruncates(t *testing.T) {
	byVenue := map[float64][]float64{}
	venues := make([]places.Venue, 12)
	for i := range venues {
		lat := float64(i + 1)
		venues[i] = places.Venue{Name: "V", Location: types.Point{Lat: lat}, Category: "Cafe"}
		// Later venues get increasingly uneven travel times.
		byVenue[lat] = []float64{600, 600 + float64(i)*120, 600 + float64(i)*240}
	}

	svc := rankService(t, byVenue)
	ranked, err := svc.rankVenues(context.Background(), venues, rankParticipants(3), ai.InterpretedIntent{Category: "cafe"})
	if err != nil {
		t.Fatalf("rankVenues: %v", err)
	}
	if len(ranked) != maxVenues {
		t.Fatalf("got %d venues, want truncation to %d", len(ranked), maxVenues)
	}
	for i := 1; i < len(ranked); i++ {
		prev := venueSortScore(ranked[i-1], 0.5, 0.3, 0.2)
		cur := venueSortScore(ranked[i], 0.5, 0.3, 0.2)
		if cur > prev {
			t.Errorf("ranking not descending at %d: %f then %f", i, prev, cur)
		}
	}
	if ranked[0].Location.Lat != 1 {
		t.Errorf("best venue lat = %f, want the most even one", ranked[0].Location.Lat)
	}
}

func TestRankVenuesSurvivesSingleFailure(t *testing.T) {
	svc := rankService(t, map[float64][]float64{
		10: {600, 700, 800},
		// lat 20 missing: that venue's matrix call errors.
	})
	venues := []places.Venue{
		{Name: "Good", Location: types.Point{Lat: 10}},
		{Name: "Broken", Location: types.Point{Lat: 20}},
	}

	ranked, err := svc.rankVenues(context.Background(), venues, rankParticipants(3), ai.InterpretedIntent{Category: "cafe"})
	if err != nil {
		t.Fatalf("rankVenues: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Name != "Good" {
		t.Errorf("ranked = %+v, want only the working venue", ranked)
	}
}
