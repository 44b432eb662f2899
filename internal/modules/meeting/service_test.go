package meeting

import (
	"context"
	"testing"

	"midway/internal/ai"
	"midway/internal/places"
	"midway/internal/routing"
	"midway/internal/types"
)

// distanceProvider makes travel time proportional to straight-line distance,
// so the fairest point is geometrically predictable.
func distanceProvider() *stubProvider {
	return &stubProvider{fn: func(sources, destinations []types.Point, _ types.TransportMode) (routing.Matrix, error) {
		m := routing.Matrix{}
		for _, s := range sources {
			durations := make([]float64, len(destinations))
			distances := make([]float64, len(destinations))
			for j, d := range destinations {
				km := haversineKm(s, d)
				durations[j] = km * 60 // one minute per kilometre
				distances[j] = km * 1000
			}
			m.Durations = append(m.Durations, durations)
			m.Distances = append(m.Distances, distances)
		}
		return m, nil
	}}
}

type stubVenues struct {
	nearby     []places.Venue
	nearbyErr  error
	text       []places.Venue
	nearbyGot  []int
	textRadius int
}

func (s *stubVenues) SearchNearby(_ context.Context, _ types.Point, radiusMeters int, _, _ string) ([]places.Venue, error) {
	s.nearbyGot = append(s.nearbyGot, radiusMeters)
	return s.nearby, s.nearbyErr
}

func (s *stubVenues) SearchText(_ context.Context, _ string, _ types.Point, radiusMeters int) ([]places.Venue, error) {
	s.textRadius = radiusMeters
	return s.text, nil
}

func serviceParticipants() []Participant {
	return []Participant{
		{Name: "A", Location: types.Point{Lat: 51.50, Lng: -0.12}, Mode: types.ModeDriving},
		{Name: "B", Location: types.Point{Lat: 51.52, Lng: -0.10}, Mode: types.ModeDriving},
		{Name: "C", Location: types.Point{Lat: 51.49, Lng: -0.14}, Mode: types.ModeDriving},
	}
}

func TestFindFairMeetingPoint(t *testing.T) {
	provider := distanceProvider()
	venues := &stubVenues{nearby: []places.Venue{
		{ID: "1", Name: "Cafe Near", Location: types.Point{Lat: 51.505, Lng: -0.12}, Category: "Cafe", Rating: 9},
		{ID: "2", Name: "Cafe Far", Location: types.Point{Lat: 51.52, Lng: -0.08}, Category: "Cafe", Rating: 7},
	}}
	svc := NewService(NewAggregator(provider, provider), venues, venueWeights)

	res, err := svc.FindFairMeetingPoint(context.Background(), serviceParticipants(), ai.InterpretedIntent{Category: "cafe"})
	if err != nil {
		t.Fatalf("FindFairMeetingPoint: %v", err)
	}

	if res.SearchArea.RadiusMeters != venueSearchRadiusMeters {
		t.Errorf("radius = %d, want %d", res.SearchArea.RadiusMeters, venueSearchRadiusMeters)
	}

	// The winner should stay within the participant area, not drift off to a
	// grid edge 20 km away.
	c := centroid(serviceParticipants())
	if d := haversineKm(c, res.SearchArea.Center); d > 5 {
		t.Errorf("meeting point %.1f km from centroid", d)
	}

	if len(res.Venues) != 2 {
		t.Fatalf("got %d venues, want 2", len(res.Venues))
	}
	for _, v := range res.Venues {
		if len(v.TravelTimes) != 3 {
			t.Errorf("venue %s has %d travel times, want 3", v.Name, len(v.TravelTimes))
		}
		if v.Explanation == "" {
			t.Errorf("venue %s has no explanation", v.Name)
		}
	}
}

func TestFindFairMeetingPointTooFew(t *testing.T) {
	svc := NewService(NewAggregator(distanceProvider(), distanceProvider()), &stubVenues{}, venueWeights)
	_, err := svc.FindFairMeetingPoint(context.Background(), serviceParticipants()[:1], ai.InterpretedIntent{Category: "cafe"})
	if err != ErrTooFewParticipants {
		t.Errorf("err = %v, want ErrTooFewParticipants", err)
	}
}

func TestFindFairMeetingPointCentroidFallback(t *testing.T) {
	// Every matrix entry is unreachable: no candidate survives scoring, so
	// the search degrades to the centroid instead of failing.
	provider := &stubProvider{fn: func(sources, destinations []types.Point, _ types.TransportMode) (routing.Matrix, error) {
		m := routing.Matrix{}
		for range sources {
			durations := make([]float64, len(destinations))
			distances := make([]float64, len(destinations))
			for j := range destinations {
				durations[j] = -1
				distances[j] = -1
			}
			m.Durations = append(m.Durations, durations)
			m.Distances = append(m.Distances, distances)
		}
		return m, nil
	}}
	venues := &stubVenues{nearby: []places.Venue{{ID: "1", Name: "Spot", Location: types.Point{Lat: 51.5, Lng: -0.12}}}}
	svc := NewService(NewAggregator(provider, provider), venues, venueWeights)

	res, err := svc.FindFairMeetingPoint(context.Background(), serviceParticipants(), ai.InterpretedIntent{Category: "cafe"})
	if err != nil {
		t.Fatalf("FindFairMeetingPoint: %v", err)
	}

	c := centroid(serviceParticipants())
	if res.SearchArea.Center != c {
		t.Errorf("center = %+v, want centroid %+v", res.SearchArea.Center, c)
	}
	// The only venue is unreachable by everyone, so ranking drops it.
	if len(res.Venues) != 0 {
		t.Errorf("got %d venues, want 0", len(res.Venues))
	}
}

func TestFindFairMeetingPointWidensSearch(t *testing.T) {
	provider := distanceProvider()
	venues := &stubVenues{
		nearby: nil,
		text:   []places.Venue{{ID: "1", Name: "Distant Cafe", Location: types.Point{Lat: 51.51, Lng: -0.11}, Category: "Cafe"}},
	}
	svc := NewService(NewAggregator(provider, provider), venues, venueWeights)

	res, err := svc.FindFairMeetingPoint(context.Background(), serviceParticipants(), ai.InterpretedIntent{Category: "cafe"})
	if err != nil {
		t.Fatalf("FindFairMeetingPoint: %v", err)
	}
	if venues.textRadius != 2*venueSearchRadiusMeters {
		t.Errorf("text search radius = %d, want doubled %d", venues.textRadius, 2*venueSearchRadiusMeters)
	}
	if res.SearchArea.RadiusMeters != 2*venueSearchRadiusMeters {
		t.Errorf("reported radius = %d, want the widened one", res.SearchArea.RadiusMeters)
	}
	if len(res.Venues) != 1 {
		t.Errorf("got %d venues, want the text-search one", len(res.Venues))
	}
}

func TestRefineStaysNearCoarseWinners(t *testing.T) {
	provider := distanceProvider()
	agg := NewAggregator(provider, provider)
	svc := NewService(agg, &stubVenues{}, venueWeights)

	participants := serviceParticipants()
	names := []string{"A", "B", "C"}
	center := centroid(participants)

	best, err := svc.refine(context.Background(), participants, names, center)
	if err != nil {
		t.Fatalf("refine: %v", err)
	}

	// The fine pass only explores small grids around the top coarse
	// candidates, so the winner must sit inside one of them.
	coarse := candidateGrid(center, coarseRadiusKm, gridSize)
	durations, err := agg.Durations(context.Background(), participants, coarse)
	if err != nil {
		t.Fatalf("Durations: %v", err)
	}
	topCoarse := selectTop(scoreCandidates(coarse, durations, names), topCoarseCandidates, venueWeights)

	maxKm := fineRadiusKm * 1.5
	near := false
	for _, c := range topCoarse {
		if haversineKm(c.Location, best) <= maxKm {
			near = true
			break
		}
	}
	if !near {
		t.Errorf("refined point %+v is outside every fine grid", best)
	}
}
