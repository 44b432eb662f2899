// README: Handler tests for the meeting-point endpoint.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"midway/internal/ai"
	"midway/internal/geocode"
	"midway/internal/http/handlers"
	"midway/internal/modules/meeting"
	"midway/internal/places"
	"midway/internal/types"
)

type stubResolver struct {
	results map[string]geocode.Result
	err     error
}

func (s *stubResolver) Resolve(_ context.Context, address string) (geocode.Result, error) {
	if s.err != nil {
		return geocode.Result{}, s.err
	}
	if r, ok := s.results[address]; ok {
		return r, nil
	}
	return geocode.Result{}, geocode.ErrNotFound
}

func (s *stubResolver) Reverse(_ context.Context, _ types.Point) string {
	return "Central London"
}

type stubPlanner struct {
	result *meeting.Result
	err    error
	got    []meeting.Participant
}

func (s *stubPlanner) FindFairMeetingPoint(_ context.Context, participants []meeting.Participant, _ ai.InterpretedIntent) (*meeting.Result, error) {
	s.got = participants
	return s.result, s.err
}

func buildRouter(planner handlers.MeetingPlanner, resolver handlers.AddressResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewMeetingHandler(planner, resolver, ai.NewKeywordClassifier())
	r.POST("/api/find-middle", h.FindMiddle)
	return r
}

func doFindMiddle(r *gin.Engine, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/find-middle", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validRequest() map[string]any {
	return map[string]any{
		"participants": []map[string]any{
			{"name": "Alice", "address": "1 Main St", "transportMode": "driving"},
			{"name": "Bob", "address": "2 High St", "transportMode": "transit"},
		},
		"intent": "grab a coffee",
	}
}

func workingResolver() *stubResolver {
	return &stubResolver{results: map[string]geocode.Result{
		"1 Main St": {Location: types.Point{Lat: 51.50, Lng: -0.12}, DisplayName: "1 Main St, London"},
		"2 High St": {Location: types.Point{Lat: 51.52, Lng: -0.10}, DisplayName: "2 High St, London"},
	}}
}

func TestFindMiddle_OK(t *testing.T) {
	planner := &stubPlanner{result: &meeting.Result{
		Venues: []meeting.RankedVenue{{
			Venue:       places.Venue{ID: "v1", Name: "Coffee Corner", Category: "Cafe"},
			Explanation: "Great fairness! Everyone arrives within 5 minutes of each other (avg 10 min).",
		}},
		SearchArea: meeting.SearchArea{Center: types.Point{Lat: 51.51, Lng: -0.11}, RadiusMeters: 3000},
	}}
	r := buildRouter(planner, workingResolver())

	w := doFindMiddle(r, validRequest())
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		RecommendedVenues []meeting.RankedVenue `json:"recommendedVenues"`
		SearchArea        meeting.SearchArea    `json:"searchArea"`
		ParticipantLocations []struct {
			Name string `json:"name"`
		} `json:"participantLocations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.RecommendedVenues) != 1 || resp.RecommendedVenues[0].Name != "Coffee Corner" {
		t.Errorf("venues = %+v", resp.RecommendedVenues)
	}
	if resp.SearchArea.RadiusMeters != 3000 {
		t.Errorf("radius = %d", resp.SearchArea.RadiusMeters)
	}
	if len(resp.ParticipantLocations) != 2 || resp.ParticipantLocations[0].Name != "Alice" {
		t.Errorf("participant locations = %+v", resp.ParticipantLocations)
	}

	if len(planner.got) != 2 || planner.got[1].Mode != types.ModeTransit {
		t.Errorf("planner received %+v", planner.got)
	}
}

func TestFindMiddle_TooFewParticipants(t *testing.T) {
	r := buildRouter(&stubPlanner{}, workingResolver())
	w := doFindMiddle(r, map[string]any{
		"participants": []map[string]any{
			{"name": "Alice", "address": "1 Main St", "transportMode": "driving"},
		},
		"intent": "coffee",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}

func TestFindMiddle_BadTransportMode(t *testing.T) {
	r := buildRouter(&stubPlanner{}, workingResolver())
	req := validRequest()
	req["participants"].([]map[string]any)[0]["transportMode"] = "teleport"
	w := doFindMiddle(r, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}

func TestFindMiddle_UnknownAddress(t *testing.T) {
	r := buildRouter(&stubPlanner{}, &stubResolver{results: map[string]geocode.Result{}})
	w := doFindMiddle(r, validRequest())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "could not locate address for Alice" {
		t.Errorf("error = %q, want the participant named", resp.Error)
	}
}

func TestFindMiddle_GeocodeUpstreamDown(t *testing.T) {
	r := buildRouter(&stubPlanner{}, &stubResolver{err: geocode.ErrUpstream})
	w := doFindMiddle(r, validRequest())
	if w.Code != http.StatusBadGateway {
		t.Errorf("got %d, want 502", w.Code)
	}
}

func TestFindMiddle_NoVenues(t *testing.T) {
	planner := &stubPlanner{result: &meeting.Result{
		SearchArea: meeting.SearchArea{Center: types.Point{Lat: 51.51, Lng: -0.11}, RadiusMeters: 6000},
	}}
	r := buildRouter(planner, workingResolver())
	w := doFindMiddle(r, validRequest())
	if w.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", w.Code)
	}
}
