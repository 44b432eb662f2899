// README: Fair meeting-point search handler (the main pipeline endpoint).
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"midway/internal/ai"
	"midway/internal/modules/meeting"
	"midway/internal/types"
)

// MeetingPlanner runs the full meeting-point search.
type MeetingPlanner interface {
	FindFairMeetingPoint(ctx context.Context, participants []meeting.Participant, intent ai.InterpretedIntent) (*meeting.Result, error)
}

type MeetingHandler struct {
	planner    MeetingPlanner
	resolver   AddressResolver
	classifier ai.IntentClassifier
}

func NewMeetingHandler(planner MeetingPlanner, resolver AddressResolver, classifier ai.IntentClassifier) *MeetingHandler {
	return &MeetingHandler{planner: planner, resolver: resolver, classifier: classifier}
}

type participantReq struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	TransportMode string `json:"transportMode"`
}

type findMiddleReq struct {
	Participants []participantReq `json:"participants"`
	Intent       string           `json:"intent"`
}

type participantLocation struct {
	Name          string              `json:"name"`
	Location      types.Point         `json:"location"`
	TransportMode types.TransportMode `json:"transportMode"`
}

type findMiddleResp struct {
	RecommendedVenues    []meeting.RankedVenue `json:"recommendedVenues"`
	SearchArea           meeting.SearchArea    `json:"searchArea"`
	MeetingPointAddress  string                `json:"meetingPointAddress"`
	ParticipantLocations []participantLocation `json:"participantLocations"`
}

// FindMiddle handles POST /api/find-middle: geocode everyone, classify the
// intent text, then run the search pipeline.
func (h *MeetingHandler) FindMiddle(c *gin.Context) {
	var req findMiddleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Participants) < 2 {
		writeError(c, http.StatusBadRequest, "at least 2 participants required")
		return
	}
	for i := range req.Participants {
		req.Participants[i].Name = strings.TrimSpace(req.Participants[i].Name)
		req.Participants[i].Address = strings.TrimSpace(req.Participants[i].Address)
		if req.Participants[i].Name == "" || req.Participants[i].Address == "" {
			writeError(c, http.StatusBadRequest, fmt.Sprintf("participant %d missing name or address", i+1))
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	participants := make([]meeting.Participant, 0, len(req.Participants))
	locations := make([]participantLocation, 0, len(req.Participants))
	for _, p := range req.Participants {
		mode, err := types.ParseTransportMode(p.TransportMode)
		if err != nil {
			writeError(c, http.StatusBadRequest, fmt.Sprintf("%s: %v", p.Name, err))
			return
		}

		res, err := h.resolver.Resolve(ctx, p.Address)
		if err != nil {
			writeGeocodeError(c, p.Name, err)
			return
		}

		participants = append(participants, meeting.Participant{
			Name:     p.Name,
			Location: res.Location,
			Mode:     mode,
		})
		locations = append(locations, participantLocation{
			Name:          p.Name,
			Location:      res.Location,
			TransportMode: mode,
		})
	}

	intent, err := h.classifier.ClassifyIntent(ctx, req.Intent)
	if err != nil {
		writeError(c, http.StatusBadGateway, "intent service unavailable")
		return
	}

	result, err := h.planner.FindFairMeetingPoint(ctx, participants, intent)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if len(result.Venues) == 0 {
		writeError(c, http.StatusNotFound, "no venues found near the meeting point")
		return
	}

	writeJSON(c, http.StatusOK, findMiddleResp{
		RecommendedVenues:    result.Venues,
		SearchArea:           result.SearchArea,
		MeetingPointAddress:  h.resolver.Reverse(ctx, result.SearchArea.Center),
		ParticipantLocations: locations,
	})
}
