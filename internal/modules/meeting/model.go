// README: Domain entities for the fair meeting-point search.
package meeting

import (
	"errors"

	"midway/internal/places"
	"midway/internal/types"
)

// ErrTooFewParticipants is returned when the pipeline is invoked with fewer
// than two participants.
var ErrTooFewParticipants = errors.New("at least 2 participants required")

// Participant is a person joining the meeting, already geocoded. The core
// never sees unresolved addresses.
type Participant struct {
	Name     string
	Location types.Point
	Mode     types.TransportMode
}

// CandidatePoint is a trial location under evaluation. Candidates are
// ephemeral: recomputed every pass, never persisted. All statistics derive
// purely from the duration vector, so recomputation is deterministic.
type CandidatePoint struct {
	Location types.Point
	// TravelTimes holds one duration in seconds per participant, in the
	// participant order passed to the scorer.
	TravelTimes []float64
	TotalTime   float64
	MeanTime    float64
	MaxTime     float64
	Variance    float64
	// CoV is the coefficient of variation (stddev/mean), the scale-free
	// dispersion measure: lower is fairer.
	CoV float64
	// Combined is the weighted multi-objective score assigned by the
	// selector; higher is better.
	Combined float64
}

// TravelTimeResult is one participant's travel figures to one destination.
// Negative duration means no route was found and must never be compared
// numerically as a real duration.
type TravelTimeResult struct {
	ParticipantName string              `json:"participantName"`
	DurationSeconds float64             `json:"durationSeconds"`
	DistanceMeters  float64             `json:"distanceMeters"`
	Mode            types.TransportMode `json:"transportMode"`
}

// RankedVenue is a discovered venue enriched with per-participant travel
// analysis. Ordering over a result set is the final deliverable.
type RankedVenue struct {
	places.Venue
	TravelTimes      []TravelTimeResult `json:"travelTimes"`
	Variance         float64            `json:"varianceScore"`
	TotalTimeSeconds float64            `json:"totalTimeSeconds"`
	MaxTimeSeconds   float64            `json:"maxTimeSeconds"`
	// FairnessScore is 1/(1+CoV), bounded to (0, 1]; 1.0 means perfectly
	// equal travel times.
	FairnessScore  float64 `json:"fairnessScore"`
	RelevanceScore float64 `json:"relevanceScore"`
	Explanation    string  `json:"explanation"`
}

// SearchArea is the geographic focus handed to venue discovery.
type SearchArea struct {
	Center       types.Point `json:"center"`
	RadiusMeters int         `json:"radiusMeters"`
}

// Result is the outcome of a full meeting-point search.
type Result struct {
	Venues     []RankedVenue
	SearchArea SearchArea
}
