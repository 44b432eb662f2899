// README: Travel-time matrix collaborator contracts shared by ORS and Google providers.
package routing

import (
	"context"
	"errors"

	"midway/internal/types"
)

// ErrUpstream marks a routing provider failure so callers can surface it as a
// 502-class condition instead of an internal error. Retry policy, if any,
// belongs to the caller.
var ErrUpstream = errors.New("routing provider unavailable")

// Matrix holds many-to-many travel figures. Durations are seconds, distances
// meters. A negative entry means no route was found between that pair.
type Matrix struct {
	Durations [][]float64
	Distances [][]float64
}

// MatrixProvider computes a travel matrix from every source to every
// destination in a single call. Batching is required: callers evaluate whole
// candidate grids at once and must not fan out per destination.
type MatrixProvider interface {
	ComputeMatrix(ctx context.Context, sources, destinations []types.Point, mode types.TransportMode) (Matrix, error)
}
