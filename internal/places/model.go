// README: Venue discovery collaborator types.
package places

import (
	"errors"

	"midway/internal/types"
)

// ErrUpstream marks a places provider failure.
var ErrUpstream = errors.New("places provider unavailable")

// Venue is a simplified place result from a discovery provider.
type Venue struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Address  string      `json:"address"`
	Location types.Point `json:"location"`
	Category string      `json:"category"`
	// Rating is the provider's score; 0 means no rating available.
	Rating float64 `json:"rating,omitempty"`
}

// Providers return at most this many venues per search.
const maxResults = 20
