// README: Transport mode enumeration shared by routing and the meeting core.
package types

import "fmt"

// TransportMode is how a participant travels to the meeting point.
type TransportMode string

const (
	ModeDriving TransportMode = "driving"
	ModeWalking TransportMode = "walking"
	ModeCycling TransportMode = "cycling"
	ModeTransit TransportMode = "transit"
)

// ParseTransportMode validates a raw mode string from the API.
func ParseTransportMode(s string) (TransportMode, error) {
	switch TransportMode(s) {
	case ModeDriving, ModeWalking, ModeCycling, ModeTransit:
		return TransportMode(s), nil
	}
	return "", fmt.Errorf("unknown transport mode %q", s)
}
