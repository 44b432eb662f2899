// README: Common geographic point value object used across modules.
package types

// Point is a location on the earth in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
