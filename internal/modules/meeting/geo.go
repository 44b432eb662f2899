// Package meeting — geo contains pure geographic computation helpers.
//
// Grid generation works on a local planar approximation of lat/lng, which is
// accurate enough at city scale. toOffsetDegrees isolates the conversion so a
// geodesic calculation could be substituted without touching grid logic.
package meeting

import (
	"math"

	"midway/internal/types"
)

const (
	earthRadiusKm = 6371.0
	kmPerDegree   = 111.0
)

// centroid returns the arithmetic mean of participant coordinates. No
// spherical correction; acceptable at city/regional scale.
func centroid(participants []Participant) types.Point {
	var sumLat, sumLng float64
	for _, p := range participants {
		sumLat += p.Location.Lat
		sumLng += p.Location.Lng
	}
	n := float64(len(participants))
	return types.Point{Lat: sumLat / n, Lng: sumLng / n}
}

// toOffsetDegrees converts a kilometre offset at the given latitude into
// degree offsets. Latitude is clamped away from the poles so the longitude
// scale never divides by zero.
func toOffsetDegrees(km, atLatitude float64) (dLat, dLng float64) {
	lat := math.Max(-89.9, math.Min(89.9, atLatitude))
	dLat = km / kmPerDegree
	dLng = km / (kmPerDegree * math.Cos(lat*math.Pi/180))
	return dLat, dLng
}

// candidateGrid produces the center followed by a gridSize×gridSize lattice
// of offsets spanning ±radiusKm. The center cell of the lattice is skipped so
// the exact center appears exactly once, as the first element.
func candidateGrid(center types.Point, radiusKm float64, gridSize int) []types.Point {
	candidates := []types.Point{center}
	stepKm := (2 * radiusKm) / float64(gridSize)
	half := gridSize / 2

	for i := -half; i <= half; i++ {
		for j := -half; j <= half; j++ {
			if i == 0 && j == 0 {
				continue
			}
			dLat, _ := toOffsetDegrees(float64(i)*stepKm, center.Lat)
			_, dLng := toOffsetDegrees(float64(j)*stepKm, center.Lat)
			candidates = append(candidates, types.Point{
				Lat: center.Lat + dLat,
				Lng: center.Lng + dLng,
			})
		}
	}
	return candidates
}

// Lattice points closer than this in both axes are considered the same
// location (~11 m at the equator).
const dedupeEpsilonDeg = 1e-4

// dedupePoints drops points whose latitude and longitude both differ by less
// than epsilon from an already-kept point. Fine grids around neighboring
// coarse winners overlap at their edges; exact equality would miss those
// near-duplicates. Idempotent: running it on its own output changes nothing.
func dedupePoints(points []types.Point) []types.Point {
	kept := make([]types.Point, 0, len(points))
	for _, p := range points {
		dup := false
		for _, k := range kept {
			if math.Abs(p.Lat-k.Lat) < dedupeEpsilonDeg && math.Abs(p.Lng-k.Lng) < dedupeEpsilonDeg {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, p)
		}
	}
	return kept
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
