// Package geo provides great-circle distance math for location scoring.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Point is a coordinate pair. Either component may be missing.
type Point struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Complete reports whether both coordinates are present.
func (p *Point) Complete() bool {
	return p != nil && p.Lat != nil && p.Lon != nil
}

// Distance returns the haversine distance between two points in kilometers.
// Returns nil when either point or any coordinate is missing; it never
// fails on bad input.
func Distance(origin, dest *Point) *float64 {
	if !origin.Complete() || !dest.Complete() {
		return nil
	}

	lat1 := toRad(*origin.Lat)
	lat2 := toRad(*dest.Lat)
	dLat := toRad(*dest.Lat - *origin.Lat)
	dLon := toRad(*dest.Lon - *origin.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	km := earthRadiusKm * c
	return &km
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
