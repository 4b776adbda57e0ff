// Package geo provides the closed-form spherical math shared by the route
// planner, the distance calculator and the map builders.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Point is a WGS-84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HaversineKm computes the great-circle distance in kilometres between a and b.
func HaversineKm(a, b Point) float64 {
	const deg2rad = math.Pi / 180.0

	lat1 := a.Lat * deg2rad
	lat2 := b.Lat * deg2rad
	dLat := (b.Lat - a.Lat) * deg2rad
	dLon := (b.Lon - a.Lon) * deg2rad

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// Midpoint returns the arithmetic midpoint of a and b. Good enough for map
// centering; not an actual great-circle midpoint.
func Midpoint(a, b Point) Point {
	return Point{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}
}

// Centroid returns the arithmetic centroid of the given path.
// Returns the zero Point for an empty path.
func Centroid(path []Point) Point {
	if len(path) == 0 {
		return Point{}
	}
	var sumLat, sumLon float64
	for _, p := range path {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(path))
	return Point{Lat: sumLat / n, Lon: sumLon / n}
}

// Zoom levels for initial map framing. The thresholds mirror the dashboard's
// original behaviour: city scale for nearby endpoints, regional otherwise.
const (
	ZoomWorld    = 2
	ZoomRegional = 6
	ZoomCity     = 12
	ZoomStreet   = 15
)

// ZoomForDistance picks an initial zoom level for a map framing two points
// separated by the given great-circle distance.
func ZoomForDistance(km float64) int {
	if km < 500 {
		return ZoomCity
	}
	return ZoomRegional
}
