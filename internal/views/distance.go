package views

import (
	"fmt"
	"math"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"
)

// RenderDistance extracts the travel distance from the record and renders it
// in kilometres with two-decimal precision.
func RenderDistance(rec *routing.RouteRecord) (string, *ViewError) {
	if rec == nil {
		return "", errNoRoute()
	}
	if !validMeasure(rec.DistanceMeters) {
		return "", errMissingField("distance_meters")
	}
	return fmt.Sprintf("%.2f km", rec.DistanceMeters/1000), nil
}

// validMeasure rejects the values a provider bug or a hand-built record could
// smuggle into a non-negative measure field.
func validMeasure(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
