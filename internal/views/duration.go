package views

import (
	"fmt"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"
)

// RenderDuration extracts the travel time from the record and renders it as a
// tiered human-readable string.
func RenderDuration(rec *routing.RouteRecord) (string, *ViewError) {
	if rec == nil {
		return "", errNoRoute()
	}
	if !validMeasure(rec.DurationSeconds) {
		return "", errMissingField("duration_seconds")
	}
	return FormatDuration(rec.DurationSeconds), nil
}

// FormatDuration renders a duration in seconds as one of three tiers:
//
//	< 60 s   → "N sec"
//	< 3600 s → "M min S sec"
//	≥ 3600 s → "H h M min"
//
// Each component truncates toward zero; nothing is rounded up.
func FormatDuration(seconds float64) string {
	s := int(seconds)
	switch {
	case s < 60:
		return fmt.Sprintf("%d sec", s)
	case s < 3600:
		return fmt.Sprintf("%d min %d sec", s/60, s%60)
	default:
		rem := s % 3600
		return fmt.Sprintf("%d h %d min", s/3600, rem/60)
	}
}
