package views

import (
	"fmt"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/maprender"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"
)

// RenderMap builds the route map specification from the record's encoded
// geometry. The geometry is re-decoded here rather than trusting Path, so a
// record whose stored encoding is broken degrades cleanly instead of drawing
// garbage. title is optional; empty means a generated default.
func RenderMap(rec *routing.RouteRecord, title string) (*maprender.MapSpec, *ViewError) {
	if rec == nil {
		return nil, errNoRoute()
	}
	if rec.Geometry == "" {
		return nil, errMissingField("encoded_geometry")
	}

	path, err := routing.DecodePath(rec.Geometry)
	if err != nil {
		return nil, errMissingField("encoded_geometry")
	}
	if len(path) < 2 {
		return nil, &ViewError{Kind: NotEnoughPoints}
	}

	if title == "" {
		title = fmt.Sprintf("%s route: %s to %s", rec.Mode, rec.StartAddress, rec.EndAddress)
	}

	tooltip := ""
	if validMeasure(rec.DistanceMeters) && validMeasure(rec.DurationSeconds) {
		tooltip = fmt.Sprintf("%.1f km, %s", rec.DistanceMeters/1000, FormatDuration(rec.DurationSeconds))
	}

	return maprender.RouteMap(path, rec.StartAddress, rec.EndAddress, tooltip, title), nil
}
