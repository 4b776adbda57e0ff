// Package maprender builds map specifications for the dashboard's rendering
// surface. A MapSpec is everything the browser needs to draw one map: a
// center and zoom for initial framing, an ordered path, markers and circles.
// The server never rasterizes anything itself.
package maprender

import (
	"fmt"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geo"
)

// Marker colors understood by the rendering surface.
const (
	ColorBlue  = "blue"
	ColorGreen = "green"
	ColorRed   = "red"
)

// Marker places a labelled pin on the map.
type Marker struct {
	Position geo.Point `json:"position"`
	Label    string    `json:"label"`
	Popup    string    `json:"popup,omitempty"`
	Color    string    `json:"color"`
	Icon     string    `json:"icon,omitempty"`
}

// Circle draws a filled circle, e.g. an accuracy or search radius.
type Circle struct {
	Center       geo.Point `json:"center"`
	RadiusMeters float64   `json:"radius_m"`
	Color        string    `json:"color"`
	FillOpacity  float64   `json:"fill_opacity"`
}

// MapSpec is one complete map definition.
type MapSpec struct {
	Title       string      `json:"title,omitempty"`
	Center      geo.Point   `json:"center"`
	Zoom        int         `json:"zoom"`
	Path        []geo.Point `json:"path,omitempty"`
	PathTooltip string      `json:"path_tooltip,omitempty"`
	Markers     []Marker    `json:"markers"`
	Circles     []Circle    `json:"circles,omitempty"`
}

// accuracyRadiusMeters is the radius of the circle drawn around a geocoded
// point to convey positional uncertainty.
const accuracyRadiusMeters = 100

// LocationMap frames a single geocoded location: one marker plus an accuracy
// circle.
func LocationMap(p geo.Point, popup string, zoom int) *MapSpec {
	return &MapSpec{
		Center: p,
		Zoom:   zoom,
		Markers: []Marker{
			{Position: p, Label: "Location", Popup: popup, Color: ColorBlue, Icon: "map-marker"},
		},
		Circles: []Circle{
			{Center: p, RadiusMeters: accuracyRadiusMeters, Color: "#3186cc", FillOpacity: 0.2},
		},
	}
}

// PointPairMap frames two labelled points with a straight connecting line,
// for the straight-line distance calculator.
func PointPairMap(a, b geo.Point, distanceKm float64) *MapSpec {
	return &MapSpec{
		Center:      geo.Midpoint(a, b),
		Zoom:        geo.ZoomForDistance(distanceKm),
		Path:        []geo.Point{a, b},
		PathTooltip: fmt.Sprintf("%.2f km", distanceKm),
		Markers: []Marker{
			{Position: a, Label: "Point A", Color: ColorBlue},
			{Position: b, Label: "Point B", Color: ColorBlue},
		},
	}
}

// RouteMap frames a routed path: centroid-centered, the full path as a
// polyline, and start/end markers on the path's own endpoints. The snapped
// path endpoints may differ slightly from the geocoded locations, so the
// markers follow the path, not the stored endpoints.
func RouteMap(path []geo.Point, startPopup, endPopup, tooltip, title string) *MapSpec {
	return &MapSpec{
		Title:       title,
		Center:      geo.Centroid(path),
		Zoom:        geo.ZoomCity,
		Path:        path,
		PathTooltip: tooltip,
		Markers: []Marker{
			{Position: path[0], Label: "Start", Popup: startPopup, Color: ColorGreen, Icon: "play"},
			{Position: path[len(path)-1], Label: "End", Popup: endPopup, Color: ColorRed, Icon: "flag-checkered"},
		},
	}
}
