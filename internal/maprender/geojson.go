package maprender

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ToGeoJSON converts a MapSpec into a GeoJSON FeatureCollection: the path as
// a LineString, each marker as a Point, each circle as a Point carrying its
// radius. This is the export format of the save-map operation.
func ToGeoJSON(spec *MapSpec) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	if len(spec.Path) >= 2 {
		ls := make(orb.LineString, len(spec.Path))
		for i, p := range spec.Path {
			ls[i] = orb.Point{p.Lon, p.Lat}
		}
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = "path"
		if spec.PathTooltip != "" {
			f.Properties["tooltip"] = spec.PathTooltip
		}
		fc.Append(f)
	}

	for _, m := range spec.Markers {
		f := geojson.NewFeature(orb.Point{m.Position.Lon, m.Position.Lat})
		f.Properties["kind"] = "marker"
		f.Properties["label"] = m.Label
		f.Properties["color"] = m.Color
		if m.Popup != "" {
			f.Properties["popup"] = m.Popup
		}
		fc.Append(f)
	}

	for _, c := range spec.Circles {
		f := geojson.NewFeature(orb.Point{c.Center.Lon, c.Center.Lat})
		f.Properties["kind"] = "circle"
		f.Properties["radius_m"] = c.RadiusMeters
		f.Properties["color"] = c.Color
		fc.Append(f)
	}

	if spec.Title != "" {
		fc.ExtraMembers = map[string]interface{}{"title": spec.Title}
	}

	b, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("maprender: marshal feature collection: %w", err)
	}
	return b, nil
}

// Export writes the spec as GeoJSON into dir under a timestamped filename and
// returns the full path.
func Export(spec *MapSpec, dir string) (string, error) {
	b, err := ToGeoJSON(spec)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("maprender: create export dir: %w", err)
	}

	name := fmt.Sprintf("route_map_%s.geojson", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("maprender: write %s: %w", path, err)
	}
	return path, nil
}
