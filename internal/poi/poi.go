// Package poi generates simulated points of interest around a center.
//
// This is demo data, not a real feature: there is no POI data source behind
// it. Points are scattered randomly inside the requested radius and labelled
// by category. It exists so the dashboard's POI browser has something to
// draw; replace the Generator wholesale if a real provider ever lands.
package poi

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/mmcloughlin/geohash"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geo"
)

// Categories accepted by the browser.
var Categories = []string{
	"restaurant", "hotel", "attraction",
	"museum", "park", "shopping_mall",
	"cafe", "bar", "landmark",
}

// maxResults caps one generation batch.
const maxResults = 10

// kmPerDegree approximates one degree of latitude in kilometres, used to
// scatter points. Good enough for demo data.
const kmPerDegree = 111.32

// poiGeohashPrecision gives ~±76 m cells, tight enough that two scattered
// points almost never collide on an ID.
const poiGeohashPrecision = 9

// POI is one simulated point of interest.
type POI struct {
	// ID is the geohash of the point's coordinates.
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Address    string  `json:"address"`
	DistanceKm float64 `json:"distance_km"`
}

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Generator scatters simulated POIs. Not safe for concurrent use; callers
// hold one per request or guard it themselves.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator with the given seed. Fixed seeds give
// reproducible scatters in tests.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate scatters up to min(count, 10) POIs of the given category within
// radiusKm of center, sorted nearest first.
func (g *Generator) Generate(center geo.Point, radiusKm float64, category string, count int) []POI {
	if count > maxResults {
		count = maxResults
	}
	if count < 0 {
		count = 0
	}

	title := titleCase(category)
	out := make([]POI, 0, count)
	for i := 0; i < count; i++ {
		angle := g.rng.Float64() * 2 * math.Pi
		dist := g.rng.Float64() * radiusKm / kmPerDegree

		lat := center.Lat + dist*math.Cos(angle)
		lon := center.Lon + dist*math.Sin(angle)

		p := geo.Point{Lat: lat, Lon: lon}
		out = append(out, POI{
			ID:         geohash.EncodeWithPrecision(lat, lon, poiGeohashPrecision),
			Name:       fmt.Sprintf("%s %d", title, i+1),
			Category:   category,
			Lat:        lat,
			Lon:        lon,
			Address:    fmt.Sprintf("Simulated address for %s %d", category, i+1),
			DistanceKm: geo.HaversineKm(center, p),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}

// titleCase uppercases the first letter; categories are ASCII.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
