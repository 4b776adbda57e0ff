package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	cases := []struct {
		name   string
		a, b   Point
		wantKm float64
		tolKm  float64
	}{
		{
			// San Francisco → Los Angeles, the classic reference pair.
			name:   "sf_to_la",
			a:      Point{Lat: 37.7749, Lon: -122.4194},
			b:      Point{Lat: 34.0522, Lon: -118.2437},
			wantKm: 559,
			tolKm:  2,
		},
		{
			name:   "same_point",
			a:      Point{Lat: 31.5204, Lon: 74.3587},
			b:      Point{Lat: 31.5204, Lon: 74.3587},
			wantKm: 0,
			tolKm:  0.001,
		},
		{
			// Quarter of the equator.
			name:   "equator_quarter",
			a:      Point{Lat: 0, Lon: 0},
			b:      Point{Lat: 0, Lon: 90},
			wantKm: math.Pi * EarthRadiusKm / 2,
			tolKm:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.a, tc.b)
			if math.IsNaN(got) || got < 0 {
				t.Fatalf("invalid distance: %v", got)
			}
			if math.Abs(got-tc.wantKm) > tc.tolKm {
				t.Errorf("distance = %.3f km, want %.3f ± %.3f km", got, tc.wantKm, tc.tolKm)
			}
		})
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := Point{Lat: 31.5204, Lon: 74.3587}
	b := Point{Lat: 31.5010, Lon: 74.3440}
	if d1, d2 := HaversineKm(a, b), HaversineKm(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("haversine not symmetric: %v vs %v", d1, d2)
	}
}

func TestCentroid(t *testing.T) {
	path := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 2, Lon: 2},
		{Lat: 4, Lon: 1},
	}
	got := Centroid(path)
	if got.Lat != 2 || got.Lon != 1 {
		t.Errorf("centroid = %+v, want {2 1}", got)
	}

	if z := Centroid(nil); z != (Point{}) {
		t.Errorf("empty path centroid = %+v, want zero", z)
	}
}

func TestZoomForDistance(t *testing.T) {
	if z := ZoomForDistance(10); z != ZoomCity {
		t.Errorf("zoom for 10 km = %d, want %d", z, ZoomCity)
	}
	if z := ZoomForDistance(499.9); z != ZoomCity {
		t.Errorf("zoom for 499.9 km = %d, want %d", z, ZoomCity)
	}
	if z := ZoomForDistance(500); z != ZoomRegional {
		t.Errorf("zoom for 500 km = %d, want %d", z, ZoomRegional)
	}
}
