package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gopolyline "github.com/twpayne/go-polyline"
)

// encodePath builds a valid encoded polyline for fake provider responses.
func encodePath(coords [][]float64) string {
	return string(gopolyline.EncodeCoords(coords))
}

func okResponse(geometry string, distance, duration float64) string {
	resp := map[string]any{
		"code": "Ok",
		"routes": []any{
			map[string]any{
				"geometry": geometry,
				"distance": distance,
				"duration": duration,
				"legs": []any{
					map[string]any{
						"steps": []any{
							map[string]any{"name": "Canal Bank Road", "maneuver": map[string]any{"type": "depart"}},
							map[string]any{"name": "Mall Road", "maneuver": map[string]any{"type": "turn", "modifier": "left"}},
							map[string]any{"name": "", "maneuver": map[string]any{"type": "arrive"}},
						},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestOSRM_Route_Success(t *testing.T) {
	geometry := encodePath([][]float64{{31.58, 74.38}, {31.56, 74.36}, {31.52, 74.32}})

	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, okResponse(geometry, 8240.5, 1130.2))
	}))
	defer srv.Close()

	router := NewOSRMRouter(WithOSRMBaseURL(srv.URL))
	rec, err := router.Route(context.Background(), RouteRequest{
		StartLat: 31.58, StartLon: 74.38, StartAddress: "Mughalpura, Lahore",
		EndLat: 31.52, EndLon: 74.32, EndAddress: "Garden Town, Lahore",
		Mode: ModeDriving,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/route/v1/car/") {
		t.Errorf("request path = %q, want /route/v1/car/ prefix", gotPath)
	}
	// OSRM takes lon,lat pairs: start lon must come first.
	if !strings.Contains(gotPath, "74.38") || !strings.Contains(gotPath, "31.58") {
		t.Errorf("request path %q missing start coordinates", gotPath)
	}
	if !strings.Contains(gotQuery, "overview=full") || !strings.Contains(gotQuery, "steps=true") {
		t.Errorf("query = %q, want overview=full and steps=true", gotQuery)
	}

	if rec.Geometry != geometry {
		t.Errorf("geometry not preserved")
	}
	if len(rec.Path) != 3 {
		t.Fatalf("path has %d points, want 3", len(rec.Path))
	}
	if math.Abs(rec.Path[0].Lat-31.58) > 1e-4 || math.Abs(rec.Path[0].Lon-74.38) > 1e-4 {
		t.Errorf("first path point = %+v", rec.Path[0])
	}
	if rec.DistanceMeters != 8240.5 {
		t.Errorf("distance = %v, want 8240.5", rec.DistanceMeters)
	}
	if rec.DurationSeconds != 1130.2 {
		t.Errorf("duration = %v, want 1130.2", rec.DurationSeconds)
	}
	if rec.StartAddress != "Mughalpura, Lahore" || rec.EndAddress != "Garden Town, Lahore" {
		t.Errorf("addresses not carried through: %q / %q", rec.StartAddress, rec.EndAddress)
	}
	if rec.Mode != ModeDriving {
		t.Errorf("mode = %q", rec.Mode)
	}

	wantSteps := []string{
		"Head out on Canal Bank Road",
		"Turn left onto Mall Road",
		"Arrive at your destination",
	}
	if len(rec.Steps) != len(wantSteps) {
		t.Fatalf("steps = %v", rec.Steps)
	}
	for i, want := range wantSteps {
		if rec.Steps[i] != want {
			t.Errorf("step %d = %q, want %q", i, rec.Steps[i], want)
		}
	}
}

func TestOSRM_Route_ProfileMapping(t *testing.T) {
	cases := []struct {
		mode    TravelMode
		profile string
	}{
		{ModeDriving, "car"},
		{ModeWalking, "foot"},
		{ModeBicycling, "bike"},
	}

	geometry := encodePath([][]float64{{0, 0}, {1, 1}})
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				fmt.Fprint(w, okResponse(geometry, 1, 1))
			}))
			defer srv.Close()

			router := NewOSRMRouter(WithOSRMBaseURL(srv.URL))
			if _, err := router.Route(context.Background(), RouteRequest{Mode: tc.mode}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(gotPath, "/route/v1/"+tc.profile+"/") {
				t.Errorf("path = %q, want profile %q", gotPath, tc.profile)
			}
		})
	}
}

func TestOSRM_Route_UnsupportedMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for an unsupported mode")
	}))
	defer srv.Close()

	router := NewOSRMRouter(WithOSRMBaseURL(srv.URL))
	_, err := router.Route(context.Background(), RouteRequest{Mode: TravelMode("teleport")})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var f *Failure
	if errors.As(err, &f) {
		t.Errorf("unsupported mode should be a validation error, not *Failure (%s)", f.Kind)
	}
}

func TestOSRM_Route_FailureKinds(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantKind FailureKind
	}{
		{
			name:   "no route",
			status: http.StatusBadRequest,
			body:   `{"code":"NoRoute","message":"Impossible route between points"}`,

			wantKind: KindNoRoute,
		},
		{
			name:     "invalid query",
			status:   http.StatusBadRequest,
			body:     `{"code":"InvalidQuery","message":"Query string malformed"}`,
			wantKind: KindProvider,
		},
		{
			name:     "ok but empty routes",
			status:   http.StatusOK,
			body:     `{"code":"Ok","routes":[]}`,
			wantKind: KindNoRoute,
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			body:     `<html>`,
			wantKind: KindProvider,
		},
		{
			name:     "undecodable geometry",
			status:   http.StatusOK,
			body:     `{"code":"Ok","routes":[{"geometry":">>>","distance":1,"duration":1,"legs":[]}]}`,
			wantKind: KindGeometryDecode,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			router := NewOSRMRouter(WithOSRMBaseURL(srv.URL))
			rec, err := router.Route(context.Background(), RouteRequest{Mode: ModeDriving})
			if rec != nil {
				t.Error("failed call must not return a partial record")
			}
			var f *Failure
			if !errors.As(err, &f) {
				t.Fatalf("err = %v, want *Failure", err)
			}
			if f.Kind != tc.wantKind {
				t.Errorf("kind = %s, want %s", f.Kind, tc.wantKind)
			}
		})
	}
}

func TestOSRM_Route_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	router := NewOSRMRouter(WithOSRMBaseURL(srv.URL))
	_, err := router.Route(context.Background(), RouteRequest{Mode: ModeDriving})
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("err = %v, want *Failure", err)
	}
	if f.Kind != KindProvider {
		t.Errorf("kind = %s, want %s", f.Kind, KindProvider)
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"driving", "walking", "bicycling"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "DRIVING", "flying", "transit"} {
		if _, err := ParseMode(invalid); err == nil {
			t.Errorf("ParseMode(%q) expected error", invalid)
		}
	}
}

func TestDecodePath_RoundTrip(t *testing.T) {
	coords := [][]float64{{38.5, -120.2}, {40.7, -120.95}, {43.252, -126.453}}
	path, err := DecodePath(encodePath(coords))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("decoded %d points, want 3", len(path))
	}
	for i, c := range coords {
		if math.Abs(path[i].Lat-c[0]) > 1e-5 || math.Abs(path[i].Lon-c[1]) > 1e-5 {
			t.Errorf("point %d = %+v, want %v", i, path[i], c)
		}
	}
}
