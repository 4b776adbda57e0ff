package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient builds a NominatimClient pointed at a fake server with the
// rate limiter disabled so tests run fast.
func newTestClient(srvURL string) *NominatimClient {
	return NewNominatimClient("geoai-toolkit-test",
		WithBaseURL(srvURL),
		WithMinDelay(0),
	)
}

func TestNominatim_Resolve_Success(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"31.5820","lon":"74.3828","display_name":"Mughalpura, Lahore, Punjab, Pakistan","type":"suburb"}]`))
	}))
	defer srv.Close()

	loc, err := newTestClient(srv.URL).Resolve(context.Background(), "Mughalpura, Lahore, Pakistan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "Mughalpura, Lahore, Pakistan" {
		t.Errorf("query q = %q", gotQuery)
	}
	if gotAgent != "geoai-toolkit-test" {
		t.Errorf("user agent = %q", gotAgent)
	}
	if loc.Lat != 31.5820 || loc.Lon != 74.3828 {
		t.Errorf("coords = %v,%v", loc.Lat, loc.Lon)
	}
	if loc.DisplayName != "Mughalpura, Lahore, Punjab, Pakistan" {
		t.Errorf("display name = %q", loc.DisplayName)
	}
	if loc.OSMType != "suburb" {
		t.Errorf("osm type = %q", loc.OSMType)
	}
	if len(loc.Raw) == 0 {
		t.Error("raw payload not preserved")
	}
}

func TestNominatim_Resolve_EmptyAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for empty input")
	}))
	defer srv.Close()

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := newTestClient(srv.URL).Resolve(context.Background(), input)
		if !errors.Is(err, ErrEmptyAddress) {
			t.Errorf("input %q: err = %v, want ErrEmptyAddress", input, err)
		}
	}
}

func TestNominatim_Resolve_FailureKinds(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantKind FailureKind
	}{
		{name: "not found", status: 200, body: `[]`, wantKind: KindNotFound},
		{name: "server error", status: 500, body: `boom`, wantKind: KindServiceUnavailable},
		{name: "rate limited", status: 429, body: `slow down`, wantKind: KindServiceUnavailable},
		{name: "not json", status: 200, body: `<html>`, wantKind: KindMalformed},
		{name: "bad lat", status: 200, body: `[{"lat":"north","lon":"74.3","display_name":"x"}]`, wantKind: KindMalformed},
		{name: "object not array", status: 200, body: `{"error":"x"}`, wantKind: KindMalformed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Resolve(context.Background(), "somewhere")
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

func TestNominatim_Resolve_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewNominatimClient("geoai-toolkit-test",
		WithBaseURL(srv.URL),
		WithMinDelay(0),
		WithTimeout(20*time.Millisecond),
	)
	_, err := c.Resolve(context.Background(), "somewhere")
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("err = %v, want *Failure", err)
	}
	if f.Kind != KindTimeout {
		t.Errorf("kind = %s, want %s", f.Kind, KindTimeout)
	}
}

func TestNominatim_Resolve_SerializesRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"1","lon":"2","display_name":"x"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient("geoai-toolkit-test",
		WithBaseURL(srv.URL),
		WithMinDelay(50*time.Millisecond),
	)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.Resolve(context.Background(), "x"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	// Three calls through an every-50ms limiter need at least ~100ms.
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("three calls completed in %v, limiter not enforcing spacing", elapsed)
	}
}

func TestExpectedLocality(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"Mughal Pura Bus Stop, Lahore, Pakistan", "Pakistan"},
		{"Garden Town, Lahore", "Lahore"},
		{"just a street", ""},
		{"trailing comma, ", ""},
	}
	for _, tc := range cases {
		if got := ExpectedLocality(tc.address); got != tc.want {
			t.Errorf("ExpectedLocality(%q) = %q, want %q", tc.address, got, tc.want)
		}
	}
}

func TestLocalityWarning(t *testing.T) {
	loc := &Location{DisplayName: "Mughalpura, Lahore, Punjab, Pakistan"}

	if msg, warned := LocalityWarning(loc, "lahore"); warned {
		t.Errorf("unexpected warning: %q", msg)
	}
	if _, warned := LocalityWarning(loc, "Karachi"); !warned {
		t.Error("expected warning for mismatched locality")
	}
	if _, warned := LocalityWarning(loc, ""); warned {
		t.Error("empty expected locality must never warn")
	}
	if _, warned := LocalityWarning(nil, "Lahore"); warned {
		t.Error("nil location must never warn")
	}
}
