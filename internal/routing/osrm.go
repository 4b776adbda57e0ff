// Package routing computes routes between two points via an OSRM server.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gopolyline "github.com/twpayne/go-polyline"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geo"
)

const (
	// osrmBaseURL is the public OSRM demo server.
	osrmBaseURL = "https://router.project-osrm.org"

	// osrmTimeout is the maximum duration for one OSRM call.
	osrmTimeout = 15 * time.Second

	// httpMaxIdleConns is the keep-alive pool size for the transport.
	httpMaxIdleConns = 10

	// httpIdleConnTimeout is how long an idle connection stays pooled.
	httpIdleConnTimeout = 30 * time.Second
)

// OSRMRouter implements Router against the OSRM HTTP API.
// Every call re-queries the provider; there is no caching and no built-in
// retry; recovery is the caller's re-invocation.
type OSRMRouter struct {
	httpClient *http.Client
	// baseURL is the OSRM endpoint. Overrideable in tests.
	baseURL string
}

// OSRMOption configures an OSRMRouter.
type OSRMOption func(*OSRMRouter)

// WithOSRMBaseURL points the router at an alternate OSRM instance.
func WithOSRMBaseURL(u string) OSRMOption {
	return func(r *OSRMRouter) { r.baseURL = strings.TrimRight(u, "/") }
}

// WithOSRMTimeout overrides the per-request timeout.
func WithOSRMTimeout(d time.Duration) OSRMOption {
	return func(r *OSRMRouter) { r.httpClient.Timeout = d }
}

// NewOSRMRouter creates a Router backed by an OSRM server.
func NewOSRMRouter(opts ...OSRMOption) *OSRMRouter {
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	r := &OSRMRouter{
		baseURL: osrmBaseURL,
		httpClient: &http.Client{
			Timeout:   osrmTimeout,
			Transport: transport,
		},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// --- JSON types for the OSRM route response ---

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Geometry string    `json:"geometry"`
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmStep struct {
	Name     string       `json:"name"`
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmManeuver struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
}

// Route calls the OSRM route service and returns the first candidate route
// with its geometry fully decoded.
//
// Errors: *Failure with Kind KindProvider, KindNoRoute or KindGeometryDecode,
// or a plain validation error for an unsupported mode. A half-built
// RouteRecord is never returned.
func (r *OSRMRouter) Route(ctx context.Context, req RouteRequest) (*RouteRecord, error) {
	profile, ok := osrmProfiles[req.Mode]
	if !ok {
		return nil, fmt.Errorf("routing: osrm: unsupported travel mode %q", req.Mode)
	}

	// OSRM takes lon,lat pairs in the path segment.
	reqURL := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?%s",
		r.baseURL, profile,
		req.StartLon, req.StartLat,
		req.EndLon, req.EndLat,
		url.Values{
			"overview": {"full"},
			"steps":    {"true"},
		}.Encode(),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Failure{Kind: KindProvider, Err: fmt.Errorf("create request: %w", err)}
	}

	httpResp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Failure{Kind: KindProvider, Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &Failure{Kind: KindProvider, Err: fmt.Errorf("read response: %w", err)}
	}

	// OSRM reports NoRoute with a 400, so decode the body before gating on
	// the HTTP status.
	var apiResp osrmResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &Failure{Kind: KindProvider, Err: fmt.Errorf("status %d: unmarshal response: %w", httpResp.StatusCode, err)}
	}

	if apiResp.Code == "NoRoute" {
		return nil, &Failure{Kind: KindNoRoute, Err: fmt.Errorf("no route between endpoints")}
	}
	if apiResp.Code != "Ok" {
		return nil, &Failure{Kind: KindProvider, Err: fmt.Errorf("status %q: %s", apiResp.Code, apiResp.Message)}
	}
	if len(apiResp.Routes) == 0 {
		return nil, &Failure{Kind: KindNoRoute, Err: fmt.Errorf("Ok status but no candidate routes")}
	}

	// First candidate only; no multi-route ranking.
	route := apiResp.Routes[0]

	path, err := decodePolyline(route.Geometry)
	if err != nil {
		return nil, &Failure{Kind: KindGeometryDecode, Err: err}
	}

	return &RouteRecord{
		Geometry:        route.Geometry,
		Path:            path,
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
		StartAddress:    req.StartAddress,
		EndAddress:      req.EndAddress,
		Mode:            req.Mode,
		Steps:           collectSteps(route.Legs),
	}, nil
}

// decodePolyline decodes an OSRM encoded polyline (1e-5 precision) into an
// ordered lat/lon sequence.
func decodePolyline(encoded string) ([]geo.Point, error) {
	coords, rest, err := gopolyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(rest))
	}
	path := make([]geo.Point, len(coords))
	for i, c := range coords {
		path[i] = geo.Point{Lat: c[0], Lon: c[1]}
	}
	return path, nil
}

// collectSteps flattens the legs' steps into instruction strings in travel
// order. OSRM ships maneuvers, not prose, so the prose is built here.
func collectSteps(legs []osrmLeg) []string {
	steps := []string{}
	for _, leg := range legs {
		for _, s := range leg.Steps {
			steps = append(steps, instruction(s))
		}
	}
	return steps
}

// instruction renders one OSRM step as a human-readable direction.
func instruction(s osrmStep) string {
	name := s.Name
	switch s.Maneuver.Type {
	case "depart":
		if name != "" {
			return fmt.Sprintf("Head out on %s", name)
		}
		return "Head out"
	case "arrive":
		return "Arrive at your destination"
	case "turn", "end of road", "fork":
		verb := "Turn"
		if s.Maneuver.Modifier == "straight" {
			verb = "Continue"
		} else if s.Maneuver.Modifier != "" {
			verb = "Turn " + s.Maneuver.Modifier
		}
		if name != "" {
			return fmt.Sprintf("%s onto %s", verb, name)
		}
		return verb
	case "new name", "continue":
		if name != "" {
			return fmt.Sprintf("Continue onto %s", name)
		}
		return "Continue"
	case "merge":
		if name != "" {
			return fmt.Sprintf("Merge onto %s", name)
		}
		return "Merge"
	case "roundabout", "rotary":
		if name != "" {
			return fmt.Sprintf("Take the roundabout onto %s", name)
		}
		return "Take the roundabout"
	case "on ramp":
		if name != "" {
			return fmt.Sprintf("Take the ramp onto %s", name)
		}
		return "Take the ramp"
	case "off ramp":
		if name != "" {
			return fmt.Sprintf("Exit onto %s", name)
		}
		return "Take the exit"
	default:
		if name != "" {
			return fmt.Sprintf("Continue on %s", name)
		}
		return "Continue"
	}
}
