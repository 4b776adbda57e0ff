package routing

import (
	"context"
	"fmt"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geo"
)

// TravelMode selects the cost model used by the routing provider.
type TravelMode string

const (
	ModeDriving   TravelMode = "driving"
	ModeWalking   TravelMode = "walking"
	ModeBicycling TravelMode = "bicycling"
)

// osrmProfiles maps a TravelMode to the OSRM profile identifier.
var osrmProfiles = map[TravelMode]string{
	ModeDriving:   "car",
	ModeWalking:   "foot",
	ModeBicycling: "bike",
}

// ParseMode validates a user-supplied travel mode string.
// An unsupported mode is a caller-side validation error, reported before any
// provider call.
func ParseMode(s string) (TravelMode, error) {
	m := TravelMode(s)
	if _, ok := osrmProfiles[m]; !ok {
		return "", fmt.Errorf("routing: unsupported travel mode %q (want driving, walking or bicycling)", s)
	}
	return m, nil
}

// RouteRequest holds the endpoints and travel mode for a route calculation.
// The addresses are carried through verbatim into the resulting RouteRecord.
type RouteRequest struct {
	StartLat     float64
	StartLon     float64
	StartAddress string
	EndLat       float64
	EndLon       float64
	EndAddress   string
	Mode         TravelMode
}

// RouteRecord is the fully populated result of one route calculation.
// It is produced atomically: either every field below is set, or the
// calculation failed and no record exists at all.
type RouteRecord struct {
	// Geometry is the provider's encoded polyline (1e-5 precision).
	Geometry string

	// Path is Geometry decoded into an ordered coordinate sequence. The
	// provider snaps endpoints to the road network, so Path[0] and
	// Path[len-1] may differ slightly from the requested endpoints.
	Path []geo.Point

	DistanceMeters  float64
	DurationSeconds float64
	StartAddress    string
	EndAddress      string
	Mode            TravelMode

	// Steps holds the turn-by-turn instructions in travel order. An empty
	// slice is valid: the provider produced no step data.
	Steps []string
}

// Router calculates a route between two geographic points.
type Router interface {
	Route(ctx context.Context, req RouteRequest) (*RouteRecord, error)
}

// FailureKind classifies a routing failure.
type FailureKind int

const (
	// KindProvider: transport error or non-Ok provider status. Recoverable
	// by a manual retry.
	KindProvider FailureKind = iota

	// KindNoRoute: the provider found no route between the endpoints.
	KindNoRoute

	// KindGeometryDecode: the provider's encoded geometry did not decode.
	// Fatal for this attempt; a retry with the same request will not help.
	KindGeometryDecode
)

func (k FailureKind) String() string {
	switch k {
	case KindProvider:
		return "provider_error"
	case KindNoRoute:
		return "no_route_found"
	case KindGeometryDecode:
		return "geometry_decode_failure"
	default:
		return "unknown"
	}
}

// Failure is a typed routing error carrying its classification.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("routing: %s", f.Kind)
	}
	return fmt.Sprintf("routing: %s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// DecodePath decodes an encoded polyline into an ordered coordinate sequence.
// Shared by the OSRM client and the map view, which re-decodes stored
// geometry at render time.
func DecodePath(encoded string) ([]geo.Point, error) {
	return decodePolyline(encoded)
}
