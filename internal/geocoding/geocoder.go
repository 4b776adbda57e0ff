package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Location is a resolved address: the provider's best single match.
// Immutable once created.
type Location struct {
	Lat         float64
	Lon         float64
	DisplayName string

	// OSMType is the provider's object classification (e.g. "bus_stop",
	// "house"). Informational only.
	OSMType string

	// Raw is the provider's full candidate payload, passed through for the
	// dashboard's technical-details panel.
	Raw json.RawMessage
}

// Geocoder resolves a free-text address to a Location.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*Location, error)
}

// ErrEmptyAddress is returned before any provider call when the input address
// is empty or whitespace. Callers should use errors.Is.
var ErrEmptyAddress = errors.New("address must not be empty")

// FailureKind classifies a geocoding failure so callers can decide whether a
// retry makes sense.
type FailureKind int

const (
	// KindTimeout: the provider did not respond within the bounded interval.
	// Recoverable; the user may retry as-is.
	KindTimeout FailureKind = iota

	// KindServiceUnavailable: the provider was reachable but erroring.
	// Recoverable; the user may retry later.
	KindServiceUnavailable

	// KindNotFound: the provider returned no match. Not retryable without an
	// input change.
	KindNotFound

	// KindMalformed: the provider responded with an unexpected shape.
	KindMalformed
)

// String returns the wire name of the kind.
func (k FailureKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindNotFound:
		return "not_found"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Failure is a typed geocoding error. Callers extract it with errors.As and
// switch on Kind.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("geocoding: %s", f.Kind)
	}
	return fmt.Sprintf("geocoding: %s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// ExpectedLocality extracts the locality token a user most likely intended:
// the trailing comma-separated segment of the input address. Returns "" when
// the address has no comma-separated structure.
func ExpectedLocality(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-1])
}

// LocalityWarning compares the expected locality against the resolved display
// name, case-insensitively. A mismatch yields a warning message and true; it
// is a best-effort heuristic and never a failure: oddly formatted addresses
// can produce false warnings, so callers must surface it as advisory only.
func LocalityWarning(loc *Location, expected string) (string, bool) {
	if expected == "" || loc == nil {
		return "", false
	}
	if strings.Contains(strings.ToLower(loc.DisplayName), strings.ToLower(expected)) {
		return "", false
	}
	return fmt.Sprintf("the found location appears to be outside the expected locality %q: %s",
		expected, loc.DisplayName), true
}
