// Package views derives user-facing read models from the current route.
//
// Each view takes the session's current RouteRecord (possibly nil), validates
// only the fields it needs and degrades to a structured ViewError instead of
// panicking or failing generically. Views never mutate session state and keep
// no caches: repeated renders re-derive their output from the live record.
package views

import "fmt"

// ErrorKind classifies why a view could not render.
type ErrorKind int

const (
	// NoRoute: the store holds no route yet; the user must plan one first.
	NoRoute ErrorKind = iota

	// MissingField: the record exists but a required field is absent or
	// carries an invalid value. Field names the offender.
	MissingField

	// NotEnoughPoints: the route geometry decoded to fewer than two points,
	// so there is no path to draw.
	NotEnoughPoints
)

func (k ErrorKind) String() string {
	switch k {
	case NoRoute:
		return "no_route"
	case MissingField:
		return "missing_field"
	case NotEnoughPoints:
		return "not_enough_points"
	default:
		return "unknown"
	}
}

// ViewError is a view's structured refusal to render. It is a value to show
// the user, not a fault to propagate.
type ViewError struct {
	Kind  ErrorKind
	Field string // set for MissingField
}

func (e *ViewError) Error() string {
	switch e.Kind {
	case NoRoute:
		return "no route yet: plan a route first"
	case MissingField:
		return fmt.Sprintf("invalid route data: missing or invalid field %q", e.Field)
	case NotEnoughPoints:
		return "invalid route geometry: not enough points to draw"
	default:
		return "view error"
	}
}

func errNoRoute() *ViewError                 { return &ViewError{Kind: NoRoute} }
func errMissingField(name string) *ViewError { return &ViewError{Kind: MissingField, Field: name} }
