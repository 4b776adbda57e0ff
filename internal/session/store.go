// Package session holds the per-session route state and the registry that
// maps session IDs to live sessions.
package session

import (
	"errors"
	"sync"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geocoding"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"
)

// ErrEndpointsNotSet is returned by SetRoute when one or both endpoints are
// missing. A route is only meaningful relative to the endpoints that produced
// it, so the store refuses to hold one without them.
var ErrEndpointsNotSet = errors.New("both start and end locations must be set before storing a route")

// RouteStore is the single source of truth for one session's route state: at
// most one start location, one end location and one current route.
//
// Writing either endpoint unconditionally clears the stored route: a stale
// route must never be observable alongside endpoints that did not produce it.
// The store never expires a route on its own; it lives until the next
// endpoint write or the end of the session.
type RouteStore struct {
	mu    sync.Mutex
	start *geocoding.Location
	end   *geocoding.Location
	route *routing.RouteRecord
}

// NewRouteStore creates an empty store.
func NewRouteStore() *RouteStore {
	return &RouteStore{}
}

// SetStart overwrites the start location and clears any stored route.
func (s *RouteStore) SetStart(loc *geocoding.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start = loc
	s.route = nil
}

// SetEnd overwrites the end location and clears any stored route.
func (s *RouteStore) SetEnd(loc *geocoding.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.end = loc
	s.route = nil
}

// SetRoute stores a route record as-is. Rejected with ErrEndpointsNotSet when
// either endpoint is missing; the store is left unchanged in that case.
func (s *RouteStore) SetRoute(rec *routing.RouteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.start == nil || s.end == nil {
		return ErrEndpointsNotSet
	}
	s.route = rec
	return nil
}

// CurrentRoute returns the stored route, or nil when none is set.
func (s *RouteStore) CurrentRoute() *routing.RouteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// CurrentEndpoints returns the stored start and end locations; either may be
// nil.
func (s *RouteStore) CurrentEndpoints() (start, end *geocoding.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start, s.end
}
