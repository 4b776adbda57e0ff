// Package service orchestrates the geocoding and routing clients around the
// session's route store.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geocoding"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/session"
)

// ErrEndpointsNotSet is returned by PlanRoute when the session has not yet
// resolved both a start and an end location. Callers should use errors.Is.
var ErrEndpointsNotSet = session.ErrEndpointsNotSet

// PlannerService resolves endpoints and plans routes for one session's store.
// Failures from the underlying clients pass through typed, and a failed call
// never leaves partial state behind: the store is only written on success.
type PlannerService struct {
	geocoder geocoding.Geocoder
	router   routing.Router
}

// NewPlannerService creates a PlannerService.
//
//   - geocoder should be a *geocoding.NominatimClient in production, or any
//     Geocoder implementation for testing.
//   - router should be a *routing.OSRMRouter in production.
func NewPlannerService(geocoder geocoding.Geocoder, router routing.Router) *PlannerService {
	return &PlannerService{
		geocoder: geocoder,
		router:   router,
	}
}

// SetStart geocodes address and stores the result as the session's start
// location, invalidating any current route. The store is untouched on error.
func (s *PlannerService) SetStart(ctx context.Context, store *session.RouteStore, address string) (*geocoding.Location, error) {
	loc, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("service: SetStart: %w", err)
	}
	store.SetStart(loc)
	return loc, nil
}

// SetEnd geocodes address and stores the result as the session's end
// location, invalidating any current route. The store is untouched on error.
func (s *PlannerService) SetEnd(ctx context.Context, store *session.RouteStore, address string) (*geocoding.Location, error) {
	loc, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("service: SetEnd: %w", err)
	}
	store.SetEnd(loc)
	return loc, nil
}

// PlanRoute computes a route between the session's stored endpoints and
// commits it to the store.
//
// Errors:
//   - ErrEndpointsNotSet (wrapped) when either endpoint is missing.
//   - A mode validation error for an unsupported travel mode.
//   - The router's typed *routing.Failure otherwise.
func (s *PlannerService) PlanRoute(ctx context.Context, store *session.RouteStore, mode string) (*routing.RouteRecord, error) {
	travelMode, err := routing.ParseMode(mode)
	if err != nil {
		return nil, fmt.Errorf("service: PlanRoute: %w", err)
	}

	start, end := store.CurrentEndpoints()
	if start == nil || end == nil {
		return nil, fmt.Errorf("service: PlanRoute: %w", ErrEndpointsNotSet)
	}

	rec, err := s.router.Route(ctx, routing.RouteRequest{
		StartLat:     start.Lat,
		StartLon:     start.Lon,
		StartAddress: start.DisplayName,
		EndLat:       end.Lat,
		EndLon:       end.Lon,
		EndAddress:   end.DisplayName,
		Mode:         travelMode,
	})
	if err != nil {
		return nil, fmt.Errorf("service: PlanRoute: %w", err)
	}

	if err := store.SetRoute(rec); err != nil {
		// Endpoints were present above; losing them mid-call means the
		// session raced a concurrent endpoint write. Report, don't commit.
		return nil, fmt.Errorf("service: PlanRoute: %w", err)
	}
	return rec, nil
}

// IsValidationError reports whether err is caller-correctable input, as
// opposed to a provider-side failure.
func IsValidationError(err error) bool {
	return errors.Is(err, geocoding.ErrEmptyAddress) || errors.Is(err, ErrEndpointsNotSet)
}
