// Package handler exposes the toolkit's JSON API: geocoding, straight-line
// distance, route planning and the route-derived views.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geocoding"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/poi"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/service"
)

// Handler holds the domain dependencies for all HTTP handlers.
// A single Handler is shared across all route groups; individual methods are
// registered as gin handler functions.
type Handler struct {
	geocoder  geocoding.Geocoder
	planner   *service.PlannerService
	exportDir string

	// newPOIGenerator builds the per-request POI scatter source.
	// Overrideable in tests for deterministic output.
	newPOIGenerator func() *poi.Generator
}

// New creates a Handler with the given dependencies. exportDir is where map
// exports land.
func New(geocoder geocoding.Geocoder, planner *service.PlannerService, exportDir string) *Handler {
	return &Handler{
		geocoder:  geocoder,
		planner:   planner,
		exportDir: exportDir,
		newPOIGenerator: func() *poi.Generator {
			return poi.NewGenerator(time.Now().UnixNano())
		},
	}
}

// writeProviderError maps a geocoding or routing failure to an HTTP response.
// Provider failures never propagate past the handler: they become a
// user-visible message here and nothing else happens.
func writeProviderError(c *gin.Context, err error) {
	if errors.Is(err, geocoding.ErrEmptyAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address must not be empty"})
		return
	}
	if errors.Is(err, service.ErrEndpointsNotSet) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "set both start and end locations before planning a route"})
		return
	}

	var gf *geocoding.Failure
	if errors.As(err, &gf) {
		switch gf.Kind {
		case geocoding.KindTimeout:
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "geocoding service timed out, please try again", "kind": gf.Kind.String()})
		case geocoding.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found; check for typos and include city and country", "kind": gf.Kind.String()})
		case geocoding.KindMalformed:
			c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding service returned an unexpected response", "kind": gf.Kind.String()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding service unavailable, please try later", "kind": gf.Kind.String()})
		}
		return
	}

	var rf *routing.Failure
	if errors.As(err, &rf) {
		switch rf.Kind {
		case routing.KindNoRoute:
			c.JSON(http.StatusNotFound, gin.H{"error": "no route found between the selected locations", "kind": rf.Kind.String()})
		case routing.KindGeometryDecode:
			c.JSON(http.StatusBadGateway, gin.H{"error": "route geometry could not be decoded", "kind": rf.Kind.String()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "routing service failed, please try again", "kind": rf.Kind.String()})
		}
		return
	}

	// Mode validation and other caller-side errors.
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
