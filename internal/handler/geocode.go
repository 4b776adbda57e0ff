package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geo"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geocoding"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/maprender"
)

// geocodeRequest is the body of POST /api/v1/geocode.
type geocodeRequest struct {
	Address string `json:"address" binding:"required"`

	// Zoom for the location map; 1..18, default 15.
	Zoom int `json:"zoom"`

	// ValidateCity enables the soft locality check against the trailing
	// comma-separated token of the input.
	ValidateCity bool `json:"validate_city"`
}

// Geocode handles POST /api/v1/geocode
//
// Resolves a free-text address to coordinates with the provider's best single
// match. The response carries the coordinates, deep links and a single-marker
// map spec with a 100 m accuracy circle. When city validation is on and the
// heuristic disagrees, an advisory warning rides along; it never blocks the
// result.
//
// Response 200: resolved location.
// Response 400: empty address.
// Response 404: no match.
// Response 502/504: provider failure / timeout.
func (h *Handler) Geocode(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	zoom := req.Zoom
	if zoom < 1 || zoom > 18 {
		zoom = geo.ZoomStreet
	}

	loc, err := h.geocoder.Resolve(c.Request.Context(), req.Address)
	if err != nil {
		writeProviderError(c, err)
		return
	}

	resp := gin.H{
		"lat":          loc.Lat,
		"lon":          loc.Lon,
		"display_name": loc.DisplayName,
		"osm_type":     loc.OSMType,
		"links": gin.H{
			"google_maps":   fmt.Sprintf("https://maps.google.com/?q=%f,%f", loc.Lat, loc.Lon),
			"openstreetmap": fmt.Sprintf("https://www.openstreetmap.org/#map=18/%f/%f", loc.Lat, loc.Lon),
		},
		"map": maprender.LocationMap(geo.Point{Lat: loc.Lat, Lon: loc.Lon}, loc.DisplayName, zoom),
		"raw": json.RawMessage(loc.Raw),
	}

	if req.ValidateCity {
		if expected := geocoding.ExpectedLocality(req.Address); expected != "" {
			if warning, warned := geocoding.LocalityWarning(loc, expected); warned {
				resp["warning"] = warning
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
