package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geo"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/maprender"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/poi"
)

// poiRequest is the body of POST /api/v1/poi.
type poiRequest struct {
	Location   string  `json:"location" binding:"required"`
	Category   string  `json:"category" binding:"required"`
	RadiusKm   float64 `json:"radius_km"`
	MaxResults int     `json:"max_results"`
}

// NearbyPOIs handles POST /api/v1/poi
//
// Geocodes the center location and scatters simulated points of interest of
// the requested category around it. The result set is capped at 10 and
// sorted nearest first.
//
// Response 200: {"center":..., "pois":[...], "map":{...}, "simulated":true}
func (h *Handler) NearbyPOIs(c *gin.Context) {
	var req poiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location and category are required"})
		return
	}

	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	if !poi.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      fmt.Sprintf("unknown category %q", req.Category),
			"categories": poi.Categories,
		})
		return
	}
	if req.RadiusKm <= 0 {
		req.RadiusKm = 2
	}
	if req.RadiusKm > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius_km must be 50 or less"})
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 5
	}

	loc, err := h.geocoder.Resolve(c.Request.Context(), req.Location)
	if err != nil {
		writeProviderError(c, err)
		return
	}

	center := geo.Point{Lat: loc.Lat, Lon: loc.Lon}
	pois := h.newPOIGenerator().Generate(center, req.RadiusKm, req.Category, req.MaxResults)

	spec := &maprender.MapSpec{
		Title:  fmt.Sprintf("%s near %s", req.Category, loc.DisplayName),
		Center: center,
		Zoom:   geo.ZoomForDistance(req.RadiusKm),
		Markers: []maprender.Marker{
			{Position: center, Label: "Center", Popup: loc.DisplayName, Color: maprender.ColorBlue, Icon: "map-marker"},
		},
		Circles: []maprender.Circle{
			{Center: center, RadiusMeters: req.RadiusKm * 1000, Color: "#3186cc", FillOpacity: 0.1},
		},
	}
	for _, p := range pois {
		spec.Markers = append(spec.Markers, maprender.Marker{
			Position: geo.Point{Lat: p.Lat, Lon: p.Lon},
			Label:    p.Name,
			Popup:    fmt.Sprintf("%s (%.2f km away)", p.Name, p.DistanceKm),
			Color:    maprender.ColorRed,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"center":    gin.H{"lat": loc.Lat, "lon": loc.Lon, "display_name": loc.DisplayName},
		"category":  req.Category,
		"radius_km": req.RadiusKm,
		"pois":      pois,
		"map":       spec,
		"simulated": true,
	})
}
