package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geo"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/maprender"
)

// coordJSON is one lat/lon pair in a request body.
type coordJSON struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

func (p *coordJSON) point() geo.Point {
	return geo.Point{Lat: *p.Lat, Lon: *p.Lon}
}

func (p *coordJSON) valid() bool {
	return *p.Lat >= -90 && *p.Lat <= 90 && *p.Lon >= -180 && *p.Lon <= 180
}

// distanceRequest is the body of POST /api/v1/distance.
type distanceRequest struct {
	A coordJSON `json:"a" binding:"required"`
	B coordJSON `json:"b" binding:"required"`
}

// Distance handles POST /api/v1/distance
//
// Computes the straight-line (great-circle) distance between two coordinate
// pairs. Purely closed-form math; no provider is involved.
//
// Response 200:
//
//	{"distance_km":559.12,"text":"559.12 km","map":{...}}
//
// Response 400: missing or out-of-range coordinates.
func (h *Handler) Distance(c *gin.Context) {
	var req distanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both points need lat and lon"})
		return
	}
	if !req.A.valid() || !req.B.valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude must be in [-90,90] and longitude in [-180,180]"})
		return
	}

	a, b := req.A.point(), req.B.point()
	km := geo.HaversineKm(a, b)

	c.JSON(http.StatusOK, gin.H{
		"distance_km": km,
		"text":        fmt.Sprintf("%.2f km", km),
		"map":         maprender.PointPairMap(a, b, km),
	})
}
