package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/middleware"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/views"
)

// addressRequest is the body of the endpoint-setting calls.
type addressRequest struct {
	Address string `json:"address" binding:"required"`
}

// SetStart handles POST /api/v1/route/start
//
// Geocodes the address and stores it as the session's start location. Any
// previously planned route is invalidated by the write.
//
// Response 200: {"lat":...,"lon":...,"display_name":"..."}
// Response 400/404/502/504: validation or provider failure; session unchanged.
func (h *Handler) SetStart(c *gin.Context) {
	h.setEndpoint(c, true)
}

// SetEnd handles POST /api/v1/route/end, the end-location counterpart of
// SetStart.
func (h *Handler) SetEnd(c *gin.Context) {
	h.setEndpoint(c, false)
}

func (h *Handler) setEndpoint(c *gin.Context, isStart bool) {
	s := middleware.MustSession(c)
	if s == nil {
		return
	}

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	set := h.planner.SetEnd
	if isStart {
		set = h.planner.SetStart
	}
	loc, err := set(c.Request.Context(), s.Store, req.Address)
	if err != nil {
		writeProviderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lat":          loc.Lat,
		"lon":          loc.Lon,
		"display_name": loc.DisplayName,
	})
}

// planRequest is the body of POST /api/v1/route.
type planRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// PlanRoute handles POST /api/v1/route
//
// Computes a route between the session's stored endpoints via the routing
// provider and commits it to the session. mode is one of driving, walking,
// bicycling.
//
// Response 200: the full route record summary.
// Response 400: unsupported mode or endpoints not yet set.
// Response 404: no route between the endpoints.
// Response 502: provider failure; session unchanged.
func (h *Handler) PlanRoute(c *gin.Context) {
	s := middleware.MustSession(c)
	if s == nil {
		return
	}

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required (driving, walking or bicycling)"})
		return
	}

	rec, err := h.planner.PlanRoute(c.Request.Context(), s.Store, req.Mode)
	if err != nil {
		writeProviderError(c, err)
		return
	}

	c.JSON(http.StatusOK, routeSummary(rec))
}

// routeSummary renders the record the way the dashboard's route panel shows
// it: addresses, formatted distance and duration, and the step count.
func routeSummary(rec *routing.RouteRecord) gin.H {
	return gin.H{
		"start_address": rec.StartAddress,
		"end_address":   rec.EndAddress,
		"travel_mode":   rec.Mode,
		"distance_m":    rec.DistanceMeters,
		"distance_text": fmt.Sprintf("%.2f km", rec.DistanceMeters/1000),
		"duration_s":    rec.DurationSeconds,
		"duration_text": views.FormatDuration(rec.DurationSeconds),
		"geometry":      rec.Geometry,
		"path_points":   len(rec.Path),
		"step_count":    len(rec.Steps),
	}
}
