package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/maprender"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/middleware"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/views"
)

// writeViewError maps a view's structured refusal to an HTTP response.
// A missing route is guidance, not a fault; a malformed record is an
// unprocessable one.
func writeViewError(c *gin.Context, verr *views.ViewError) {
	status := http.StatusUnprocessableEntity
	if verr.Kind == views.NoRoute {
		status = http.StatusNotFound
	}
	resp := gin.H{"error": verr.Error(), "kind": verr.Kind.String()}
	if verr.Field != "" {
		resp["field"] = verr.Field
	}
	c.JSON(status, resp)
}

// RouteDistance handles GET /api/v1/route/distance
//
// Extracts the travel distance from the session's current route, rendered in
// kilometres with two-decimal precision.
//
// Response 200: {"distance":"8.24 km"} plus the route's endpoints and mode.
// Response 404: no route planned yet.
// Response 422: record present but distance missing or invalid.
func (h *Handler) RouteDistance(c *gin.Context) {
	s := middleware.MustSession(c)
	if s == nil {
		return
	}

	rec := s.Store.CurrentRoute()
	text, verr := views.RenderDistance(rec)
	if verr != nil {
		writeViewError(c, verr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"distance":      text,
		"start_address": rec.StartAddress,
		"end_address":   rec.EndAddress,
		"travel_mode":   rec.Mode,
	})
}

// RouteDuration handles GET /api/v1/route/duration
//
// Extracts the travel time from the session's current route as a tiered
// human-readable string ("45 sec", "2 min 5 sec", "1 h 2 min").
func (h *Handler) RouteDuration(c *gin.Context) {
	s := middleware.MustSession(c)
	if s == nil {
		return
	}

	rec := s.Store.CurrentRoute()
	text, verr := views.RenderDuration(rec)
	if verr != nil {
		writeViewError(c, verr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"duration":      text,
		"start_address": rec.StartAddress,
		"end_address":   rec.EndAddress,
		"travel_mode":   rec.Mode,
	})
}

// RouteMap handles GET /api/v1/route/map
//
// Builds the route map spec from the session's current route: centroid
// framing, the decoded path as a polyline, and start/end markers on the
// path's own endpoints. An optional ?title= overrides the generated title.
//
// Response 404: no route planned yet.
// Response 422: geometry missing, undecodable, or under two points.
func (h *Handler) RouteMap(c *gin.Context) {
	s := middleware.MustSession(c)
	if s == nil {
		return
	}

	spec, verr := views.RenderMap(s.Store.CurrentRoute(), c.Query("title"))
	if verr != nil {
		writeViewError(c, verr)
		return
	}

	c.JSON(http.StatusOK, spec)
}

// exportRequest is the body of POST /api/v1/route/map/export.
type exportRequest struct {
	Title string `json:"title"`
}

// ExportRouteMap handles POST /api/v1/route/map/export
//
// Renders the current route map and writes it to the export directory as a
// GeoJSON FeatureCollection under a timestamped filename.
//
// Response 200: {"path":"exports/route_map_20260829_101500.geojson"}
func (h *Handler) ExportRouteMap(c *gin.Context) {
	s := middleware.MustSession(c)
	if s == nil {
		return
	}

	var req exportRequest
	// Body is optional; ignore bind errors for an empty body.
	_ = c.ShouldBindJSON(&req)

	spec, verr := views.RenderMap(s.Store.CurrentRoute(), req.Title)
	if verr != nil {
		writeViewError(c, verr)
		return
	}

	path, err := maprender.Export(spec, h.exportDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write map export"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

// RouteSteps handles GET /api/v1/route/steps
//
// Returns the 1-indexed turn-by-turn list for the session's current route.
// An empty list is a valid route with no turn-by-turn data.
func (h *Handler) RouteSteps(c *gin.Context) {
	s := middleware.MustSession(c)
	if s == nil {
		return
	}

	steps, verr := views.RenderSteps(s.Store.CurrentRoute())
	if verr != nil {
		writeViewError(c, verr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"steps": steps, "count": len(steps)})
}
