// Package app wires configuration, clients and HTTP routing into a runnable
// application.
package app

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/config"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/geocoding"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/handler"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/middleware"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/service"
	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/session"
)

// App bundles the HTTP engine with the state that needs an orderly shutdown.
type App struct {
	Engine   *gin.Engine
	sessions *session.Manager
	log      *zap.Logger
}

// New builds the application from config: provider clients, the session
// registry, the handler set and the gin engine with its middleware chain.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := os.MkdirAll(cfg.MapExportDir, 0o755); err != nil {
		return nil, fmt.Errorf("app: create export dir: %w", err)
	}

	geocoder := geocoding.NewNominatimClient(cfg.NominatimUserAgent,
		geocoding.WithBaseURL(cfg.NominatimBaseURL),
		geocoding.WithTimeout(cfg.GeocodeTimeout),
		geocoding.WithMinDelay(cfg.NominatimMinDelay),
	)
	router := routing.NewOSRMRouter(
		routing.WithOSRMBaseURL(cfg.OSRMBaseURL),
		routing.WithOSRMTimeout(cfg.RouteTimeout),
	)

	sessions := session.NewManager(cfg.SessionTTL)
	planner := service.NewPlannerService(geocoder, router)
	h := handler.New(geocoder, planner, cfg.MapExportDir)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(log))

	// The route timeout dominates; give the handler chain a little headroom
	// past the slowest provider call.
	requestBudget := cfg.RouteTimeout + 5*time.Second
	engine.Use(middleware.Timeout(requestBudget))

	if len(cfg.CORSAllowOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSAllowOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, middleware.SessionHeader)
		corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, middleware.SessionHeader)
		corsCfg.AllowCredentials = true
		engine.Use(cors.New(corsCfg))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sessions.Len()})
	})

	api := engine.Group("/api/v1", middleware.Resolve(sessions))
	api.POST("/geocode", h.Geocode)
	api.POST("/distance", h.Distance)
	api.POST("/route/start", h.SetStart)
	api.POST("/route/end", h.SetEnd)
	api.POST("/route", h.PlanRoute)
	api.GET("/route/distance", h.RouteDistance)
	api.GET("/route/duration", h.RouteDuration)
	api.GET("/route/map", h.RouteMap)
	api.POST("/route/map/export", h.ExportRouteMap)
	api.GET("/route/steps", h.RouteSteps)
	api.POST("/poi", h.NearbyPOIs)

	return &App{Engine: engine, sessions: sessions, log: log}, nil
}

// Shutdown stops the background session sweeper. The HTTP server's own
// drain is the caller's job.
func (a *App) Shutdown() {
	a.sessions.Close()
	a.log.Info("session registry closed")
}
