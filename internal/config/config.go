// Package config loads and validates environment-based configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	Port   int
	AppEnv string // "development" or "production"; selects the logger preset.

	// Geocoding provider.
	NominatimBaseURL   string
	NominatimUserAgent string // Nominatim rejects anonymous default agents.
	NominatimMinDelay  time.Duration
	GeocodeTimeout     time.Duration

	// Routing provider.
	OSRMBaseURL  string
	RouteTimeout time.Duration

	// Sessions.
	SessionTTL time.Duration

	// Browser clients.
	CORSAllowOrigins []string

	// Map exports.
	MapExportDir string
}

// Load reads configuration from the environment, after merging a `.env` file
// when one exists. Returns a ConfigError for any invalid value; every field
// has a usable default.
func Load() (*Config, error) {
	// A missing .env is the normal production case, not an error.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		NominatimBaseURL:   getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", "geoai-toolkit"),
		NominatimMinDelay:  parseDurationEnv("NOMINATIM_MIN_DELAY", time.Second),
		GeocodeTimeout:     parseDurationEnv("GEOCODE_TIMEOUT", 15*time.Second),
		OSRMBaseURL:        getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
		RouteTimeout:       parseDurationEnv("ROUTE_TIMEOUT", 15*time.Second),
		SessionTTL:         parseDurationEnv("SESSION_TTL", 30*time.Minute),
		MapExportDir:       getEnv("MAP_EXPORT_DIR", "./exports"),
	}

	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if o := strings.TrimSpace(origin); o != "" {
				cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
			}
		}
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		cfg.Port = 8080
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, &ConfigError{Field: "PORT", Message: "must be a valid integer"}
		}
		if port < 1 || port > 65535 {
			return nil, &ConfigError{Field: "PORT", Message: "must be between 1 and 65535"}
		}
		cfg.Port = port
	}

	return cfg, nil
}

// Validate re-checks required fields on an already-constructed Config.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, &ConfigError{Field: "PORT", Message: "must be between 1 and 65535"})
	}
	if c.NominatimBaseURL == "" {
		errs = append(errs, &ConfigError{Field: "NOMINATIM_BASE_URL", Message: "cannot be empty"})
	}
	if c.NominatimUserAgent == "" {
		errs = append(errs, &ConfigError{Field: "NOMINATIM_USER_AGENT", Message: "cannot be empty"})
	}
	if c.OSRMBaseURL == "" {
		errs = append(errs, &ConfigError{Field: "OSRM_BASE_URL", Message: "cannot be empty"})
	}
	return errors.Join(errs...)
}

// getEnv reads a string variable with a fallback for when it is unset.
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// parseDurationEnv reads a duration from an environment variable.
// Falls back to defaultVal if the variable is unset or unparseable.
// Accepts Go duration strings like "1s", "15m", "24h".
func parseDurationEnv(key string, defaultVal time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultVal
	}
	return d
}
