package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.NominatimMinDelay != time.Second {
		t.Errorf("min delay = %v, want 1s", cfg.NominatimMinDelay)
	}
	if cfg.OSRMBaseURL == "" || cfg.NominatimBaseURL == "" {
		t.Error("provider URLs must have defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoad_PortValidation(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"9090", true},
		{"0", false},
		{"70000", false},
		{"not-a-port", false},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("PORT", tc.value)
			_, err := Load()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://geo.example.com ,")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSAllowOrigins) != 2 {
		t.Fatalf("origins = %v", cfg.CORSAllowOrigins)
	}
	if cfg.CORSAllowOrigins[1] != "https://geo.example.com" {
		t.Errorf("origin[1] = %q", cfg.CORSAllowOrigins[1])
	}
}

func TestLoad_DurationFallback(t *testing.T) {
	t.Setenv("SESSION_TTL", "garbage")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("ttl = %v, want default on unparseable input", cfg.SessionTTL)
	}

	t.Setenv("SESSION_TTL", "2h")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", cfg.SessionTTL)
	}
}

func TestValidate_EmptyFields(t *testing.T) {
	cfg := &Config{Port: 8080}
	if err := cfg.Validate(); err == nil {
		t.Error("empty provider fields must fail validation")
	}
}
