package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Credentials for the upstream APIs. Neither is validated: a missing key
	// surfaces as an authentication error from the third party.
	OpenWeatherAPIKey string
	IPStackAPIKey     string

	// FixedCity switches the app to the single-city page served at "/".
	FixedCity string

	// UpstreamTimeout bounds each outbound call (0 = no timeout).
	UpstreamTimeout time.Duration

	// Circuit breaker around each upstream client.
	BreakerMaxFailures int
	BreakerOpenTimeout time.Duration

	// TimezoneCoordFallback resolves unknown countries from city coordinates.
	TimezoneCoordFallback bool

	Port string
}

// FixedCityMode reports whether the app serves a single hard-coded city.
func (c *AppConfig) FixedCityMode() bool {
	return c.FixedCity != ""
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("API_KEY")
	cfg.IPStackAPIKey = os.Getenv("IP_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("INFO: API_KEY is not set; forecast requests will be rejected upstream")
	}

	cfg.FixedCity = os.Getenv("FIXED_CITY")

	timeout, err := time.ParseDuration(getenvDefault("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: must not be negative")
	}
	cfg.UpstreamTimeout = timeout

	cfg.BreakerMaxFailures = getenvInt("BREAKER_MAX_FAILURES", 5)
	openTimeout, err := time.ParseDuration(getenvDefault("BREAKER_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_OPEN_TIMEOUT: %w", err)
	}
	cfg.BreakerOpenTimeout = openTimeout

	cfg.TimezoneCoordFallback = getenvBool("TZ_COORD_FALLBACK", false)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
