package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	httpapi "github.com/i474232898/weather-front/internal/api/http"
	"github.com/i474232898/weather-front/internal/config"
	"github.com/i474232898/weather-front/internal/timezone"
	"github.com/i474232898/weather-front/internal/weather"
	"github.com/i474232898/weather-front/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zones, err := timezone.NewService(cfg.TimezoneCoordFallback)
	if err != nil {
		log.Fatalf("failed to load timezone data: %v", err)
	}

	// Upstream clients share timeout and breaker settings.
	clientCfg := providers.ClientConfig{
		Timeout:            cfg.UpstreamTimeout,
		BreakerMaxFailures: uint32(cfg.BreakerMaxFailures),
		BreakerOpenTimeout: cfg.BreakerOpenTimeout,
	}
	forecasts := providers.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey, clientCfg)

	var (
		geo         weather.Geolocator
		transformer *weather.Transformer
	)
	if cfg.FixedCityMode() {
		// The single-city page never shows a date or geolocates.
		transformer = weather.NewTransformer(zones, weather.WithoutDate())
		log.Printf("INFO: serving fixed city %q", cfg.FixedCity)
	} else {
		geo = providers.NewIPStackProvider(cfg.IPStackAPIKey, clientCfg)
		transformer = weather.NewTransformer(zones)
	}

	service := weather.NewService(forecasts, geo, transformer)

	app := httpapi.NewApp(httpapi.Options{
		FixedCity: cfg.FixedCity,
		AccessLog: true,
	}, service)

	// Start server with graceful shutdown
	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
