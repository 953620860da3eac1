package weather

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	// LoopbackIP short-circuits geolocation during local development.
	LoopbackIP = "127.0.0.1"
	// DefaultCity is used for requests coming from LoopbackIP.
	DefaultCity = "Kannur"
)

// Service orchestrates geolocation, the forecast fetch and the transform.
type Service struct {
	forecasts   ForecastProvider
	geo         Geolocator
	transformer *Transformer
}

// NewService creates a new Service. geo may be nil when only city lookups are served.
func NewService(forecasts ForecastProvider, geo Geolocator, transformer *Transformer) *Service {
	return &Service{
		forecasts:   forecasts,
		geo:         geo,
		transformer: transformer,
	}
}

// ResolveCity returns the city for a client address. The loopback address never
// reaches the geolocation API.
func (s *Service) ResolveCity(ctx context.Context, ip string) (string, error) {
	if ip == LoopbackIP {
		log.Printf("DEBUG: loopback address, using default city %s", DefaultCity)
		return DefaultCity, nil
	}
	if s.geo == nil {
		return "", fmt.Errorf("no geolocation provider configured")
	}

	city, err := s.geo.LocateCity(ctx, ip)
	if err != nil {
		return "", fmt.Errorf("%s lookup for %s: %w", s.geo.Name(), ip, err)
	}
	if strings.TrimSpace(city) == "" {
		return "", ErrCityUnresolved
	}
	return city, nil
}

// GetForecast fetches and transforms the forecast for a "+"-joined city name.
// A cod 404 body yields ErrCityNotFound without running the transform.
func (s *Service) GetForecast(ctx context.Context, city string) (DisplayForecast, error) {
	if s.forecasts == nil {
		return DisplayForecast{}, fmt.Errorf("no forecast provider configured")
	}

	raw, err := s.forecasts.FetchForecast(ctx, city)
	if err != nil {
		return DisplayForecast{}, fmt.Errorf("%s forecast for %s: %w", s.forecasts.Name(), city, err)
	}

	switch raw.Cod {
	case 404:
		log.Printf("INFO: forecast api has no city %q", city)
		return DisplayForecast{}, ErrCityNotFound
	case 0, 200:
	default:
		return DisplayForecast{}, fmt.Errorf("%w: cod %d (%v)", ErrUpstreamStatus, raw.Cod, raw.Message)
	}

	display, err := s.transformer.Transform(raw)
	if err != nil {
		log.Printf("ERROR: transform failed for %s: %v", city, err)
		return DisplayForecast{}, err
	}

	log.Printf("DEBUG: forecast for %s: %+v", city, display)
	return display, nil
}

// NormalizeCity joins the whitespace-separated words of a city name with "+".
func NormalizeCity(city string) string {
	return strings.Join(strings.Fields(city), "+")
}
