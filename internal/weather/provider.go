package weather

import (
	"context"
	"time"
)

// ForecastProvider abstracts the upstream forecast API (OpenWeatherMap).
// city is already normalized with words joined by "+".
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, city string) (RawForecast, error)
}

// Geolocator resolves a client IP address to a city name.
type Geolocator interface {
	Name() string
	LocateCity(ctx context.Context, ip string) (string, error)
}

// TimezoneResolver finds the location used to compute "today" for a forecast.
// lat/lon are the city coordinates from the forecast body; resolvers may ignore them.
type TimezoneResolver interface {
	Locate(country string, lat, lon float64) (*time.Location, error)
}
