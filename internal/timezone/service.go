package timezone

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// ErrUnknownCountry is returned for country codes missing from the zone table.
var ErrUnknownCountry = errors.New("unknown country code")

// Service resolves countries (and optionally coordinates) to IANA timezones.
type Service struct {
	finder tzf.F // nil unless the coordinate fallback is enabled
}

var (
	finder     tzf.F
	finderErr  error
	finderOnce sync.Once
)

// defaultFinder loads the tzf polygon data once per process; it is large.
func defaultFinder() (tzf.F, error) {
	finderOnce.Do(func() {
		f, err := tzf.NewDefaultFinder()
		if err != nil {
			finderErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		finder = f
	})
	return finder, finderErr
}

// NewService creates a country-table resolver. With coordFallback, countries missing
// from the table are resolved from the city coordinates instead of failing.
func NewService(coordFallback bool) (*Service, error) {
	s := &Service{}
	if coordFallback {
		f, err := defaultFinder()
		if err != nil {
			return nil, err
		}
		s.finder = f
	}
	return s, nil
}

// CountryTimezones returns a copy of the zones for an ISO country code.
func CountryTimezones(country string) []string {
	zones := countryZones[strings.ToUpper(strings.TrimSpace(country))]
	return append([]string(nil), zones...)
}

// PrimaryTimezone returns the first zone listed for a country.
func PrimaryTimezone(country string) (string, error) {
	zones := countryZones[strings.ToUpper(strings.TrimSpace(country))]
	if len(zones) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	return zones[0], nil
}

// GetTimezone returns the IANA timezone name for the given coordinates.
func (s *Service) GetTimezone(latitude, longitude float64) (string, error) {
	if s.finder == nil {
		return "", fmt.Errorf("coordinate lookup is disabled")
	}
	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}
	return name, nil
}

// Locate implements weather.TimezoneResolver.
func (s *Service) Locate(country string, lat, lon float64) (*time.Location, error) {
	name, err := PrimaryTimezone(country)
	if err != nil && s.finder != nil {
		name, err = s.GetTimezone(lat, lon)
	}
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", name, err)
	}
	return loc, nil
}
