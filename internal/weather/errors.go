package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrTransform is the parent of every failure to shape a raw forecast for display.
	ErrTransform = errors.New("forecast transform failed")

	ErrShortForecast     = fmt.Errorf("%w: forecast list has too few entries", ErrTransform)
	ErrUnmappedCondition = fmt.Errorf("%w: no icon for weather condition", ErrTransform)
	ErrUnknownCountry    = fmt.Errorf("%w: no timezone for country", ErrTransform)

	// ErrCityNotFound is returned when the forecast API answers with cod 404.
	ErrCityNotFound = errors.New("city not found")

	// ErrUpstreamStatus is returned for any other non-200 cod in the forecast body.
	ErrUpstreamStatus = errors.New("forecast api returned an error status")

	// ErrCityUnresolved is returned when geolocation yields no city for an address.
	ErrCityUnresolved = errors.New("could not resolve city from ip")
)

// UnmappedConditionError names the condition label that has no icon.
type UnmappedConditionError struct {
	Condition string
}

func (e *UnmappedConditionError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnmappedCondition, e.Condition)
}

func (e *UnmappedConditionError) Unwrap() error {
	return ErrUnmappedCondition
}
