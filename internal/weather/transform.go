package weather

import (
	"fmt"
	"time"
)

// Transformer shapes RawForecast payloads into DisplayForecast values.
type Transformer struct {
	timezones TimezoneResolver
	now       func() time.Time
	stampDate bool
}

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) TransformerOption {
	return func(t *Transformer) { t.now = now }
}

// WithoutDate leaves Today.Date empty (the fixed-city page has no date line).
func WithoutDate() TransformerOption {
	return func(t *Transformer) { t.stampDate = false }
}

// NewTransformer creates a Transformer that stamps today's date by default.
func NewTransformer(timezones TimezoneResolver, opts ...TransformerOption) *Transformer {
	t := &Transformer{
		timezones: timezones,
		now:       time.Now,
		stampDate: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform builds the display structure from raw. It never returns a partial result:
// a short list, an unmapped condition or an unknown country all yield an ErrTransform.
func (t *Transformer) Transform(raw RawForecast) (DisplayForecast, error) {
	if len(raw.List) < UpcomingDays+1 {
		return DisplayForecast{}, fmt.Errorf("%w: got %d, need %d", ErrShortForecast, len(raw.List), UpcomingDays+1)
	}

	country := raw.City.Country
	loc, err := t.timezones.Locate(country, raw.City.Coord.Lat, raw.City.Coord.Lon)
	if err != nil {
		return DisplayForecast{}, fmt.Errorf("%w %q: %v", ErrUnknownCountry, country, err)
	}

	now := t.now()
	// Calendar weekday in the city's zone, Sunday first.
	day := now.In(loc).Weekday()

	current := raw.List[0]
	icon, err := Icon(current.Condition())
	if err != nil {
		return DisplayForecast{}, err
	}

	today := Today{
		Day:      WeekdayLabel(day),
		Temp:     current.Main.Temp,
		Pressure: current.Main.Pressure,
		Humidity: current.Main.Humidity,
		Wind:     current.Wind.Speed,
		Weather:  current.Condition(),
		Icon:     icon,
	}
	// The date line uses the server's local date, not the city's.
	if t.stampDate {
		today.Date = now.Local().Format(DateLayout)
	}

	out := DisplayForecast{
		Country:  country,
		City:     raw.City.Name,
		Today:    today,
		Days:     make([]float64, 0, UpcomingDays),
		Climates: make([]string, 0, UpcomingDays),
		Daynames: make([]string, 0, UpcomingDays),
	}

	for _, entry := range raw.List[1 : UpcomingDays+1] {
		icon, err := Icon(entry.Condition())
		if err != nil {
			return DisplayForecast{}, err
		}
		out.Days = append(out.Days, entry.Main.Temp)
		out.Climates = append(out.Climates, icon)
	}

	for _, d := range NextWeekdays(day, UpcomingDays) {
		out.Daynames = append(out.Daynames, WeekdayLabel(d))
	}

	return out, nil
}
