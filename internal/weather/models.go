package weather

import (
	"strconv"
	"strings"
)

// StatusCode is the "cod" field of an OpenWeatherMap body. The API sends it as a
// string on errors ("404") and as a number on success (200).
type StatusCode int

func (s *StatusCode) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	*s = StatusCode(n)
	return nil
}

// RawForecast is the subset of the OpenWeatherMap 5-day/3-hour forecast payload we use.
type RawForecast struct {
	Cod     StatusCode `json:"cod"`
	Message any        `json:"message,omitempty"`
	City    struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Coord   struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
	List []ForecastEntry `json:"list"`
}

// ForecastEntry is one 3-hour slot of the upstream list.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Condition returns the primary condition label of the entry, or "" if none was sent.
func (e ForecastEntry) Condition() string {
	if len(e.Weather) == 0 {
		return ""
	}
	return e.Weather[0].Main
}

// Today holds the current conditions shown at the top of the weather page.
type Today struct {
	Date     string  `json:"date,omitempty"` // empty when the date stamp is disabled
	Day      string  `json:"day"`
	Temp     float64 `json:"temp"`
	Pressure float64 `json:"pressure"`
	Humidity float64 `json:"humidity"`
	Wind     float64 `json:"wind"`
	Weather  string  `json:"weather"`
	Icon     string  `json:"icon"`
}

// DisplayForecast is the display-ready view of a RawForecast.
// Days, Climates and Daynames always have UpcomingDays entries.
type DisplayForecast struct {
	Country  string    `json:"country"`
	City     string    `json:"city"`
	Today    Today     `json:"today"`
	Days     []float64 `json:"days"`
	Climates []string  `json:"climates"`
	Daynames []string  `json:"daynames"`
}

// DaySummary zips the per-day slices of a DisplayForecast for templates.
type DaySummary struct {
	Name string
	Temp float64
	Icon string
}

// Upcoming returns the next days as one slice.
func (d DisplayForecast) Upcoming() []DaySummary {
	out := make([]DaySummary, 0, len(d.Days))
	for i := range d.Days {
		out = append(out, DaySummary{
			Name: d.Daynames[i],
			Temp: d.Days[i],
			Icon: d.Climates[i],
		})
	}
	return out
}
