package weather

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"
)

// fixedZones resolves every known country to a single location.
type fixedZones map[string]*time.Location

func (z fixedZones) Locate(country string, lat, lon float64) (*time.Location, error) {
	loc, ok := z[country]
	if !ok {
		return nil, fmt.Errorf("no zone for %q", country)
	}
	return loc, nil
}

var testZones = fixedZones{
	"US": time.FixedZone("EST", -5*3600),
	"IN": time.FixedZone("IST", 5*3600+1800),
}

func entry(temp float64, condition string) ForecastEntry {
	var e ForecastEntry
	e.Main.Temp = temp
	e.Main.Pressure = 1000 + temp
	e.Main.Humidity = 50
	e.Wind.Speed = 4.5
	if condition != "" {
		e.Weather = append(e.Weather, struct {
			Main string `json:"main"`
		}{Main: condition})
	}
	return e
}

func rawForecast(country string, conditions ...string) RawForecast {
	var raw RawForecast
	raw.Cod = 200
	raw.City.Name = "Springfield"
	raw.City.Country = country
	for i, c := range conditions {
		raw.List = append(raw.List, entry(280+float64(i), c))
	}
	return raw
}

func clockAt(t time.Time) TransformerOption {
	return WithClock(func() time.Time { return t })
}

// Wednesday 14 October 2026, 12:00 UTC.
var noon = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func TestTransform(t *testing.T) {
	tr := NewTransformer(testZones, clockAt(noon))

	got, err := tr.Transform(rawForecast("US", "Rain", "Clouds", "Snow", "Rain", "Clouds", "Snow"))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if got.Country != "US" || got.City != "Springfield" {
		t.Errorf("Country/City = %q/%q", got.Country, got.City)
	}
	if got.Today.Icon != "cloud-rain" || got.Today.Weather != "Rain" {
		t.Errorf("Today icon/weather = %q/%q, want cloud-rain/Rain", got.Today.Icon, got.Today.Weather)
	}
	if got.Today.Day != "Wed" {
		t.Errorf("Today.Day = %q, want Wed", got.Today.Day)
	}
	if got.Today.Temp != 280 || got.Today.Pressure != 1280 || got.Today.Humidity != 50 || got.Today.Wind != 4.5 {
		t.Errorf("Today = %+v", got.Today)
	}
	if want := noon.Local().Format(DateLayout); got.Today.Date != want {
		t.Errorf("Today.Date = %q, want %q", got.Today.Date, want)
	}

	wantDays := []float64{281, 282, 283, 284}
	wantClimates := []string{"cloud", "cloud-snow", "cloud-rain", "cloud"}
	wantNames := []string{"Thurs", "Fri", "Sat", "Sun"}

	if !reflect.DeepEqual(got.Days, wantDays) {
		t.Errorf("Days = %v, want %v", got.Days, wantDays)
	}
	if !reflect.DeepEqual(got.Climates, wantClimates) {
		t.Errorf("Climates = %v, want %v", got.Climates, wantClimates)
	}
	if !reflect.DeepEqual(got.Daynames, wantNames) {
		t.Errorf("Daynames = %v, want %v", got.Daynames, wantNames)
	}
}

func TestTransform_WeekdayUsesCountryZone(t *testing.T) {
	// 20:00 UTC on Wednesday is already Thursday in India and still Wednesday in the US.
	instant := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	tr := NewTransformer(testZones, clockAt(instant))

	tests := []struct {
		country   string
		wantToday string
		wantNames []string
	}{
		{country: "US", wantToday: "Wed", wantNames: []string{"Thurs", "Fri", "Sat", "Sun"}},
		{country: "IN", wantToday: "Thurs", wantNames: []string{"Fri", "Sat", "Sun", "Mon"}},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			got, err := tr.Transform(rawForecast(tt.country, "Clouds", "Clouds", "Clouds", "Clouds", "Clouds"))
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if got.Today.Day != tt.wantToday {
				t.Errorf("Today.Day = %q, want %q", got.Today.Day, tt.wantToday)
			}
			if !reflect.DeepEqual(got.Daynames, tt.wantNames) {
				t.Errorf("Daynames = %v, want %v", got.Daynames, tt.wantNames)
			}
		})
	}
}

func TestTransform_MondayIsLabelledMon(t *testing.T) {
	monday := time.Date(2026, 10, 12, 12, 0, 0, 0, time.UTC)
	tr := NewTransformer(fixedZones{"GB": time.UTC}, clockAt(monday))

	got, err := tr.Transform(rawForecast("GB", "Rain", "Rain", "Rain", "Rain", "Rain"))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got.Today.Day != "Mon" {
		t.Errorf("Today.Day = %q, want Mon", got.Today.Day)
	}
	if want := []string{"Tue", "Wed", "Thurs", "Fri"}; !reflect.DeepEqual(got.Daynames, want) {
		t.Errorf("Daynames = %v, want %v", got.Daynames, want)
	}
}

func TestTransform_DaynamesRotation(t *testing.T) {
	labels := []string{"Sun", "Mon", "Tue", "Wed", "Thurs", "Fri", "Sat"}
	sunday := time.Date(2026, 10, 11, 12, 0, 0, 0, time.UTC)

	for offset := 0; offset < 7; offset++ {
		instant := sunday.AddDate(0, 0, offset)
		tr := NewTransformer(fixedZones{"US": time.UTC}, clockAt(instant))
		raw := rawForecast("US", "Snow", "Snow", "Snow", "Snow", "Snow")

		first, err := tr.Transform(raw)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		second, err := tr.Transform(raw)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("offset %d: transform is not deterministic: %v vs %v", offset, first, second)
		}

		if len(first.Days) != UpcomingDays || len(first.Climates) != UpcomingDays || len(first.Daynames) != UpcomingDays {
			t.Fatalf("offset %d: lengths %d/%d/%d", offset, len(first.Days), len(first.Climates), len(first.Daynames))
		}
		for i, name := range first.Daynames {
			if want := labels[(offset+1+i)%7]; name != want {
				t.Errorf("offset %d: Daynames[%d] = %q, want %q", offset, i, name, want)
			}
		}
	}
}

func TestTransform_UsesOnlyFirstFiveEntries(t *testing.T) {
	tr := NewTransformer(testZones, clockAt(noon))
	conditions := []string{"Clouds", "Clouds", "Clouds", "Clouds", "Clouds", "Clear", "Thunderstorm"}

	got, err := tr.Transform(rawForecast("US", conditions...))
	if err != nil {
		t.Fatalf("Transform() error = %v, entries past the fifth must be ignored", err)
	}
	if len(got.Days) != UpcomingDays {
		t.Errorf("len(Days) = %d", len(got.Days))
	}
}

func TestTransform_WithoutDate(t *testing.T) {
	tr := NewTransformer(testZones, clockAt(noon), WithoutDate())

	got, err := tr.Transform(rawForecast("US", "Clouds", "Clouds", "Clouds", "Clouds", "Clouds"))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got.Today.Date != "" {
		t.Errorf("Today.Date = %q, want empty", got.Today.Date)
	}
}

func TestTransform_Failures(t *testing.T) {
	tr := NewTransformer(testZones, clockAt(noon))

	tests := []struct {
		name    string
		raw     RawForecast
		wantErr error
	}{
		{
			name:    "three entries",
			raw:     rawForecast("US", "Rain", "Rain", "Rain"),
			wantErr: ErrShortForecast,
		},
		{
			name:    "empty list",
			raw:     rawForecast("US"),
			wantErr: ErrShortForecast,
		},
		{
			name:    "unknown country",
			raw:     rawForecast("XX", "Rain", "Rain", "Rain", "Rain", "Rain"),
			wantErr: ErrUnknownCountry,
		},
		{
			name:    "unmapped condition today",
			raw:     rawForecast("US", "Clear", "Rain", "Rain", "Rain", "Rain"),
			wantErr: ErrUnmappedCondition,
		},
		{
			name:    "unmapped condition later",
			raw:     rawForecast("US", "Rain", "Rain", "Rain", "Thunderstorm", "Rain"),
			wantErr: ErrUnmappedCondition,
		},
		{
			name:    "missing condition",
			raw:     rawForecast("US", "Rain", "", "Rain", "Rain", "Rain"),
			wantErr: ErrUnmappedCondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tr.Transform(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Transform() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrTransform) {
				t.Errorf("error %v does not wrap ErrTransform", err)
			}
			if !reflect.DeepEqual(got, DisplayForecast{}) {
				t.Errorf("Transform() returned a partial result: %+v", got)
			}
		})
	}
}

func TestIcon(t *testing.T) {
	tests := []struct {
		condition string
		want      string
	}{
		{"Clouds", "cloud"},
		{"Rain", "cloud-rain"},
		{"Snow", "cloud-snow"},
	}
	for _, tt := range tests {
		for i := 0; i < 2; i++ {
			got, err := Icon(tt.condition)
			if err != nil || got != tt.want {
				t.Errorf("Icon(%q) = %q, %v; want %q", tt.condition, got, err, tt.want)
			}
		}
	}

	for _, label := range []string{"Clear", "Thunderstorm", "Drizzle", "clouds", ""} {
		_, err := Icon(label)
		var unmapped *UnmappedConditionError
		if !errors.As(err, &unmapped) || unmapped.Condition != label {
			t.Errorf("Icon(%q) error = %v, want UnmappedConditionError", label, err)
		}
	}
}

func TestDisplayForecast_Upcoming(t *testing.T) {
	d := DisplayForecast{
		Days:     []float64{1, 2},
		Climates: []string{"cloud", "cloud-rain"},
		Daynames: []string{"Mon", "Tue"},
	}
	want := []DaySummary{{Name: "Mon", Temp: 1, Icon: "cloud"}, {Name: "Tue", Temp: 2, Icon: "cloud-rain"}}
	if got := d.Upcoming(); !reflect.DeepEqual(got, want) {
		t.Errorf("Upcoming() = %v, want %v", got, want)
	}
}

func TestDisplayForecast_DebugFormat(t *testing.T) {
	d := DisplayForecast{Country: "IN", City: "Kannur", Today: Today{Day: "Wed", Icon: "cloud"}}

	if _, ok := any(d).(fmt.Stringer); ok {
		t.Fatal("DisplayForecast should log in field form, not through a Stringer")
	}
	got := fmt.Sprintf("%+v", d)
	for _, want := range []string{"City:Kannur", "Country:IN", "Day:Wed", "Icon:cloud"} {
		if !strings.Contains(got, want) {
			t.Errorf("%%+v = %q, missing %q", got, want)
		}
	}
}
