package web

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-front/internal/weather"
)

func TestEngineRendersWeather(t *testing.T) {
	engine := Engine()
	if err := engine.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	display := weather.DisplayForecast{
		Country:  "IN",
		City:     "Kannur",
		Today:    weather.Today{Day: "Wed", Temp: 301.2, Weather: "Rain", Icon: "cloud-rain"},
		Days:     []float64{300.1, 299.5, 298.0, 297.3},
		Climates: []string{"cloud", "cloud", "cloud-snow", "cloud-rain"},
		Daynames: []string{"Thurs", "Fri", "Sat", "Sun"},
	}

	var buf bytes.Buffer
	if err := engine.Render(&buf, "weather", fiber.Map{"Data": display}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Kannur, IN", "Thurs", "Sun", "icon-cloud-snow", "301.2"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	if strings.Contains(out, `class="date"`) || strings.Contains(out, "Requested from") {
		t.Error("empty date and client must not be rendered")
	}
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"/css/style.css", "/js/locate.js"} {
		f, err := Static().Open(name)
		if err != nil {
			t.Errorf("Open(%s) error = %v", name, err)
			continue
		}
		b, _ := io.ReadAll(f)
		_ = f.Close()
		if len(b) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
