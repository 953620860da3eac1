package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-front/internal/weather"
)

const openWeatherBaseURL = "http://api.openweathermap.org"

// OpenWeatherProvider implements weather.ForecastProvider for the OpenWeatherMap
// 5-day/3-hour forecast endpoint.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

var _ weather.ForecastProvider = (*OpenWeatherProvider)(nil)

func NewOpenWeatherProvider(apiKey string, cfg ClientConfig) *OpenWeatherProvider {
	return NewOpenWeatherProviderWithBaseURL(openWeatherBaseURL, apiKey, cfg)
}

// NewOpenWeatherProviderWithBaseURL points the provider at another host (tests).
func NewOpenWeatherProviderWithBaseURL(baseURL, apiKey string, cfg ClientConfig) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		client:  newRestyClient(baseURL, cfg),
		circuit: newBreaker("openweather", cfg),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// FetchForecast issues one GET /data/2.5/forecast?q=<city>&appid=<key>. The body is
// decoded whatever the HTTP status so that a {"cod":"404"} answer reaches the caller.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, city string) (weather.RawForecast, error) {
	path := fmt.Sprintf("/data/2.5/forecast?q=%s&appid=%s", escapeCity(city), url.QueryEscape(p.apiKey))

	resp, err := doRequest(ctx, p.client, p.circuit, path)
	if err != nil {
		return weather.RawForecast{}, err
	}

	var payload weather.RawForecast
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return weather.RawForecast{}, fmt.Errorf("%w: %v", errDecode, err)
	}
	return payload, nil
}

// escapeCity query-escapes each "+"-separated word and keeps "+" as the separator.
func escapeCity(city string) string {
	words := strings.Split(city, "+")
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.Join(words, "+")
}
