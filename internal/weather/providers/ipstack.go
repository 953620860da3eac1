package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-front/internal/weather"
)

const ipstackBaseURL = "http://api.ipstack.com"

// IPStackProvider implements weather.Geolocator on top of api.ipstack.com.
type IPStackProvider struct {
	name      string
	accessKey string
	client    *resty.Client
	circuit   *gobreaker.CircuitBreaker
}

var _ weather.Geolocator = (*IPStackProvider)(nil)

func NewIPStackProvider(accessKey string, cfg ClientConfig) *IPStackProvider {
	return NewIPStackProviderWithBaseURL(ipstackBaseURL, accessKey, cfg)
}

// NewIPStackProviderWithBaseURL points the provider at another host (tests).
func NewIPStackProviderWithBaseURL(baseURL, accessKey string, cfg ClientConfig) *IPStackProvider {
	return &IPStackProvider{
		name:      "ipstack",
		accessKey: accessKey,
		client:    newRestyClient(baseURL, cfg),
		circuit:   newBreaker("ipstack", cfg),
	}
}

func (p *IPStackProvider) Name() string {
	return p.name
}

// LocateCity issues one GET /<ip>?access_key=<key>&format=1 and returns the city field.
func (p *IPStackProvider) LocateCity(ctx context.Context, ip string) (string, error) {
	path := fmt.Sprintf("/%s?access_key=%s&format=1", url.PathEscape(ip), url.QueryEscape(p.accessKey))

	resp, err := doRequest(ctx, p.client, p.circuit, path)
	if err != nil {
		return "", err
	}

	var payload struct {
		City    *string `json:"city"`
		Success *bool   `json:"success"`
		Error   struct {
			Code int    `json:"code"`
			Type string `json:"type"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("%w: %v", errDecode, err)
	}

	if payload.Success != nil && !*payload.Success {
		return "", fmt.Errorf("%w: ipstack error %d %s", weather.ErrCityUnresolved, payload.Error.Code, payload.Error.Type)
	}
	if payload.City == nil || *payload.City == "" {
		return "", weather.ErrCityUnresolved
	}
	return *payload.City, nil
}
