package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// ClientConfig bundles the HTTP settings shared by the upstream clients.
type ClientConfig struct {
	// Timeout bounds each outbound call; 0 means no client-side timeout.
	Timeout time.Duration
	// BreakerMaxFailures consecutive failures open the circuit; 0 disables tripping.
	BreakerMaxFailures uint32
	// BreakerOpenTimeout is how long the circuit stays open before probing again.
	BreakerOpenTimeout time.Duration
}

var (
	// ErrUpstream wraps every failure to get a usable answer from an upstream API.
	ErrUpstream = errors.New("upstream request failed")

	errServerError = fmt.Errorf("%w: server error", ErrUpstream)
	errCircuitOpen = fmt.Errorf("%w: circuit breaker open", ErrUpstream)
	errDecode      = fmt.Errorf("%w: undecodable response body", ErrUpstream)
)

func newRestyClient(baseURL string, cfg ClientConfig) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)
}

func newBreaker(name string, cfg ClientConfig) *gobreaker.CircuitBreaker {
	maxFailures := cfg.BreakerMaxFailures
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return maxFailures > 0 && counts.ConsecutiveFailures >= maxFailures
		},
	})
}

// doRequest performs exactly one GET through the circuit breaker. Transport errors
// and 5xx answers count as failures; any other status is handed back to the caller,
// because both upstream APIs report lookup failures inside a JSON body.
func doRequest(
	ctx context.Context,
	client *resty.Client,
	cb *gobreaker.CircuitBreaker,
	path string,
) (*resty.Response, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.R().SetContext(ctx).Get(path)
		if execErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, execErr)
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*resty.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}
