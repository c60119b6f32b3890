// Package marketapi is the HTTP client for the local market data service.
package marketapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MarketDash/internal/domain/models"
	xhttp "MarketDash/pkg/http"
)

const (
	EndpointMarketData   = "/market-data"
	EndpointVIXPrice     = "/vix-current-price"
	EndpointRefreshCache = "/refresh-cache"
	EndpointPredict      = "/predict"
)

// Human-readable descriptions used in FetchError messages.
var endpointDescriptions = map[string]string{
	EndpointMarketData:   "Error fetching market data",
	EndpointVIXPrice:     "Error fetching the VIX quote",
	EndpointRefreshCache: "Error refreshing the market cache",
	EndpointPredict:      "Error fetching the prediction",
}

// FetchError reports a non-2xx answer from an endpoint.
type FetchError struct {
	Endpoint string
	Status   int
}

func (e *FetchError) Error() string {
	desc, ok := endpointDescriptions[e.Endpoint]
	if !ok {
		desc = "Error calling the market API"
	}
	return fmt.Sprintf("%s (%s).", desc, e.Endpoint)
}

// APIError reports a body whose `error` field is set, whatever the status.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	return e.Message
}

// Option configures Client.
type Option func(*options)

type options struct {
	timeout time.Duration
	doer    xhttp.Doer
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithDoer swaps the HTTP transport.
func WithDoer(d xhttp.Doer) Option {
	return func(o *options) { o.doer = d }
}

// Client implements repository.MarketAPI over JSON/HTTP.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a client for the service at baseURL, e.g. http://127.0.0.1:8080.
func New(baseURL string, opts ...Option) *Client {
	register()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	httpOpts := []xhttp.ClientOption{xhttp.WithNoCache(), xhttp.WithTimeout(o.timeout)}
	if o.doer != nil {
		httpOpts = append(httpOpts, xhttp.WithDoer(o.doer))
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(httpOpts...),
	}
}

// MarketData fetches the BTC/VIX snapshot.
func (c *Client) MarketData(ctx context.Context) (*models.MarketSnapshot, error) {
	var out models.MarketSnapshot
	if err := c.call(ctx, xhttp.MethodGet, EndpointMarketData, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VIXCurrentPrice fetches the live VIX quote.
func (c *Client) VIXCurrentPrice(ctx context.Context) (*models.VixQuote, error) {
	var out models.VixQuote
	if err := c.call(ctx, xhttp.MethodGet, EndpointVIXPrice, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshCache asks the service to drop and rebuild its market cache.
func (c *Client) RefreshCache(ctx context.Context) (*models.RefreshResult, error) {
	var out models.RefreshResult
	if err := c.call(ctx, xhttp.MethodPost, EndpointRefreshCache, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Predict requests the model's signal for the next session.
func (c *Client) Predict(ctx context.Context) (*models.Prediction, error) {
	var out models.Prediction
	if err := c.call(ctx, xhttp.MethodPost, EndpointPredict, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// call runs one request and applies the failure policy: a non-2xx status is a
// *FetchError, a decoded `error` field is an *APIError.
func (c *Client) call(ctx context.Context, method, endpoint string, dest models.ErrorMessage) (err error) {
	start := time.Now()
	defer func() {
		upstreamLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		if err != nil {
			upstreamErrors.WithLabelValues(endpoint, kindOf(err)).Inc()
		}
	}()

	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: method,
		URL:    c.baseURL + endpoint,
	}, dest)

	var se *xhttp.StatusError
	switch {
	case errors.As(err, &se):
		return &FetchError{Endpoint: endpoint, Status: se.StatusCode}
	case err != nil:
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	if msg := dest.ErrorMessage(); msg != "" {
		return &APIError{Endpoint: endpoint, Message: msg}
	}
	return nil
}

func kindOf(err error) string {
	var fe *FetchError
	var ae *APIError
	switch {
	case errors.As(err, &fe):
		return fe.Kind()
	case errors.As(err, &ae):
		return ae.Kind()
	default:
		return "transport"
	}
}

// Kind labels the failure for metrics.
func (e *FetchError) Kind() string { return "fetch" }

// Kind labels the failure for metrics.
func (e *APIError) Kind() string { return "api" }
