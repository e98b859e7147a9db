package cmc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"crypto-assistant/internal/api"
	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/store"
	"crypto-assistant/internal/trace"
)

// EndpointListings returns current prices of top cryptocurrencies.
const EndpointListings = "/v1/cryptocurrency/listings/latest"

// EndpointQuotes returns details of specific cryptocurrencies by symbol.
const EndpointQuotes = "/v1/cryptocurrency/quotes/latest"

// allowedEndpoints is the fixed allow-list; anything else short-circuits
// before a provider call is made.
var allowedEndpoints = map[string]bool{
	EndpointListings: true,
	EndpointQuotes:   true,
}

// ErrMissingAPIKey is returned when no CoinMarketCap credential was injected.
var ErrMissingAPIKey = errors.New("CoinMarketCap API key not found")

// ErrUnsupportedEndpoint is returned for endpoints outside the allow-list.
var ErrUnsupportedEndpoint = errors.New("unsupported CoinMarketCap endpoint")

// Client fetches cryptocurrency data from the CoinMarketCap API. Responses
// are cached briefly and requests are rate limited; parameters are passed
// verbatim, the provider is responsible for rejecting malformed ones.
type Client struct {
	api     *api.Client
	apiKey  string
	cache   *responseCache
	limiter *rateLimiter
	retry   *api.RetryConfig
}

var _ interfaces.MarketData = (*Client)(nil)

// New creates a CoinMarketCap client from config and injected credentials
func New(cfg *store.Config, creds store.Credentials) *Client {
	rpm := cfg.Market.RequestsPerMin
	if rpm < 1 {
		rpm = 1
	}
	refill := time.Minute / time.Duration(rpm)
	return &Client{
		api: api.NewClient(
			api.WithBaseURL(cfg.Market.BaseURL),
			api.WithHeader("Accept", "application/json"),
			api.WithLogging(true),
		),
		apiKey:  creds.MarketAPIKey,
		cache:   newResponseCache(time.Duration(cfg.Market.CacheTTLSecs) * time.Second),
		limiter: newRateLimiter(rpm, refill),
		retry: &api.RetryConfig{
			MaxAttempts: cfg.Market.MaxAttempts,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     2 * time.Second,
		},
	}
}

// Fetch performs an authenticated lookup for the given endpoint and query
// parameters and returns the provider's JSON as-is.
func (c *Client) Fetch(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	ctx, span := trace.StartSpan(ctx, "cmc-fetch")
	defer span.End()

	if !allowedEndpoints[endpoint] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEndpoint, endpoint)
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	key := cacheKey(endpoint, params)
	if body, ok := c.cache.get(key); ok {
		logger.Debug(ctx, "CoinMarketCap cache hit", "endpoint", endpoint)
		return body, nil
	}

	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	reqURL := endpoint
	if len(q) > 0 {
		reqURL += "?" + q.Encode()
	}

	req := api.NewRequest(http.MethodGet, reqURL).
		WithContext(ctx).
		WithHeader("X-CMC_PRO_API_KEY", c.apiKey)

	resp, err := c.api.DoWithRetry(req, c.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cryptocurrency data: %w", err)
	}

	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("CoinMarketCap response is not valid JSON (endpoint %s)", endpoint)
	}

	c.cache.set(key, resp.Body)

	logger.Info(ctx, "CoinMarketCap data fetched", "endpoint", endpoint, "bytes", len(resp.Body))
	return resp.Body, nil
}
