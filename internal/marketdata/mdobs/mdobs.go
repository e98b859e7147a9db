package mdobs

import (
	"context"
	"encoding/json"

	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/trace"
)

// observableMarketData wraps a MarketData with logging and tracing
type observableMarketData struct {
	md interfaces.MarketData
}

// Compile-time interface check
var _ interfaces.MarketData = (*observableMarketData)(nil)

// Wrap wraps a market data fetcher with observability middleware
func Wrap(md interfaces.MarketData) interfaces.MarketData {
	return &observableMarketData{
		md: md,
	}
}

// Fetch performs a market data lookup with observability
func (om *observableMarketData) Fetch(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.Fetch")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching market data", "endpoint", endpoint, "params", len(params))

	body, err := om.md.Fetch(ctx, endpoint, params)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Market data fetch failed", err, "endpoint", endpoint)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Market data fetched",
		"endpoint", endpoint,
		"bytes", len(body),
	)

	return body, nil
}
