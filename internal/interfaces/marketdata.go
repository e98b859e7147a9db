package interfaces

import (
	"context"
	"encoding/json"
)

// MarketData performs an authenticated lookup against the market data
// provider. The payload is returned opaque; callers stringify it before
// feeding it back to the model.
type MarketData interface {
	Fetch(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error)
}
