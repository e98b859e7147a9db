package interfaces

import (
	"context"

	"crypto-assistant/internal/types"
)

// Headlines supplies recent news articles for a cryptocurrency symbol.
type Headlines interface {
	Headlines(ctx context.Context, symbol string, max int) ([]types.NewsArticle, error)
}
