package interfaces

import (
	"context"

	"crypto-assistant/internal/types"
)

// ChatClient sends one synchronous chat-completion request and returns the
// text of the first choice.
type ChatClient interface {
	Complete(ctx context.Context, msgs []types.Turn) (string, error)
}
