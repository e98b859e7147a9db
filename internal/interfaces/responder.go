package interfaces

import (
	"context"

	"crypto-assistant/internal/types"
)

// Responder is the caller-facing boundary of the assistant. It always
// returns a printable answer and never an error; failures inside a turn are
// converted to an apology string.
type Responder interface {
	Respond(ctx context.Context, message string, history []types.Turn) string
}
