package noop

import (
	"context"

	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/types"
)

// Client is a fallback chat client used when no chat provider key is
// configured. It keeps the turn pipeline total: every stage still runs and
// the caller receives a printable answer instead of an error.
type Client struct{}

var _ interfaces.ChatClient = (*Client)(nil)

// New returns a chat client that always answers with a fixed notice
func New() *Client {
	return &Client{}
}

// Complete implements the ChatClient interface
func (c *Client) Complete(ctx context.Context, msgs []types.Turn) (string, error) {
	logger.Debug(ctx, "Noop chat client called", "messages", len(msgs))
	return "No language model is configured. Set TOGETHER_API_KEY to enable answers.", nil
}
