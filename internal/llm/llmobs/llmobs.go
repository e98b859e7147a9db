package llmobs

import (
	"context"

	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/trace"
	"crypto-assistant/internal/types"
)

// observableChatClient wraps a ChatClient with logging and tracing
type observableChatClient struct {
	client interfaces.ChatClient
}

// Compile-time interface check
var _ interfaces.ChatClient = (*observableChatClient)(nil)

// Wrap wraps a chat client with observability middleware
func Wrap(client interfaces.ChatClient) interfaces.ChatClient {
	return &observableChatClient{
		client: client,
	}
}

// Complete sends a chat completion request with observability
func (oc *observableChatClient) Complete(ctx context.Context, msgs []types.Turn) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	// DebugSkip(1) reports the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting chat completion", "messages", len(msgs))

	content, err := oc.client.Complete(ctx, msgs)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Chat completion failed", err, "messages", len(msgs))
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Chat completion received",
		"messages", len(msgs),
		"content_length", len(content),
	)

	return content, nil
}
