package together

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crypto-assistant/internal/api"
	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/store"
	"crypto-assistant/internal/types"
)

// ErrMissingAPIKey is returned when no chat provider credential was injected.
var ErrMissingAPIKey = errors.New("together api key not configured")

// ErrEmptyCompletion is returned when the provider response decodes but
// contains no choices.
var ErrEmptyCompletion = errors.New("completion contained no choices")

// Client calls the Together chat-completions API. One Complete call is one
// synchronous request; there are no retries and no streaming.
type Client struct {
	api         *api.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
}

var _ interfaces.ChatClient = (*Client)(nil)

// New creates a chat client from config and injected credentials
func New(cfg *store.Config, creds store.Credentials) *Client {
	temperature := float32(0.7)
	if cfg.LLM.Temperature != nil {
		temperature = *cfg.LLM.Temperature
	}
	return &Client{
		api: api.NewClient(
			api.WithBaseURL(cfg.LLM.BaseURL),
			api.WithTimeout(60*time.Second),
			api.WithLogging(true),
		),
		apiKey:      creds.ChatAPIKey,
		model:       cfg.LLM.Model,
		maxTokens:   cfg.LLM.MaxTokens,
		temperature: temperature,
	}
}

type completionRequest struct {
	Model       string       `json:"model"`
	Messages    []types.Turn `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature float32      `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat-completion request and returns the text content
// of the first choice.
func (c *Client) Complete(ctx context.Context, msgs []types.Turn) (string, error) {
	ctx, span := logger.StartSpan(ctx, "together-chat-completion")
	defer span.End()

	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body := completionRequest{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	logger.Debug(ctx, "Sending chat completion request", "model", c.model, "messages", len(msgs))

	resp, err := c.api.POST(ctx, "", body, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
		"Accept":        "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	var r completionResponse
	if err := resp.ParseJSON(&r); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}

	if len(r.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
