package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"crypto-assistant/internal/assistant"
	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/store"
	"crypto-assistant/internal/trace"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := os.Getenv("ASSISTANT_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// buildAssistant wires credentials and collaborators into the responder
func buildAssistant(ctx context.Context, cfg *store.Config) interfaces.Responder {
	creds := store.LoadCredentials()

	if creds.MarketAPIKey == "" {
		logger.Warn(ctx, "CMC_API_KEY not set, market data lookups will fail per call")
	}

	return assistant.New(ctx, cfg, creds)
}
