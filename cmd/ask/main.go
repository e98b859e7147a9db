package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"crypto-assistant/internal/assistant"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/store"
	"crypto-assistant/internal/trace"
)

// ask runs a single turn with no prior history and prints the answer.
// Usage: ask <question about cryptocurrencies>
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: ask <question>")
		os.Exit(2)
	}
	query := strings.Join(os.Args[1:], " ")

	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	ctx := context.Background()

	path := os.Getenv("ASSISTANT_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		log.Fatal(err)
	}

	bot := assistant.New(ctx, cfg, store.LoadCredentials())
	fmt.Println(bot.Respond(ctx, query, nil))

	_ = trace.Shutdown(ctx)
	_ = logger.Shutdown(ctx)
}
