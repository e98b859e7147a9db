package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/trace"
	"crypto-assistant/internal/types"
)

var exampleQueries = []string{
	"What's the current price of Bitcoin?",
	"Show me the top 10 cryptocurrencies",
	"Tell me about Ethereum's market cap",
}

func main() {
	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	cfg, err := loadConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}

	bot := buildAssistant(ctx, cfg)

	fmt.Println("Crypto Assistant Bot — ask me anything about cryptocurrencies!")
	fmt.Println("Examples:")
	for _, q := range exampleQueries {
		fmt.Printf("  - %s\n", q)
	}
	fmt.Println("Type 'exit' to quit.")

	// The REPL owns the conversation history; the assistant itself is
	// stateless across turns.
	var history []types.Turn
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if ctx.Err() != nil {
			break
		}

		answer := bot.Respond(ctx, line, history)
		fmt.Println(answer)

		history = append(history,
			types.Turn{Role: types.RoleUser, Content: line},
			types.Turn{Role: types.RoleAssistant, Content: answer},
		)
	}

	shutdownCtx := context.Background()
	if err := trace.Shutdown(shutdownCtx); err != nil {
		logger.Warn(shutdownCtx, "Tracer shutdown failed", "error", err)
	}
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown failed: %v\n", err)
	}
}
