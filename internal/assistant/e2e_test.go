package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"crypto-assistant/internal/llm/together"
	"crypto-assistant/internal/marketdata/cmc"
	"crypto-assistant/internal/store"
)

// chatStub serves the chat-completion wire format, returning scripted
// contents in request order.
func chatStub(t *testing.T, contents []string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer chat-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		n := calls.Add(1) - 1
		if int(n) >= len(contents) {
			n = int64(len(contents) - 1)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": contents[n]}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func testConfig(chatURL, marketURL string) *store.Config {
	cfg := store.Default()
	cfg.LLM.BaseURL = chatURL
	cfg.Market.BaseURL = marketURL
	cfg.Market.MaxAttempts = 1
	return cfg
}

func TestEndToEndTopTen(t *testing.T) {
	var chatCalls atomic.Int64
	chatSrv := chatStub(t, []string{
		listingsCall,
		"Here are the top cryptocurrencies: Bitcoin, Ethereum and Tether lead the market.",
	}, &chatCalls)
	defer chatSrv.Close()

	var marketCalls atomic.Int64
	marketSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		marketCalls.Add(1)
		if got := r.Header.Get("X-CMC_PRO_API_KEY"); got != "market-key" {
			t.Errorf("unexpected api key header %q", got)
		}
		if r.URL.Path != "/v1/cryptocurrency/listings/latest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("expected limit=10, got %q", got)
		}
		fmt.Fprint(w, `{"data":[{"name":"Bitcoin"},{"name":"Ethereum"}]}`)
	}))
	defer marketSrv.Close()

	cfg := testConfig(chatSrv.URL, marketSrv.URL)
	creds := store.Credentials{ChatAPIKey: "chat-key", MarketAPIKey: "market-key"}
	a := New(context.Background(), cfg, creds)

	answer := a.Respond(context.Background(), "Show me the top 10 cryptocurrencies", nil)

	if answer == "" || answer == apology {
		t.Fatalf("expected synthesized answer, got %q", answer)
	}
	if !strings.Contains(answer, "Bitcoin") {
		t.Errorf("expected cryptocurrency names in answer, got %q", answer)
	}
	if chatCalls.Load() != 2 {
		t.Errorf("expected 2 chat calls, got %d", chatCalls.Load())
	}
	if marketCalls.Load() != 1 {
		t.Errorf("expected 1 market call, got %d", marketCalls.Load())
	}
}

func TestEndToEndMissingMarketKey(t *testing.T) {
	var chatCalls atomic.Int64
	chatSrv := chatStub(t, []string{
		listingsCall,
		"I could not reach the market data provider, sorry about that.",
	}, &chatCalls)
	defer chatSrv.Close()

	marketSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called without a credential")
	}))
	defer marketSrv.Close()

	cfg := testConfig(chatSrv.URL, marketSrv.URL)
	creds := store.Credentials{ChatAPIKey: "chat-key"}
	a := New(context.Background(), cfg, creds)

	answer := a.Respond(context.Background(), "Show me the top 10 cryptocurrencies", nil)

	if answer == "" || answer == apology {
		t.Fatalf("expected explanatory answer despite missing key, got %q", answer)
	}
	if chatCalls.Load() != 2 {
		t.Errorf("expected synthesis to still run, got %d chat calls", chatCalls.Load())
	}
}

func TestEndToEndPlainConversation(t *testing.T) {
	var chatCalls atomic.Int64
	chatSrv := chatStub(t, []string{
		"Hello! Ask me anything about cryptocurrencies.",
		"Hello! Ask me anything about cryptocurrencies.",
	}, &chatCalls)
	defer chatSrv.Close()

	marketSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called on the passthrough path")
	}))
	defer marketSrv.Close()

	cfg := testConfig(chatSrv.URL, marketSrv.URL)
	creds := store.Credentials{ChatAPIKey: "chat-key", MarketAPIKey: "market-key"}
	a := New(context.Background(), cfg, creds)

	answer := a.Respond(context.Background(), "hi there", nil)

	if answer == "" || answer == apology {
		t.Fatalf("expected conversational answer, got %q", answer)
	}
	if chatCalls.Load() != 2 {
		t.Errorf("expected 2 chat calls, got %d", chatCalls.Load())
	}
}

func TestEndToEndNoChatKeyUsesNoop(t *testing.T) {
	marketSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called when the noop client answers")
	}))
	defer marketSrv.Close()

	cfg := testConfig("http://invalid.invalid", marketSrv.URL)
	a := New(context.Background(), cfg, store.Credentials{})

	answer := a.Respond(context.Background(), "Show me the top 10 cryptocurrencies", nil)

	if answer == "" || answer == apology {
		t.Fatalf("expected printable noop answer, got %q", answer)
	}
	if !strings.Contains(answer, "TOGETHER_API_KEY") {
		t.Errorf("expected the noop notice naming the missing key, got %q", answer)
	}
}

// Keep the sentinel checks close to the e2e scenarios they explain.
func TestFetchErrorsAreRecoverable(t *testing.T) {
	cfg := testConfig("http://invalid.invalid", "http://invalid.invalid")
	client := cmc.New(cfg, store.Credentials{})

	_, err := client.Fetch(context.Background(), cmc.EndpointListings, nil)
	if err == nil || !strings.Contains(err.Error(), "API key not found") {
		t.Errorf("expected identifiable missing-key error, got %v", err)
	}
}

func TestChatMissingKeySentinel(t *testing.T) {
	cfg := testConfig("http://invalid.invalid", "http://invalid.invalid")
	client := together.New(cfg, store.Credentials{})

	_, err := client.Complete(context.Background(), nil)
	if err != together.ErrMissingAPIKey {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}
