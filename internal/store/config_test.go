package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.History.Window != 3 {
		t.Errorf("expected history window 3, got %d", cfg.History.Window)
	}
	if cfg.LLM.Model != "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo" {
		t.Errorf("unexpected default model %q", cfg.LLM.Model)
	}
	if cfg.Market.BaseURL != "https://pro-api.coinmarketcap.com" {
		t.Errorf("unexpected market base URL %q", cfg.Market.BaseURL)
	}
	if cfg.News.Enabled {
		t.Error("news enrichment must be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
	if cfg.LLM.Temperature == nil || *cfg.LLM.Temperature != 0.7 {
		t.Errorf("expected default temperature 0.7, got %v", cfg.LLM.Temperature)
	}
}

func TestLoadConfigTemperatureZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  temperature: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Temperature == nil || *cfg.LLM.Temperature != 0 {
		t.Errorf("explicit temperature 0 must survive defaulting, got %v", cfg.LLM.Temperature)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.History.Window != 3 {
		t.Errorf("expected defaults, got window %d", cfg.History.Window)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
llm:
  model: some-other-model
  max_tokens: 256
history:
  window: 5
news:
  enabled: true
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Model != "some-other-model" {
		t.Errorf("expected model override, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 256 {
		t.Errorf("expected max_tokens override, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.History.Window != 5 {
		t.Errorf("expected window override, got %d", cfg.History.Window)
	}
	if !cfg.News.Enabled {
		t.Error("expected news enabled")
	}
	// Untouched fields keep defaults
	if cfg.Market.RequestsPerMin != 30 {
		t.Errorf("expected default rate limit, got %d", cfg.Market.RequestsPerMin)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history:\n  window: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error for oversized window")
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("TOGETHER_API_KEY", "chat-secret")
	t.Setenv("CMC_API_KEY", "market-secret")

	creds := LoadCredentials()
	if creds.ChatAPIKey != "chat-secret" {
		t.Errorf("unexpected chat key %q", creds.ChatAPIKey)
	}
	if creds.MarketAPIKey != "market-secret" {
		t.Errorf("unexpected market key %q", creds.MarketAPIKey)
	}
}
