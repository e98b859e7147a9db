package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries all tunables for the assistant. Secrets are never read
// from YAML; they come from the environment via LoadCredentials and are
// passed to constructors explicitly.
type Config struct {
	LLM struct {
		BaseURL   string `yaml:"base_url"`
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"max_tokens"`
		// Pointer so an explicit 0 survives defaulting.
		Temperature *float32 `yaml:"temperature"`
	} `yaml:"llm"`
	Market struct {
		BaseURL        string `yaml:"base_url"`
		CacheTTLSecs   int    `yaml:"cache_ttl_secs"`
		RequestsPerMin int    `yaml:"requests_per_min"`
		MaxAttempts    int    `yaml:"max_attempts"`
	} `yaml:"market"`
	History struct {
		Window int `yaml:"window"`
	} `yaml:"history"`
	News struct {
		Enabled      bool `yaml:"enabled"`
		MaxHeadlines int  `yaml:"max_headlines"`
		CacheSecs    int  `yaml:"cache_secs"`
		TimeoutSecs  int  `yaml:"timeout_secs"`
	} `yaml:"news"`
}

// Credentials holds the provider secrets read from the environment once at
// startup. Components receive them through constructors, never by global
// lookup.
type Credentials struct {
	ChatAPIKey   string
	MarketAPIKey string
}

// LoadCredentials reads provider credentials from the environment
func LoadCredentials() Credentials {
	return Credentials{
		ChatAPIKey:   os.Getenv("TOGETHER_API_KEY"),
		MarketAPIKey: os.Getenv("CMC_API_KEY"),
	}
}

func (c *Config) Validate() error {
	if c.History.Window < 1 || c.History.Window > 10 {
		return fmt.Errorf("history.window must be between 1-10, got %d", c.History.Window)
	}
	if c.LLM.Temperature != nil && (*c.LLM.Temperature < 0 || *c.LLM.Temperature > 2) {
		return fmt.Errorf("llm.temperature must be between 0-2, got %.2f", *c.LLM.Temperature)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.Market.MaxAttempts < 1 {
		return fmt.Errorf("market.max_attempts must be at least 1, got %d", c.Market.MaxAttempts)
	}
	return nil
}

// Default returns a Config with all defaults applied
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.together.xyz/v1/chat/completions"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 512
	}
	if c.LLM.Temperature == nil {
		t := float32(0.7)
		c.LLM.Temperature = &t
	}
	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://pro-api.coinmarketcap.com"
	}
	if c.Market.CacheTTLSecs == 0 {
		c.Market.CacheTTLSecs = 60
	}
	if c.Market.RequestsPerMin == 0 {
		c.Market.RequestsPerMin = 30
	}
	if c.Market.MaxAttempts == 0 {
		c.Market.MaxAttempts = 2
	}
	if c.History.Window == 0 {
		c.History.Window = 3
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.CacheSecs == 0 {
		c.News.CacheSecs = 900
	}
	if c.News.TimeoutSecs == 0 {
		c.News.TimeoutSecs = 15
	}
}

// LoadConfig reads the YAML config at path. A missing file is not an
// error; the defaults are used so the binaries run with no config.yaml.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
