package assistant

import (
	"context"
	"time"

	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/llm/llmobs"
	"crypto-assistant/internal/llm/noop"
	"crypto-assistant/internal/llm/together"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/marketdata/cmc"
	"crypto-assistant/internal/marketdata/mdobs"
	"crypto-assistant/internal/news"
	"crypto-assistant/internal/store"
)

// New builds an assistant from config and injected credentials, wiring the
// real provider clients behind observability middleware. A missing chat key
// falls back to the noop client so every turn still completes; a missing
// market key is handled per call by the fetcher.
func New(ctx context.Context, cfg *store.Config, creds store.Credentials) *Assistant {
	var chat interfaces.ChatClient
	if creds.ChatAPIKey == "" {
		logger.Warn(ctx, "TOGETHER_API_KEY not set, using noop chat client")
		chat = noop.New()
	} else {
		chat = together.New(cfg, creds)
	}
	chat = llmobs.Wrap(chat)

	market := mdobs.Wrap(cmc.New(cfg, creds))

	var headlines interfaces.Headlines
	if cfg.News.Enabled {
		headlines = news.NewService(&news.ServiceConfig{
			MaxHeadlines:   cfg.News.MaxHeadlines,
			CacheDuration:  time.Duration(cfg.News.CacheSecs) * time.Second,
			ScraperTimeout: time.Duration(cfg.News.TimeoutSecs) * time.Second,
		})
	}

	return NewWithClients(chat, market, headlines, cfg.History.Window, cfg.News.MaxHeadlines)
}

// NewWithClients builds an assistant from explicit collaborators. Used by
// New and by tests that substitute fakes.
func NewWithClients(chat interfaces.ChatClient, market interfaces.MarketData, headlines interfaces.Headlines, window, newsMax int) *Assistant {
	if window < 1 {
		window = 3
	}
	return &Assistant{
		chat:    chat,
		market:  market,
		news:    headlines,
		window:  window,
		newsMax: newsMax,
	}
}
