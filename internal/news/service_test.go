package news

import (
	"testing"
	"time"

	"crypto-assistant/internal/types"
)

func TestHeadlineCache(t *testing.T) {
	cache := newHeadlineCache(50 * time.Millisecond)

	symbol := "BTC"
	articles := []types.NewsArticle{
		{Title: "Bitcoin crosses a round number again", Source: "CoinDesk", ScrapedAt: time.Now().Unix()},
	}

	cache.set(symbol, articles)

	retrieved, found := cache.get(symbol)
	if !found {
		t.Fatal("Expected to find cached headlines")
	}
	if len(retrieved) != 1 || retrieved[0].Title != articles[0].Title {
		t.Errorf("Unexpected cached articles: %+v", retrieved)
	}

	// Test expiration
	time.Sleep(100 * time.Millisecond)
	_, found = cache.get(symbol)
	if found {
		t.Error("Expected cache entry to be expired")
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()

	if cfg.MaxHeadlines != 5 {
		t.Errorf("Expected MaxHeadlines to be 5, got %d", cfg.MaxHeadlines)
	}
	if cfg.CacheDuration != 15*time.Minute {
		t.Errorf("Expected CacheDuration to be 15 minutes, got %v", cfg.CacheDuration)
	}
}

func TestNewService(t *testing.T) {
	svc := NewService(nil)

	if svc == nil {
		t.Fatal("Expected service to be created")
	}
	if svc.scraper == nil {
		t.Error("Expected scraper to be initialized")
	}
	if svc.cache == nil {
		t.Error("Expected cache to be initialized")
	}
}
