package news

import (
	"context"
	"sync"
	"time"

	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/types"
)

// Service provides cached crypto headlines for answer enrichment
type Service struct {
	scraper *Scraper
	cache   *headlineCache
	cfg     *ServiceConfig
}

var _ interfaces.Headlines = (*Service)(nil)

// ServiceConfig configures the news service
type ServiceConfig struct {
	MaxHeadlines   int           // Maximum headlines to scrape per symbol
	CacheDuration  time.Duration // How long to cache headlines
	ScraperTimeout time.Duration // Timeout for scraping operations
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxHeadlines:   5,
		CacheDuration:  15 * time.Minute,
		ScraperTimeout: 15 * time.Second,
	}
}

// headlineCache stores scraped headlines temporarily
type headlineCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	articles []types.NewsArticle
	at       time.Time
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	return &headlineCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
}

func (c *headlineCache) get(symbol string) ([]types.NewsArticle, bool) {
	c.mu.RLock()
	entry, ok := c.data[symbol]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(entry.at) > c.ttl {
		c.mu.Lock()
		delete(c.data, symbol)
		c.mu.Unlock()
		return nil, false
	}
	return entry.articles, true
}

func (c *headlineCache) set(symbol string, articles []types.NewsArticle) {
	c.mu.Lock()
	c.data[symbol] = &cacheEntry{articles: articles, at: time.Now()}
	c.mu.Unlock()
}

// NewService creates a news service with the given configuration
func NewService(cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &Service{
		scraper: NewScraper(cfg.ScraperTimeout),
		cache:   newHeadlineCache(cfg.CacheDuration),
		cfg:     cfg,
	}
}

// Headlines returns recent headlines for a symbol, served from cache when
// fresh enough.
func (s *Service) Headlines(ctx context.Context, symbol string, max int) ([]types.NewsArticle, error) {
	if max <= 0 || max > s.cfg.MaxHeadlines {
		max = s.cfg.MaxHeadlines
	}

	if articles, ok := s.cache.get(symbol); ok {
		logger.Debug(ctx, "Headline cache hit", "symbol", symbol, "articles", len(articles))
		if len(articles) > max {
			articles = articles[:max]
		}
		return articles, nil
	}

	timer := logger.StartOperation(ctx, "scrape-headlines", "symbol", symbol)
	articles, err := s.scraper.ScrapeNews(timer.GetContext(), symbol, s.cfg.MaxHeadlines)
	if err != nil {
		timer.EndWithError(err)
		return nil, err
	}
	timer.End("articles", len(articles))

	s.cache.set(symbol, articles)

	if len(articles) > max {
		articles = articles[:max]
	}
	return articles, nil
}
