package news

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/types"
)

// Scraper collects recent crypto headlines from public news sites
type Scraper struct {
	sources []NewsSource
	timeout time.Duration
}

// NewsSource defines a news source configuration
type NewsSource struct {
	Name       string
	BaseURL    string
	SearchPath string // e.g., "/search?s={symbol}"
	Selectors  ArticleSelectors
	RateLimit  time.Duration
}

// ArticleSelectors defines CSS selectors for extracting article data
type ArticleSelectors struct {
	ArticleContainer string
	Title            string
	URL              string
	PublishedAt      string
}

// NewScraper creates a news scraper with the default crypto sources
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: getDefaultSources(),
		timeout: timeout,
	}
}

func getDefaultSources() []NewsSource {
	return []NewsSource{
		{
			Name:       "CoinDesk",
			BaseURL:    "https://www.coindesk.com",
			SearchPath: "/search?s={symbol}",
			Selectors: ArticleSelectors{
				ArticleContainer: "div.article-card",
				Title:            "a.headline",
				URL:              "a.headline",
				PublishedAt:      "span.typography__StyledTypography-owin6q-0",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "Cointelegraph",
			BaseURL:    "https://cointelegraph.com",
			SearchPath: "/tags/{symbol}",
			Selectors: ArticleSelectors{
				ArticleContainer: "article.post-card-inline",
				Title:            "span.post-card-inline__title",
				URL:              "a.post-card-inline__title-link",
				PublishedAt:      "time",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// ScrapeNews fetches headlines for a symbol from all configured sources
func (s *Scraper) ScrapeNews(ctx context.Context, symbol string, maxArticles int) ([]types.NewsArticle, error) {
	logger.Info(ctx, "Starting news scraping", "symbol", symbol, "sources", len(s.sources))

	allArticles := []types.NewsArticle{}
	articlesPerSource := maxArticles / len(s.sources)
	if articlesPerSource < 1 {
		articlesPerSource = 1
	}

	for i, source := range s.sources {
		articles, err := s.scrapeSource(ctx, source, symbol, articlesPerSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", source.Name, "symbol", symbol)
		} else {
			allArticles = append(allArticles, articles...)
		}

		// Rate limiting between sources, not after the last one
		if i == len(s.sources)-1 {
			continue
		}
		select {
		case <-ctx.Done():
			return allArticles, ctx.Err()
		case <-time.After(source.RateLimit):
		}
	}

	logger.Info(ctx, "News scraping completed", "symbol", symbol, "articles", len(allArticles))
	return allArticles, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, source NewsSource, symbol string, maxArticles int) ([]types.NewsArticle, error) {
	articles := []types.NewsArticle{}

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(source.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)

	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(source.Selectors.ArticleContainer, func(e *colly.HTMLElement) {
		if len(articles) >= maxArticles {
			return
		}

		article, ok := extractArticle(e.DOM, source)
		if !ok {
			return
		}
		articles = append(articles, article)
	})

	searchURL := source.BaseURL + strings.ReplaceAll(source.SearchPath, "{symbol}", url.QueryEscape(strings.ToLower(symbol)))
	if err := c.Visit(searchURL); err != nil {
		return nil, err
	}
	c.Wait()

	return articles, nil
}

// extractArticle pulls a headline out of one article container selection
func extractArticle(sel *goquery.Selection, source NewsSource) (types.NewsArticle, bool) {
	title := strings.TrimSpace(sel.Find(source.Selectors.Title).First().Text())
	if title == "" {
		return types.NewsArticle{}, false
	}

	href, _ := sel.Find(source.Selectors.URL).First().Attr("href")
	if href == "" {
		return types.NewsArticle{}, false
	}
	if strings.HasPrefix(href, "/") {
		href = source.BaseURL + href
	}

	return types.NewsArticle{
		Title:       title,
		URL:         href,
		Source:      source.Name,
		PublishedAt: strings.TrimSpace(sel.Find(source.Selectors.PublishedAt).First().Text()),
		ScrapedAt:   time.Now().Unix(),
	}, true
}

func getDomain(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	// colly matches allowed domains against the hostname without the port
	return u.Hostname()
}
