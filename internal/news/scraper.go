// Package news scrapes recent company headlines from Google News.
package news

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/mkhatkar/stockmitra/internal/cache"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/providers"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

const userAgent = "Mozilla/5.0 (compatible; StockMitra/1.0)"

// Scraper fetches and parses Google News search results. Headlines
// change slowly, so results may be disk cached by the caller's policy.
type Scraper struct {
	http *resty.Client
	disk *cache.Disk
	log  zerolog.Logger
}

// NewScraper builds a scraper. disk may be nil to skip caching.
func NewScraper(disk *cache.Disk, log zerolog.Logger) *Scraper {
	client := resty.New().
		SetBaseURL("https://news.google.com").
		SetTimeout(20 * time.Second).
		SetHeader("User-Agent", userAgent)
	return &Scraper{
		http: client,
		disk: disk,
		log:  log.With().Str("component", "news").Logger(),
	}
}

// CompanyNews scrapes recent headlines for a symbol. One request, no
// retries; any failure surfaces as an error for the caller to absorb.
func (s *Scraper) CompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	symbol = symbols.Normalize(symbol)
	if limit <= 0 {
		limit = 5
	}

	cacheKey := map[string]any{"symbol": symbol, "limit": limit}
	if s.disk != nil {
		var cached []models.NewsItem
		if s.disk.Get("news", cacheKey, &cached) && len(cached) > 0 {
			return cached, nil
		}
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(searchParams(symbol)).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("fetch google news: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("google news returned status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse google news html: %w", err)
	}

	items := parseArticles(doc, symbol)
	if len(items) == 0 {
		return nil, providers.ErrNoData
	}
	if len(items) > limit {
		items = items[:limit]
	}

	if s.disk != nil {
		s.disk.Set("news", cacheKey, items)
	}
	return items, nil
}

// searchParams builds the Google News query for a symbol. Indian
// symbols search the Indian edition so regional outlets rank first.
func searchParams(symbol string) map[string]string {
	name := symbol
	if co, ok := symbols.Lookup(symbol); ok {
		name = co.Name
	} else {
		_, name = symbols.Split(symbol)
	}

	query := name + " stock"
	country := "US"
	if symbols.IsIndian(symbol) {
		query += " India"
		country = "IN"
	}
	return map[string]string{
		"q":    query,
		"hl":   "en",
		"gl":   country,
		"ceid": country + ":en",
	}
}

func parseArticles(doc *goquery.Document, symbol string) []models.NewsItem {
	var items []models.NewsItem
	doc.Find("article").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(sel.Find("h4").Text())
		}
		if title == "" {
			title = strings.TrimSpace(sel.Find("a.JtKRv").Text())
		}
		if title == "" {
			return
		}

		href, _ := sel.Find("a").First().Attr("href")

		source := strings.TrimSpace(sel.Find("div[data-n-tid]").Text())
		if source == "" {
			source = "Google News"
		}

		items = append(items, models.NewsItem{
			Title:       title,
			Source:      source,
			URL:         cleanArticleURL(href),
			PublishedAt: relativeTime(sel.Find("time").Text()),
			Symbol:      symbol,
		})
	})
	return items
}

// cleanArticleURL unwraps Google's redirect links and absolutizes
// relative ones.
func cleanArticleURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "./") {
		return "https://news.google.com" + href[1:]
	}
	if strings.HasPrefix(href, "/") {
		return "https://news.google.com" + href
	}
	return href
}

var relTimePattern = regexp.MustCompile(`(\d+)\s*(minute|hour|day|week)s?\s+ago`)

// relativeTime converts Google's relative timestamps ("3 hours ago")
// into absolute times. Unparseable text is treated as an hour old.
func relativeTime(text string) time.Time {
	now := time.Now()
	text = strings.ToLower(strings.TrimSpace(text))
	switch text {
	case "", "just now":
		return now
	case "yesterday":
		return now.Add(-24 * time.Hour)
	}

	m := relTimePattern.FindStringSubmatch(text)
	if m == nil {
		return now.Add(-time.Hour)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return now.Add(-time.Hour)
	}
	switch m[2] {
	case "minute":
		return now.Add(-time.Duration(n) * time.Minute)
	case "hour":
		return now.Add(-time.Duration(n) * time.Hour)
	case "day":
		return now.Add(-time.Duration(n) * 24 * time.Hour)
	default:
		return now.Add(-time.Duration(n) * 7 * 24 * time.Hour)
	}
}
