// Package alphavantage implements the public quote API rung of the
// cascade. The free tier allows a handful of requests per minute, so
// the client tracks its own request counter and refuses to go over
// rather than burning the quota on guaranteed 429-style replies.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/mkhatkar/stockmitra/internal/format"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/providers"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

const (
	defaultBaseURL = "https://www.alphavantage.co"
	perMinuteLimit = 5
	requestTimeout = 15 * time.Second
)

// Client talks to the Alpha Vantage REST API.
type Client struct {
	http   *resty.Client
	apiKey string
	log    zerolog.Logger

	mu          sync.Mutex
	limit       int
	requests    int
	windowStart time.Time
}

// NewClient builds a client. An empty API key produces a client whose
// calls all fail with ErrNotConfigured, which the cascade skips over.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(defaultBaseURL).SetTimeout(requestTimeout),
		apiKey: apiKey,
		log:    log.With().Str("component", "alphavantage").Logger(),
		limit:  perMinuteLimit,
	}
}

func (c *Client) Name() string { return models.SourceAlphaVantage }

// takeSlot consumes one request from the per-minute budget. The counter
// resets once the minute window has elapsed.
func (c *Client) takeSlot() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Sub(c.windowStart) >= time.Minute {
		c.windowStart = now
		c.requests = 0
	}
	if c.requests >= c.limit {
		return providers.ErrRateLimited
	}
	c.requests++
	return nil
}

// apiNotice is present in otherwise-200 bodies when the API wants to
// tell us about throttling or bad input instead of returning data.
type apiNotice struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (c *Client) get(ctx context.Context, params map[string]string, out any) error {
	if c.apiKey == "" {
		return providers.ErrNotConfigured
	}
	if err := c.takeSlot(); err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("apikey", c.apiKey).
		Get("/query")
	if err != nil {
		return fmt.Errorf("alphavantage request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("alphavantage status %d", resp.StatusCode())
	}

	var notice apiNotice
	if err := json.Unmarshal(resp.Body(), &notice); err == nil {
		switch {
		case notice.Note != "" || notice.Information != "":
			return fmt.Errorf("%w: %s", providers.ErrRateLimited, firstNonEmpty(notice.Note, notice.Information))
		case notice.ErrorMessage != "":
			return fmt.Errorf("%w: %s", providers.ErrNoData, notice.ErrorMessage)
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("alphavantage decode: %w", err)
	}
	return nil
}

type globalQuote struct {
	Symbol        string `json:"01. symbol"`
	Open          string `json:"02. open"`
	High          string `json:"03. high"`
	Low           string `json:"04. low"`
	Price         string `json:"05. price"`
	Volume        string `json:"06. volume"`
	PreviousClose string `json:"08. previous close"`
	Change        string `json:"09. change"`
	ChangePercent string `json:"10. change percent"`
}

type globalQuoteResponse struct {
	GlobalQuote globalQuote `json:"Global Quote"`
}

// Quote fetches a GLOBAL_QUOTE snapshot.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	var resp globalQuoteResponse
	params := map[string]string{
		"function": "GLOBAL_QUOTE",
		"symbol":   symbols.ToAlphaVantage(symbol),
	}
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	g := resp.GlobalQuote
	if g.Symbol == "" || g.Price == "" {
		return nil, fmt.Errorf("%w: empty quote for %s", providers.ErrNoData, symbol)
	}

	name := symbol
	if co, ok := symbols.Lookup(symbol); ok {
		name = co.Name
	} else {
		_, name = symbols.Split(symbol)
	}

	return &models.Quote{
		Symbol:        symbols.Normalize(symbol),
		Name:          name,
		Price:         parseFloat(g.Price),
		Change:        parseFloat(g.Change),
		ChangePercent: parsePercent(g.ChangePercent),
		Volume:        parseInt(g.Volume),
		Open:          parseFloat(g.Open),
		High:          parseFloat(g.High),
		Low:           parseFloat(g.Low),
		PreviousClose: parseFloat(g.PreviousClose),
		Currency:      symbols.Currency(symbol),
		Source:        models.SourceAlphaVantage,
		FetchedAt:     time.Now(),
	}, nil
}

type dailyBar struct {
	Close string `json:"4. close"`
}

type dailySeriesResponse struct {
	TimeSeries map[string]dailyBar `json:"Time Series (Daily)"`
}

// Chart fetches TIME_SERIES_DAILY and keeps the most recent points of
// the range. Ranges longer than the compact window request the full
// series.
func (c *Client) Chart(ctx context.Context, symbol string, rng models.Range) (*models.ChartSeries, error) {
	outputSize := "compact"
	if rng.Points() > 100 {
		outputSize = "full"
	}
	var resp dailySeriesResponse
	params := map[string]string{
		"function":   "TIME_SERIES_DAILY",
		"symbol":     symbols.ToAlphaVantage(symbol),
		"outputsize": outputSize,
	}
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.TimeSeries) == 0 {
		return nil, fmt.Errorf("%w: empty series for %s", providers.ErrNoData, symbol)
	}

	dates := make([]string, 0, len(resp.TimeSeries))
	for d := range resp.TimeSeries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if n := rng.Points(); len(dates) > n {
		dates = dates[len(dates)-n:]
	}

	points := make([]models.ChartPoint, 0, len(dates))
	for _, d := range dates {
		points = append(points, models.ChartPoint{Date: d, Value: parseFloat(resp.TimeSeries[d].Close)})
	}

	return &models.ChartSeries{
		Symbol: symbols.Normalize(symbol),
		Range:  rng,
		Points: points,
		Source: models.SourceAlphaVantage,
	}, nil
}

type overviewResponse struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Description          string `json:"Description"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	EPS                  string `json:"EPS"`
	DividendYield        string `json:"DividendYield"`
	AnalystTargetPrice   string `json:"AnalystTargetPrice"`
	FiftyTwoWeekHigh     string `json:"52WeekHigh"`
	FiftyTwoWeekLow      string `json:"52WeekLow"`
	Currency             string `json:"Currency"`
}

// Overview fetches company fundamentals.
func (c *Client) Overview(ctx context.Context, symbol string) (*models.CompanyOverview, error) {
	var resp overviewResponse
	params := map[string]string{
		"function": "OVERVIEW",
		"symbol":   symbols.ToAlphaVantage(symbol),
	}
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Symbol == "" {
		return nil, fmt.Errorf("%w: empty overview for %s", providers.ErrNoData, symbol)
	}

	marketCap := parseInt(resp.MarketCapitalization)
	currency := resp.Currency
	if currency == "" {
		currency = symbols.Currency(symbol)
	}

	return &models.CompanyOverview{
		Symbol:           symbols.Normalize(symbol),
		Name:             resp.Name,
		Description:      resp.Description,
		Sector:           resp.Sector,
		Industry:         resp.Industry,
		MarketCap:        marketCap,
		MarketCapDisplay: format.MarketCap(marketCap, symbol),
		PERatio:          parseFloat(resp.PERatio),
		EPS:              parseFloat(resp.EPS),
		DividendYield:    parseFloat(resp.DividendYield) * 100,
		AnalystTarget:    parseFloat(resp.AnalystTargetPrice),
		FiftyTwoWeekHigh: parseFloat(resp.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  parseFloat(resp.FiftyTwoWeekLow),
		Currency:         currency,
		Source:           models.SourceAlphaVantage,
	}, nil
}

type searchMatch struct {
	Symbol string `json:"1. symbol"`
	Name   string `json:"2. name"`
	Region string `json:"4. region"`
}

type searchResponse struct {
	BestMatches []searchMatch `json:"bestMatches"`
}

// Search runs SYMBOL_SEARCH and converts hits back to qualified form.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	var resp searchResponse
	params := map[string]string{
		"function": "SYMBOL_SEARCH",
		"keywords": query,
	}
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.BestMatches) == 0 {
		return nil, fmt.Errorf("%w: no matches for %q", providers.ErrNoData, query)
	}

	out := make([]models.SearchResult, 0, len(resp.BestMatches))
	for _, m := range resp.BestMatches {
		out = append(out, models.SearchResult{
			Symbol:   qualifySymbol(m.Symbol),
			Name:     m.Name,
			Exchange: regionExchange(m.Region, m.Symbol),
		})
	}
	return out, nil
}

// qualifySymbol maps provider suffix notation back to the dashboard's
// prefix notation: RELIANCE.BSE -> BSE:RELIANCE.
func qualifySymbol(s string) string {
	s = symbols.Normalize(s)
	switch {
	case strings.HasSuffix(s, ".BSE"):
		return "BSE:" + strings.TrimSuffix(s, ".BSE")
	case strings.HasSuffix(s, ".NSE"):
		return "NSE:" + strings.TrimSuffix(s, ".NSE")
	case strings.HasSuffix(s, ".NS"):
		return "NSE:" + strings.TrimSuffix(s, ".NS")
	default:
		return s
	}
}

func regionExchange(region, symbol string) string {
	if strings.HasPrefix(region, "India") {
		if strings.HasSuffix(symbols.Normalize(symbol), ".NSE") || strings.HasSuffix(symbols.Normalize(symbol), ".NS") {
			return "NSE"
		}
		return "BSE"
	}
	return region
}

// Alpha Vantage sends numerics as strings, with "None" and friends for
// absent values.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" || s == "-" || s == "N/A" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parsePercent(s string) float64 {
	return parseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" || s == "-" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return int64(parseFloat(s))
	}
	return v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
