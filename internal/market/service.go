// Package market is the aggregation layer over the provider cascade.
// Every operation tries the live providers in priority order and falls
// back to synthetic generation, so callers always receive populated
// records and never an error. One attempt per provider per call; no
// retries, no circuit breaking. Failures are logged and absorbed.
package market

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkhatkar/stockmitra/internal/cache"
	"github.com/mkhatkar/stockmitra/internal/format"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/providers"
	"github.com/mkhatkar/stockmitra/internal/symbols"
	"github.com/mkhatkar/stockmitra/internal/synthetic"
)

// DefaultCacheTTL bounds how long dashboard data is reused between
// cascade walks.
const DefaultCacheTTL = 5 * time.Minute

// Symbols fetched for the trending strip, most-watched first.
var trendingSymbols = []string{
	"NSE:RELIANCE", "NSE:TCS", "NSE:HDFCBANK", "NSE:INFY",
	"NSE:TATAMOTORS", "NSE:SBIN", "AAPL", "NVDA",
}

// Indexer supplies live benchmark index levels.
type Indexer interface {
	Indices(ctx context.Context) ([]models.MarketIndex, error)
}

// NewsFetcher supplies live company headlines.
type NewsFetcher interface {
	CompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
}

// Service walks the cascade and caches results.
type Service struct {
	providers []providers.Provider
	indexer   Indexer
	news      NewsFetcher
	log       zerolog.Logger

	cacheEnabled bool
	quotes       *cache.Memory[*models.Quote]
	indices      *cache.Memory[[]models.MarketIndex]
	trending     *cache.Memory[[]models.TrendingStock]
	disk         *cache.Disk
}

// NewService assembles the aggregation layer. Providers are tried in
// slice order. indexer, news and disk may be nil.
func NewService(provs []providers.Provider, indexer Indexer, news NewsFetcher, disk *cache.Disk, cacheEnabled bool, ttl time.Duration, log zerolog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		providers:    provs,
		indexer:      indexer,
		news:         news,
		log:          log.With().Str("component", "market").Logger(),
		cacheEnabled: cacheEnabled,
		quotes:       cache.NewMemory[*models.Quote](ttl),
		indices:      cache.NewMemory[[]models.MarketIndex](ttl),
		trending:     cache.NewMemory[[]models.TrendingStock](ttl),
		disk:         disk,
	}
}

// StockQuote resolves a quote through the cascade. It always returns a
// populated record; the Source field tells which rung produced it.
func (s *Service) StockQuote(ctx context.Context, symbol string) *models.Quote {
	symbol = symbols.Normalize(symbol)
	if s.cacheEnabled {
		if q, ok := s.quotes.Get(symbol); ok {
			return q
		}
	}

	for _, p := range s.providers {
		q, err := p.Quote(ctx, symbol)
		if err != nil {
			s.warn(p.Name(), symbol, "quote", err)
			continue
		}
		fillQuoteGaps(q)
		if s.cacheEnabled {
			s.quotes.Set(symbol, q)
		}
		return q
	}

	q := synthetic.Quote(symbol)
	if s.cacheEnabled {
		s.quotes.Set(symbol, q)
	}
	return q
}

// Quotes fetches several symbols concurrently, preserving input order.
func (s *Service) Quotes(ctx context.Context, syms []string) []*models.Quote {
	out := make([]*models.Quote, len(syms))
	var wg sync.WaitGroup
	for i, symbol := range syms {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			out[i] = s.StockQuote(ctx, symbol)
		}(i, symbol)
	}
	wg.Wait()
	return out
}

// Chart resolves a daily price series for the range.
func (s *Service) Chart(ctx context.Context, symbol string, rng models.Range) *models.ChartSeries {
	symbol = symbols.Normalize(symbol)
	if !rng.Valid() {
		rng = models.Range1M
	}
	diskKey := map[string]string{"symbol": symbol, "range": string(rng)}
	if s.disk != nil {
		var cached models.ChartSeries
		if s.disk.Get("chart", diskKey, &cached) && len(cached.Points) > 0 {
			return &cached
		}
	}

	for _, p := range s.providers {
		series, err := p.Chart(ctx, symbol, rng)
		if err != nil {
			s.warn(p.Name(), symbol, "chart", err)
			continue
		}
		series.Points = cleanPoints(series.Points)
		if len(series.Points) == 0 {
			s.warn(p.Name(), symbol, "chart", providers.ErrNoData)
			continue
		}
		if s.disk != nil {
			s.disk.Set("chart", diskKey, series)
		}
		return series
	}

	series := synthetic.Chart(symbol, rng)
	if s.disk != nil {
		s.disk.Set("chart", diskKey, series)
	}
	return series
}

// CompanyOverview resolves fundamentals for a symbol.
func (s *Service) CompanyOverview(ctx context.Context, symbol string) *models.CompanyOverview {
	symbol = symbols.Normalize(symbol)
	if s.disk != nil {
		var cached models.CompanyOverview
		if s.disk.Get("overview", symbol, &cached) && cached.Symbol != "" {
			return &cached
		}
	}

	for _, p := range s.providers {
		ov, err := p.Overview(ctx, symbol)
		if err != nil {
			s.warn(p.Name(), symbol, "overview", err)
			continue
		}
		fillOverviewGaps(ov)
		if s.disk != nil {
			s.disk.Set("overview", symbol, ov)
		}
		return ov
	}

	ov := synthetic.Overview(symbol)
	if s.disk != nil {
		s.disk.Set("overview", symbol, ov)
	}
	return ov
}

// MarketIndices resolves benchmark index levels.
func (s *Service) MarketIndices(ctx context.Context) []models.MarketIndex {
	if s.cacheEnabled {
		if ix, ok := s.indices.Get("indices"); ok {
			return ix
		}
	}

	if s.indexer != nil {
		ix, err := s.indexer.Indices(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("index provider failed, using synthetic levels")
		} else {
			if s.cacheEnabled {
				s.indices.Set("indices", ix)
			}
			return ix
		}
	}

	ix := synthetic.Indices()
	if s.cacheEnabled {
		s.indices.Set("indices", ix)
	}
	return ix
}

// TrendingStocks fetches quotes for the most-watched symbols
// concurrently and condenses them for the trending strip.
func (s *Service) TrendingStocks(ctx context.Context, n int) []models.TrendingStock {
	if n <= 0 || n > len(trendingSymbols) {
		n = len(trendingSymbols)
	}
	key := fmt.Sprintf("trending-%d", n)
	if s.cacheEnabled {
		if ts, ok := s.trending.Get(key); ok {
			return ts
		}
	}

	quotes := s.Quotes(ctx, trendingSymbols[:n])
	out := make([]models.TrendingStock, 0, n)
	for _, q := range quotes {
		out = append(out, models.TrendingStock{
			Symbol:        q.Symbol,
			Name:          q.Name,
			Price:         q.Price,
			ChangePercent: q.ChangePercent,
			Currency:      q.Currency,
		})
	}
	if s.cacheEnabled {
		s.trending.Set(key, out)
	}
	return out
}

// SearchStocks merges registry matches with provider results. Registry
// hits come first; provider hits deduplicate against them.
func (s *Service) SearchStocks(ctx context.Context, query string) []models.SearchResult {
	results := synthetic.Search(query)
	if query == "" {
		return results
	}

	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.Symbol] = true
	}

	for _, p := range s.providers {
		searcher, ok := p.(providers.Searcher)
		if !ok {
			continue
		}
		hits, err := searcher.Search(ctx, query)
		if err != nil {
			s.warn(p.Name(), query, "search", err)
			continue
		}
		for _, h := range hits {
			if !seen[h.Symbol] {
				seen[h.Symbol] = true
				results = append(results, h)
			}
		}
		break
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	return results
}

// StockNews resolves recent headlines for a symbol.
func (s *Service) StockNews(ctx context.Context, symbol string, n int) []models.NewsItem {
	symbol = symbols.Normalize(symbol)
	if n <= 0 {
		n = 5
	}

	if s.news != nil {
		items, err := s.news.CompanyNews(ctx, symbol, n)
		if err != nil || len(items) == 0 {
			s.log.Warn().Str("symbol", symbol).Err(err).Msg("news fetch failed, using synthetic headlines")
		} else {
			return items
		}
	}
	return synthetic.News(symbol, n)
}

func (s *Service) warn(provider, subject, op string, err error) {
	s.log.Warn().
		Str("provider", provider).
		Str("subject", subject).
		Str("op", op).
		Err(err).
		Msg("provider failed, trying next source")
}

// fillQuoteGaps tops up fields a live provider could not supply so the
// record is fully populated.
func fillQuoteGaps(q *models.Quote) {
	if q.Currency == "" {
		q.Currency = symbols.Currency(q.Symbol)
	}
	if q.Name == "" {
		if co, ok := symbols.Lookup(q.Symbol); ok {
			q.Name = co.Name
		} else {
			_, q.Name = symbols.Split(q.Symbol)
		}
	}
	if q.PreviousClose == 0 && q.Price != 0 {
		q.PreviousClose = q.Price - q.Change
	}
	if q.Open == 0 {
		q.Open = q.PreviousClose
	}
	if q.High < q.Price {
		q.High = q.Price
	}
	if q.Low == 0 || q.Low > q.Price {
		q.Low = q.Price
	}
	if q.FiftyTwoWeekHigh < q.High {
		q.FiftyTwoWeekHigh = q.High * 1.15
	}
	if q.FiftyTwoWeekLow == 0 || q.FiftyTwoWeekLow > q.Low {
		q.FiftyTwoWeekLow = q.Low * 0.78
	}
	if q.FetchedAt.IsZero() {
		q.FetchedAt = time.Now()
	}
}

func fillOverviewGaps(ov *models.CompanyOverview) {
	co, known := symbols.Lookup(ov.Symbol)
	if ov.Name == "" {
		if known {
			ov.Name = co.Name
		} else {
			_, ov.Name = symbols.Split(ov.Symbol)
		}
	}
	if ov.Currency == "" {
		ov.Currency = symbols.Currency(ov.Symbol)
	}
	if ov.Sector == "" {
		if known {
			ov.Sector = co.Sector
		} else {
			ov.Sector = "Diversified"
		}
	}
	if ov.Industry == "" {
		if known {
			ov.Industry = co.Industry
		} else {
			ov.Industry = "Conglomerate"
		}
	}
	if ov.Description == "" {
		if known {
			ov.Description = co.Description
		} else {
			ov.Description = fmt.Sprintf("%s is a listed company. Detailed company information is not available for this symbol.", ov.Name)
		}
	}
	if ov.MarketCapDisplay == "" {
		ov.MarketCapDisplay = format.MarketCap(ov.MarketCap, ov.Symbol)
	}
}

// cleanPoints drops non-positive prices and enforces chronological
// order without assuming the provider sorted its bars.
func cleanPoints(points []models.ChartPoint) []models.ChartPoint {
	out := points[:0]
	for _, p := range points {
		if p.Value > 0 && p.Date != "" {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
