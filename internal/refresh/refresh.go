// Package refresh periodically rewarms the market caches so dashboard
// reads stay hot between provider calls.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mkhatkar/stockmitra/internal/models"
)

// Market is the slice of the aggregation service the worker warms.
type Market interface {
	MarketIndices(ctx context.Context) []models.MarketIndex
	TrendingStocks(ctx context.Context, n int) []models.TrendingStock
	Quotes(ctx context.Context, syms []string) []*models.Quote
}

// SymbolSource supplies the symbols to keep warm.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

// Worker runs scheduled refreshes.
type Worker struct {
	cron    *cron.Cron
	market  Market
	source  SymbolSource
	log     zerolog.Logger
	timeout time.Duration
}

// New builds a refresh worker. source may be nil to skip watchlist
// warming.
func New(market Market, source SymbolSource, log zerolog.Logger) *Worker {
	return &Worker{
		cron:    cron.New(),
		market:  market,
		source:  source,
		log:     log.With().Str("component", "refresh").Logger(),
		timeout: 2 * time.Minute,
	}
}

// Schedule registers the refresh on a standard 5-field cron spec
// (or @every / @hourly shortcuts).
func (w *Worker) Schedule(spec string) error {
	if _, err := w.cron.AddFunc(spec, w.runOnce); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	w.log.Info().Str("schedule", spec).Msg("market refresh scheduled")
	return nil
}

func (w *Worker) Start() {
	w.cron.Start()
}

func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.log.Info().Msg("market refresh stopped")
}

func (w *Worker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	w.Refresh(ctx)
}

// Refresh warms indices, the trending strip and every watchlist quote.
// Failures inside the market layer degrade to synthetic data, so the
// pass itself cannot fail.
func (w *Worker) Refresh(ctx context.Context) {
	start := time.Now()

	w.market.MarketIndices(ctx)
	w.market.TrendingStocks(ctx, 0)

	warmed := 0
	if w.source != nil {
		syms, err := w.source.Symbols(ctx)
		if err != nil {
			w.log.Error().Err(err).Msg("load watchlist symbols for refresh")
		} else if len(syms) > 0 {
			w.market.Quotes(ctx, syms)
			warmed = len(syms)
		}
	}

	w.log.Info().
		Int("watchlist", warmed).
		Dur("took", time.Since(start)).
		Msg("market data refreshed")
}
