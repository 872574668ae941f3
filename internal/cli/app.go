package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkhatkar/stockmitra/config"
	"github.com/mkhatkar/stockmitra/internal/advisor"
	"github.com/mkhatkar/stockmitra/internal/cache"
	"github.com/mkhatkar/stockmitra/internal/logging"
	"github.com/mkhatkar/stockmitra/internal/market"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/news"
	"github.com/mkhatkar/stockmitra/internal/providers"
	"github.com/mkhatkar/stockmitra/internal/providers/alphavantage"
	"github.com/mkhatkar/stockmitra/internal/providers/longport"
	"github.com/mkhatkar/stockmitra/internal/providers/yahoo"
	"github.com/mkhatkar/stockmitra/internal/watchlist"
)

// newsCacheTTL is longer than the quote TTL; headlines age slower than
// prices.
const newsCacheTTL = 2 * time.Hour

// app bundles the wired services behind the commands.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	market  *market.Service
	advisor *advisor.Advisor
	store   *watchlist.Store
	disk    *cache.Disk
}

// newApp wires the provider cascade, caches, advisor and watchlist
// store from configuration.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("create data directories: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	yh := yahoo.NewClient(log)
	provs := []providers.Provider{
		longport.NewClient(longport.Config{
			AppKey:      cfg.LongportAppKey,
			AppSecret:   cfg.LongportAppSecret,
			AccessToken: cfg.LongportAccessToken,
		}, log),
		alphavantage.NewClient(cfg.AlphaVantageAPIKey, log),
		yh,
	}

	marketDisk := cache.NewDisk(cfg.DataCacheDir, cfg.CacheTTL(), cfg.CacheEnabled, log)
	newsDisk := cache.NewDisk(cfg.DataCacheDir, newsCacheTTL, cfg.CacheEnabled, log)
	scraper := news.NewScraper(newsDisk, log)

	store, err := watchlist.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open watchlist store: %w", err)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		market:  market.NewService(provs, yh, scraper, marketDisk, cfg.CacheEnabled, cfg.CacheTTL(), log),
		advisor: advisor.FromConfig(ctx, cfg, log),
		store:   store,
		disk:    marketDisk,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close watchlist store")
	}
}

// watchlistQuotes loads the stored symbols and fetches live quotes for
// each, preserving watchlist order.
func (a *app) watchlistQuotes(ctx context.Context) ([]*models.Quote, error) {
	syms, err := a.store.Symbols(ctx)
	if err != nil {
		return nil, err
	}
	return a.market.Quotes(ctx, syms), nil
}
