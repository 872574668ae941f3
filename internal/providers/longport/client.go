// Package longport implements the brokerage rung of the cascade on top
// of the Longport OpenAPI SDK. The access token expires roughly every
// 24 hours and must be refreshed manually by the operator; an expired
// token simply makes every call fail, which the cascade absorbs.
package longport

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mkhatkar/stockmitra/internal/format"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/providers"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// Config carries the brokerage credentials.
type Config struct {
	AppKey      string
	AppSecret   string
	AccessToken string
}

func (c Config) complete() bool {
	return c.AppKey != "" && c.AppSecret != "" && c.AccessToken != ""
}

// Client wraps the SDK quote context. The context is process-wide,
// constructed lazily on first use and never torn down.
type Client struct {
	cfg Config
	log zerolog.Logger

	once     sync.Once
	quoteCtx *quote.QuoteContext
	initErr  error
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		cfg: cfg,
		log: log.With().Str("component", "longport").Logger(),
	}
}

func (c *Client) Name() string { return models.SourceLongport }

func (c *Client) connect() (*quote.QuoteContext, error) {
	c.once.Do(func() {
		if !c.cfg.complete() {
			c.initErr = providers.ErrNotConfigured
			return
		}
		conf, err := lpconfig.New(lpconfig.WithConfigKey(c.cfg.AppKey, c.cfg.AppSecret, c.cfg.AccessToken))
		if err != nil {
			c.initErr = fmt.Errorf("longport config: %w", err)
			return
		}
		qc, err := quote.NewFromCfg(conf)
		if err != nil {
			c.initErr = fmt.Errorf("longport connect: %w", err)
			return
		}
		c.log.Info().Msg("brokerage quote context established")
		c.quoteCtx = qc
	})
	return c.quoteCtx, c.initErr
}

// Quote fetches a real-time snapshot through the brokerage.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	lpSymbol, ok := symbols.ToLongport(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", providers.ErrUnsupportedSymbol, symbol)
	}
	qc, err := c.connect()
	if err != nil {
		return nil, err
	}

	quotes, err := qc.Quote(ctx, []string{lpSymbol})
	if err != nil {
		return nil, fmt.Errorf("longport quote: %w", err)
	}
	if len(quotes) == 0 || quotes[0] == nil {
		return nil, fmt.Errorf("%w: %s", providers.ErrNoData, symbol)
	}
	sq := quotes[0]

	price := dec(sq.LastDone)
	prev := dec(sq.PrevClose)
	if price <= 0 {
		return nil, fmt.Errorf("%w: zero price for %s", providers.ErrNoData, symbol)
	}
	change := price - prev
	changePercent := 0.0
	if prev > 0 {
		changePercent = change / prev * 100
	}

	name := symbol
	if co, found := symbols.Lookup(symbol); found {
		name = co.Name
	} else {
		_, name = symbols.Split(symbol)
	}

	return &models.Quote{
		Symbol:        symbols.Normalize(symbol),
		Name:          name,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        sq.Volume,
		Open:          dec(sq.Open),
		High:          dec(sq.High),
		Low:           dec(sq.Low),
		PreviousClose: prev,
		Currency:      symbols.Currency(symbol),
		Source:        models.SourceLongport,
		FetchedAt:     time.Now(),
	}, nil
}

// Chart fetches daily candlesticks for the range.
func (c *Client) Chart(ctx context.Context, symbol string, rng models.Range) (*models.ChartSeries, error) {
	lpSymbol, ok := symbols.ToLongport(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", providers.ErrUnsupportedSymbol, symbol)
	}
	qc, err := c.connect()
	if err != nil {
		return nil, err
	}

	sticks, err := qc.Candlesticks(ctx, lpSymbol, quote.PeriodDay, int32(rng.Points()), quote.AdjustTypeNo)
	if err != nil {
		return nil, fmt.Errorf("longport candlesticks: %w", err)
	}
	if len(sticks) == 0 {
		return nil, fmt.Errorf("%w: no candles for %s", providers.ErrNoData, symbol)
	}

	points := make([]models.ChartPoint, 0, len(sticks))
	for _, s := range sticks {
		if s == nil {
			continue
		}
		points = append(points, models.ChartPoint{
			Date:  time.Unix(s.Timestamp, 0).Format("2006-01-02"),
			Value: dec(s.Close),
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no candles for %s", providers.ErrNoData, symbol)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	return &models.ChartSeries{
		Symbol: symbols.Normalize(symbol),
		Range:  rng,
		Points: points,
		Source: models.SourceLongport,
	}, nil
}

// Overview merges static info and a fresh quote into a fundamentals
// panel. The brokerage has no sector or narrative text, so registry
// entries fill those when known.
func (c *Client) Overview(ctx context.Context, symbol string) (*models.CompanyOverview, error) {
	lpSymbol, ok := symbols.ToLongport(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", providers.ErrUnsupportedSymbol, symbol)
	}
	qc, err := c.connect()
	if err != nil {
		return nil, err
	}

	infos, err := qc.StaticInfo(ctx, []string{lpSymbol})
	if err != nil {
		return nil, fmt.Errorf("longport static info: %w", err)
	}
	if len(infos) == 0 || infos[0] == nil {
		return nil, fmt.Errorf("%w: %s", providers.ErrNoData, symbol)
	}
	info := infos[0]

	price := 0.0
	if quotes, qerr := qc.Quote(ctx, []string{lpSymbol}); qerr == nil && len(quotes) > 0 && quotes[0] != nil {
		price = dec(quotes[0].LastDone)
	}

	eps := dec(info.EpsTtm)
	if eps == 0 {
		eps = dec(info.Eps)
	}
	pe := 0.0
	if eps > 0 && price > 0 {
		pe = price / eps
	}
	marketCap := int64(float64(info.TotalShares) * price)

	ov := &models.CompanyOverview{
		Symbol:           symbols.Normalize(symbol),
		Name:             info.NameEn,
		Sector:           "",
		Industry:         "",
		MarketCap:        marketCap,
		MarketCapDisplay: format.MarketCap(marketCap, symbol),
		PERatio:          pe,
		EPS:              eps,
		DividendYield:    decString(info.DividendYield),
		Currency:         info.Currency,
		Source:           models.SourceLongport,
	}
	if ov.Name == "" {
		_, ov.Name = symbols.Split(symbol)
	}
	if co, found := symbols.Lookup(symbol); found {
		ov.Sector = co.Sector
		ov.Industry = co.Industry
		ov.Description = co.Description
	}
	if ov.Currency == "" {
		ov.Currency = symbols.Currency(symbol)
	}
	return ov, nil
}

func dec(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

func decString(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
