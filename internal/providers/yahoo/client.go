// Package yahoo implements the keyless Yahoo Finance rung of the
// cascade. It is the last live source before synthetic generation.
package yahoo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/index"
	"github.com/piquette/finance-go/quote"
	"github.com/rs/zerolog"

	"github.com/mkhatkar/stockmitra/internal/format"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/providers"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// Tracked benchmark indices and their Yahoo symbols.
var indexSymbols = []struct {
	yahoo string
	name  string
}{
	{"^NSEI", "NIFTY 50"},
	{"^BSESN", "BSE SENSEX"},
	{"^NSEBANK", "NIFTY BANK"},
	{"^CNXIT", "NIFTY IT"},
}

// Client fetches market data from Yahoo Finance. No credentials are
// required, so the client is always configured.
type Client struct {
	log zerolog.Logger
}

func NewClient(log zerolog.Logger) *Client {
	return &Client{log: log.With().Str("component", "yahoo").Logger()}
}

func (c *Client) Name() string { return models.SourceYahoo }

// Quote fetches a snapshot. The underlying library has no context
// support, so cancellation is checked before the call only.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := quote.Get(symbols.ToYahoo(symbol))
	if err != nil {
		return nil, fmt.Errorf("yahoo quote: %w", err)
	}
	if q == nil || q.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("%w: %s", providers.ErrNoData, symbol)
	}

	name := q.ShortName
	if co, ok := symbols.Lookup(symbol); ok {
		name = co.Name
	} else if name == "" {
		_, name = symbols.Split(symbol)
	}

	return &models.Quote{
		Symbol:           symbols.Normalize(symbol),
		Name:             name,
		Price:            q.RegularMarketPrice,
		Change:           q.RegularMarketChange,
		ChangePercent:    q.RegularMarketChangePercent,
		Volume:           int64(q.RegularMarketVolume),
		Open:             q.RegularMarketOpen,
		High:             q.RegularMarketDayHigh,
		Low:              q.RegularMarketDayLow,
		PreviousClose:    q.RegularMarketPreviousClose,
		FiftyTwoWeekHigh: q.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  q.FiftyTwoWeekLow,
		Currency:         currencyOr(q.CurrencyID, symbol),
		Source:           models.SourceYahoo,
		FetchedAt:        time.Now(),
	}, nil
}

// Chart fetches daily bars for the range.
func (c *Client) Chart(ctx context.Context, symbol string, rng models.Range) (*models.ChartSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -rng.Points())
	params := &chart.Params{
		Symbol:   symbols.ToYahoo(symbol),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	var points []models.ChartPoint
	for iter.Next() {
		bar := iter.Bar()
		value, _ := bar.Close.Float64()
		if value <= 0 {
			continue
		}
		points = append(points, models.ChartPoint{
			Date:  time.Unix(int64(bar.Timestamp), 0).Format("2006-01-02"),
			Value: value,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo chart: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no bars for %s", providers.ErrNoData, symbol)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	return &models.ChartSeries{
		Symbol: symbols.Normalize(symbol),
		Range:  rng,
		Points: points,
		Source: models.SourceYahoo,
	}, nil
}

// Overview builds a fundamentals panel from the extended equity quote.
// Yahoo's quote endpoint has no sector or narrative text; registry
// entries fill those when known.
func (c *Client) Overview(ctx context.Context, symbol string) (*models.CompanyOverview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eq, err := equity.Get(symbols.ToYahoo(symbol))
	if err != nil {
		return nil, fmt.Errorf("yahoo equity: %w", err)
	}
	if eq == nil || eq.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("%w: %s", providers.ErrNoData, symbol)
	}

	name := eq.LongName
	if name == "" {
		name = eq.ShortName
	}

	ov := &models.CompanyOverview{
		Symbol:           symbols.Normalize(symbol),
		Name:             name,
		MarketCap:        eq.MarketCap,
		MarketCapDisplay: format.MarketCap(eq.MarketCap, symbol),
		PERatio:          eq.TrailingPE,
		EPS:              eq.EpsTrailingTwelveMonths,
		DividendYield:    eq.TrailingAnnualDividendYield * 100,
		FiftyTwoWeekHigh: eq.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  eq.FiftyTwoWeekLow,
		Currency:         currencyOr(eq.CurrencyID, symbol),
		Source:           models.SourceYahoo,
	}
	if co, ok := symbols.Lookup(symbol); ok {
		ov.Sector = co.Sector
		ov.Industry = co.Industry
		ov.Description = co.Description
		if ov.Name == "" {
			ov.Name = co.Name
		}
	}
	if ov.Name == "" {
		_, ov.Name = symbols.Split(symbol)
	}
	return ov, nil
}

// Indices fetches live levels for the tracked benchmarks. Partial
// failures drop the affected index; an empty result is an error so the
// caller can fall back.
func (c *Client) Indices(ctx context.Context) ([]models.MarketIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.MarketIndex, 0, len(indexSymbols))
	for _, is := range indexSymbols {
		ix, err := index.Get(is.yahoo)
		if err != nil || ix == nil || ix.RegularMarketPrice == 0 {
			c.log.Debug().Str("index", is.yahoo).Err(err).Msg("index fetch failed")
			continue
		}
		out = append(out, models.MarketIndex{
			Symbol:        is.yahoo,
			Name:          is.name,
			Value:         ix.RegularMarketPrice,
			Change:        ix.RegularMarketChange,
			ChangePercent: ix.RegularMarketChangePercent,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no index data", providers.ErrNoData)
	}
	return out, nil
}

func currencyOr(currency, symbol string) string {
	if currency != "" {
		return currency
	}
	return symbols.Currency(symbol)
}
