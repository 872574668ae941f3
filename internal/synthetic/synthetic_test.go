package synthetic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhatkar/stockmitra/internal/models"
)

func TestQuoteAlwaysPopulated(t *testing.T) {
	for _, symbol := range []string{"NSE:RELIANCE", "AAPL", "NSE:UNKNOWNCO", "ZZZT"} {
		q := Quote(symbol)
		require.NotNil(t, q)
		assert.Equal(t, symbol, q.Symbol)
		assert.NotEmpty(t, q.Name)
		assert.Greater(t, q.Price, 0.0)
		assert.Greater(t, q.Volume, int64(0))
		assert.Greater(t, q.Open, 0.0)
		assert.Greater(t, q.PreviousClose, 0.0)
		assert.NotEmpty(t, q.Currency)
		assert.Equal(t, models.SourceSynthetic, q.Source)

		assert.GreaterOrEqual(t, q.High, q.Price)
		assert.GreaterOrEqual(t, q.High, q.Open)
		assert.LessOrEqual(t, q.Low, q.Price)
		assert.LessOrEqual(t, q.Low, q.Open)
		assert.GreaterOrEqual(t, q.FiftyTwoWeekHigh, q.High)
		assert.LessOrEqual(t, q.FiftyTwoWeekLow, q.Low)
	}
}

func TestQuoteCurrencyFollowsListing(t *testing.T) {
	assert.Equal(t, "INR", Quote("NSE:TCS").Currency)
	assert.Equal(t, "USD", Quote("MSFT").Currency)
}

func TestQuoteChangeArithmetic(t *testing.T) {
	q := Quote("NSE:INFY")
	assert.InDelta(t, q.Price-q.PreviousClose, q.Change, 0.02)
}

func TestChartInvariants(t *testing.T) {
	ranges := []models.Range{models.Range1W, models.Range1M, models.Range3M, models.Range6M, models.Range1Y}
	for _, rng := range ranges {
		series := Chart("NSE:RELIANCE", rng)
		require.NotNil(t, series)
		require.Len(t, series.Points, rng.Points(), "range %s", rng)

		prev := ""
		for i, p := range series.Points {
			assert.Greater(t, p.Value, 0.0, "point %d of %s must be positive", i, rng)
			if i > 0 {
				assert.Greater(t, p.Date, prev, "dates must be strictly increasing")
			}
			_, err := time.Parse("2006-01-02", p.Date)
			require.NoError(t, err)
			prev = p.Date
		}

		last := series.Points[len(series.Points)-1]
		assert.Equal(t, time.Now().Format("2006-01-02"), last.Date, "series ends today")
	}
}

func TestChartUnknownSymbolStillWorks(t *testing.T) {
	series := Chart("WHOKNOWS", models.Range1M)
	require.Len(t, series.Points, 30)
	for _, p := range series.Points {
		assert.Greater(t, p.Value, 0.0)
	}
}

func TestOverviewPopulated(t *testing.T) {
	known := Overview("NSE:RELIANCE")
	assert.Equal(t, "Energy", known.Sector)
	assert.NotEmpty(t, known.Description)
	assert.Greater(t, known.MarketCap, int64(0))
	assert.NotEmpty(t, known.MarketCapDisplay)
	assert.Contains(t, known.MarketCapDisplay, "₹")
	assert.Greater(t, known.PERatio, 0.0)
	assert.Greater(t, known.EPS, 0.0)

	unknown := Overview("ZZZT")
	assert.NotEmpty(t, unknown.Description)
	assert.Greater(t, unknown.MarketCap, int64(0))
	assert.Contains(t, unknown.MarketCapDisplay, "$")
	assert.Equal(t, models.SourceSynthetic, unknown.Source)
}

func TestNews(t *testing.T) {
	items := News("NSE:TCS", 4)
	require.Len(t, items, 4)
	seen := map[string]bool{}
	for _, it := range items {
		assert.Contains(t, it.Title, "Tata Consultancy Services")
		assert.NotEmpty(t, it.Source)
		assert.False(t, it.PublishedAt.After(time.Now()))
		assert.False(t, seen[it.Title], "headlines should not repeat")
		seen[it.Title] = true
	}
}

func TestIndices(t *testing.T) {
	indices := Indices()
	require.Len(t, indices, 4)
	names := map[string]bool{}
	for _, ix := range indices {
		assert.Greater(t, ix.Value, 0.0)
		names[ix.Name] = true
	}
	assert.True(t, names["NIFTY 50"])
	assert.True(t, names["BSE SENSEX"])
}

func TestTrending(t *testing.T) {
	top := Trending(5)
	require.Len(t, top, 5)
	for _, s := range top {
		assert.NotEmpty(t, s.Symbol)
		assert.Greater(t, s.Price, 0.0)
		assert.NotEmpty(t, s.Currency)
	}
}

func TestSearch(t *testing.T) {
	hits := Search("tata")
	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.NotEmpty(t, h.Symbol)
		assert.NotEmpty(t, h.Exchange)
	}
	assert.Empty(t, Search(""))
}
