package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhatkar/stockmitra/internal/models"
)

func sampleQuote() *models.Quote {
	return &models.Quote{
		Symbol:           "NSE:RELIANCE",
		Name:             "Reliance Industries Ltd",
		Price:            2850.50,
		Change:           88.25,
		ChangePercent:    3.19,
		Volume:           7_500_000,
		Open:             2765.00,
		High:             2860.00,
		Low:              2758.10,
		PreviousClose:    2762.25,
		FiftyTwoWeekHigh: 3024.90,
		FiftyTwoWeekLow:  2221.05,
		Currency:         "INR",
		Source:           models.SourceYahoo,
		FetchedAt:        time.Now(),
	}
}

func TestQuoteCard(t *testing.T) {
	out := Quote(sampleQuote())

	assert.Contains(t, out, "NSE:RELIANCE")
	assert.Contains(t, out, "₹2,850.50")
	assert.Contains(t, out, "+₹88.25")
	assert.Contains(t, out, "+3.19%")
	assert.Contains(t, out, "52W High")
	assert.Contains(t, out, "source: yahoo")
	assert.NotContains(t, out, "simulated")
}

func TestQuoteCardMarksSimulatedData(t *testing.T) {
	q := sampleQuote()
	q.Source = models.SourceSynthetic

	assert.Contains(t, Quote(q), "(simulated)")
}

func TestChartPanel(t *testing.T) {
	series := &models.ChartSeries{
		Symbol: "AAPL",
		Range:  models.Range1W,
		Points: []models.ChartPoint{
			{Date: "2026-08-20", Value: 100},
			{Date: "2026-08-21", Value: 110},
			{Date: "2026-08-22", Value: 120},
			{Date: "2026-08-23", Value: 130},
			{Date: "2026-08-24", Value: 140},
		},
		Source: models.SourceYahoo,
	}

	out := Chart(series)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "1W")
	assert.Contains(t, out, "2026-08-20")
	assert.Contains(t, out, "2026-08-24")
	assert.Contains(t, out, "+40.00%")
}

func TestChartPanelEmptySeries(t *testing.T) {
	series := &models.ChartSeries{Symbol: "AAPL", Range: models.Range1M}
	assert.Contains(t, Chart(series), "(no chart data)")
}

func TestOverviewPanel(t *testing.T) {
	ov := &models.CompanyOverview{
		Symbol:           "AAPL",
		Name:             "Apple Inc",
		Description:      "Designs and sells consumer electronics, software and services.",
		Sector:           "Technology",
		Industry:         "Consumer Electronics",
		MarketCap:        3_520_000_000_000,
		MarketCapDisplay: "$3.52T",
		PERatio:          29.8,
		EPS:              6.42,
		Currency:         "USD",
		Source:           models.SourceAlphaVantage,
	}

	out := Overview(ov)
	assert.Contains(t, out, "Apple Inc")
	assert.Contains(t, out, "$3.52T")
	assert.Contains(t, out, "29.80")
	assert.Contains(t, out, "Technology / Consumer Electronics")
}

func TestOverviewPanelMissingRatios(t *testing.T) {
	ov := &models.CompanyOverview{Symbol: "AAPL", Name: "Apple Inc", Source: models.SourceSynthetic}
	assert.Contains(t, Overview(ov), "N/A")
}

func TestNewsList(t *testing.T) {
	items := []models.NewsItem{
		{Title: "Quarterly results beat estimates", Source: "Reuters", PublishedAt: time.Now()},
		{Title: "Board approves expansion", Summary: "A new plant is planned.", Source: "Mint", PublishedAt: time.Now()},
	}

	out := News(items)
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "Quarterly results beat estimates")
	assert.Contains(t, out, "Board approves expansion")
	assert.Contains(t, out, "Reuters")
}

func TestNewsListEmpty(t *testing.T) {
	assert.Contains(t, News(nil), "No recent headlines")
}

func TestRecommendationPanel(t *testing.T) {
	rec := &models.Recommendation{
		Symbol:           "NSE:TCS",
		Summary:          "Momentum supports a buy.",
		Action:           models.ActionBuy,
		Confidence:       0.78,
		Reasons:          []string{"Strong quarterly momentum", "Healthy order book"},
		RiskLevel:        models.RiskMedium,
		ShortTermOutlook: "Positive",
		LongTermOutlook:  "Stable",
		Source:           "gemini",
		GeneratedAt:      time.Now(),
	}

	out := Recommendation(rec)
	assert.Contains(t, out, "🟢")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "78%")
	assert.Contains(t, out, "Strong quarterly momentum")
	assert.Contains(t, out, "Not financial advice")
}

func TestRecommendationPanelSellStyling(t *testing.T) {
	rec := &models.Recommendation{
		Symbol:    "AAPL",
		Summary:   "Stretched valuation.",
		Action:    models.ActionSell,
		RiskLevel: models.RiskHigh,
		Source:    models.SourceFallback,
	}

	out := Recommendation(rec)
	assert.Contains(t, out, "🔴")
	assert.Contains(t, out, "SELL")
	assert.Contains(t, out, "(simulated)")
}

func TestIndicesTable(t *testing.T) {
	out := Indices([]models.MarketIndex{
		{Symbol: "NIFTY50", Name: "NIFTY 50", Value: 24850.75, ChangePercent: 0.42},
	})
	assert.Contains(t, out, "NIFTY 50")
	assert.Contains(t, out, "+0.42%")
}

func TestTrendingTable(t *testing.T) {
	out := Trending([]models.TrendingStock{
		{Symbol: "NSE:TCS", Name: "Tata Consultancy Services Ltd", Price: 4125.30, ChangePercent: -0.85, Currency: "INR"},
	})
	assert.Contains(t, out, "NSE:TCS")
	assert.Contains(t, out, "-0.85%")
}

func TestSearchResultsTable(t *testing.T) {
	out := SearchResults([]models.SearchResult{
		{Symbol: "NSE:RELIANCE", Name: "Reliance Industries Ltd", Exchange: "NSE", Sector: "Energy"},
	})
	assert.Contains(t, out, "NSE:RELIANCE")
	assert.Contains(t, out, "Energy")

	assert.Contains(t, SearchResults(nil), "No matches")
}

func TestWatchlistTable(t *testing.T) {
	out := Watchlist([]*models.Quote{sampleQuote()})
	assert.Contains(t, out, "NSE:RELIANCE")

	assert.Contains(t, Watchlist(nil), "watchlist add")
}

func TestSparkline(t *testing.T) {
	points := make([]models.ChartPoint, 8)
	for i := range points {
		points[i] = models.ChartPoint{Value: float64(i + 1)}
	}

	out := []rune(sparkline(points, 64))
	require.Len(t, out, 8)
	assert.Equal(t, '▁', out[0])
	assert.Equal(t, '█', out[7])
}

func TestSparklineFlatSeries(t *testing.T) {
	points := []models.ChartPoint{{Value: 5}, {Value: 5}, {Value: 5}}
	out := sparkline(points, 64)
	assert.Equal(t, strings.Repeat("▄", 3), out)
}

func TestSparklineDownsamples(t *testing.T) {
	points := make([]models.ChartPoint, 100)
	for i := range points {
		points[i] = models.ChartPoint{Value: float64(i)}
	}
	assert.Len(t, []rune(sparkline(points, 10)), 10)
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree four\nfive", wrap("one two three four five", "", 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := truncate("a very long company name", 10)
	assert.Len(t, long, 10)
	assert.True(t, strings.HasSuffix(long, "..."))
}
