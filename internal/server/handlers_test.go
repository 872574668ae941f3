package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhatkar/stockmitra/internal/advisor"
	"github.com/mkhatkar/stockmitra/internal/market"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/watchlist"
)

// newTestServer builds a server over synthetic-only market data and a
// throwaway watchlist database.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	store, err := watchlist.Open(filepath.Join(t.TempDir(), "watchlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return New(Options{
		Addr:      ":0",
		Market:    market.NewService(nil, nil, nil, nil, false, 0, zerolog.Nop()),
		Advisor:   advisor.New(nil, zerolog.Nop()),
		Watchlist: store,
		Log:       zerolog.Nop(),
	})
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), "body: %s", rec.Body.String())
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestQuoteEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/quote/NSE:RELIANCE")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var q models.Quote
	decodeJSON(t, rec, &q)
	assert.Equal(t, "NSE:RELIANCE", q.Symbol)
	assert.Equal(t, "INR", q.Currency)
	assert.Greater(t, q.Price, 0.0)
	assert.Equal(t, models.SourceSynthetic, q.Source)
}

func TestQuoteEndpointNormalizesSymbol(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/quote/aapl")
	require.Equal(t, http.StatusOK, rec.Code)

	var q models.Quote
	decodeJSON(t, rec, &q)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "USD", q.Currency)
}

func TestQuoteEndpointRejectsUnknownExchange(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/quote/LSE:VOD")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Contains(t, body["error"], "LSE")
}

func TestChartEndpointDefaultsToOneMonth(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/chart/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)

	var series models.ChartSeries
	decodeJSON(t, rec, &series)
	assert.Equal(t, models.Range1M, series.Range)
	assert.Len(t, series.Points, 30)
}

func TestChartEndpointRangeParam(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/chart/AAPL?range=1w")
	require.Equal(t, http.StatusOK, rec.Code)

	var series models.ChartSeries
	decodeJSON(t, rec, &series)
	assert.Equal(t, models.Range1W, series.Range)
	assert.Len(t, series.Points, 7)
}

func TestChartEndpointRejectsInvalidRange(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/chart/AAPL?range=9Q")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverviewEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/overview/NSE:TCS")
	require.Equal(t, http.StatusOK, rec.Code)

	var ov models.CompanyOverview
	decodeJSON(t, rec, &ov)
	assert.Equal(t, "NSE:TCS", ov.Symbol)
	assert.NotEmpty(t, ov.Name)
	assert.NotEmpty(t, ov.MarketCapDisplay)
}

func TestNewsEndpointHonorsLimit(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/news/AAPL?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.NewsItem
	decodeJSON(t, rec, &items)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEmpty(t, item.Title)
	}
}

func TestIndicesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/indices")
	require.Equal(t, http.StatusOK, rec.Code)

	var indices []models.MarketIndex
	decodeJSON(t, rec, &indices)
	require.NotEmpty(t, indices)
	for _, ix := range indices {
		assert.NotEmpty(t, ix.Name)
		assert.Greater(t, ix.Value, 0.0)
	}
}

func TestTrendingEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/trending?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var stocks []models.TrendingStock
	decodeJSON(t, rec, &stocks)
	require.Len(t, stocks, 3)
	for _, st := range stocks {
		assert.Greater(t, st.Price, 0.0)
	}
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/search?q=reliance")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []models.SearchResult
	decodeJSON(t, rec, &results)
	require.NotEmpty(t, results)

	syms := make([]string, 0, len(results))
	for _, r := range results {
		syms = append(syms, r.Symbol)
	}
	assert.Contains(t, syms, "NSE:RELIANCE")
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/search")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendationEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/recommendation/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)

	var advice models.Recommendation
	decodeJSON(t, rec, &advice)
	assert.Equal(t, "AAPL", advice.Symbol)
	assert.Equal(t, models.SourceFallback, advice.Source)
	assert.Contains(t, []string{models.ActionBuy, models.ActionSell, models.ActionHold}, advice.Action)
	assert.NotEmpty(t, advice.Summary)
	assert.Greater(t, advice.Confidence, 0.0)
}

func TestWatchlistFlow(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/watchlist")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []watchlistItem
	decodeJSON(t, rec, &items)
	assert.Empty(t, items)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/watchlist/nse:tcs")
	require.Equal(t, http.StatusOK, rec.Code)
	items = nil
	decodeJSON(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "NSE:TCS", items[0].Symbol)
	assert.False(t, items[0].AddedAt.IsZero())
	require.NotNil(t, items[0].Quote)
	assert.Equal(t, "INR", items[0].Quote.Currency)
	assert.Greater(t, items[0].Quote.Price, 0.0)

	// Adding the same symbol again is a no-op.
	rec = doRequest(t, s, http.MethodPost, "/api/v1/watchlist/NSE:TCS")
	require.Equal(t, http.StatusOK, rec.Code)
	items = nil
	decodeJSON(t, rec, &items)
	require.Len(t, items, 1)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/watchlist/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)
	items = nil
	decodeJSON(t, rec, &items)
	require.Len(t, items, 2)

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/watchlist/NSE:TCS")
	require.Equal(t, http.StatusOK, rec.Code)
	items = nil
	decodeJSON(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "AAPL", items[0].Symbol)
}

func TestWatchlistRejectsInvalidSymbol(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/watchlist/LSE:VOD")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/watchlist")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []watchlistItem
	decodeJSON(t, rec, &items)
	assert.Empty(t, items)
}
