package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// watchlistItem pairs a stored entry with its live quote.
type watchlistItem struct {
	models.WatchlistEntry
	Quote *models.Quote `json:"quote"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "stockmitra",
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.pathSymbol(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.market.StockQuote(r.Context(), symbol))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.pathSymbol(w, r)
	if !ok {
		return
	}

	rng := models.Range1M
	if param := r.URL.Query().Get("range"); param != "" {
		rng = models.Range(strings.ToUpper(param))
		if !rng.Valid() {
			s.writeError(w, http.StatusBadRequest, "invalid range, expected one of 1W 1M 3M 6M 1Y")
			return
		}
	}
	s.writeJSON(w, http.StatusOK, s.market.Chart(r.Context(), symbol, rng))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.pathSymbol(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.market.CompanyOverview(r.Context(), symbol))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.pathSymbol(w, r)
	if !ok {
		return
	}
	limit := queryInt(r, "limit", 5, 20)
	s.writeJSON(w, http.StatusOK, s.market.StockNews(r.Context(), symbol, limit))
}

func (s *Server) handleIndices(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.market.MarketIndices(r.Context()))
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0, 20)
	s.writeJSON(w, http.StatusOK, s.market.TrendingStocks(r.Context(), limit))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.market.SearchStocks(r.Context(), query))
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.pathSymbol(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	quote := s.market.StockQuote(ctx, symbol)
	overview := s.market.CompanyOverview(ctx, symbol)
	s.writeJSON(w, http.StatusOK, s.advisor.Advise(ctx, quote, overview))
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	s.respondWatchlist(w, r)
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.pathSymbol(w, r)
	if !ok {
		return
	}
	if _, err := s.store.Add(r.Context(), symbol); err != nil {
		s.writeError(w, http.StatusInternalServerError, "update watchlist: "+err.Error())
		return
	}
	s.respondWatchlist(w, r)
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	symbol, ok := s.pathSymbol(w, r)
	if !ok {
		return
	}
	if _, err := s.store.Remove(r.Context(), symbol); err != nil {
		s.writeError(w, http.StatusInternalServerError, "update watchlist: "+err.Error())
		return
	}
	s.respondWatchlist(w, r)
}

// respondWatchlist returns every entry zipped with its live quote.
func (s *Server) respondWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, err := s.store.List(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "load watchlist: "+err.Error())
		return
	}

	syms := make([]string, len(entries))
	for i, e := range entries {
		syms[i] = e.Symbol
	}
	quotes := s.market.Quotes(ctx, syms)

	items := make([]watchlistItem, len(entries))
	for i, e := range entries {
		items[i] = watchlistItem{WatchlistEntry: e, Quote: quotes[i]}
	}
	s.writeJSON(w, http.StatusOK, items)
}

// pathSymbol validates the {symbol} route parameter, writing a 400 on
// failure.
func (s *Server) pathSymbol(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := symbols.Normalize(chi.URLParam(r, "symbol"))
	if err := symbols.Validate(symbol); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return symbol, true
}

func queryInt(r *http.Request, name string, fallback, max int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("encode json response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
