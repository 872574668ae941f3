// Package server exposes the market data layer as a JSON HTTP API for
// the browser dashboard.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/mkhatkar/stockmitra/internal/advisor"
	"github.com/mkhatkar/stockmitra/internal/market"
	"github.com/mkhatkar/stockmitra/internal/watchlist"
)

// Options wires the server's collaborators.
type Options struct {
	Addr        string
	CORSOrigins []string
	Market      *market.Service
	Advisor     *advisor.Advisor
	Watchlist   *watchlist.Store
	Log         zerolog.Logger
}

// Server is the HTTP front of the dashboard data layer.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	market  *market.Service
	advisor *advisor.Advisor
	store   *watchlist.Store
	log     zerolog.Logger
}

// New assembles routes, middleware and the http.Server.
func New(opts Options) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		market:  opts.Market,
		advisor: opts.Advisor,
		store:   opts.Watchlist,
		log:     opts.Log.With().Str("component", "server").Logger(),
	}

	s.setupMiddleware(opts.CORSOrigins)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/quote/{symbol}", s.handleQuote)
		r.Get("/chart/{symbol}", s.handleChart)
		r.Get("/overview/{symbol}", s.handleOverview)
		r.Get("/news/{symbol}", s.handleNews)
		r.Get("/indices", s.handleIndices)
		r.Get("/trending", s.handleTrending)
		r.Get("/search", s.handleSearch)
		r.Get("/recommendation/{symbol}", s.handleRecommendation)

		r.Get("/watchlist", s.handleWatchlist)
		r.Post("/watchlist/{symbol}", s.handleWatchlistAdd)
		r.Delete("/watchlist/{symbol}", s.handleWatchlistRemove)
	})
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
