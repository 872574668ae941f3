package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/devops"
	"github.com/spf13/cobra"

	"github.com/mkhatkar/stockmitra/config"
	"github.com/mkhatkar/stockmitra/internal/display"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/refresh"
	"github.com/mkhatkar/stockmitra/internal/server"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

const version = "1.0.0"

// NewRootCmd builds the stockmitra command tree.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "stockmitra",
		Short: "StockMitra - Indian and US market dashboard",
		Long: `StockMitra is a terminal dashboard for Indian and US stock markets.
It cascades across brokerage, Alpha Vantage and Yahoo Finance data
sources, falls back to simulated data when none respond, and can ask a
language model for a narrative take on any stock.

Indian listings carry an exchange prefix (NSE:RELIANCE, BSE:TATASTEEL);
bare symbols (AAPL) are treated as US listings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(
		newInteractiveCmd(cfg),
		newQuoteCmd(cfg),
		newChartCmd(cfg),
		newOverviewCmd(cfg),
		newNewsCmd(cfg),
		newAdviseCmd(cfg),
		newSearchCmd(cfg),
		newTrendingCmd(cfg),
		newIndicesCmd(cfg),
		newWatchlistCmd(cfg),
		newServeCmd(cfg),
		newConfigCmd(cfg),
		newVersionCmd(),
	)

	return rootCmd
}

// withApp wires the services, runs fn and tears down.
func withApp(cmd *cobra.Command, cfg *config.Config, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func cleanSymbol(raw string) (string, error) {
	symbol := symbols.Normalize(raw)
	if err := symbols.Validate(symbol); err != nil {
		return "", err
	}
	return symbol, nil
}

func parseRange(s string) (models.Range, error) {
	rng := models.Range(strings.ToUpper(strings.TrimSpace(s)))
	if !rng.Valid() {
		return "", fmt.Errorf("invalid range %q, expected one of 1W 1M 3M 6M 1Y", s)
	}
	return rng, nil
}

func newInteractiveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Browse the dashboard as a guided session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), cfg)
		},
	}
}

func newQuoteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "quote SYMBOL...",
		Short:   "Show live quotes",
		Example: "  stockmitra quote NSE:RELIANCE\n  stockmitra quote AAPL MSFT NSE:TCS",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syms := make([]string, 0, len(args))
			for _, arg := range args {
				symbol, err := cleanSymbol(arg)
				if err != nil {
					return err
				}
				syms = append(syms, symbol)
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				for _, q := range a.market.Quotes(ctx, syms) {
					fmt.Println(display.Quote(q))
				}
				return nil
			})
		},
	}
}

func newChartCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "chart SYMBOL",
		Short:   "Render a price chart",
		Example: "  stockmitra chart NSE:TCS --range 3M",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := cleanSymbol(args[0])
			if err != nil {
				return err
			}
			rangeFlag, _ := cmd.Flags().GetString("range")
			rng, err := parseRange(rangeFlag)
			if err != nil {
				return err
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				fmt.Println(display.Chart(a.market.Chart(ctx, symbol, rng)))
				return nil
			})
		},
	}
	cmd.Flags().String("range", string(models.Range1M), "Chart range: 1W, 1M, 3M, 6M or 1Y")
	return cmd
}

func newOverviewCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "overview SYMBOL",
		Short: "Show company fundamentals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := cleanSymbol(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				fmt.Println(display.Overview(a.market.CompanyOverview(ctx, symbol)))
				return nil
			})
		},
	}
}

func newNewsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news SYMBOL",
		Short: "Show recent headlines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := cleanSymbol(args[0])
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				fmt.Println(display.News(a.market.StockNews(ctx, symbol, limit)))
				return nil
			})
		},
	}
	cmd.Flags().Int("limit", 5, "Number of headlines")
	return cmd
}

func newAdviseCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "advise SYMBOL",
		Short:   "Ask for an AI take on a stock",
		Example: "  stockmitra advise NSE:INFY",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := cleanSymbol(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				quote := a.market.StockQuote(ctx, symbol)
				overview := a.market.CompanyOverview(ctx, symbol)
				fmt.Println(display.Recommendation(a.advisor.Advise(ctx, quote, overview)))
				return nil
			})
		},
	}
}

func newSearchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "search QUERY",
		Short:   "Look up symbols by name or fragment",
		Example: "  stockmitra search reliance",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("search query cannot be empty")
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				fmt.Println(display.SearchResults(a.market.SearchStocks(ctx, query)))
				return nil
			})
		},
	}
}

func newTrendingCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show the most-watched stocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				fmt.Println(display.Trending(a.market.TrendingStocks(ctx, limit)))
				return nil
			})
		},
	}
	cmd.Flags().Int("limit", 0, "Number of stocks (0 shows all)")
	return cmd
}

func newIndicesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "Show benchmark index levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				fmt.Println(display.Indices(a.market.MarketIndices(ctx)))
				return nil
			})
		},
	}
}

func newWatchlistCmd(cfg *config.Config) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage tracked symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchlistShow(cmd, cfg)
		},
	}

	watchCmd.AddCommand(&cobra.Command{
		Use:   "add SYMBOL",
		Short: "Track a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := cleanSymbol(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				added, err := a.store.Add(ctx, symbol)
				if err != nil {
					return err
				}
				if added {
					display.Success(symbol + " added to watchlist")
				} else {
					display.Info(symbol + " is already on the watchlist")
				}
				return nil
			})
		},
	})

	watchCmd.AddCommand(&cobra.Command{
		Use:   "remove SYMBOL",
		Short: "Stop tracking a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, err := cleanSymbol(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				removed, err := a.store.Remove(ctx, symbol)
				if err != nil {
					return err
				}
				if removed {
					display.Success(symbol + " removed from watchlist")
				} else {
					display.Info(symbol + " was not on the watchlist")
				}
				return nil
			})
		},
	})

	watchCmd.AddCommand(&cobra.Command{
		Use:     "show",
		Aliases: []string{"list"},
		Short:   "Show tracked symbols with live quotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchlistShow(cmd, cfg)
		},
	})

	return watchCmd
}

func runWatchlistShow(cmd *cobra.Command, cfg *config.Config) error {
	return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
		quotes, err := a.watchlistQuotes(ctx)
		if err != nil {
			return err
		}
		fmt.Println(display.Watchlist(quotes))
		return nil
	})
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		Long: `Serve the dashboard data layer over HTTP. Endpoints live under
/api/v1 and mirror the terminal commands: quotes, charts, overviews,
news, search, trending, indices, recommendations and the watchlist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.ServerAddr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDR)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if removed, err := a.disk.Purge(7 * 24 * time.Hour); err == nil && removed > 0 {
		a.log.Info().Int("removed", removed).Msg("purged stale cache files")
	}

	if cfg.EinoDebugEnabled {
		if err := devops.Init(ctx); err != nil {
			a.log.Warn().Err(err).Msg("eino debug server failed to start")
		}
	}

	if cfg.RefreshEnabled {
		worker := refresh.New(a.market, a.store, a.log)
		if err := worker.Schedule(cfg.RefreshSpec); err != nil {
			return fmt.Errorf("schedule refresh: %w", err)
		}
		worker.Start()
		defer worker.Stop()
	}

	srv := server.New(server.Options{
		Addr:        cfg.ServerAddr,
		CORSOrigins: cfg.CORSOrigins,
		Market:      a.market,
		Advisor:     a.advisor,
		Watchlist:   a.store,
		Log:         a.log,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	return configCmd
}

func showConfig(cfg *config.Config) {
	fmt.Println("📋 Current StockMitra Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Data Directory:       %s\n", cfg.DataDir)
	fmt.Printf("Cache Directory:      %s\n", cfg.DataCacheDir)
	fmt.Printf("Database Path:        %s\n", cfg.DatabasePath)
	fmt.Println()
	fmt.Printf("Server Address:       %s\n", cfg.ServerAddr)
	fmt.Printf("CORS Origins:         %s\n", strings.Join(cfg.CORSOrigins, ", "))
	fmt.Println()
	fmt.Printf("Cache Enabled:        %t\n", cfg.CacheEnabled)
	fmt.Printf("Cache TTL:            %s\n", cfg.CacheTTL())
	fmt.Printf("Refresh Enabled:      %t\n", cfg.RefreshEnabled)
	fmt.Printf("Refresh Spec:         %s\n", cfg.RefreshSpec)
	fmt.Println()
	fmt.Printf("Advice Provider:      %s\n", adviceLabel(cfg.AdviceProvider))
	fmt.Printf("Eino Debug:           %t\n", cfg.EinoDebugEnabled)
	fmt.Println()

	fmt.Println("🔌 API Configuration:")
	fmt.Println("─────────────────────")
	printKeyStatus("Longport", cfg.LongportAppKey != "" && cfg.LongportAppSecret != "" && cfg.LongportAccessToken != "")
	printKeyStatus("Alpha Vantage", cfg.AlphaVantageAPIKey != "")
	printKeyStatus("Gemini", cfg.GeminiAPIKey != "")
	printKeyStatus("DeepSeek", cfg.DeepSeekAPIKey != "")
	printKeyStatus("OpenAI", cfg.OpenAIAPIKey != "")
	fmt.Println("Yahoo Finance:        ✅ No key required")
}

func printKeyStatus(name string, configured bool) {
	status := "❌ Not configured"
	if configured {
		status = "✅ Configured"
	}
	fmt.Printf("%-21s %s\n", name+":", status)
}

func adviceLabel(provider string) string {
	switch provider {
	case "", "none", "rules":
		return "rules (no language model)"
	default:
		return provider
	}
}

func validateConfig(cfg *config.Config) error {
	fmt.Println("🔍 Validating StockMitra Configuration...")
	fmt.Println("═══════════════════════════════════════")

	fmt.Print("📁 Checking directories... ")
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Println("❌")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Println("✅")

	fmt.Print("⚙️  Checking configuration values... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("❌")
		return err
	}
	fmt.Println("✅")

	fmt.Print("🔑 Checking API keys... ")
	var warnings []string
	if cfg.LongportAppKey == "" || cfg.LongportAppSecret == "" || cfg.LongportAccessToken == "" {
		warnings = append(warnings, "Longport credentials not configured, brokerage quotes disabled")
	}
	if cfg.AlphaVantageAPIKey == "" {
		warnings = append(warnings, "Alpha Vantage API key not configured")
	}
	switch cfg.AdviceProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			warnings = append(warnings, "GEMINI_API_KEY missing, advice falls back to rules")
		}
	case "deepseek":
		if cfg.DeepSeekAPIKey == "" {
			warnings = append(warnings, "DEEPSEEK_API_KEY missing, advice falls back to rules")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			warnings = append(warnings, "OPENAI_API_KEY missing, advice falls back to rules")
		}
	}

	if len(warnings) > 0 {
		fmt.Println("⚠️")
		for _, warning := range warnings {
			fmt.Printf("  ⚠️  %s\n", warning)
		}
	} else {
		fmt.Println("✅")
	}

	fmt.Println()
	if len(warnings) == 0 {
		fmt.Println("✅ Configuration validation completed successfully!")
	} else {
		fmt.Printf("⚠️  Configuration validation completed with %d warnings.\n", len(warnings))
		fmt.Println("Quotes degrade to Yahoo Finance and simulated data without live keys.")
	}

	fmt.Println()
	fmt.Println("💡 Tips:")
	fmt.Println("  • Set ALPHAVANTAGE_API_KEY for fundamentals and symbol search")
	fmt.Println("  • Set LONGPORT_APP_KEY, LONGPORT_APP_SECRET and LONGPORT_ACCESS_TOKEN for brokerage quotes")
	fmt.Println("  • Set GEMINI_API_KEY (or DEEPSEEK_API_KEY / OPENAI_API_KEY) for AI advice")

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("StockMitra v%s\n", version)
			fmt.Println("Market dashboard for Indian and US stocks")
		},
	}
}
