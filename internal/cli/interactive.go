package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/mkhatkar/stockmitra/config"
	"github.com/mkhatkar/stockmitra/internal/display"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// Menu actions.
const (
	actionQuote     = "Quote"
	actionChart     = "Chart"
	actionOverview  = "Company overview"
	actionNews      = "News"
	actionAdvice    = "AI advice"
	actionWatchlist = "Watchlist"
	actionSearch    = "Search"
	actionTrending  = "Trending"
	actionIndices   = "Market indices"
	actionExit      = "Exit"
)

// runInteractive drives the menu session until the user exits. Prompt
// errors (Ctrl-C, closed stdin) end the session quietly.
func runInteractive(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Println(display.Banner())
	fmt.Println()

	for {
		action, err := promptAction()
		if err != nil {
			return nil
		}

		switch action {
		case actionQuote:
			symbol, err := promptSymbol()
			if err != nil {
				return nil
			}
			fmt.Println(display.Quote(a.market.StockQuote(ctx, symbol)))

		case actionChart:
			symbol, err := promptSymbol()
			if err != nil {
				return nil
			}
			rng, err := promptRange()
			if err != nil {
				return nil
			}
			fmt.Println(display.Chart(a.market.Chart(ctx, symbol, rng)))

		case actionOverview:
			symbol, err := promptSymbol()
			if err != nil {
				return nil
			}
			fmt.Println(display.Overview(a.market.CompanyOverview(ctx, symbol)))

		case actionNews:
			symbol, err := promptSymbol()
			if err != nil {
				return nil
			}
			fmt.Println(display.News(a.market.StockNews(ctx, symbol, 5)))

		case actionAdvice:
			symbol, err := promptSymbol()
			if err != nil {
				return nil
			}
			quote := a.market.StockQuote(ctx, symbol)
			overview := a.market.CompanyOverview(ctx, symbol)
			fmt.Println(display.Recommendation(a.advisor.Advise(ctx, quote, overview)))

		case actionWatchlist:
			if err := runWatchlistMenu(ctx, a); err != nil {
				return nil
			}

		case actionSearch:
			query, err := promptQuery()
			if err != nil {
				return nil
			}
			fmt.Println(display.SearchResults(a.market.SearchStocks(ctx, query)))

		case actionTrending:
			fmt.Println(display.Trending(a.market.TrendingStocks(ctx, 0)))

		case actionIndices:
			fmt.Println(display.Indices(a.market.MarketIndices(ctx)))

		case actionExit:
			display.Info("Goodbye!")
			return nil
		}

		fmt.Println()
	}
}

func promptAction() (string, error) {
	var action string
	prompt := &survey.Select{
		Message: "What would you like to see?",
		Options: []string{
			actionQuote, actionChart, actionOverview, actionNews, actionAdvice,
			actionWatchlist, actionSearch, actionTrending, actionIndices, actionExit,
		},
		PageSize: 10,
	}
	err := survey.AskOne(prompt, &action)
	return action, err
}

func promptSymbol() (string, error) {
	var symbol string
	prompt := &survey.Input{
		Message: "Enter a symbol (NSE:RELIANCE, BSE:TATASTEEL or AAPL):",
		Help:    "Prefix Indian listings with NSE: or BSE:. Bare symbols are treated as US listings.",
	}

	err := survey.AskOne(prompt, &symbol, survey.WithValidator(func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("invalid input")
		}
		return symbols.Validate(symbols.Normalize(str))
	}))
	if err != nil {
		return "", err
	}
	return symbols.Normalize(symbol), nil
}

func promptRange() (models.Range, error) {
	var selected string
	prompt := &survey.Select{
		Message: "Select chart range:",
		Options: []string{"1W", "1M", "3M", "6M", "1Y"},
		Default: string(models.Range1M),
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return models.Range(selected), nil
}

func promptQuery() (string, error) {
	var query string
	prompt := &survey.Input{
		Message: "Search for:",
		Help:    "Company name or symbol fragment, e.g. reliance or HDFC",
	}
	err := survey.AskOne(prompt, &query, survey.WithValidator(survey.Required))
	return strings.TrimSpace(query), err
}

// runWatchlistMenu handles the watchlist submenu. Operational failures
// are shown and the session continues; only prompt errors propagate.
func runWatchlistMenu(ctx context.Context, a *app) error {
	var choice string
	prompt := &survey.Select{
		Message: "Watchlist:",
		Options: []string{"Show", "Add symbol", "Remove symbol", "Back"},
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return err
	}

	switch choice {
	case "Show":
		quotes, err := a.watchlistQuotes(ctx)
		if err != nil {
			display.Error(err)
			return nil
		}
		fmt.Println(display.Watchlist(quotes))

	case "Add symbol":
		symbol, err := promptSymbol()
		if err != nil {
			return err
		}
		added, err := a.store.Add(ctx, symbol)
		if err != nil {
			display.Error(err)
			return nil
		}
		if added {
			display.Success(symbol + " added to watchlist")
		} else {
			display.Info(symbol + " is already on the watchlist")
		}

	case "Remove symbol":
		syms, err := a.store.Symbols(ctx)
		if err != nil {
			display.Error(err)
			return nil
		}
		if len(syms) == 0 {
			display.Info("Watchlist is empty.")
			return nil
		}
		var symbol string
		if err := survey.AskOne(&survey.Select{Message: "Remove which symbol?", Options: syms}, &symbol); err != nil {
			return err
		}
		if _, err := a.store.Remove(ctx, symbol); err != nil {
			display.Error(err)
			return nil
		}
		display.Success(symbol + " removed from watchlist")
	}

	return nil
}
