// Package providers defines the contract shared by the live market data
// connectors. A connector either returns a well-formed record or an
// error; the cascade treats any error as "this rung is unavailable" and
// moves on, so connectors never need to distinguish retryable failures.
package providers

import (
	"context"
	"errors"

	"github.com/mkhatkar/stockmitra/internal/models"
)

// Failure classification. All four degrade identically in the cascade;
// the distinction only feeds logging and tests.
var (
	// ErrNotConfigured means the connector has no credentials and will
	// fail every call until the operator supplies them.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrNoData is a provider-reported empty result for the symbol.
	ErrNoData = errors.New("provider returned no data")

	// ErrRateLimited means the client-side request budget is exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnsupportedSymbol means the provider cannot serve the symbol's
	// market at all (as opposed to having no data for it today).
	ErrUnsupportedSymbol = errors.New("symbol not supported by provider")
)

// Provider is one rung of the market data cascade.
type Provider interface {
	Name() string
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Chart(ctx context.Context, symbol string, rng models.Range) (*models.ChartSeries, error)
	Overview(ctx context.Context, symbol string) (*models.CompanyOverview, error)
}

// Searcher is implemented by providers that can look up symbols by
// name or fragment.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}
