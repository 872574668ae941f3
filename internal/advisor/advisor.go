// Package advisor produces narrative stock recommendations. When a
// language model backend is configured it is asked for a structured
// verdict; deterministic threshold rules cover configuration gaps and
// every failure mode, so Advise always returns a populated record.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkhatkar/stockmitra/config"
	"github.com/mkhatkar/stockmitra/internal/format"
	"github.com/mkhatkar/stockmitra/internal/models"
)

// Backend generates a raw model reply for an advice request.
type Backend interface {
	Name() string
	Generate(ctx context.Context, symbol, request string) (string, error)
}

// Advisor turns market data into recommendations.
type Advisor struct {
	backend Backend
	log     zerolog.Logger
}

// New builds an advisor. backend may be nil for rules-only advice.
func New(backend Backend, log zerolog.Logger) *Advisor {
	return &Advisor{
		backend: backend,
		log:     log.With().Str("component", "advisor").Logger(),
	}
}

// FromConfig selects the backend named by the config. Unknown names and
// missing API keys degrade to rules-only advice with a logged warning.
func FromConfig(ctx context.Context, cfg *config.Config, log zerolog.Logger) *Advisor {
	return New(backendFromConfig(ctx, cfg, log), log)
}

func backendFromConfig(ctx context.Context, cfg *config.Config, log zerolog.Logger) Backend {
	switch cfg.AdviceProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Warn().Msg("GEMINI_API_KEY not set, advice falls back to threshold rules")
			return nil
		}
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, log)
	case "deepseek":
		if cfg.DeepSeekAPIKey == "" {
			log.Warn().Msg("DEEPSEEK_API_KEY not set, advice falls back to threshold rules")
			return nil
		}
		b, err := NewDeepSeek(ctx, cfg.DeepSeekAPIKey, cfg.DeepSeekModel)
		if err != nil {
			log.Warn().Err(err).Msg("deepseek backend unavailable, advice falls back to threshold rules")
			return nil
		}
		return b
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY not set, advice falls back to threshold rules")
			return nil
		}
		b, err := NewOpenAI(ctx, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Warn().Err(err).Msg("openai backend unavailable, advice falls back to threshold rules")
			return nil
		}
		return b
	case "", "none", "rules":
		return nil
	default:
		log.Warn().Str("provider", cfg.AdviceProvider).Msg("unknown advice provider, using threshold rules")
		return nil
	}
}

// Advise builds a recommendation for the quote and overview. It never
// fails; the Source field tells whether a model or the rules spoke.
func (a *Advisor) Advise(ctx context.Context, q *models.Quote, ov *models.CompanyOverview) *models.Recommendation {
	if a.backend != nil {
		rec, err := a.generate(ctx, q, ov)
		if err != nil {
			a.log.Warn().
				Str("backend", a.backend.Name()).
				Str("symbol", q.Symbol).
				Err(err).
				Msg("model advice failed, using threshold rules")
		} else {
			return rec
		}
	}
	return Fallback(q, ov)
}

func (a *Advisor) generate(ctx context.Context, q *models.Quote, ov *models.CompanyOverview) (*models.Recommendation, error) {
	raw, err := a.backend.Generate(ctx, q.Symbol, buildRequest(q, ov))
	if err != nil {
		return nil, err
	}
	rec, err := parseRecommendation(raw)
	if err != nil {
		return nil, err
	}
	rec.Symbol = q.Symbol
	rec.Source = a.backend.Name()
	rec.GeneratedAt = time.Now()
	return rec, nil
}

// buildRequest renders the numeric snapshot the model reasons over.
func buildRequest(q *models.Quote, ov *models.CompanyOverview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Symbol: %s (%s)\n", q.Symbol, q.Name)
	fmt.Fprintf(&b, "Price: %s, day change %s (%s)\n",
		format.Currency(q.Price, q.Symbol), format.Change(q.Change, q.Symbol), format.Percent(q.ChangePercent))
	fmt.Fprintf(&b, "Day range: %.2f to %.2f, previous close %.2f, volume %s\n",
		q.Low, q.High, q.PreviousClose, format.Volume(q.Volume, q.Symbol))
	fmt.Fprintf(&b, "52-week range: %.2f to %.2f\n", q.FiftyTwoWeekLow, q.FiftyTwoWeekHigh)
	if ov != nil {
		fmt.Fprintf(&b, "Sector: %s, industry: %s\n", ov.Sector, ov.Industry)
		fmt.Fprintf(&b, "Market cap: %s, P/E: %.2f, EPS: %.2f, dividend yield: %.2f%%\n",
			ov.MarketCapDisplay, ov.PERatio, ov.EPS, ov.DividendYield)
	}
	b.WriteString("\nAnswer with the JSON object described in the system instructions.")
	return b.String()
}
