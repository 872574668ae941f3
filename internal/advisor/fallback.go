package advisor

import (
	"fmt"
	"time"

	"github.com/mkhatkar/stockmitra/internal/format"
	"github.com/mkhatkar/stockmitra/internal/models"
)

// Fallback derives a recommendation from threshold rules: day momentum
// picks the action, the P/E ratio tilts risk. Used whenever no model
// backend is available or its reply cannot be used.
func Fallback(q *models.Quote, ov *models.CompanyOverview) *models.Recommendation {
	rec := &models.Recommendation{
		Symbol:      q.Symbol,
		Source:      models.SourceFallback,
		RiskLevel:   models.RiskMedium,
		GeneratedAt: time.Now(),
	}

	switch {
	case q.ChangePercent > 2:
		rec.Action = models.ActionBuy
		rec.Confidence = 0.6
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("Strong intraday momentum at %s", format.Percent(q.ChangePercent)))
		rec.ShortTermOutlook = "Momentum favors continued strength over the next few sessions."
	case q.ChangePercent < -2:
		rec.Action = models.ActionSell
		rec.Confidence = 0.6
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("Sharp intraday decline at %s", format.Percent(q.ChangePercent)))
		rec.ShortTermOutlook = "Selling pressure may persist in the near term."
	default:
		rec.Action = models.ActionHold
		rec.Confidence = 0.5
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("Price action is range-bound at %s", format.Percent(q.ChangePercent)))
		rec.ShortTermOutlook = "Expect sideways movement until a fresh catalyst emerges."
	}

	pe := 0.0
	if ov != nil {
		pe = ov.PERatio
	}
	switch {
	case pe > 30:
		rec.RiskLevel = models.RiskHigh
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("Valuation looks rich at a P/E of %.1f", pe))
		rec.LongTermOutlook = "Long-term returns depend on earnings growing into the current valuation."
	case pe > 0 && pe < 15:
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("Valuation is undemanding at a P/E of %.1f", pe))
		rec.LongTermOutlook = "The undemanding valuation leaves room for long-term rerating."
	default:
		rec.LongTermOutlook = "Long-term prospects track the sector; watch upcoming earnings."
	}

	rec.Summary = fmt.Sprintf(
		"%s trades at %s, %s on the day. Rule-based view: %s with %s risk.",
		q.Name, format.Currency(q.Price, q.Symbol), format.Percent(q.ChangePercent),
		rec.Action, rec.RiskLevel)
	return rec
}
