package models

import "time"

// Recommendation actions.
const (
	ActionBuy  = "Buy"
	ActionSell = "Sell"
	ActionHold = "Hold"
)

// Recommendation risk levels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// SourceFallback marks a recommendation produced by the deterministic
// threshold rules rather than a language model.
const SourceFallback = "fallback"

// Recommendation is the AI-generated (or rule-derived) narrative verdict
// for a stock. Every field is always populated.
type Recommendation struct {
	Symbol           string    `json:"symbol"`
	Summary          string    `json:"summary"`
	Action           string    `json:"action"`
	Confidence       float64   `json:"confidence"`
	Reasons          []string  `json:"reasons"`
	RiskLevel        string    `json:"riskLevel"`
	ShortTermOutlook string    `json:"shortTermOutlook"`
	LongTermOutlook  string    `json:"longTermOutlook"`
	Source           string    `json:"source"`
	GeneratedAt      time.Time `json:"generatedAt"`
}
