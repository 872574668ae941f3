package models

// CompanyOverview carries the fundamentals panel for a symbol. MarketCap
// is the raw value; MarketCapDisplay is the formatted string shown to
// users. Both are populated on every provider path.
type CompanyOverview struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Sector           string  `json:"sector"`
	Industry         string  `json:"industry"`
	MarketCap        int64   `json:"marketCap"`
	MarketCapDisplay string  `json:"marketCapDisplay"`
	PERatio          float64 `json:"peRatio"`
	EPS              float64 `json:"eps"`
	DividendYield    float64 `json:"dividendYield"`
	AnalystTarget    float64 `json:"analystTarget"`
	FiftyTwoWeekHigh float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  float64 `json:"fiftyTwoWeekLow"`
	Currency         string  `json:"currency"`
	Source           string  `json:"source"`
}
