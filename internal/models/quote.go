package models

import "time"

// Data source tags stamped on fetched records so callers can tell live
// data from simulated data.
const (
	SourceLongport     = "longport"
	SourceAlphaVantage = "alphavantage"
	SourceYahoo        = "yahoo"
	SourceSynthetic    = "synthetic"
)

// Quote is a point-in-time snapshot of a tradable instrument. It is
// recomputed on every fetch and never persisted.
type Quote struct {
	Symbol           string    `json:"symbol"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"`
	Change           float64   `json:"change"`
	ChangePercent    float64   `json:"changePercent"`
	Volume           int64     `json:"volume"`
	Open             float64   `json:"open"`
	High             float64   `json:"high"`
	Low              float64   `json:"low"`
	PreviousClose    float64   `json:"previousClose"`
	FiftyTwoWeekHigh float64   `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  float64   `json:"fiftyTwoWeekLow"`
	Currency         string    `json:"currency"`
	Source           string    `json:"source"`
	FetchedAt        time.Time `json:"fetchedAt"`
}

// MarketIndex is a broad-market benchmark level.
type MarketIndex struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// TrendingStock is the condensed quote shown in trending lists.
type TrendingStock struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	Currency      string  `json:"currency"`
}

// SearchResult is a symbol lookup hit.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Sector   string `json:"sector,omitempty"`
}
