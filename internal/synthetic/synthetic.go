// Package synthetic procedurally generates plausible market data. It is
// the terminal rung of the provider cascade: whatever the symbol and
// whatever the state of the live providers, these generators always
// produce a fully populated record. Values are pseudo-random around a
// per-symbol base and intentionally unseeded, so repeated calls differ.
package synthetic

import (
	"math"
	"math/rand"
	"time"

	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// basePrice anchors generated values. Known companies use their registry
// base; unknown symbols derive a stable base from the symbol text so the
// same symbol always orbits the same neighborhood.
func basePrice(symbol string) float64 {
	if c, ok := symbols.Lookup(symbol); ok {
		return c.BasePrice
	}
	_, base := symbols.Split(symbol)
	var h uint32
	for _, r := range base {
		h = h*31 + uint32(r)
	}
	return 50 + float64(h%39200)/16.0
}

func displayName(symbol string) string {
	if c, ok := symbols.Lookup(symbol); ok {
		return c.Name
	}
	_, base := symbols.Split(symbol)
	return base
}

// Quote generates a plausible snapshot for any symbol. High/low always
// bracket open and price, and the 52-week band always contains them.
func Quote(symbol string) *models.Quote {
	symbol = symbols.Normalize(symbol)
	base := basePrice(symbol)

	price := round2(base * (1 + (rand.Float64()-0.5)*0.06))
	changePercent := (rand.Float64() - 0.5) * 6
	previousClose := round2(price / (1 + changePercent/100))
	change := round2(price - previousClose)

	open := round2(previousClose * (1 + (rand.Float64()-0.5)*0.02))
	high := round2(maxF(open, price) * (1 + rand.Float64()*0.015))
	low := round2(minF(open, price) * (1 - rand.Float64()*0.015))
	if low <= 0 {
		low = round2(minF(open, price) * 0.99)
	}

	yearHigh := round2(maxF(base*(1.12+rand.Float64()*0.25), high))
	yearLow := round2(minF(base*(0.68+rand.Float64()*0.15), low))

	return &models.Quote{
		Symbol:           symbol,
		Name:             displayName(symbol),
		Price:            price,
		Change:           change,
		ChangePercent:    round2(changePercent),
		Volume:           100_000 + rand.Int63n(9_900_000),
		Open:             open,
		High:             high,
		Low:              low,
		PreviousClose:    previousClose,
		FiftyTwoWeekHigh: yearHigh,
		FiftyTwoWeekLow:  yearLow,
		Currency:         symbols.Currency(symbol),
		Source:           models.SourceSynthetic,
		FetchedAt:        time.Now(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
