package synthetic

import (
	"fmt"
	"math/rand"

	"github.com/mkhatkar/stockmitra/internal/format"
	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// Overview generates a fundamentals panel. Registry companies keep
// their real sector, industry, description and market cap; unknown
// symbols get generic text and a cap derived from the base price.
func Overview(symbol string) *models.CompanyOverview {
	symbol = symbols.Normalize(symbol)
	base := basePrice(symbol)
	price := base * (1 + (rand.Float64()-0.5)*0.06)

	pe := 12 + rand.Float64()*28
	ov := &models.CompanyOverview{
		Symbol:           symbol,
		Name:             displayName(symbol),
		Sector:           "Diversified",
		Industry:         "Conglomerate",
		PERatio:          round2(pe),
		EPS:              round2(price / pe),
		DividendYield:    round2(rand.Float64() * 3.5),
		AnalystTarget:    round2(price * (0.9 + rand.Float64()*0.25)),
		FiftyTwoWeekHigh: round2(base * (1.12 + rand.Float64()*0.25)),
		FiftyTwoWeekLow:  round2(base * (0.68 + rand.Float64()*0.15)),
		Currency:         symbols.Currency(symbol),
		Source:           models.SourceSynthetic,
	}

	if c, ok := symbols.Lookup(symbol); ok {
		ov.Sector = c.Sector
		ov.Industry = c.Industry
		ov.Description = c.Description
		ov.MarketCap = c.MarketCap
	} else {
		_, baseSym := symbols.Split(symbol)
		ov.Description = fmt.Sprintf("%s is a listed company. Detailed company information is not available for this symbol; the figures shown are indicative.", baseSym)
		shares := 50_000_000 + rand.Int63n(4_950_000_000)
		ov.MarketCap = int64(price * float64(shares))
	}
	ov.MarketCapDisplay = format.MarketCap(ov.MarketCap, symbol)
	return ov
}
