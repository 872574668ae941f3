package synthetic

import (
	"math/rand"

	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

var indexBases = []struct {
	symbol string
	name   string
	level  float64
}{
	{"NIFTY50", "NIFTY 50", 24_850},
	{"SENSEX", "BSE SENSEX", 81_300},
	{"BANKNIFTY", "NIFTY BANK", 51_200},
	{"NIFTYIT", "NIFTY IT", 37_800},
}

// Indices generates index levels perturbed around known base levels.
func Indices() []models.MarketIndex {
	out := make([]models.MarketIndex, len(indexBases))
	for i, ib := range indexBases {
		value := ib.level * (1 + (rand.Float64()-0.5)*0.016)
		changePercent := (rand.Float64() - 0.5) * 2.4
		out[i] = models.MarketIndex{
			Symbol:        ib.symbol,
			Name:          ib.name,
			Value:         round2(value),
			Change:        round2(value * changePercent / 100),
			ChangePercent: round2(changePercent),
		}
	}
	return out
}

// Trending samples n registry companies with perturbed prices.
func Trending(n int) []models.TrendingStock {
	all := symbols.All()
	if n <= 0 || n > len(all) {
		n = len(all)
	}
	order := rand.Perm(len(all))
	out := make([]models.TrendingStock, 0, n)
	for i := 0; i < n; i++ {
		c := all[order[i]]
		out = append(out, models.TrendingStock{
			Symbol:        c.Symbol,
			Name:          c.Name,
			Price:         round2(c.BasePrice * (1 + (rand.Float64()-0.5)*0.06)),
			ChangePercent: round2((rand.Float64() - 0.5) * 6),
			Currency:      symbols.Currency(c.Symbol),
		})
	}
	return out
}

// Search scans the registry for matching companies.
func Search(query string) []models.SearchResult {
	hits := symbols.Search(query)
	out := make([]models.SearchResult, 0, len(hits))
	for _, c := range hits {
		out = append(out, models.SearchResult{
			Symbol:   c.Symbol,
			Name:     c.Name,
			Exchange: c.Exchange,
			Sector:   c.Sector,
		})
	}
	return out
}
