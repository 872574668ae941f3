package synthetic

import (
	"math/rand"
	"time"

	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// Chart walks a random daily series backward-dated to end today. Each
// call picks one trend direction and magnitude for the whole series,
// then adds daily noise on top. The series is always chronological, of
// the full requested length, and never touches zero.
func Chart(symbol string, rng models.Range) *models.ChartSeries {
	symbol = symbols.Normalize(symbol)
	n := rng.Points()
	base := basePrice(symbol)
	floor := base * 0.05

	// Per-call drift: up to ±0.4% per day, fixed for the series.
	drift := (rand.Float64()*2 - 1) * 0.004

	points := make([]models.ChartPoint, n)
	start := time.Now().AddDate(0, 0, -(n - 1))
	price := base * (0.9 + rand.Float64()*0.2)
	for i := 0; i < n; i++ {
		noise := (rand.Float64() - 0.5) * 0.03 * price
		price = price*(1+drift) + noise
		if price < floor {
			price = floor
		}
		points[i] = models.ChartPoint{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Value: round2(price),
		}
	}

	return &models.ChartSeries{
		Symbol: symbol,
		Range:  rng,
		Points: points,
		Source: models.SourceSynthetic,
	}
}
