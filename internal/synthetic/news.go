package synthetic

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mkhatkar/stockmitra/internal/models"
	"github.com/mkhatkar/stockmitra/internal/symbols"
)

var headlineTemplates = []struct {
	title   string
	summary string
}{
	{"%s reports quarterly results ahead of street estimates", "The company beat consensus revenue and profit estimates for the quarter, driven by strong operating performance across its core segments."},
	{"Analysts revise price targets for %s after investor day", "Brokerages updated their models following management commentary on growth plans, margins and capital allocation."},
	{"%s announces expansion into new markets", "The board cleared an investment plan aimed at widening the company's geographic footprint over the next several quarters."},
	{"Institutional investors raise stake in %s", "Exchange filings show domestic funds and foreign portfolio investors added to their holdings during the latest quarter."},
	{"%s board approves capital expenditure programme", "The programme focuses on capacity addition and technology upgrades, funded largely through internal accruals."},
	{"%s shares in focus ahead of earnings announcement", "Traders expect elevated volatility as the company heads into its scheduled results announcement later this week."},
}

var newsSources = []string{"Market Wire", "Business Standard", "Economic Times", "Reuters", "Moneycontrol", "Mint"}

// News generates n recent-looking headlines for a symbol.
func News(symbol string, n int) []models.NewsItem {
	symbol = symbols.Normalize(symbol)
	if n <= 0 {
		n = 5
	}
	if n > len(headlineTemplates) {
		n = len(headlineTemplates)
	}
	name := displayName(symbol)

	order := rand.Perm(len(headlineTemplates))
	items := make([]models.NewsItem, 0, n)
	now := time.Now()
	for i := 0; i < n; i++ {
		tpl := headlineTemplates[order[i]]
		items = append(items, models.NewsItem{
			Title:       fmt.Sprintf(tpl.title, name),
			Summary:     tpl.summary,
			Source:      newsSources[rand.Intn(len(newsSources))],
			PublishedAt: now.Add(-time.Duration(2+i*7) * time.Hour),
			Symbol:      symbol,
		})
	}
	return items
}
