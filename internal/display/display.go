// Package display renders market data for the terminal. Render
// functions return styled strings; the caller decides where to print
// them.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkhatkar/stockmitra/internal/format"
	"github.com/mkhatkar/stockmitra/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C3AED")).
			Padding(0, 3)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(76)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	priceStyle = lipgloss.NewStyle().
			Bold(true)

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	flatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))
)

// Banner renders the interactive-mode welcome header.
func Banner() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		bannerStyle.Render("📈  S T O C K M I T R A"),
		taglineStyle.Render("Indian and US market dashboard with AI-assisted insight"),
	)
}

// Quote renders a full quote card.
func Quote(q *models.Quote) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", titleStyle.Render(q.Symbol), q.Name))
	b.WriteString(fmt.Sprintf("%s  %s (%s)\n\n",
		priceStyle.Render(format.Currency(q.Price, q.Symbol)),
		changeStyle(q.Change).Render(format.Change(q.Change, q.Symbol)),
		changeStyle(q.ChangePercent).Render(format.Percent(q.ChangePercent)),
	))

	rows := [][2]string{
		{"Open", format.Currency(q.Open, q.Symbol)},
		{"High", format.Currency(q.High, q.Symbol)},
		{"Low", format.Currency(q.Low, q.Symbol)},
		{"Prev Close", format.Currency(q.PreviousClose, q.Symbol)},
		{"Volume", format.Volume(q.Volume, q.Symbol)},
		{"52W High", format.Currency(q.FiftyTwoWeekHigh, q.Symbol)},
		{"52W Low", format.Currency(q.FiftyTwoWeekLow, q.Symbol)},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", row[0])), row[1]))
	}

	b.WriteString("\n" + sourceNote(q.Source, q.FetchedAt.Format("15:04:05")))
	return panelStyle.Render(b.String())
}

// Chart renders a price series as a sparkline panel.
func Chart(series *models.ChartSeries) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", titleStyle.Render(series.Symbol), series.Range))

	if len(series.Points) == 0 {
		b.WriteString("(no chart data)")
		return panelStyle.Render(b.String())
	}

	first := series.Points[0]
	last := series.Points[len(series.Points)-1]
	b.WriteString(sparkline(series.Points, 64) + "\n\n")

	changePct := 0.0
	if first.Value != 0 {
		changePct = (last.Value - first.Value) / first.Value * 100
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s\n",
		labelStyle.Render(first.Date),
		format.Currency(first.Value, series.Symbol),
		labelStyle.Render(last.Date),
		format.Currency(last.Value, series.Symbol),
		changeStyle(changePct).Render(format.Percent(changePct)),
	))

	b.WriteString("\n" + sourceNote(series.Source, ""))
	return panelStyle.Render(b.String())
}

// Overview renders the fundamentals panel.
func Overview(ov *models.CompanyOverview) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", titleStyle.Render(ov.Symbol), ov.Name))
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s / %s", ov.Sector, ov.Industry)) + "\n\n")
	b.WriteString(wrap(ov.Description, "", 70) + "\n\n")

	rows := [][2]string{
		{"Market Cap", ov.MarketCapDisplay},
		{"P/E Ratio", ratio(ov.PERatio)},
		{"EPS", ratio(ov.EPS)},
		{"Dividend Yield", yield(ov.DividendYield)},
		{"Analyst Target", format.Currency(ov.AnalystTarget, ov.Symbol)},
		{"52W High", format.Currency(ov.FiftyTwoWeekHigh, ov.Symbol)},
		{"52W Low", format.Currency(ov.FiftyTwoWeekLow, ov.Symbol)},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", row[0])), row[1]))
	}

	b.WriteString("\n" + sourceNote(ov.Source, ""))
	return panelStyle.Render(b.String())
}

// News renders headlines as a numbered list.
func News(items []models.NewsItem) string {
	if len(items) == 0 {
		return labelStyle.Render("No recent headlines.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📰 Latest News") + "\n\n")
	for i, item := range items {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, priceStyle.Render(item.Title)))
		if item.Summary != "" {
			b.WriteString(wrap(item.Summary, "   ", 70) + "\n")
		}
		meta := fmt.Sprintf("   %s  %s", item.Source, item.PublishedAt.Format("2006-01-02 15:04"))
		b.WriteString(labelStyle.Render(meta) + "\n")
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Recommendation renders the advisory verdict panel.
func Recommendation(rec *models.Recommendation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s %s\n\n",
		titleStyle.Render(rec.Symbol),
		actionGlyph(rec.Action),
		actionStyle(rec.Action).Render(strings.ToUpper(rec.Action)),
	))
	b.WriteString(wrap(rec.Summary, "", 70) + "\n\n")

	b.WriteString(fmt.Sprintf("%s %.0f%%\n", labelStyle.Render(fmt.Sprintf("%-12s", "Confidence")), rec.Confidence*100))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", "Risk")), rec.RiskLevel))
	b.WriteString("\n")

	for _, reason := range rec.Reasons {
		b.WriteString(wrap("• "+reason, "", 70) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Short term:"), rec.ShortTermOutlook))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Long term: "), rec.LongTermOutlook))

	b.WriteString("\n" + sourceNote(rec.Source, rec.GeneratedAt.Format("15:04:05")))
	b.WriteString("\n" + labelStyle.Render("Not financial advice. Always do your own research."))
	return panelStyle.Render(b.String())
}

// Indices renders benchmark levels as a table.
func Indices(indices []models.MarketIndex) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🏛  Market Indices") + "\n\n")
	for _, ix := range indices {
		b.WriteString(fmt.Sprintf("%-14s %12s  %s\n",
			ix.Name,
			format.Currency(ix.Value, ""),
			changeStyle(ix.ChangePercent).Render(format.Percent(ix.ChangePercent)),
		))
	}
	return b.String()
}

// Trending renders the most-watched strip.
func Trending(stocks []models.TrendingStock) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🔥 Trending") + "\n\n")
	for _, st := range stocks {
		b.WriteString(fmt.Sprintf("%-16s %-26s %14s  %s\n",
			st.Symbol,
			truncate(st.Name, 26),
			format.Currency(st.Price, st.Symbol),
			changeStyle(st.ChangePercent).Render(format.Percent(st.ChangePercent)),
		))
	}
	return b.String()
}

// SearchResults renders symbol lookup hits.
func SearchResults(results []models.SearchResult) string {
	if len(results) == 0 {
		return labelStyle.Render("No matches.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🔍 Matches") + "\n\n")
	for _, r := range results {
		sector := r.Sector
		if sector == "" {
			sector = "n/a"
		}
		b.WriteString(fmt.Sprintf("%-16s %-32s %-6s %s\n",
			r.Symbol, truncate(r.Name, 32), r.Exchange, labelStyle.Render(sector)))
	}
	return b.String()
}

// Watchlist renders live rows for saved symbols.
func Watchlist(quotes []*models.Quote) string {
	if len(quotes) == 0 {
		return labelStyle.Render("Watchlist is empty. Add symbols with: stockmitra watchlist add SYMBOL")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("⭐ Watchlist") + "\n\n")
	for _, q := range quotes {
		b.WriteString(fmt.Sprintf("%-16s %-26s %14s  %s\n",
			q.Symbol,
			truncate(q.Name, 26),
			format.Currency(q.Price, q.Symbol),
			changeStyle(q.ChangePercent).Render(format.Percent(q.ChangePercent)),
		))
	}
	return b.String()
}

// Error prints a styled error message.
func Error(err error) {
	fmt.Println(errorStyle.Render("❌ " + err.Error()))
}

// Success prints a styled confirmation.
func Success(message string) {
	fmt.Println(successStyle.Render("✅ " + message))
}

// Info prints a styled notice.
func Info(message string) {
	fmt.Println(infoStyle.Render("ℹ️  " + message))
}

func changeStyle(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return upStyle
	case v < 0:
		return downStyle
	default:
		return flatStyle
	}
}

func actionStyle(action string) lipgloss.Style {
	switch action {
	case models.ActionBuy:
		return upStyle
	case models.ActionSell:
		return downStyle
	default:
		return flatStyle
	}
}

func actionGlyph(action string) string {
	switch action {
	case models.ActionBuy:
		return "🟢"
	case models.ActionSell:
		return "🔴"
	default:
		return "🟡"
	}
}

func sourceNote(source, at string) string {
	note := "source: " + source
	if source == models.SourceSynthetic || source == models.SourceFallback {
		note += " (simulated)"
	}
	if at != "" {
		note += "  " + at
	}
	return sourceStyle.Render(note)
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// sparkline downsamples a series into width buckets of block glyphs.
func sparkline(points []models.ChartPoint, width int) string {
	values := resample(points, width)
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return strings.Repeat(string(sparkGlyphs[3]), len(values))
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / (hi - lo) * float64(len(sparkGlyphs)-1))
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}

// resample averages points into at most width buckets.
func resample(points []models.ChartPoint, width int) []float64 {
	if width <= 0 || len(points) <= width {
		out := make([]float64, len(points))
		for i, p := range points {
			out[i] = p.Value
		}
		return out
	}

	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(points) / width
		end := (i + 1) * len(points) / width
		if end <= start {
			end = start + 1
		}
		sum := 0.0
		for _, p := range points[start:end] {
			sum += p.Value
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// wrap word-wraps text to width, prefixing each line with indent.
func wrap(text, indent string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent
	}

	var b strings.Builder
	line := indent + words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			b.WriteString(line + "\n")
			line = indent + word
		} else {
			line += " " + word
		}
	}
	b.WriteString(line)
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func ratio(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

func yield(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v)
}
