package models

// Range selects how far back a chart series reaches.
type Range string

const (
	Range1W Range = "1W"
	Range1M Range = "1M"
	Range3M Range = "3M"
	Range6M Range = "6M"
	Range1Y Range = "1Y"
)

var rangePoints = map[Range]int{
	Range1W: 7,
	Range1M: 30,
	Range3M: 90,
	Range6M: 180,
	Range1Y: 365,
}

// Points returns the number of daily points the range spans.
func (r Range) Points() int {
	if n, ok := rangePoints[r]; ok {
		return n
	}
	return rangePoints[Range1M]
}

// Valid reports whether r is one of the supported ranges.
func (r Range) Valid() bool {
	_, ok := rangePoints[r]
	return ok
}

// ChartPoint is one daily close on a price chart.
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ChartSeries is a chronologically ordered run of daily closes.
// Series are always non-empty and never contain negative prices.
type ChartSeries struct {
	Symbol string       `json:"symbol"`
	Range  Range        `json:"range"`
	Points []ChartPoint `json:"points"`
	Source string       `json:"source"`
}
