package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencySelectsRupeeOnlyForIndianListings(t *testing.T) {
	tests := []struct {
		value  float64
		symbol string
		want   string
	}{
		{1428.5, "NSE:RELIANCE", "₹1,428.50"},
		{1234567.891, "NSE:TCS", "₹12,34,567.89"},
		{443.85, "BSE:ITC", "₹443.85"},
		{232.8, "AAPL", "$232.80"},
		{1234567.891, "MSFT", "$1,234,567.89"},
		{-52.4, "NSE:WIPRO", "-₹52.40"},
		{-52.4, "TSLA", "-$52.40"},
		{0, "RELIANCE", "$0.00"}, // no prefix, not treated as Indian
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.value, tt.symbol), "Currency(%v, %q)", tt.value, tt.symbol)
	}
}

func TestIndianGrouping(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "₹1.50"},
		{999.99, "₹999.99"},
		{1000, "₹1,000.00"},
		{99999, "₹99,999.00"},
		{100000, "₹1,00,000.00"},
		{10000000, "₹1,00,00,000.00"},
		{123456789.12, "₹12,34,56,789.12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in, "NSE:X"), "value %v", tt.in)
	}
}

func TestPercentAndChange(t *testing.T) {
	assert.Equal(t, "+1.25%", Percent(1.25))
	assert.Equal(t, "-0.50%", Percent(-0.5))
	assert.Equal(t, "+0.00%", Percent(0))

	assert.Equal(t, "+₹12.30", Change(12.3, "NSE:INFY"))
	assert.Equal(t, "-$4.20", Change(-4.2, "NVDA"))
}

func TestVolume(t *testing.T) {
	assert.Equal(t, "1.25 Cr", Volume(12_500_000, "NSE:SBIN"))
	assert.Equal(t, "3.50 L", Volume(350_000, "NSE:SBIN"))
	assert.Equal(t, "4,500", Volume(4500, "NSE:SBIN"))
	assert.Equal(t, "12.50M", Volume(12_500_000, "AAPL"))
	assert.Equal(t, "1.20B", Volume(1_200_000_000, "AAPL"))
	assert.Equal(t, "4.50K", Volume(4500, "AAPL"))
	assert.Equal(t, "850", Volume(850, "AAPL"))
}

func TestMarketCap(t *testing.T) {
	assert.Equal(t, "$3.52T", MarketCap(3_520_000_000_000, "AAPL"))
	assert.Equal(t, "$295.00B", MarketCap(295_000_000_000, "NFLX"))
	assert.Equal(t, "$850.00M", MarketCap(850_000_000, "SOFI"))
	assert.Equal(t, "₹19.33 L Cr", MarketCap(19_330_000_000_000, "NSE:RELIANCE"))
	assert.Equal(t, "₹85,000.00 Cr", MarketCap(850_000_000_000, "NSE:X"))
	assert.Equal(t, "N/A", MarketCap(0, "AAPL"))
}
