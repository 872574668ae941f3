// Package format renders prices, volumes and market caps for display.
// Indian listings use rupee notation with Indian digit grouping; every
// other listing formats as US dollars.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/mkhatkar/stockmitra/internal/symbols"
)

// Currency formats a price in the currency implied by the symbol's
// listing: Indian Rupee when and only when the symbol carries an Indian
// exchange prefix, US Dollar otherwise.
func Currency(value float64, symbol string) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	if symbols.IsIndian(symbol) {
		return sign + "₹" + groupIndian(value)
	}
	return sign + "$" + groupWestern(value)
}

// Percent formats a signed percentage with two decimals.
func Percent(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}

// Change formats a signed price change in the symbol's currency.
func Change(value float64, symbol string) string {
	if value >= 0 {
		return "+" + Currency(value, symbol)
	}
	return Currency(value, symbol)
}

// Volume abbreviates a share count. Indian listings use lakh and crore
// units; others use K/M/B.
func Volume(v int64, symbol string) string {
	f := float64(v)
	if symbols.IsIndian(symbol) {
		switch {
		case f >= 1e7:
			return fmt.Sprintf("%.2f Cr", f/1e7)
		case f >= 1e5:
			return fmt.Sprintf("%.2f L", f/1e5)
		default:
			return groupIndianInt(v)
		}
	}
	switch {
	case f >= 1e9:
		return fmt.Sprintf("%.2fB", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("%.2fM", f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%.2fK", f/1e3)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// MarketCap abbreviates a market capitalization in the symbol's
// currency. Indian caps read in crore (and lakh crore above a trillion
// rupees), US caps in millions/billions/trillions.
func MarketCap(v int64, symbol string) string {
	if v <= 0 {
		return "N/A"
	}
	f := float64(v)
	if symbols.IsIndian(symbol) {
		if f >= 1e12 {
			return fmt.Sprintf("₹%.2f L Cr", f/1e12)
		}
		return "₹" + groupIndian(f/1e7) + " Cr"
	}
	switch {
	case f >= 1e12:
		return fmt.Sprintf("$%.2fT", f/1e12)
	case f >= 1e9:
		return fmt.Sprintf("$%.2fB", f/1e9)
	default:
		return fmt.Sprintf("$%.2fM", f/1e6)
	}
}

// groupWestern renders value with thousands separators and two
// decimals: 1234567.891 -> "1,234,567.89".
func groupWestern(value float64) string {
	whole, frac := splitDecimals(value)
	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)
	return strings.Join(parts, ",") + "." + frac
}

// groupIndian renders value with Indian digit grouping and two
// decimals: 1234567.891 -> "12,34,567.89".
func groupIndian(value float64) string {
	whole, frac := splitDecimals(value)
	return groupIndianDigits(whole) + "." + frac
}

func groupIndianInt(v int64) string {
	return groupIndianDigits(fmt.Sprintf("%d", v))
}

// groupIndianDigits groups an unsigned digit string the Indian way:
// the last three digits stand alone, everything before groups in twos.
func groupIndianDigits(whole string) string {
	if len(whole) <= 3 {
		return whole
	}
	head := whole[:len(whole)-3]
	tail := whole[len(whole)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}

func splitDecimals(value float64) (whole, frac string) {
	rounded := math.Round(value*100) / 100
	s := fmt.Sprintf("%.2f", rounded)
	i := strings.Index(s, ".")
	return s[:i], s[i+1:]
}
