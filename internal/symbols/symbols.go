// Package symbols handles market-qualified stock symbols. A qualified
// symbol carries an exchange prefix ("NSE:RELIANCE"); bare symbols
// ("AAPL") are treated as US listings.
package symbols

import (
	"fmt"
	"regexp"
	"strings"
)

// Indian exchange prefixes.
const (
	ExchangeNSE = "NSE"
	ExchangeBSE = "BSE"
)

var basePattern = regexp.MustCompile(`^[A-Z0-9.\-&]{1,12}$`)

// Normalize trims whitespace and uppercases a symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Split separates the exchange qualifier from the base symbol.
// "NSE:RELIANCE" yields ("NSE", "RELIANCE"); "AAPL" yields ("", "AAPL").
func Split(symbol string) (exchange, base string) {
	s := Normalize(symbol)
	if i := strings.Index(s, ":"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// Validate checks that a symbol is well-formed after normalization.
func Validate(symbol string) error {
	exchange, base := Split(symbol)
	if base == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if exchange != "" && exchange != ExchangeNSE && exchange != ExchangeBSE {
		return fmt.Errorf("unknown exchange prefix %q", exchange)
	}
	if !basePattern.MatchString(base) {
		return fmt.Errorf("invalid symbol %q", symbol)
	}
	return nil
}

// IsIndian reports whether the symbol carries an Indian exchange prefix.
func IsIndian(symbol string) bool {
	exchange, _ := Split(symbol)
	return exchange == ExchangeNSE || exchange == ExchangeBSE
}

// Currency returns the ISO currency code implied by the symbol's listing.
func Currency(symbol string) string {
	if IsIndian(symbol) {
		return "INR"
	}
	return "USD"
}

// ToYahoo converts a qualified symbol to Yahoo Finance form:
// NSE:RELIANCE -> RELIANCE.NS, BSE:TATASTEEL -> TATASTEEL.BO.
func ToYahoo(symbol string) string {
	exchange, base := Split(symbol)
	switch exchange {
	case ExchangeNSE:
		return base + ".NS"
	case ExchangeBSE:
		return base + ".BO"
	default:
		return base
	}
}

// ToAlphaVantage converts a qualified symbol to Alpha Vantage form.
// Indian listings use the .BSE suffix regardless of prefix; Alpha
// Vantage does not serve NSE-suffixed symbols on the free tier.
func ToAlphaVantage(symbol string) string {
	_, base := Split(symbol)
	if IsIndian(symbol) {
		return base + ".BSE"
	}
	return base
}

// ToLongport converts a symbol to the brokerage's region-suffixed form.
// Indian listings are outside the brokerage's coverage; ok is false for
// symbols it cannot serve.
func ToLongport(symbol string) (converted string, ok bool) {
	exchange, base := Split(symbol)
	if exchange != "" {
		return "", false
	}
	if strings.Contains(base, ".") {
		return base, true
	}
	return base + ".US", true
}
