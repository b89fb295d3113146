// Package core provides the ledger domain types together with the fixed
// currency and category tables.
//
// Both tables are total lookups: an unknown currency code resolves to
// USD and an unknown category key resolves to "other", so formatting
// and aggregation never fail on stale persisted references.
package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PositionBefore SymbolPosition = "before"
	PositionAfter  SymbolPosition = "after"

	// DefaultCurrencyCode is the fallback for unknown or absent codes.
	DefaultCurrencyCode = "USD"
)

type (
	// SymbolPosition places the currency symbol relative to the digits.
	SymbolPosition string

	// Currency describes how amounts of one currency are rendered.
	Currency struct {
		Code     string
		Symbol   string
		Position SymbolPosition
		Decimals int32
	}
)

var currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Position: PositionBefore, Decimals: 2},
	"INR": {Code: "INR", Symbol: "₹", Position: PositionBefore, Decimals: 2},
	"EUR": {Code: "EUR", Symbol: "€", Position: PositionBefore, Decimals: 2},
	"GBP": {Code: "GBP", Symbol: "£", Position: PositionBefore, Decimals: 2},
	"JPY": {Code: "JPY", Symbol: "¥", Position: PositionBefore, Decimals: 0},
	"CNY": {Code: "CNY", Symbol: "¥", Position: PositionBefore, Decimals: 2},
	"AUD": {Code: "AUD", Symbol: "A$", Position: PositionBefore, Decimals: 2},
	"CAD": {Code: "CAD", Symbol: "C$", Position: PositionBefore, Decimals: 2},
	"CHF": {Code: "CHF", Symbol: "Fr", Position: PositionBefore, Decimals: 2},
	"AED": {Code: "AED", Symbol: "د.إ", Position: PositionBefore, Decimals: 2},
	"SAR": {Code: "SAR", Symbol: "﷼", Position: PositionBefore, Decimals: 2},
	"PKR": {Code: "PKR", Symbol: "₨", Position: PositionBefore, Decimals: 2},
	"BRL": {Code: "BRL", Symbol: "R$", Position: PositionBefore, Decimals: 2},
	"ZAR": {Code: "ZAR", Symbol: "R", Position: PositionBefore, Decimals: 2},
	"RUB": {Code: "RUB", Symbol: "₽", Position: PositionBefore, Decimals: 2},
	"KRW": {Code: "KRW", Symbol: "₩", Position: PositionBefore, Decimals: 0},
	"MXN": {Code: "MXN", Symbol: "$", Position: PositionBefore, Decimals: 2},
	"SGD": {Code: "SGD", Symbol: "S$", Position: PositionBefore, Decimals: 2},
	"NZD": {Code: "NZD", Symbol: "NZ$", Position: PositionBefore, Decimals: 2},
	"HKD": {Code: "HKD", Symbol: "HK$", Position: PositionBefore, Decimals: 2},
}

// LookupCurrency resolves a currency code, falling back to USD for
// unknown or empty codes.
func LookupCurrency(code string) Currency {
	if c, ok := currencies[code]; ok {
		return c
	}
	return currencies[DefaultCurrencyCode]
}

// ValidCurrency reports whether code is a key in the currency table.
func ValidCurrency(code string) bool {
	_, ok := currencies[code]
	return ok
}

// CurrencyCodes returns all known codes in sorted order.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Format renders the magnitude of amount with the currency's decimal
// count, thousands separators, and symbol placement. The sign is the
// caller's concern: callers prepend "+"/"-" per their own row or card
// conventions.
func (c Currency) Format(amount decimal.Decimal) string {
	digits := groupThousands(amount.Abs().StringFixed(c.Decimals))
	if c.Position == PositionAfter {
		return digits + " " + c.Symbol
	}
	return c.Symbol + digits
}

// groupThousands inserts a comma every three digits leftward from the
// decimal point.
func groupThousands(s string) string {
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return intPart + fracPart
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + fracPart
}
