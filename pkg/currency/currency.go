// Package currency holds the static currency metadata and the payment
// provider currency table.
//
// Everything here is read-only package data built once at init; lookups are
// safe for concurrent use and nothing in the package mutates the tables.
package currency

import (
	"sort"
	"strings"
)

const (
	// DefaultCurrency is the fallback currency code (USD)
	DefaultCurrency = "USD"
	// DefaultDecimals is the default number of decimal places for currencies
	DefaultDecimals = 2
)

// CurrencyMeta holds currency-specific metadata
type CurrencyMeta struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

var currencies = map[string]CurrencyMeta{
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$", Decimals: 2},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€", Decimals: 2},
	"GBP": {Code: "GBP", Name: "British Pound", Symbol: "£", Decimals: 2},
	"CAD": {Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Decimals: 2},
	"AUD": {Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Decimals: 2},
	"CHF": {Code: "CHF", Name: "Swiss Franc", Symbol: "CHF ", Decimals: 2},
	"SEK": {Code: "SEK", Name: "Swedish Krona", Symbol: "kr ", Decimals: 2},
	"NOK": {Code: "NOK", Name: "Norwegian Krone", Symbol: "kr ", Decimals: 2},
	"DKK": {Code: "DKK", Name: "Danish Krone", Symbol: "kr ", Decimals: 2},
	"NGN": {Code: "NGN", Name: "Nigerian Naira", Symbol: "₦", Decimals: 2},
	"GHS": {Code: "GHS", Name: "Ghanaian Cedi", Symbol: "GH₵", Decimals: 2},
	"KES": {Code: "KES", Name: "Kenyan Shilling", Symbol: "KSh ", Decimals: 2},
	"ZAR": {Code: "ZAR", Name: "South African Rand", Symbol: "R ", Decimals: 2},
	"EGP": {Code: "EGP", Name: "Egyptian Pound", Symbol: "E£", Decimals: 2},
	"RWF": {Code: "RWF", Name: "Rwandan Franc", Symbol: "FRw ", Decimals: 0},
	"UGX": {Code: "UGX", Name: "Ugandan Shilling", Symbol: "USh ", Decimals: 0},
	"TZS": {Code: "TZS", Name: "Tanzanian Shilling", Symbol: "TSh ", Decimals: 2},
	"XOF": {Code: "XOF", Name: "West African CFA Franc", Symbol: "CFA ", Decimals: 0},
	"XAF": {Code: "XAF", Name: "Central African CFA Franc", Symbol: "FCFA ", Decimals: 0},
	"JPY": {Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Decimals: 0},
	"KWD": {Code: "KWD", Name: "Kuwaiti Dinar", Symbol: "KD ", Decimals: 3},
	"INR": {Code: "INR", Name: "Indian Rupee", Symbol: "₹", Decimals: 2},
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Get returns currency metadata for the given code.
func Get(code string) (CurrencyMeta, bool) {
	meta, ok := currencies[normalize(code)]
	return meta, ok
}

// IsKnown reports whether code is in the metadata table.
func IsKnown(code string) bool {
	_, ok := currencies[normalize(code)]
	return ok
}

// Symbol returns the display prefix for code. Unknown codes fall back to
// "<CODE> " so formatted amounts stay unambiguous.
func Symbol(code string) string {
	c := normalize(code)
	if meta, ok := currencies[c]; ok {
		return meta.Symbol
	}
	return c + " "
}

// Decimals returns the number of minor-unit digits for code, defaulting to
// DefaultDecimals for unknown codes.
func Decimals(code string) int {
	if meta, ok := currencies[normalize(code)]; ok {
		return meta.Decimals
	}
	return DefaultDecimals
}

// ListSupported returns all known currency codes, sorted.
func ListSupported() []string {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
