package currency

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Provider identifies a payment provider by its lower-case name.
type Provider string

// Known payment providers.
const (
	Stripe      Provider = "stripe"
	Paystack    Provider = "paystack"
	Flutterwave Provider = "flutterwave"
	Wise        Provider = "wise"
)

// providerCurrencies lists, per provider, the ISO 4217 codes it accepts.
// Each list is kept sorted so messages enumerate currencies in a stable order.
var providerCurrencies = map[Provider][]string{
	Stripe:      {"AUD", "CAD", "CHF", "DKK", "EUR", "GBP", "JPY", "NOK", "SEK", "USD"},
	Paystack:    {"GHS", "KES", "NGN", "USD", "ZAR"},
	Flutterwave: {"EGP", "EUR", "GBP", "GHS", "KES", "NGN", "RWF", "TZS", "UGX", "USD", "XAF", "XOF", "ZAR"},
	Wise:        {"AUD", "CAD", "CHF", "DKK", "EUR", "GBP", "NOK", "SEK", "USD"},
}

// Compatibility is the outcome of a currency/provider check.
type Compatibility struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Providers returns the known provider names, sorted.
func Providers() []Provider {
	out := make([]Provider, 0, len(providerCurrencies))
	for p := range providerCurrencies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SupportedCurrencies returns a copy of the currencies provider accepts,
// or nil for an unknown provider.
func SupportedCurrencies(provider string) []string {
	codes, ok := providerCurrencies[Provider(strings.ToLower(strings.TrimSpace(provider)))]
	if !ok {
		return nil
	}
	return slices.Clone(codes)
}

// ValidateForProvider checks that code can be charged or paid out through
// provider before any call to that provider is attempted.
func ValidateForProvider(code, provider string) Compatibility {
	p := Provider(strings.ToLower(strings.TrimSpace(provider)))
	supported, ok := providerCurrencies[p]
	if !ok {
		names := make([]string, 0, len(providerCurrencies))
		for _, known := range Providers() {
			names = append(names, string(known))
		}
		return Compatibility{
			Message: fmt.Sprintf(
				"Unknown payment provider: %s. Supported providers: %s",
				provider, strings.Join(names, ", "),
			),
		}
	}

	c := normalize(code)
	if _, found := slices.BinarySearch(supported, c); found {
		return Compatibility{Valid: true}
	}
	return Compatibility{
		Message: fmt.Sprintf(
			"Currency %s is not supported by %s. Supported currencies: %s",
			c, p, strings.Join(supported, ", "),
		),
	}
}
