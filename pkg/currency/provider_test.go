package currency_test

import (
	"testing"

	"github.com/amirasaad/paycore/pkg/currency"
	"github.com/stretchr/testify/assert"
)

func TestValidateForProvider(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		provider    string
		wantValid   bool
		wantMessage string
	}{
		{name: "stripe usd", code: "USD", provider: "stripe", wantValid: true},
		{name: "case insensitive", code: "ngn", provider: "Paystack", wantValid: true},
		{name: "flutterwave rwf", code: "RWF", provider: "flutterwave", wantValid: true},
		{
			name:        "unsupported currency",
			code:        "EUR",
			provider:    "paystack",
			wantMessage: "Currency EUR is not supported by paystack. Supported currencies: GHS, KES, NGN, USD, ZAR",
		},
		{
			name:        "unknown provider",
			code:        "USD",
			provider:    "acme",
			wantMessage: "Unknown payment provider: acme. Supported providers: flutterwave, paystack, stripe, wise",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := currency.ValidateForProvider(tt.code, tt.provider)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestSupportedCurrencies_ReturnsCopy(t *testing.T) {
	codes := currency.SupportedCurrencies("stripe")
	assert.Contains(t, codes, "USD")
	codes[0] = "XXX"
	assert.NotContains(t, currency.SupportedCurrencies("stripe"), "XXX")
	assert.Nil(t, currency.SupportedCurrencies("acme"))
}

func TestProviders(t *testing.T) {
	assert.Equal(t,
		[]currency.Provider{currency.Flutterwave, currency.Paystack, currency.Stripe, currency.Wise},
		currency.Providers(),
	)
}
