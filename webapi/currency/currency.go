// Package currency serves currency metadata and provider compatibility.
package currency

import (
	"strings"

	"github.com/amirasaad/paycore/pkg/currency"
	"github.com/amirasaad/paycore/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// ProviderResponse lists what a provider can pay out in.
type ProviderResponse struct {
	Provider   currency.Provider `json:"provider"`
	Currencies []string          `json:"currencies"`
}

// Routes registers HTTP routes for currency-related operations.
func Routes(router fiber.Router) {
	currencyGroup := router.Group("/api/currencies")
	currencyGroup.Get("/", ListCurrencies())
	currencyGroup.Get("/:code", GetCurrency())

	providerGroup := router.Group("/api/providers")
	providerGroup.Get("/", ListProviders())
	providerGroup.Get("/:provider/currencies/:currency", CheckCompatibility())
}

// ListCurrencies returns metadata for every known currency.
func ListCurrencies() fiber.Handler {
	return func(c *fiber.Ctx) error {
		codes := currency.ListSupported()
		metas := make([]currency.CurrencyMeta, 0, len(codes))
		for _, code := range codes {
			meta, _ := currency.Get(code)
			metas = append(metas, meta)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", metas)
	}
}

// GetCurrency returns currency information by code
func GetCurrency() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.ToUpper(c.Params("code"))
		meta, ok := currency.Get(code)
		if !ok {
			return common.ProblemDetailsJSON(c, "Currency not found", nil,
				"Unknown currency code: "+code, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched successfully", meta)
	}
}

// ListProviders returns every provider with its payout currencies.
func ListProviders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		providers := currency.Providers()
		out := make([]ProviderResponse, 0, len(providers))
		for _, p := range providers {
			out = append(out, ProviderResponse{
				Provider:   p,
				Currencies: currency.SupportedCurrencies(string(p)),
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Providers fetched successfully", out)
	}
}

// CheckCompatibility reports whether a provider supports a currency.
// An unsupported pair is a successful answer with valid=false.
func CheckCompatibility() fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := currency.ValidateForProvider(c.Params("currency"), c.Params("provider"))
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Compatibility checked", result)
	}
}
