// Package bankdetails serves bank detail validation over HTTP.
package bankdetails

import (
	"strings"

	"github.com/amirasaad/paycore/pkg/app"
	"github.com/amirasaad/paycore/pkg/bankdetails"
	"github.com/amirasaad/paycore/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// UnsupportedCountryLabel is the metric label for codes Validate rejects.
const UnsupportedCountryLabel = "unsupported"

// Routes registers the bank detail endpoints. metrics may be nil.
func Routes(router fiber.Router, metrics app.Metrics) {
	group := router.Group("/api/bank-details")
	group.Post("/validate", Validate(metrics))
	group.Get("/countries", ListCountries())
	group.Get("/countries/:country/fields", RequiredFields())
}

// Validate checks the posted details and answers with every problem found.
// Invalid details are still a 200: the validation itself succeeded.
func Validate(metrics app.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[bankdetails.BankDetails](c)
		if err != nil {
			return nil // response already written
		}
		result := bankdetails.Validate(*input)
		if metrics != nil {
			metrics.ObserveValidation(countryLabel(input.CountryCode), result.Valid)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank details validated", result)
	}
}

// countryLabel keeps the metric label set closed: unknown codes share one
// series.
func countryLabel(code string) string {
	if c, ok := bankdetails.ParseCountry(code); ok {
		return string(c)
	}
	return UnsupportedCountryLabel
}

// ListCountries returns the supported country codes.
func ListCountries() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Supported countries fetched successfully",
			bankdetails.SupportedCountries())
	}
}

// RequiredFields returns the fields a form must collect for a country.
func RequiredFields() fiber.Handler {
	return func(c *fiber.Ctx) error {
		country := strings.ToUpper(c.Params("country"))
		fields := bankdetails.RequiredFields(country)
		if fields == nil {
			return common.ProblemDetailsJSON(c, "Country not supported", nil,
				"Bank validation not supported for country: "+country, fiber.StatusNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Required fields fetched successfully",
			FieldsResponse{Country: country, Fields: fields})
	}
}
