// Package payout serves payout submission over HTTP.
package payout

import (
	"errors"

	"github.com/amirasaad/paycore/infra/provider"
	"github.com/amirasaad/paycore/pkg/paymenterror"
	"github.com/amirasaad/paycore/pkg/provider/payment"
	"github.com/amirasaad/paycore/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the payout endpoint.
func Routes(router fiber.Router, payout payment.Payout) {
	router.Post("/api/payouts", SendPayout(payout))
}

// SendPayout submits a payout. Requests refused locally answer 422 with the
// reasons; provider failures answer with the classified status and message.
func SendPayout(payout payment.Payout) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[payment.PayoutRequest](c)
		if err != nil {
			return nil // response already written
		}

		resp, err := payout.SendPayout(c.UserContext(), input)
		if err != nil {
			var pe *paymenterror.PaymentError
			if errors.As(err, &pe) {
				return common.PaymentErrorJSON(c, pe)
			}
			var ve *provider.ValidationError
			if errors.As(err, &ve) {
				return common.ProblemDetailsJSON(c, "Payout rejected", err)
			}
			return common.ProblemDetailsJSON(c, "Failed to send payout", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Payout accepted", resp)
	}
}
