// Package webapi provides the HTTP surface of the payment service.
// It is organized into sub-packages per concern:
// - bankdetails: bank detail validation and required fields
// - money: amount arithmetic and formatting
// - currency: currency metadata and provider compatibility
// - payout: payout submission
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/paycore/pkg/app"
	"github.com/amirasaad/paycore/pkg/config"
	bankdetailsweb "github.com/amirasaad/paycore/webapi/bankdetails"
	"github.com/amirasaad/paycore/webapi/common"
	currencyweb "github.com/amirasaad/paycore/webapi/currency"
	moneyweb "github.com/amirasaad/paycore/webapi/money"
	payoutweb "github.com/amirasaad/paycore/webapi/payout"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	if rl := rateLimit(app); rl != nil && rl.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:        rl.MaxRequests,
			Expiration: rl.Window,
			KeyGenerator: func(c *fiber.Ctx) string {
				if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
					first, _, _ := strings.Cut(forwardedFor, ",")
					return strings.TrimSpace(first)
				}
				if realIP := c.Get("X-Real-IP"); realIP != "" {
					return realIP
				}
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Payment API is running! 🚀")
	})

	if app.Deps.Metrics != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(app.Deps.Metrics.Handler()))
	}

	bankdetailsweb.Routes(fiberApp, app.Deps.Metrics)
	moneyweb.Routes(fiberApp)
	currencyweb.Routes(fiberApp)
	if app.Deps.Payout != nil {
		payoutweb.Routes(fiberApp, app.Deps.Payout)
	}
	return fiberApp
}

func rateLimit(a *app.App) *config.RateLimit {
	if a.Config == nil {
		return nil
	}
	return a.Config.RateLimit
}
