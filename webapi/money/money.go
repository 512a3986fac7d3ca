// Package money serves the money helpers over HTTP.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amirasaad/paycore/pkg/money"
	"github.com/amirasaad/paycore/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the money endpoints.
func Routes(router fiber.Router) {
	group := router.Group("/api/money")
	group.Post("/add", Add())
	group.Post("/subtract", Subtract())
	group.Post("/compare", Compare())
	group.Post("/format", Format())
}

// operand turns a decoded JSON value into the decimal text the money
// package parses. Numbers use their shortest representation.
func operand(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", fmt.Errorf("%w: missing", money.ErrInvalidAmount)
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: expected number or string, got %T", money.ErrInvalidAmount, v)
	}
}

func operands(c *fiber.Ctx) (string, string, bool) {
	input, err := common.BindAndValidate[PairRequest](c)
	if err != nil {
		return "", "", false
	}
	a, err := operand(input.A)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid amount", err)
		return "", "", false
	}
	b, err := operand(input.B)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid amount", err)
		return "", "", false
	}
	return a, b, true
}

// Add returns a + b.
func Add() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, b, ok := operands(c)
		if !ok {
			return nil
		}
		sum, err := money.Add(a, b)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add amounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Amounts added", ResultResponse{Result: sum})
	}
}

// Subtract returns a - b.
func Subtract() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, b, ok := operands(c)
		if !ok {
			return nil
		}
		diff, err := money.Subtract(a, b)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to subtract amounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Amounts subtracted", ResultResponse{Result: diff})
	}
}

// Compare returns -1, 0 or 1.
func Compare() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, b, ok := operands(c)
		if !ok {
			return nil
		}
		cmp, err := money.Compare(a, b)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compare amounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Amounts compared", ResultResponse{Result: cmp})
	}
}

// Format renders an amount for display. Unparsable amounts render as NaN
// rather than failing, matching money.Format.
func Format() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[FormatRequest](c)
		if err != nil {
			return nil // response already written
		}
		amount, err := operand(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err)
		}
		code := money.Code(strings.ToUpper(input.Currency))
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Amount formatted",
			FormatResponse{Formatted: money.Format(amount, code)})
	}
}
