// Package common holds the response envelopes and request helpers shared by
// the HTTP handlers.
package common

import (
	"errors"
	"reflect"
	"strings"

	"github.com/amirasaad/paycore/infra/provider"
	"github.com/amirasaad/paycore/pkg/money"
	"github.com/amirasaad/paycore/pkg/paymenterror"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SuccessResponseJSON writes data wrapped in a Response.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// ProblemDetailsJSON renders err as problem details. The status is derived
// from err; extra args override it (an int) or the detail text (a string).
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	code := ErrorToStatusCode(err)
	var detail any
	if err != nil {
		detail = err.Error()
	}
	var ve *provider.ValidationError
	if errors.As(err, &ve) {
		detail = ve.Errors
	}
	for _, a := range args {
		switch v := a.(type) {
		case int:
			code = v
		case string:
			detail = v
		}
	}
	return ErrorResponseJSON(c, code, title, detail)
}

// PaymentErrorJSON writes a classified provider failure using its own status.
// Only the user-facing fields are serialized.
func PaymentErrorJSON(c *fiber.Ctx, pe *paymenterror.PaymentError) error {
	return c.Status(pe.StatusCode).JSON(pe)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	var pe *paymenterror.PaymentError
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &pe):
		return pe.StatusCode
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, provider.ErrInvalidBankDetails),
		errors.Is(err, provider.ErrInvalidAmount),
		errors.Is(err, provider.ErrUnsupportedCurrency):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, money.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, money.ErrAmountExceedsMaxSafeInt):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		_ = ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", validationMessages(err))
		return nil, err
	}
	return &input, nil
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Field() + " failed on " + fe.Tag()
		if p := fe.Param(); p != "" {
			msg += "=" + p
		}
		out = append(out, strings.TrimSpace(msg))
	}
	return out
}
