// Package paymenterror is the single place where raw provider and internal
// failures are turned into something safe to show a user.
//
// Map logs the full failure through paymentlog, tagged with a fresh
// correlation id, and returns a PaymentError carrying only a fixed user
// message, an HTTP status and that id. The raw message, its stack and any
// provider payload stay in the internal log.
package paymenterror

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/amirasaad/paycore/pkg/paymentlog"
	"github.com/stripe/stripe-go/v82"
)

// PaymentError is the client-facing form of a payment failure.
type PaymentError struct {
	UserMessage   string `json:"userMessage"`
	StatusCode    int    `json:"statusCode"`
	CorrelationID string `json:"correlationId"`
	Provider      string `json:"provider,omitempty"`
}

func (e *PaymentError) Error() string {
	return e.UserMessage
}

// User-facing messages.
const (
	MsgInsufficientFunds   = "Insufficient funds to complete this payment."
	MsgInvalidAccount      = "The recipient account details are invalid. Please verify and try again."
	MsgDuplicate           = "This payment has already been processed."
	MsgRateLimited         = "Too many requests. Please wait a moment and try again."
	MsgServiceUnavailable  = "Payment service is temporarily unavailable. Please try again later."
	MsgProviderUnreachable = "Payment provider is temporarily unreachable. Please try again shortly."
	MsgUnsupportedCurrency = "This currency is not supported for the selected payment method."
	MsgGeneric             = "An error occurred processing your payment. Please try again or contact support."
)

type rule struct {
	match   func(msg string) bool
	status  int
	message string
}

// rules are checked in order and the first match wins. They match broad
// substrings because provider error shapes differ too much for exact codes.
var rules = []rule{
	{containsAny("insufficient", "balance"), http.StatusBadRequest, MsgInsufficientFunds},
	{containsAll("invalid", "account"), http.StatusBadRequest, MsgInvalidAccount},
	{containsAny("duplicate", "idempotent"), http.StatusConflict, MsgDuplicate},
	{containsAny("rate", "limit", "throttl"), http.StatusTooManyRequests, MsgRateLimited},
	{containsAny("authentication", "unauthorized", "api key"), http.StatusServiceUnavailable, MsgServiceUnavailable},
	{
		containsAny("timeout", "econnrefused", "connection refused", "network", "deadline exceeded"),
		http.StatusServiceUnavailable, MsgProviderUnreachable,
	},
	{
		func(msg string) bool {
			return strings.Contains(msg, "currency") && containsAny("not supported", "invalid")(msg)
		},
		http.StatusBadRequest, MsgUnsupportedCurrency,
	},
}

func containsAny(subs ...string) func(string) bool {
	return func(msg string) bool {
		for _, s := range subs {
			if strings.Contains(msg, s) {
				return true
			}
		}
		return false
	}
}

func containsAll(subs ...string) func(string) bool {
	return func(msg string) bool {
		for _, s := range subs {
			if !strings.Contains(msg, s) {
				return false
			}
		}
		return true
	}
}

// Classifier maps errors to PaymentErrors, logging each one.
type Classifier struct {
	logger *paymentlog.Logger
	now    func() time.Time
}

// New returns a Classifier logging through logger.
func New(logger *paymentlog.Logger) *Classifier {
	if logger == nil {
		logger = paymentlog.New(nil)
	}
	return &Classifier{logger: logger, now: time.Now}
}

// Map classifies raw into a PaymentError for provider. The internal error
// log is always written before Map returns.
func (c *Classifier) Map(ctx context.Context, raw error, provider string) *PaymentError {
	text := ""
	if raw != nil {
		text = raw.Error()
	}

	var se *stripe.Error
	if errors.As(raw, &se) {
		text = strings.Join([]string{se.Msg, string(se.Code), string(se.DeclineCode)}, " ")
		if provider == "" {
			provider = "stripe"
		}
	}

	id := c.correlationID()
	data := map[string]any{
		"error":         fmt.Sprint(raw),
		"errorType":     fmt.Sprintf("%T", raw),
		"provider":      provider,
		"correlationId": id,
	}
	if stack := firstStackLine(raw); stack != "" {
		data["stack"] = stack
	}
	c.logger.Error(ctx, "payment_error", data)

	status, message := classify(text)
	return &PaymentError{
		UserMessage:   message,
		StatusCode:    status,
		CorrelationID: id,
		Provider:      provider,
	}
}

func classify(text string) (int, string) {
	msg := strings.ToLower(text)
	for _, r := range rules {
		if r.match(msg) {
			return r.status, r.message
		}
	}
	return http.StatusInternalServerError, MsgGeneric
}

// firstStackLine returns the first line after the message in err's %+v
// rendering, which is where errors that record a stack print their top frame.
func firstStackLine(err error) string {
	if err == nil {
		return ""
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	for _, l := range lines[1:] {
		if s := strings.TrimSpace(l); s != "" {
			return s
		}
	}
	return ""
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// correlationID returns pay_<unix-ms>_<6 chars>. It only links a response to
// log lines, so math/rand is enough.
func (c *Classifier) correlationID() string {
	var suffix [6]byte
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("pay_%d_%s", c.now().UnixMilli(), suffix[:])
}

// Map classifies raw using a Classifier bound to the default slog logger.
func Map(ctx context.Context, raw error, provider string) *PaymentError {
	return New(nil).Map(ctx, raw, provider)
}
