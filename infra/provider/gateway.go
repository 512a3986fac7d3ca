package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/amirasaad/paycore/pkg/bankdetails"
	"github.com/amirasaad/paycore/pkg/config"
	"github.com/amirasaad/paycore/pkg/currency"
	"github.com/amirasaad/paycore/pkg/money"
	"github.com/amirasaad/paycore/pkg/paymenterror"
	"github.com/amirasaad/paycore/pkg/paymentlog"
	"github.com/amirasaad/paycore/pkg/provider/payment"
	"github.com/sony/gobreaker"
)

var (
	// ErrInvalidBankDetails is returned when the destination fails validation.
	ErrInvalidBankDetails = errors.New("invalid bank details")
	// ErrInvalidAmount is returned when the amount is not a payable value.
	ErrInvalidAmount = errors.New("invalid payout amount")
	// ErrUnsupportedCurrency is returned when the provider cannot pay out in
	// the requested currency.
	ErrUnsupportedCurrency = errors.New("unsupported payout currency")
	// ErrCircuitOpen is the cause handed to the classifier while the breaker
	// refuses calls.
	ErrCircuitOpen = errors.New("provider network circuit open")
)

// ValidationError reports why a payout was refused before any provider call.
// It unwraps to one of the Err* sentinels above.
type ValidationError struct {
	Reason error
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// StatusError is a non-2xx answer from the provider.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error carries the status class next to the provider's text so that
// bodies with no usable message still classify by status.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
	if hint := statusHint(e.StatusCode); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}

func statusHint(code int) string {
	switch {
	case code == http.StatusTooManyRequests:
		return "rate limited"
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return "unauthorized"
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return "timeout"
	case code >= http.StatusInternalServerError:
		return "network failure"
	default:
		return ""
	}
}

// Gateway sends payouts to a provider's HTTP API.
type Gateway struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	provider   string
	logger     *paymentlog.Logger
	classifier *paymenterror.Classifier
	breaker    *gobreaker.CircuitBreaker

	breakerCfg    config.Breaker
	onStateChange func(provider string, to gobreaker.State)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient sets the client used for provider calls.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithAPIKey sets the bearer token sent to the provider.
func WithAPIKey(key string) Option {
	return func(g *Gateway) { g.apiKey = key }
}

// WithBreaker overrides the circuit breaker settings.
func WithBreaker(cfg config.Breaker) Option {
	return func(g *Gateway) { g.breakerCfg = cfg }
}

// WithStateListener registers fn to be called on every breaker transition.
func WithStateListener(fn func(provider string, to gobreaker.State)) Option {
	return func(g *Gateway) { g.onStateChange = fn }
}

// NewGateway returns a Gateway posting to baseURL on behalf of provider.
func NewGateway(
	baseURL string,
	provider string,
	logger *paymentlog.Logger,
	classifier *paymenterror.Classifier,
	opts ...Option,
) *Gateway {
	if logger == nil {
		logger = paymentlog.New(nil)
	}
	if classifier == nil {
		classifier = paymenterror.New(logger)
	}
	g := &Gateway{
		client:     &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		provider:   provider,
		logger:     logger,
		classifier: classifier,
		breakerCfg: config.Breaker{
			MaxRequests:         1,
			Interval:            60 * time.Second,
			Timeout:             30 * time.Second,
			ConsecutiveFailures: 5,
		},
	}
	for _, opt := range opts {
		opt(g)
	}

	threshold := g.breakerCfg.ConsecutiveFailures
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        provider,
		MaxRequests: g.breakerCfg.MaxRequests,
		Interval:    g.breakerCfg.Interval,
		Timeout:     g.breakerCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Declines are the provider working correctly; only outages trip.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit_state_changed", map[string]any{
				"provider": name,
				"from":     from.String(),
				"to":       to.String(),
			})
			if g.onStateChange != nil {
				g.onStateChange(name, to)
			}
		},
	})
	return g
}

// Provider returns the provider name used when a request names none.
func (g *Gateway) Provider() string {
	return g.provider
}

// SendPayout implements payment.Payout. Requests failing local checks come
// back as *ValidationError; provider failures come back as
// *paymenterror.PaymentError.
func (g *Gateway) SendPayout(
	ctx context.Context,
	req *payment.PayoutRequest,
) (*payment.PayoutResponse, error) {
	provider := req.Provider
	if provider == "" {
		provider = g.provider
	}

	minor, err := g.check(req, provider)
	if err != nil {
		return nil, err
	}

	body := payoutBody{
		Amount:      minor,
		Currency:    strings.ToUpper(req.Currency),
		Destination: req.Destination,
		Reference:   req.Reference,
		Description: req.Description,
	}
	metadata := map[string]any{
		"provider":  provider,
		"currency":  body.Currency,
		"amount":    minor,
		"country":   strings.ToUpper(req.Destination.CountryCode),
		"reference": req.Reference,
	}

	resp, err := paymentlog.TrackOperation(ctx, g.logger, "payout", metadata,
		func(ctx context.Context) (*payment.PayoutResponse, error) {
			out, err := g.breaker.Execute(func() (any, error) {
				return g.post(ctx, provider, body)
			})
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
			}
			if err != nil {
				return nil, err
			}
			return out.(*payment.PayoutResponse), nil
		})
	if err != nil {
		return nil, g.classifier.Map(ctx, err, provider)
	}
	return resp, nil
}

func (g *Gateway) check(req *payment.PayoutRequest, provider string) (int64, error) {
	if res := bankdetails.Validate(req.Destination); !res.Valid {
		return 0, &ValidationError{Reason: ErrInvalidBankDetails, Errors: res.Errors}
	}
	if !money.IsValid(req.Amount) {
		return 0, &ValidationError{
			Reason: ErrInvalidAmount,
			Errors: []string{fmt.Sprintf("Amount must be greater than 0 and at most %d", money.MaxAmount)},
		}
	}
	code := strings.ToUpper(req.Currency)
	if compat := currency.ValidateForProvider(code, provider); !compat.Valid {
		return 0, &ValidationError{Reason: ErrUnsupportedCurrency, Errors: []string{compat.Message}}
	}
	if err := money.CheckScale(money.Code(code)); err != nil {
		return 0, &ValidationError{Reason: ErrUnsupportedCurrency, Errors: []string{err.Error()}}
	}
	minor, err := money.ToMinor(req.Amount)
	if err != nil {
		return 0, &ValidationError{Reason: ErrInvalidAmount, Errors: []string{err.Error()}}
	}
	if minor <= 0 {
		return 0, &ValidationError{
			Reason: ErrInvalidAmount,
			Errors: []string{"Amount rounds to zero minor units"},
		}
	}
	return minor, nil
}

type payoutBody struct {
	Amount      int64                   `json:"amount"`
	Currency    string                  `json:"currency"`
	Destination bankdetails.BankDetails `json:"destination"`
	Reference   string                  `json:"reference,omitempty"`
	Description string                  `json:"description,omitempty"`
}

type payoutReply struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorReply struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (g *Gateway) post(
	ctx context.Context,
	provider string,
	body payoutBody,
) (*payment.PayoutResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payout: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/payouts", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Payment-Provider", provider)
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}
	if id := paymentlog.CorrelationID(ctx); id != "" {
		httpReq.Header.Set("X-Correlation-ID", id)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: providerMessage(payload)}
	}

	var reply payoutReply
	if err := json.Unmarshal(payload, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	status := payment.PayoutStatus(reply.Status)
	if status == "" {
		status = payment.PayoutPending
	}
	return &payment.PayoutResponse{
		PayoutID:  reply.ID,
		Provider:  provider,
		Status:    status,
		Amount:    body.Amount,
		Currency:  body.Currency,
		Reference: body.Reference,
	}, nil
}

// providerMessage pulls a human message out of an error body, falling back
// to the raw text.
func providerMessage(payload []byte) string {
	var er errorReply
	if err := json.Unmarshal(payload, &er); err == nil {
		if er.Message != "" {
			return er.Message
		}
		if er.Error != "" {
			return er.Error
		}
	}
	if text := strings.TrimSpace(string(payload)); text != "" {
		return text
	}
	return "no message"
}

var _ payment.Payout = (*Gateway)(nil)
