package paymenterror_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"testing"

	"github.com/amirasaad/paycore/pkg/paymenterror"
	"github.com/amirasaad/paycore/pkg/paymentlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

var correlationPattern = regexp.MustCompile(`^pay_\d+_[a-z0-9]{6}$`)

func newClassifier(buf *bytes.Buffer) *paymenterror.Classifier {
	h := slog.NewJSONHandler(buf, nil)
	return paymenterror.New(paymentlog.New(slog.New(h)))
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	return out
}

func TestMap_InsufficientBalance(t *testing.T) {
	var buf bytes.Buffer
	c := newClassifier(&buf)

	got := c.Map(context.Background(), errors.New("insufficient balance"), "paystack")

	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	assert.Contains(t, got.UserMessage, "Insufficient funds")
	assert.Equal(t, "paystack", got.Provider)
	assert.Regexp(t, correlationPattern, got.CorrelationID)

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "ERROR", recs[0]["level"])
	assert.Equal(t, "payment_error", recs[0]["operation"])
	assert.Equal(t, "insufficient balance", recs[0]["error"])
	assert.Equal(t, "paystack", recs[0]["provider"])
	assert.Equal(t, got.CorrelationID, recs[0]["correlationId"])
}

func TestMap_Rules(t *testing.T) {
	tests := []struct {
		raw     string
		status  int
		message string
	}{
		{"Insufficient funds in wallet", http.StatusBadRequest, paymenterror.MsgInsufficientFunds},
		{"Low BALANCE", http.StatusBadRequest, paymenterror.MsgInsufficientFunds},
		{"Invalid account number", http.StatusBadRequest, paymenterror.MsgInvalidAccount},
		{"duplicate transfer reference", http.StatusConflict, paymenterror.MsgDuplicate},
		{"request is not idempotent", http.StatusConflict, paymenterror.MsgDuplicate},
		{"Rate limit exceeded", http.StatusTooManyRequests, paymenterror.MsgRateLimited},
		{"throttled by upstream", http.StatusTooManyRequests, paymenterror.MsgRateLimited},
		{"Authentication failed", http.StatusServiceUnavailable, paymenterror.MsgServiceUnavailable},
		{"401 Unauthorized", http.StatusServiceUnavailable, paymenterror.MsgServiceUnavailable},
		{"Invalid API key provided", http.StatusServiceUnavailable, paymenterror.MsgServiceUnavailable},
		{"dial tcp 10.0.0.1:443: i/o timeout", http.StatusServiceUnavailable, paymenterror.MsgProviderUnreachable},
		{"connect ECONNREFUSED 127.0.0.1:443", http.StatusServiceUnavailable, paymenterror.MsgProviderUnreachable},
		{"dial tcp: connection refused", http.StatusServiceUnavailable, paymenterror.MsgProviderUnreachable},
		{"network unreachable", http.StatusServiceUnavailable, paymenterror.MsgProviderUnreachable},
		{"context deadline exceeded", http.StatusServiceUnavailable, paymenterror.MsgProviderUnreachable},
		{"Currency not supported", http.StatusBadRequest, paymenterror.MsgUnsupportedCurrency},
		{"invalid currency code XYZ", http.StatusBadRequest, paymenterror.MsgUnsupportedCurrency},
		{"something odd happened", http.StatusInternalServerError, paymenterror.MsgGeneric},
		{"", http.StatusInternalServerError, paymenterror.MsgGeneric},
	}
	c := newClassifier(&bytes.Buffer{})
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := c.Map(context.Background(), errors.New(tt.raw), "flutterwave")
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.message, got.UserMessage)
		})
	}
}

func TestMap_FirstMatchWins(t *testing.T) {
	c := newClassifier(&bytes.Buffer{})

	// balance (rule 1) beats invalid+account (rule 2)
	got := c.Map(context.Background(), errors.New("invalid account balance"), "")
	assert.Equal(t, paymenterror.MsgInsufficientFunds, got.UserMessage)

	// invalid+account (rule 2) beats currency (rule 7)
	got = c.Map(context.Background(), errors.New("invalid account currency"), "")
	assert.Equal(t, paymenterror.MsgInvalidAccount, got.UserMessage)
}

func TestMap_NeverLeaksRawDetail(t *testing.T) {
	c := newClassifier(&bytes.Buffer{})
	raw := errors.New("timeout talking to https://api.internal/v1/transfers with key sk_live_abc123")

	got := c.Map(context.Background(), raw, "stripe")

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "sk_live_abc123")
	assert.NotContains(t, string(out), "api.internal")
	assert.Equal(t, got.UserMessage, got.Error())
}

func TestMap_StripeError(t *testing.T) {
	var buf bytes.Buffer
	c := newClassifier(&buf)
	raw := fmt.Errorf("create payout: %w", &stripe.Error{
		Code:           stripe.ErrorCodeCardDeclined,
		DeclineCode:    stripe.DeclineCodeInsufficientFunds,
		Msg:            "Your card was declined.",
		HTTPStatusCode: http.StatusPaymentRequired,
		Type:           stripe.ErrorTypeCard,
	})

	got := c.Map(context.Background(), raw, "")

	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	assert.Equal(t, paymenterror.MsgInsufficientFunds, got.UserMessage)
	assert.Equal(t, "stripe", got.Provider)
}

func TestMap_NilError(t *testing.T) {
	got := newClassifier(&bytes.Buffer{}).Map(context.Background(), nil, "wise")
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	assert.Equal(t, "wise", got.Provider)
}

func TestMap_UniqueCorrelationIDs(t *testing.T) {
	c := newClassifier(&bytes.Buffer{})
	seen := make(map[string]struct{})
	for range 200 {
		id := c.Map(context.Background(), errors.New("x"), "").CorrelationID
		require.Regexp(t, correlationPattern, id)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)
}

type stackErr struct{}

func (stackErr) Error() string { return "boom" }

func (e stackErr) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprint(s, "boom\n\n  main.charge\n\t/app/charge.go:42")
		return
	}
	fmt.Fprint(s, e.Error())
}

func TestMap_LogsFirstStackLine(t *testing.T) {
	var buf bytes.Buffer
	c := newClassifier(&buf)

	c.Map(context.Background(), stackErr{}, "stripe")

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "main.charge", recs[0]["stack"])
}

func TestPackageMap(t *testing.T) {
	got := paymenterror.Map(context.Background(), errors.New("duplicate"), "paystack")
	assert.Equal(t, http.StatusConflict, got.StatusCode)
}
