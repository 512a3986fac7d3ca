package payout_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/amirasaad/paycore/pkg/paymenterror"
	"github.com/amirasaad/paycore/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type PayoutTestSuite struct {
	testutils.E2ETestSuite
}

const validPayout = `{
	"amount": "2500.50",
	"currency": "NGN",
	"reference": "inv-1001",
	"destination": {
		"countryCode": "NG",
		"accountNumber": "0123456789",
		"bankName": "Access Bank",
		"accountName": "Ada Obi"
	}
}`

func (s *PayoutTestSuite) TestSendPayout() {
	resp := s.MakeRequest(fiber.MethodPost, "/api/payouts", validPayout)
	s.Equal(fiber.StatusAccepted, resp.StatusCode)

	data := s.DataMap(s.DecodeResponse(resp))
	s.Equal("po_mock_1", data["payoutId"])
	s.Equal("pending", data["status"])
	s.Equal(float64(250050), data["amount"])
	s.Equal("paystack", data["provider"])

	payouts := s.Provider.Payouts()
	s.Require().Len(payouts, 1)
	s.Equal("inv-1001", payouts[0].Reference)

	resp = s.MakeRequest(fiber.MethodGet, "/metrics", "")
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	_ = resp.Body.Close()
	s.Contains(string(body), `test_payment_operations_total{operation="payout",outcome="completed"} 1`)
}

func (s *PayoutTestSuite) TestRejectedLocally() {
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			desc:       "bad account number",
			body:       strings.Replace(validPayout, "0123456789", "123", 1),
			wantStatus: fiber.StatusUnprocessableEntity,
			wantError:  "Account number (NUBAN) must be exactly 10 digits",
		},
		{
			desc:       "currency not offered",
			body:       strings.Replace(validPayout, `"NGN"`, `"EUR"`, 1),
			wantStatus: fiber.StatusUnprocessableEntity,
			wantError:  "Currency EUR is not supported by paystack. Supported currencies: GHS, KES, NGN, USD, ZAR",
		},
		{
			desc:       "negative amount",
			body:       strings.Replace(validPayout, `"2500.50"`, `"-1"`, 1),
			wantStatus: fiber.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			resp := s.MakeRequest(fiber.MethodPost, "/api/payouts", tc.body)
			s.Equal(tc.wantStatus, resp.StatusCode)
			pd := s.DecodeProblem(resp)
			s.Equal("Payout rejected", pd.Title)
			if tc.wantError != "" {
				s.Contains(pd.Errors, tc.wantError)
			}
		})
	}
	s.Zero(s.Provider.Calls())
}

func (s *PayoutTestSuite) TestMissingFields() {
	resp := s.MakeRequest(fiber.MethodPost, "/api/payouts", `{"currency":"NGN"}`)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	pd := s.DecodeProblem(resp)
	s.Contains(pd.Errors, "amount failed on required")

	resp = s.MakeRequest(fiber.MethodPost, "/api/payouts", strings.Replace(validPayout, `"countryCode": "NG",`, "", 1))
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	pd = s.DecodeProblem(resp)
	s.Contains(pd.Errors, "countryCode failed on required")
	s.Zero(s.Provider.Calls())
}

func (s *PayoutTestSuite) TestProviderDecline() {
	s.Provider.Fail(http.StatusPaymentRequired, "insufficient balance")

	resp := s.MakeRequest(fiber.MethodPost, "/api/payouts", validPayout)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	var data map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&data))
	_ = resp.Body.Close()
	s.Equal(paymenterror.MsgInsufficientFunds, data["userMessage"])
	s.Equal(float64(fiber.StatusBadRequest), data["statusCode"])
	s.Equal("paystack", data["provider"])
	s.True(strings.HasPrefix(data["correlationId"].(string), "pay_"))
	s.Contains(s.Logs.String(), `"msg":"payment_error"`)
}

func TestPayoutTestSuite(t *testing.T) {
	suite.Run(t, new(PayoutTestSuite))
}
