package bankdetails_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/amirasaad/paycore/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type BankDetailsTestSuite struct {
	testutils.E2ETestSuite
}

func (s *BankDetailsTestSuite) TestValidateVariants() {
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
		wantValid  bool
		wantErrors []any
	}{
		{
			desc:       "valid US account",
			body:       `{"countryCode":"US","accountNumber":"123456789","routingNumber":"021000021","accountName":"Jane Doe"}`,
			wantStatus: fiber.StatusOK,
			wantValid:  true,
			wantErrors: []any{},
		},
		{
			desc:       "bad routing checksum",
			body:       `{"countryCode":"US","accountNumber":"123456789","routingNumber":"021000022","accountName":"Jane Doe"}`,
			wantStatus: fiber.StatusOK,
			wantErrors: []any{"Routing number checksum is invalid"},
		},
		{
			desc:       "unsupported country",
			body:       `{"countryCode":"XX","accountName":"Jane Doe"}`,
			wantStatus: fiber.StatusOK,
			wantErrors: []any{"Bank validation not supported for country: XX"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			resp := s.MakeRequest(fiber.MethodPost, "/api/bank-details/validate", tc.body)
			s.Equal(tc.wantStatus, resp.StatusCode)
			data := s.DataMap(s.DecodeResponse(resp))
			s.Equal(tc.wantValid, data["valid"])
			s.Equal(tc.wantErrors, data["errors"])
			s.NotContains(data, "Issues")
		})
	}
}

func (s *BankDetailsTestSuite) TestValidateRejectsBadBody() {
	resp := s.MakeRequest(fiber.MethodPost, "/api/bank-details/validate", `{"accountName":"Jane"}`)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	pd := s.DecodeProblem(resp)
	s.Equal("Validation failed", pd.Title)
	s.Equal([]any{"countryCode failed on required"}, pd.Errors)

	resp = s.MakeRequest(fiber.MethodPost, "/api/bank-details/validate", `{"countryCode":`)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *BankDetailsTestSuite) TestValidateCountsMetrics() {
	resp := s.MakeRequest(fiber.MethodPost, "/api/bank-details/validate",
		`{"countryCode":"de","iban":"DE89370400440532013000","accountName":"Max Muster"}`)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.MakeRequest(fiber.MethodGet, "/metrics", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	_ = resp.Body.Close()
	s.Contains(string(body), `test_bank_validations_total{country="DE",valid="true"} 1`)
}

func (s *BankDetailsTestSuite) TestValidateMetricLabelsStayBounded() {
	for i := range 50 {
		body := fmt.Sprintf(`{"countryCode":"junk-%d","accountName":"Jane Doe"}`, i)
		resp := s.MakeRequest(fiber.MethodPost, "/api/bank-details/validate", body)
		s.Equal(fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
	resp := s.MakeRequest(fiber.MethodPost, "/api/bank-details/validate",
		`{"countryCode":" ng ","accountNumber":"0123456789","bankName":"Access Bank","accountName":"Ada Obi"}`)
	_ = resp.Body.Close()

	n, err := testutil.GatherAndCount(s.Metrics.Registry(), "test_bank_validations_total")
	s.Require().NoError(err)
	s.Equal(2, n)

	resp = s.MakeRequest(fiber.MethodGet, "/metrics", "")
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	_ = resp.Body.Close()
	s.Contains(string(body), `test_bank_validations_total{country="unsupported",valid="false"} 50`)
	s.Contains(string(body), `test_bank_validations_total{country="NG",valid="true"} 1`)
}

func (s *BankDetailsTestSuite) TestRequiredFields() {
	resp := s.MakeRequest(fiber.MethodGet, "/api/bank-details/countries/gb/fields", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	data := s.DataMap(s.DecodeResponse(resp))
	s.Equal("GB", data["country"])
	s.Equal([]any{"accountName", "sortCode", "accountNumber"}, data["fields"])

	resp = s.MakeRequest(fiber.MethodGet, "/api/bank-details/countries/XX/fields", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	pd := s.DecodeProblem(resp)
	s.Equal("Bank validation not supported for country: XX", pd.Detail)
}

func (s *BankDetailsTestSuite) TestListCountries() {
	resp := s.MakeRequest(fiber.MethodGet, "/api/bank-details/countries", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	countries, ok := s.DecodeResponse(resp).Data.([]any)
	s.Require().True(ok)
	s.Len(countries, 25)
	s.Contains(countries, "NG")
}

func TestBankDetailsTestSuite(t *testing.T) {
	suite.Run(t, new(BankDetailsTestSuite))
}
