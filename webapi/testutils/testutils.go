package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/paycore/infra/metrics"
	"github.com/amirasaad/paycore/infra/provider"
	"github.com/amirasaad/paycore/infra/provider/mockpayment"
	"github.com/amirasaad/paycore/pkg/app"
	"github.com/amirasaad/paycore/pkg/config"
	"github.com/amirasaad/paycore/pkg/paymenterror"
	"github.com/amirasaad/paycore/pkg/paymentlog"
	"github.com/amirasaad/paycore/webapi"
	"github.com/amirasaad/paycore/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite runs the full HTTP app against a fake payout provider.
// Every test gets a fresh app, provider and metrics registry.
type E2ETestSuite struct {
	suite.Suite
	app      *fiber.App
	server   *httptest.Server
	Provider *mockpayment.Server
	Metrics  *metrics.Collector
	Logs     *bytes.Buffer
	Config   *config.App
}

// SetupTest builds the app.
func (s *E2ETestSuite) SetupTest() {
	s.Provider = mockpayment.NewServer()
	s.server = httptest.NewServer(s.Provider)

	s.Logs = &bytes.Buffer{}
	s.Metrics = metrics.NewCollector("test")
	plog := paymentlog.New(
		slog.New(slog.NewJSONHandler(s.Logs, nil)),
		paymentlog.WithRecorder(s.Metrics),
	)
	classifier := paymenterror.New(plog)

	s.Config = &config.App{
		Env:       "test",
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Second},
	}
	gw := provider.NewGateway(s.server.URL, "paystack", plog, classifier,
		provider.WithHTTPClient(s.server.Client()),
	)
	deps := &app.Deps{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		PaymentLog: plog,
		Classifier: classifier,
		Payout:     gw,
		Metrics:    s.Metrics,
	}
	s.app = webapi.SetupApp(app.New(deps, s.Config))
}

// TearDownTest stops the fake provider.
func (s *E2ETestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

// App returns the fiber app under test.
func (s *E2ETestSuite) App() *fiber.App {
	return s.app
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := s.app.Test(req, 10000)
	s.Require().NoError(err)
	return resp
}

// DecodeResponse reads a success envelope and closes the body.
func (s *E2ETestSuite) DecodeResponse(resp *http.Response) common.Response {
	defer resp.Body.Close() //nolint:errcheck
	var out common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// DecodeProblem reads a problem details body and closes the body.
func (s *E2ETestSuite) DecodeProblem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	var out common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// DataMap returns the envelope's data as a JSON object.
func (s *E2ETestSuite) DataMap(r common.Response) map[string]any {
	m, ok := r.Data.(map[string]any)
	s.Require().True(ok, "data is %T", r.Data)
	return m
}
