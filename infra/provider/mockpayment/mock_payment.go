package mockpayment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/amirasaad/paycore/pkg/bankdetails"
)

// Payout is a payout as received by the fake provider.
type Payout struct {
	ID          string                  `json:"id"`
	Amount      int64                   `json:"amount"`
	Currency    string                  `json:"currency"`
	Destination bankdetails.BankDetails `json:"destination"`
	Reference   string                  `json:"reference,omitempty"`
	Provider    string                  `json:"-"`
	Auth        string                  `json:"-"`
}

type failure struct {
	status  int
	message string
}

// Server simulates a provider payout API for tests and local development.
//
// POST /payouts records the payout and answers {"id": ..., "status": "pending"}.
// Queue failures with Fail; each queued failure answers one request.
// This is NOT for production use.
type Server struct {
	mu       sync.Mutex
	payouts  []Payout
	failures []failure
	failed   int
}

// NewServer creates a new fake payout provider.
func NewServer() *Server {
	return &Server{}
}

// Fail queues an error answer with the given status and message.
func (s *Server) Fail(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{status: status, message: message})
}

// Payouts returns the payouts accepted so far.
func (s *Server) Payouts() []Payout {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Payout, len(s.payouts))
	copy(out, s.payouts)
	return out
}

// Calls returns how many payout requests reached the server.
func (s *Server) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls()
}

func (s *Server) calls() int {
	return len(s.payouts) + s.failed
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/payouts" {
		http.NotFound(w, r)
		return
	}

	var p Payout
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed payout body"})
		return
	}

	s.mu.Lock()
	if len(s.failures) > 0 {
		f := s.failures[0]
		s.failures = s.failures[1:]
		s.failed++
		s.mu.Unlock()
		writeJSON(w, f.status, map[string]string{"message": f.message})
		return
	}
	p.ID = fmt.Sprintf("po_mock_%d", s.calls()+1)
	p.Provider = r.Header.Get("X-Payment-Provider")
	p.Auth = r.Header.Get("Authorization")
	s.payouts = append(s.payouts, p)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"id": p.ID, "status": "pending"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
