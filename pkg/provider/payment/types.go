package payment

import (
	"github.com/amirasaad/paycore/pkg/bankdetails"
)

// PayoutStatus represents the status of a payout.
type PayoutStatus string

const (
	// PayoutPending indicates the provider accepted the payout but has not settled it.
	PayoutPending PayoutStatus = "pending"
	// PayoutCompleted indicates the payout has settled.
	PayoutCompleted PayoutStatus = "completed"
	// PayoutFailed indicates the payout has failed.
	PayoutFailed PayoutStatus = "failed"
)

// PayoutRequest holds the parameters for SendPayout. Amount is a decimal
// string in major units so that no precision is lost before validation.
type PayoutRequest struct {
	Provider    string                  `json:"provider,omitempty"`
	Amount      string                  `json:"amount" validate:"required"`
	Currency    string                  `json:"currency" validate:"required,len=3"`
	Destination bankdetails.BankDetails `json:"destination"`
	Reference   string                  `json:"reference,omitempty" validate:"omitempty,max=64"`
	Description string                  `json:"description,omitempty"`
}

// PayoutResponse represents the provider's answer to a payout.
type PayoutResponse struct {
	PayoutID  string       `json:"payoutId"`
	Provider  string       `json:"provider"`
	Status    PayoutStatus `json:"status"`
	Amount    int64        `json:"amount"`
	Currency  string       `json:"currency"`
	Reference string       `json:"reference,omitempty"`
}
