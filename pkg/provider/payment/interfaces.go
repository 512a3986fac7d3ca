package payment

import (
	"context"
)

// Payout is a interface for sending money to a bank account through a
// payment provider.
type Payout interface {
	// SendPayout validates the request and submits it to the provider.
	SendPayout(
		ctx context.Context,
		req *PayoutRequest,
	) (*PayoutResponse, error)
}
