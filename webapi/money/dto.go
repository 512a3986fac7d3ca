package money

// PairRequest carries two major-unit amounts, each a JSON number or a
// decimal string.
type PairRequest struct {
	A any `json:"a"`
	B any `json:"b"`
}

// FormatRequest is the body of POST /api/money/format.
type FormatRequest struct {
	Amount   any    `json:"amount"`
	Currency string `json:"currency" validate:"required,len=3"`
}

// ResultResponse carries an arithmetic or comparison result.
type ResultResponse struct {
	Result any `json:"result"`
}

// FormatResponse carries a display string.
type FormatResponse struct {
	Formatted string `json:"formatted"`
}
