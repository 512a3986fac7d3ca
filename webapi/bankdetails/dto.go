package bankdetails

import (
	"github.com/amirasaad/paycore/pkg/bankdetails"
)

// FieldsResponse lists the fields a country requires.
type FieldsResponse struct {
	Country string              `json:"country"`
	Fields  []bankdetails.Field `json:"fields"`
}
