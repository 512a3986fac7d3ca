package bankdetails

import "strings"

// Field names a BankDetails attribute, using the same spelling as its JSON key.
type Field string

// Bank detail fields.
const (
	FieldAccountNumber Field = "accountNumber"
	FieldRoutingNumber Field = "routingNumber"
	FieldSortCode      Field = "sortCode"
	FieldIBAN          Field = "iban"
	FieldBSB           Field = "bsb"
	FieldBankName      Field = "bankName"
	FieldAccountName   Field = "accountName"
)

var fieldLabels = map[Field]string{
	FieldAccountNumber: "Account number",
	FieldRoutingNumber: "Routing number",
	FieldSortCode:      "Sort code",
	FieldIBAN:          "IBAN",
	FieldBSB:           "BSB",
	FieldBankName:      "Bank name",
	FieldAccountName:   "Account name",
}

// Label returns the human-readable name used in error messages.
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// BankDetails is the account record collected from a user. Only CountryCode
// is mandatory; an empty string means the field was not supplied.
type BankDetails struct {
	CountryCode   string `json:"countryCode" validate:"required"`
	AccountNumber string `json:"accountNumber,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	SortCode      string `json:"sortCode,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	BSB           string `json:"bsb,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
}

// Result is the outcome of Validate. Valid is true iff Errors is empty.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
	// Issues holds the typed form of each entry in Errors, in the same order.
	Issues []Issue `json:"-"`
}

func newResult(issues []Issue) Result {
	errs := make([]string, 0, len(issues))
	for _, is := range issues {
		errs = append(errs, is.String())
	}
	return Result{
		Valid:  len(issues) == 0,
		Errors: errs,
		Issues: issues,
	}
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
