package bankdetails

import (
	"slices"
	"strings"
)

const minAccountNameLength = 2

// Validate checks details against the common rules and the rules of its
// country. It never returns early on the first problem: every applicable
// check runs, common problems first, then country problems. An unsupported
// country is the one exception and yields a single error.
func Validate(details BankDetails) Result {
	code := normalizeCountry(details.CountryCode)
	r, ok := rules[Country(code)]
	if !ok {
		return newResult([]Issue{{Kind: UnsupportedCountry, Expected: code}})
	}

	issues := commonIssues(details)
	issues = append(issues, r.check(details)...)
	return newResult(issues)
}

func commonIssues(d BankDetails) []Issue {
	name := strings.TrimSpace(d.AccountName)
	switch {
	case name == "":
		return []Issue{{Kind: MissingField, Field: FieldAccountName}}
	case len([]rune(name)) < minAccountNameLength:
		return []Issue{{Kind: TooShort, Field: FieldAccountName, Min: minAccountNameLength}}
	}
	return nil
}

// RequiredFields lists the fields a form must collect for countryCode, in
// display order, starting with the account holder name required everywhere.
// It returns nil for unsupported countries.
func RequiredFields(countryCode string) []Field {
	r, ok := rules[Country(normalizeCountry(countryCode))]
	if !ok {
		return nil
	}
	return append([]Field{FieldAccountName}, r.required...)
}

// ParseCountry returns the Country for code if bank validation supports it.
func ParseCountry(code string) (Country, bool) {
	c := Country(normalizeCountry(code))
	_, ok := rules[c]
	return c, ok
}

// SupportedCountries returns every country Validate handles, sorted.
func SupportedCountries() []Country {
	out := make([]Country, 0, len(rules))
	for c := range rules {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
