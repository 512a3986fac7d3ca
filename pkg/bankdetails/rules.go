package bankdetails

import (
	"strings"
	"unicode"
)

// Country is a supported ISO 3166-1 alpha-2 code.
type Country string

// Supported countries.
const (
	US Country = "US"
	CA Country = "CA"
	GB Country = "GB"
	AU Country = "AU"
	DE Country = "DE"
	FR Country = "FR"
	ES Country = "ES"
	IT Country = "IT"
	NL Country = "NL"
	BE Country = "BE"
	AT Country = "AT"
	SE Country = "SE"
	NO Country = "NO"
	DK Country = "DK"
	FI Country = "FI"
	CH Country = "CH"
	PT Country = "PT"
	IE Country = "IE"
	NG Country = "NG"
	GH Country = "GH"
	ZA Country = "ZA"
	KE Country = "KE"
	EG Country = "EG"
	RW Country = "RW"
	CI Country = "CI"
)

// rule is the single description of a country's clearing requirements.
type rule struct {
	required []Field
	check    func(BankDetails) []Issue
}

// sepaLengths holds the fixed IBAN length of each SEPA country handled here.
var sepaLengths = map[Country]int{
	DE: 22, FR: 27, ES: 24, IT: 27, NL: 18, BE: 16, AT: 20,
	SE: 24, NO: 15, DK: 18, FI: 18, CH: 21, PT: 25, IE: 22,
}

var rules = buildRules()

func buildRules() map[Country]rule {
	r := map[Country]rule{
		US: {
			required: []Field{FieldRoutingNumber, FieldAccountNumber},
			check: func(d BankDetails) []Issue {
				issues := digitIssues(FieldRoutingNumber, "", d.RoutingNumber, 9, 9, false)
				if len(issues) == 0 && !ValidABARouting(compact(d.RoutingNumber, false)) {
					issues = append(issues, Issue{Kind: ChecksumFailed, Field: FieldRoutingNumber})
				}
				return append(issues, digitIssues(FieldAccountNumber, "", d.AccountNumber, 4, 17, false)...)
			},
		},
		CA: {
			required: []Field{FieldRoutingNumber, FieldAccountNumber},
			check: func(d BankDetails) []Issue {
				issues := digitIssues(FieldRoutingNumber, "", d.RoutingNumber, 8, 9, false)
				return append(issues, digitIssues(FieldAccountNumber, "", d.AccountNumber, 5, 12, false)...)
			},
		},
		GB: {
			required: []Field{FieldSortCode, FieldAccountNumber},
			check:    checkGB,
		},
		AU: {
			required: []Field{FieldBSB, FieldAccountNumber},
			check: func(d BankDetails) []Issue {
				issues := digitIssues(FieldBSB, "", d.BSB, 6, 6, true)
				return append(issues, digitIssues(FieldAccountNumber, "", d.AccountNumber, 5, 9, false)...)
			},
		},
		NG: {
			required: []Field{FieldAccountNumber, FieldBankName},
			check:    accountWithBank("Account number (NUBAN)", 10, 10),
		},
		GH: {
			required: []Field{FieldAccountNumber, FieldBankName},
			check:    accountWithBank("", 9, 16),
		},
		ZA: {
			required: []Field{FieldAccountNumber, FieldRoutingNumber},
			check: func(d BankDetails) []Issue {
				issues := digitIssues(FieldAccountNumber, "", d.AccountNumber, 7, 11, false)
				return append(issues, digitIssues(FieldRoutingNumber, "Branch code", d.RoutingNumber, 6, 6, false)...)
			},
		},
		KE: {
			required: []Field{FieldAccountNumber, FieldBankName},
			check:    accountWithBank("", 8, 14),
		},
		EG: {
			required: []Field{FieldIBAN},
			check:    checkEG,
		},
		RW: {
			required: []Field{FieldAccountNumber, FieldBankName},
			check:    accountWithBank("", 10, 16),
		},
		CI: {
			required: []Field{FieldAccountNumber, FieldBankName},
			check: func(d BankDetails) []Issue {
				issues := presenceIssues(FieldAccountNumber, d.AccountNumber)
				return append(issues, presenceIssues(FieldBankName, d.BankName)...)
			},
		},
	}
	for country, length := range sepaLengths {
		r[country] = sepaRule(country, length)
	}
	return r
}

func sepaRule(country Country, length int) rule {
	return rule{
		required: []Field{FieldIBAN},
		check: func(d BankDetails) []Issue {
			return ibanIssues(d.IBAN, country, length)
		},
	}
}

func checkGB(d BankDetails) []Issue {
	if strings.TrimSpace(d.IBAN) != "" {
		return ibanIssues(d.IBAN, GB, 22)
	}
	if strings.TrimSpace(d.SortCode) == "" && strings.TrimSpace(d.AccountNumber) == "" {
		return []Issue{{Kind: MissingOneOf, Expected: "sort code and account number, or IBAN,"}}
	}
	issues := digitIssues(FieldSortCode, "", d.SortCode, 6, 6, true)
	return append(issues, digitIssues(FieldAccountNumber, "", d.AccountNumber, 8, 8, false)...)
}

func checkEG(d BankDetails) []Issue {
	if strings.TrimSpace(d.IBAN) != "" {
		return ibanIssues(d.IBAN, EG, 0)
	}
	if strings.TrimSpace(d.AccountNumber) == "" {
		return []Issue{{Kind: MissingOneOf, Expected: "IBAN or account number"}}
	}
	return nil
}

func accountWithBank(label string, minLen, maxLen int) func(BankDetails) []Issue {
	return func(d BankDetails) []Issue {
		issues := digitIssues(FieldAccountNumber, label, d.AccountNumber, minLen, maxLen, false)
		return append(issues, presenceIssues(FieldBankName, d.BankName)...)
	}
}

func presenceIssues(f Field, v string) []Issue {
	if strings.TrimSpace(v) == "" {
		return []Issue{{Kind: MissingField, Field: f}}
	}
	return nil
}

// digitIssues checks that v, once whitespace (and hyphens, when
// stripHyphens is set) is removed, is between minLen and maxLen digits long.
func digitIssues(f Field, label, v string, minLen, maxLen int, stripHyphens bool) []Issue {
	s := compact(v, stripHyphens)
	if s == "" {
		return []Issue{{Kind: MissingField, Field: f, Label: label}}
	}
	if !allDigits(s) || len(s) < minLen || len(s) > maxLen {
		return []Issue{{Kind: BadDigits, Field: f, Label: label, Min: minLen, Max: maxLen}}
	}
	return nil
}

// ibanIssues reports at most one problem with iban: wrong country prefix,
// wrong length (skipped when length is 0), bad shape or failed checksum.
func ibanIssues(iban string, country Country, length int) []Issue {
	s := normalizeIBAN(iban)
	switch {
	case s == "":
		return []Issue{{Kind: MissingField, Field: FieldIBAN}}
	case !strings.HasPrefix(s, string(country)):
		return []Issue{{Kind: BadPrefix, Field: FieldIBAN, Expected: string(country)}}
	case length > 0 && len(s) != length:
		return []Issue{{Kind: BadLength, Field: FieldIBAN, Min: length, Max: length, Expected: string(country)}}
	case !ibanPattern.MatchString(s):
		return []Issue{{Kind: BadFormat, Field: FieldIBAN}}
	case ibanRemainder(s) != 1:
		return []Issue{{Kind: ChecksumFailed, Field: FieldIBAN}}
	}
	return nil
}

func compact(v string, stripHyphens bool) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || (stripHyphens && r == '-') {
			return -1
		}
		return r
	}, v)
}
