package bankdetails

import (
	"regexp"
	"strings"
	"unicode"
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{4,30}$`)

// normalizeIBAN removes all whitespace and upper-cases the result.
func normalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, iban))
}

// ValidIBAN reports whether iban is well formed and passes the ISO 7064
// MOD 97-10 check. Whitespace and letter case are ignored.
func ValidIBAN(iban string) bool {
	s := normalizeIBAN(iban)
	if !ibanPattern.MatchString(s) {
		return false
	}
	return ibanRemainder(s) == 1
}

// ibanRemainder moves the first four characters to the end, expands letters
// to 10..35 and reduces mod 97 one digit at a time so no big integers are
// needed. s must already match ibanPattern.
func ibanRemainder(s string) int {
	rearranged := s[4:] + s[:4]
	r := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		if c >= 'A' && c <= 'Z' {
			v := int(c-'A') + 10
			r = (r*10 + v/10) % 97
			r = (r*10 + v%10) % 97
			continue
		}
		r = (r*10 + int(c-'0')) % 97
	}
	return r
}

// ValidABARouting reports whether routing is nine digits satisfying the ABA
// weighted checksum 3-7-1.
func ValidABARouting(routing string) bool {
	if len(routing) != 9 || !allDigits(routing) {
		return false
	}
	d := make([]int, 9)
	for i := range routing {
		d[i] = int(routing[i] - '0')
	}
	sum := 3*(d[0]+d[3]+d[6]) + 7*(d[1]+d[4]+d[7]) + (d[2] + d[5] + d[8])
	return sum%10 == 0
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
