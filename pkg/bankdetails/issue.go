package bankdetails

import "fmt"

// Kind classifies a validation problem.
type Kind int

// Validation problem kinds.
const (
	MissingField Kind = iota + 1
	MissingOneOf
	TooShort
	BadDigits
	BadLength
	BadPrefix
	BadFormat
	ChecksumFailed
	UnsupportedCountry
)

var kindNames = map[Kind]string{
	MissingField:       "missing_field",
	MissingOneOf:       "missing_one_of",
	TooShort:           "too_short",
	BadDigits:          "bad_digits",
	BadLength:          "bad_length",
	BadPrefix:          "bad_prefix",
	BadFormat:          "bad_format",
	ChecksumFailed:     "checksum_failed",
	UnsupportedCountry: "unsupported_country",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Issue is one validation problem. The user-facing message is rendered by
// String from the typed fields, so callers can branch on Kind and Field
// without matching text.
type Issue struct {
	Kind  Kind
	Field Field
	// Label overrides Field.Label, e.g. ZA routing numbers are branch codes.
	Label string
	// Min and Max bound digit counts (BadDigits) or hold the exact length (BadLength).
	Min, Max int
	// Expected carries the required prefix (BadPrefix), the country
	// (BadLength, UnsupportedCountry) or the alternatives text (MissingOneOf).
	Expected string
}

func (i Issue) label() string {
	if i.Label != "" {
		return i.Label
	}
	return i.Field.Label()
}

func (i Issue) String() string {
	switch i.Kind {
	case MissingField:
		return i.label() + " is required"
	case MissingOneOf:
		return "Either " + i.Expected + " is required"
	case TooShort:
		return fmt.Sprintf("%s must be at least %d characters", i.label(), i.Min)
	case BadDigits:
		if i.Min == i.Max {
			return fmt.Sprintf("%s must be exactly %d digits", i.label(), i.Min)
		}
		return fmt.Sprintf("%s must be between %d and %d digits", i.label(), i.Min, i.Max)
	case BadLength:
		return fmt.Sprintf("%s must be %d characters for %s", i.label(), i.Max, i.Expected)
	case BadPrefix:
		return fmt.Sprintf("%s must start with %s", i.label(), i.Expected)
	case BadFormat:
		return i.label() + " format is invalid"
	case ChecksumFailed:
		return i.label() + " checksum is invalid"
	case UnsupportedCountry:
		return "Bank validation not supported for country: " + i.Expected
	default:
		return i.label() + " is invalid"
	}
}
