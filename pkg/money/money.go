// Package money provides integer-safe arithmetic over two-decimal currencies.
//
// Callers hand in major-unit amounts (dollars, euros, naira) either as decimal
// strings or as numbers. Every operation converts them to an int64 count of
// minor units (cents) before doing any arithmetic, so results are exact for
// anything representable to two decimal places.
//
// Invariants:
//   - One major unit is always 100 minor units. Currencies with zero or three
//     decimal places (JPY, KWD) are not scaled correctly by this package;
//     use CheckScale to refuse them.
//   - Rounding to minor units is half away from zero.
//   - Functions never panic; malformed input is reported as ErrInvalidAmount.
package money

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/amirasaad/paycore/pkg/currency"
	"github.com/shopspring/decimal"
)

const (
	// MinorPerMajor is the number of minor units in one major unit.
	MinorPerMajor = 100

	// MaxAmount is the sanity ceiling, in major units, accepted by IsValid.
	MaxAmount = 1_000_000_000
)

var (
	hundred   = decimal.NewFromInt(MinorPerMajor)
	maxMinor  = decimal.NewFromInt(math.MaxInt64)
	maxAmount = decimal.NewFromInt(MaxAmount)
)

// Amount is a major-unit value as received from callers.
type Amount interface {
	~string | ~float64 | ~float32 | ~int | ~int64
}

// parse turns amount into an exact decimal. Floats go through their shortest
// decimal representation, so 0.1 parses as 0.1 and not 0.1000000000000000055.
func parse[T Amount](amount T) (decimal.Decimal, error) {
	v := reflect.ValueOf(amount)
	switch v.Kind() {
	case reflect.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return decimal.Zero, fmt.Errorf("%w: empty string", ErrInvalidAmount)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		return d, nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
		}
		if v.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f)), nil
		}
		return decimal.NewFromFloat(f), nil
	default:
		return decimal.NewFromInt(v.Int()), nil
	}
}

// ToMinor converts a major-unit amount to minor units, rounding half away
// from zero.
func ToMinor[T Amount](amount T) (int64, error) {
	d, err := parse(amount)
	if err != nil {
		return 0, err
	}
	minor := d.Mul(hundred).Round(0)
	if minor.Abs().GreaterThan(maxMinor) {
		return 0, fmt.Errorf("%w: %s", ErrAmountExceedsMaxSafeInt, d.String())
	}
	return minor.IntPart(), nil
}

// ToMajor converts minor units back to a major-unit float.
func ToMajor(minor int64) float64 {
	return float64(minor) / MinorPerMajor
}

// Add returns a + b computed in minor units.
func Add[A, B Amount](a A, b B) (float64, error) {
	ma, mb, err := toMinorPair(a, b)
	if err != nil {
		return 0, err
	}
	sum, err := addMinor(ma, mb)
	if err != nil {
		return 0, err
	}
	return ToMajor(sum), nil
}

// Subtract returns a - b computed in minor units.
func Subtract[A, B Amount](a A, b B) (float64, error) {
	ma, mb, err := toMinorPair(a, b)
	if err != nil {
		return 0, err
	}
	diff, err := addMinor(ma, -mb)
	if err != nil {
		return 0, err
	}
	return ToMajor(diff), nil
}

// Compare returns -1, 0 or 1 depending on whether a is less than, equal to,
// or greater than b once both are rounded to minor units.
func Compare[A, B Amount](a A, b B) (int, error) {
	ma, mb, err := toMinorPair(a, b)
	if err != nil {
		return 0, err
	}
	return cmp.Compare(ma, mb), nil
}

// Format renders amount with the currency's symbol and exactly two decimal
// places, e.g. ("12.5", USD) -> "$12.50". Unknown codes are prefixed with
// "<CODE> ". Unparsable input renders as "<symbol>NaN".
func Format[T Amount](amount T, code Code) string {
	symbol := currency.Symbol(string(code))
	minor, err := ToMinor(amount)
	if err != nil {
		return symbol + "NaN"
	}
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, minor/MinorPerMajor, minor%MinorPerMajor)
}

// IsValid reports whether amount is a finite number in (0, MaxAmount].
func IsValid[T Amount](amount T) bool {
	d, err := parse(amount)
	if err != nil {
		return false
	}
	return d.IsPositive() && d.LessThanOrEqual(maxAmount)
}

// CheckScale returns ErrUnsupportedScale when code's minor unit is not a
// hundredth, which this package would otherwise mis-scale.
func CheckScale(code Code) error {
	if d := currency.Decimals(string(code)); d != 2 {
		return fmt.Errorf("%w: %s uses %d decimal places", ErrUnsupportedScale, code, d)
	}
	return nil
}

func toMinorPair[A, B Amount](a A, b B) (int64, int64, error) {
	ma, err := ToMinor(a)
	if err != nil {
		return 0, 0, err
	}
	mb, err := ToMinor(b)
	if err != nil {
		return 0, 0, err
	}
	return ma, mb, nil
}

func addMinor(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ErrAmountExceedsMaxSafeInt
	}
	return sum, nil
}
