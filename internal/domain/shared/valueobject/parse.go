package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses operator-entered numeric input into a decimal.
// Serbian keyboards produce a comma as decimal separator, so both "15,50"
// and "15.50" are accepted. Invalid input is rejected with an error rather
// than coerced to zero.
func ParseAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty numeric input")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		return decimal.Decimal{}, fmt.Errorf("invalid numeric input %q", input)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid numeric input %q", input)
	}
	return d, nil
}

// ParseNonNegativeAmount parses numeric input and rejects negative values
func ParseNonNegativeAmount(input string) (decimal.Decimal, error) {
	d, err := ParseAmount(input)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("amount cannot be negative: %q", input)
	}
	return d, nil
}

// ParsePercent parses a percentage in [0,100], accepting comma or dot
// decimal separators
func ParsePercent(input string) (decimal.Decimal, error) {
	d, err := ParseAmount(input)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Decimal{}, fmt.Errorf("percentage must be between 0 and 100, got %q", input)
	}
	return d, nil
}
