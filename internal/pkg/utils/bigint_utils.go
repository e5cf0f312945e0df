package utils

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrInvalidDecimal is returned for strings that are not plain non-negative decimals.
	ErrInvalidDecimal = errors.New("invalid decimal string")
	// ErrTooManyDecimals is returned when the fractional part is longer than the token allows.
	ErrTooManyDecimals = errors.New("too many decimal places")
)

var ten = big.NewInt(10)

// Pow10 returns 10^decimals.
func Pow10(decimals uint8) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(decimals)), nil)
}

// IsDecimalString reports whether s is a non-negative decimal such as "1", "1.5", ".5" or "5.".
func IsDecimalString(s string) bool {
	_, _, ok := splitDecimal(s)
	return ok
}

func splitDecimal(s string) (string, string, bool) {
	if s == "" || s == "." {
		return "", "", false
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	for _, part := range []string{intPart, fracPart} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return "", "", false
			}
		}
	}
	return intPart, fracPart, true
}

// ParseUnits scales a human decimal amount into smallest units using integer math only.
// Example: value="1.5", decimals=6 => 1500000
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	intPart, fracPart, ok := splitDecimal(value)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, value)
	}
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has more than %d", ErrTooManyDecimals, value, decimals)
	}

	digits := intPart + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return new(big.Int), nil
	}
	result, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, value)
	}
	return result, nil
}

// ParseInteger parses a non-negative base-10 integer string.
func ParseInteger(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidDecimal)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidDecimal, value)
		}
	}
	result, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, value)
	}
	return result, nil
}

// FormatUnits converts a smallest-unit integer into an exact decimal string.
// Trailing fractional zeros are dropped.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}

	negative := amount.Sign() < 0
	digits := new(big.Int).Abs(amount).String()
	if pad := int(decimals) + 1 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	split := len(digits) - int(decimals)
	intPart, fracPart := digits[:split], strings.TrimRight(digits[split:], "0")

	formatted := intPart
	if fracPart != "" {
		formatted += "." + fracPart
	}
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

// TruncateDecimals cuts a decimal string to at most places fractional digits without rounding.
func TruncateDecimals(formatted string, places int) string {
	intPart, fracPart, found := strings.Cut(formatted, ".")
	if !found {
		return formatted
	}
	if len(fracPart) > places {
		fracPart = fracPart[:places]
	}
	fracPart = strings.TrimRight(fracPart, "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

// CalculateValueUSD multiplies an exact token amount by a price.
// Only the final product is converted to float64.
func CalculateValueUSD(amount *big.Int, decimals uint8, priceUSD float64) float64 {
	if amount == nil || amount.Sign() == 0 || priceUSD <= 0 {
		return 0
	}
	price := new(big.Rat)
	if price.SetFloat64(priceUSD) == nil {
		return 0
	}
	value := new(big.Rat).SetFrac(amount, Pow10(decimals))
	value.Mul(value, price)
	f, _ := value.Float64()
	return f
}

// FormatUSD renders a dollar amount with two decimals.
func FormatUSD(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}
