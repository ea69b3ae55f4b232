package tokens

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var decimalPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]+$`)

// NormalizeDecimal validates a non-negative decimal string and strips
// redundant zeros, e.g. "01.50" becomes "1.5".
func NormalizeDecimal(v string) (string, error) {
	v = strings.TrimSpace(v)
	if !decimalPattern.MatchString(v) {
		return "", fmt.Errorf("invalid amount %q", v)
	}

	if !strings.Contains(v, ".") {
		out := strings.TrimLeft(v, "0")
		if out == "" {
			return "0", nil
		}
		return out, nil
	}

	parts := strings.SplitN(v, ".", 2)
	intPart := strings.TrimLeft(parts[0], "0")
	if intPart == "" {
		intPart = "0"
	}
	fracPart := strings.TrimRight(parts[1], "0")
	if fracPart == "" {
		return intPart, nil
	}
	return intPart + "." + fracPart, nil
}

// ToBaseUnits converts a decimal amount to the token's integer base units.
func ToBaseUnits(decimal string, decimals uint8) (*big.Int, error) {
	norm, err := NormalizeDecimal(decimal)
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(norm, ".", 2)
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if len(fracPart) > int(decimals) {
		return nil, fmt.Errorf("amount %s exceeds token precision of %d decimals", norm, decimals)
	}

	combined := parts[0] + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	n, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", decimal)
	}
	return n, nil
}

func IsZero(decimal string) bool {
	norm, err := NormalizeDecimal(decimal)
	return err == nil && norm == "0"
}
