package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the number of decimal places of one QUAI (1 QUAI = 10^18 wei).
const Decimals = 18

// Symbol is the ticker shown next to amounts.
const Symbol = "QUAI"

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// FormatQuai converts wei to a decimal string with trailing zeros trimmed,
// keeping at least one fractional digit ("1.5", "0.0").
func FormatQuai(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	sign := ""
	v := new(big.Int).Set(wei)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	whole, frac := new(big.Int).QuoRem(v, unit, new(big.Int))
	fracStr := frac.String()
	fracStr = strings.Repeat("0", Decimals-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		fracStr = "0"
	}
	return sign + whole.String() + "." + fracStr
}

// ParseQuai converts a decimal QUAI amount to wei. A comma is accepted as
// the decimal separator.
func ParseQuai(s string) (*big.Int, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative amount")
	}
	s = strings.TrimPrefix(s, "+")

	parts := strings.SplitN(s, ".", 2)
	wholeStr := parts[0]
	fracStr := ""
	if len(parts) == 2 {
		fracStr = parts[1]
	}
	if wholeStr == "" && fracStr == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if wholeStr == "" {
		wholeStr = "0"
	}
	if len(fracStr) > Decimals {
		return nil, fmt.Errorf("too many decimal places (max %d)", Decimals)
	}
	if !isDigits(wholeStr) || !isDigits(fracStr) {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	whole, _ := new(big.Int).SetString(wholeStr, 10)
	result := new(big.Int).Mul(whole, unit)
	if fracStr != "" {
		fracStr += strings.Repeat("0", Decimals-len(fracStr))
		frac, _ := new(big.Int).SetString(fracStr, 10)
		result.Add(result, frac)
	}
	return result, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
