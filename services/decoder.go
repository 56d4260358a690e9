package services

import (
	"fmt"
	"math/big"
	"strings"
)

// Alphabet maps digit values to characters. Digit value = index.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Decode converts a digit string in the given base into a big integer.
//
// Bases above 36 reuse the same alphabet, so such a value only decodes when
// every digit is below 36. There is no extended alphabet.
func Decode(value string, base int) (*big.Int, error) {
	if base < 2 {
		return nil, &MalformedInputError{Field: "base", Reason: fmt.Sprintf("base %d is below 2", base)}
	}
	if value == "" {
		return nil, &MalformedInputError{Field: "value", Reason: "empty digit string"}
	}

	result := new(big.Int)
	bigBase := big.NewInt(int64(base))
	digit := new(big.Int)

	for i, c := range strings.ToLower(value) {
		d := strings.IndexRune(Alphabet, c)
		if d < 0 || d >= base {
			return nil, &InvalidDigitError{Char: c, Position: i, Base: base}
		}
		result.Mul(result, bigBase)
		result.Add(result, digit.SetInt64(int64(d)))
	}
	return result, nil
}

// Encode is the inverse of Decode for bases 2..36.
func Encode(v *big.Int, base int) (string, error) {
	if base < 2 || base > len(Alphabet) {
		return "", fmt.Errorf("encode: base %d out of range 2..%d", base, len(Alphabet))
	}
	if v.Sign() == 0 {
		return "0", nil
	}

	n := new(big.Int).Abs(v)
	bigBase := big.NewInt(int64(base))
	rem := new(big.Int)

	var digits []byte
	for n.Sign() > 0 {
		n.QuoRem(n, bigBase, rem)
		digits = append(digits, Alphabet[rem.Int64()])
	}
	if v.Sign() < 0 {
		digits = append(digits, '-')
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}
