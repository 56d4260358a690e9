package services

import (
	"fmt"
	"math/big"
)

// Accumulator is a fraction kept in lowest terms. The denominator is always
// positive; the numerator carries the sign. Add returns a new value and never
// modifies its receiver.
type Accumulator struct {
	num *big.Int
	den *big.Int
}

// NewAccumulator returns 0/1.
func NewAccumulator() Accumulator {
	return Accumulator{num: new(big.Int), den: big.NewInt(1)}
}

// Add returns acc + num/den reduced. den must be nonzero.
func (acc Accumulator) Add(num, den *big.Int) Accumulator {
	// newNum = accNum*den + num*accDen
	newNum := new(big.Int).Mul(acc.num, den)
	newNum.Add(newNum, new(big.Int).Mul(num, acc.den))
	newDen := new(big.Int).Mul(acc.den, den)
	return reduce(newNum, newDen)
}

func reduce(num, den *big.Int) Accumulator {
	if num.Sign() == 0 {
		return Accumulator{num: num, den: big.NewInt(1)}
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}

	// GCD of the absolute values is positive.
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	if g.Cmp(big.NewInt(1)) != 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	return Accumulator{num: num, den: den}
}

// Num returns a copy of the numerator.
func (acc Accumulator) Num() *big.Int {
	return new(big.Int).Set(acc.num)
}

// Den returns a copy of the denominator.
func (acc Accumulator) Den() *big.Int {
	return new(big.Int).Set(acc.den)
}

// IsInt reports whether the denominator divides the numerator.
func (acc Accumulator) IsInt() bool {
	return acc.den.Cmp(big.NewInt(1)) == 0
}

// Quo returns the quotient truncated toward zero.
func (acc Accumulator) Quo() *big.Int {
	return new(big.Int).Quo(acc.num, acc.den)
}

func (acc Accumulator) String() string {
	return fmt.Sprintf("%s/%s", acc.num, acc.den)
}
