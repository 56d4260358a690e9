package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Polynomial is a univariate polynomial with integer coefficients, in
// increasing order of degree: a_0 + a_1*x + ... + a_t*x^t.
// Nothing is reduced modulo a prime.
type Polynomial struct {
	Coeffs []*big.Int
}

// Degree returns len(Coeffs)-1.
func (p *Polynomial) Degree() int {
	return len(p.Coeffs) - 1
}

// Secret returns the constant term.
func (p *Polynomial) Secret() *big.Int {
	if len(p.Coeffs) == 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(p.Coeffs[0])
}

// Evaluate evaluates the polynomial at x.
func (p *Polynomial) Evaluate(x *big.Int) *big.Int {
	result := big.NewInt(0)
	// Horner's method
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p.Coeffs[i])
	}
	return result
}

// NewRandomPolynomial returns a polynomial of the given degree with constant
// term secret and the other coefficients drawn uniformly from [0, bound).
// The leading coefficient is nonzero.
func NewRandomPolynomial(degree int, secret, bound *big.Int) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("degree %d is negative", degree)
	}
	if bound.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("coefficient bound %s is below 2", bound)
	}

	coeffs := make([]*big.Int, degree+1)
	coeffs[0] = new(big.Int).Set(secret)
	for i := 1; i <= degree; i++ {
		c, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return nil, err
		}
		if i == degree && c.Sign() == 0 {
			c.SetInt64(1)
		}
		coeffs[i] = c
	}
	return &Polynomial{Coeffs: coeffs}, nil
}
