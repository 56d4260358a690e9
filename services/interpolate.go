package services

import (
	"math/big"
)

// Result of interpolating at x = 0.
type Result struct {
	// Secret is the exact value, or the truncated quotient when Warning is set.
	Secret   *big.Int
	Fraction Accumulator
	Warning  *NonIntegerResultWarning
}

// Exact reports whether the interpolated value was an integer.
func (r Result) Exact() bool {
	return r.Warning == nil
}

type lagrangeTerm struct {
	num     *big.Int
	den     *big.Int
	factors []Factor
}

// Interpolate evaluates at 0 the unique polynomial of degree len(points)-1
// through points, using exact fractions. obs may be nil.
//
// L_i(0) = prod_{j != i} (0 - x_j) / (x_i - x_j)
// P(0)   = sum_i y_i * L_i(0)
func Interpolate(points []Point, obs Observer) (Result, error) {
	if len(points) == 0 {
		return Result{}, &InsufficientSharesError{Have: 0, Need: 1}
	}
	if obs == nil {
		obs = Observers()
	}

	acc := NewAccumulator()
	for i := range points {
		term, err := termAt(points, i)
		if err != nil {
			return Result{}, err
		}
		obs.Observe(Event{
			Kind:    EventTerm,
			Index:   i,
			Point:   points[i],
			Factors: term.factors,
			Num:     term.num,
			Den:     term.den,
		})
		acc = acc.Add(term.num, term.den)
	}

	res := Result{Secret: acc.Quo(), Fraction: acc}
	if !acc.IsInt() {
		res.Warning = &NonIntegerResultWarning{
			Numerator:   acc.Num(),
			Denominator: acc.Den(),
			Truncated:   new(big.Int).Set(res.Secret),
		}
		obs.Observe(Event{Kind: EventWarning, Num: acc.Num(), Den: acc.Den(), Secret: res.Secret})
	}
	obs.Observe(Event{Kind: EventResult, Num: acc.Num(), Den: acc.Den(), Secret: res.Secret})
	return res, nil
}

// termAt builds y_i * L_i(0) as an unreduced fraction.
func termAt(points []Point, i int) (lagrangeTerm, error) {
	xi := points[i].X
	term := lagrangeTerm{
		num:     new(big.Int).Set(points[i].Y),
		den:     big.NewInt(1),
		factors: make([]Factor, 0, len(points)-1),
	}

	diff := new(big.Int)
	neg := new(big.Int)
	for j, p := range points {
		if j == i {
			continue
		}
		diff.Sub(xi, p.X)
		if diff.Sign() == 0 {
			return lagrangeTerm{}, &InconsistentSharesError{X: new(big.Int).Set(xi)}
		}
		term.num.Mul(term.num, neg.Neg(p.X))
		term.den.Mul(term.den, diff)
		term.factors = append(term.factors, Factor{Xi: xi, Xj: p.X})
	}
	return term, nil
}
