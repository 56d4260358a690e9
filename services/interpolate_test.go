package services

import (
	"math/big"
	"math/rand"
	"testing"

	"threshold-secret-solver/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xy ...int64) []Point {
	points := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		points = append(points, Point{X: big.NewInt(xy[i]), Y: big.NewInt(xy[i+1])})
	}
	return points
}

func TestInterpolate_Quadratic(t *testing.T) {
	// y = x^2 + 3
	res, err := Interpolate(pts(1, 4, 2, 7, 3, 12), nil)
	require.NoError(t, err)
	assert.True(t, res.Exact())
	assert.Equal(t, int64(3), res.Secret.Int64())
}

func TestInterpolate_Line(t *testing.T) {
	// y = 4x
	res, err := Interpolate(pts(1, 4, 3, 12), nil)
	require.NoError(t, err)
	assert.True(t, res.Exact())
	assert.Equal(t, int64(0), res.Secret.Int64())
}

func TestInterpolate_SinglePoint(t *testing.T) {
	res, err := Interpolate(pts(5, 42), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.Secret.Int64())
}

func TestInterpolate_DuplicateX(t *testing.T) {
	_, err := Interpolate(pts(1, 4, 2, 7, 2, 9), nil)

	var inconsistent *InconsistentSharesError
	require.ErrorAs(t, err, &inconsistent)
	assert.Equal(t, int64(2), inconsistent.X.Int64())
}

func TestInterpolate_Empty(t *testing.T) {
	_, err := Interpolate(nil, nil)

	var insufficient *InsufficientSharesError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Have)
}

func TestInterpolate_NonInteger(t *testing.T) {
	cases := []struct {
		points   []Point
		num, den int64
		secret   int64
	}{
		// slope 1/2 through (1,0): P(0) = -1/2
		{pts(1, 0, 3, 1), -1, 2, 0},
		// slope -1/2 through (3,0): P(0) = 3/2
		{pts(1, 1, 3, 0), 3, 2, 1},
	}

	for _, tc := range cases {
		res, err := Interpolate(tc.points, nil)
		require.NoError(t, err)
		require.False(t, res.Exact())
		require.NotNil(t, res.Warning)

		assert.Equal(t, tc.num, res.Warning.Numerator.Int64())
		assert.Equal(t, tc.den, res.Warning.Denominator.Int64())
		assert.Equal(t, tc.secret, res.Warning.Truncated.Int64())
		assert.Equal(t, tc.secret, res.Secret.Int64())
	}
}

func TestInterpolate_NegativeCoefficients(t *testing.T) {
	// P(x) = -17 + 5x - 2x^2 + x^3
	poly := &utils.Polynomial{Coeffs: []*big.Int{big.NewInt(-17), big.NewInt(5), big.NewInt(-2), big.NewInt(1)}}

	var points []Point
	for _, x := range []int64{2, 5, 9, 11} {
		bx := big.NewInt(x)
		points = append(points, Point{X: bx, Y: poly.Evaluate(bx)})
	}

	res, err := Interpolate(points, nil)
	require.NoError(t, err)
	assert.True(t, res.Exact())
	assert.Equal(t, int64(-17), res.Secret.Int64())
}

func TestInterpolate_AnySubsetRecoversSecret(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bound := new(big.Int).Lsh(big.NewInt(1), 64)

	for degree := 0; degree <= 7; degree++ {
		secret := big.NewInt(rng.Int63())
		poly, err := utils.NewRandomPolynomial(degree, secret, bound)
		require.NoError(t, err)

		// 12 distinct x-values in 1..60
		xs := rng.Perm(60)[:12]
		all := make([]Point, len(xs))
		for i, x := range xs {
			bx := big.NewInt(int64(x + 1))
			all[i] = Point{X: bx, Y: poly.Evaluate(bx)}
		}

		for trial := 0; trial < 10; trial++ {
			idx := rng.Perm(len(all))[:degree+1]
			subset := make([]Point, len(idx))
			for i, j := range idx {
				subset[i] = all[j]
			}

			res, err := Interpolate(subset, nil)
			require.NoError(t, err)
			require.True(t, res.Exact(), "degree %d trial %d", degree, trial)
			require.Equal(t, 0, res.Secret.Cmp(secret), "degree %d trial %d: got %s want %s", degree, trial, res.Secret, secret)
		}
	}
}

func TestInterpolate_Events(t *testing.T) {
	trace := &Trace{}
	_, err := Interpolate(pts(1, 4, 2, 7, 3, 12), trace)
	require.NoError(t, err)

	terms := trace.Filter(EventTerm)
	require.Len(t, terms, 3)
	for i, ev := range terms {
		assert.Equal(t, i, ev.Index)
		assert.Len(t, ev.Factors, 2)
	}
	// Term 1: 4 * (-2)/(1-2) * (-3)/(1-3) = 24/2
	assert.Equal(t, int64(24), terms[0].Num.Int64())
	assert.Equal(t, int64(2), terms[0].Den.Int64())

	last := trace.Events[len(trace.Events)-1]
	assert.Equal(t, EventResult, last.Kind)
	assert.Equal(t, int64(3), last.Secret.Int64())
	assert.Empty(t, trace.Filter(EventWarning))
}
