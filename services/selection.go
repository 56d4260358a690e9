package services

import (
	"fmt"
	"math/big"
	"slices"
)

// Point is a decoded share.
type Point struct {
	ID string
	X  *big.Int
	Y  *big.Int
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

// DecodeShares decodes the value of every share. The first failure aborts.
func DecodeShares(shares []Share) ([]Point, error) {
	points := make([]Point, 0, len(shares))
	for _, s := range shares {
		y, err := Decode(s.Value, s.Base)
		if err != nil {
			return nil, fmt.Errorf("share %s: %w", s.ID, err)
		}
		points = append(points, Point{ID: s.ID, X: s.X, Y: y})
	}
	return points, nil
}

// SelectPoints sorts points by ascending x and keeps the first k.
// Equal x-values keep their input order.
func SelectPoints(points []Point, k int) ([]Point, error) {
	if len(points) < k {
		return nil, &InsufficientSharesError{Have: len(points), Need: k}
	}

	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		return a.X.Cmp(b.X)
	})
	return sorted[:k], nil
}
