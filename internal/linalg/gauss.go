// Package linalg solves the interpolation system of a k-subset with
// Gaussian elimination and partial pivoting.
package linalg

import (
	"fmt"
	"math"

	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// Solve returns the coefficients, highest degree first, of the unique
// polynomial of degree len(subset)-1 passing through every point of subset.
func Solve(subset sss.Subset) (sss.Coefficients, error) {
	if len(subset) == 0 {
		return nil, fmt.Errorf("%w: empty subset", sss.ErrInvalidArgument)
	}

	seen := make(map[int64]struct{}, len(subset))
	for _, p := range subset {
		if _, dup := seen[p.X]; dup {
			return nil, fmt.Errorf("%w: x=%d appears twice", sss.ErrSingularMatrix, p.X)
		}
		seen[p.X] = struct{}{}
	}

	x, err := SolveSystem(Vandermonde(subset))
	if err != nil {
		return nil, err
	}
	return sss.Coefficients(x), nil
}

// Vandermonde builds the design matrix A with rows [x^(k-1), ..., x, 1] and
// the right-hand side B with B[i] = y_i.
func Vandermonde(subset sss.Subset) ([][]float64, []float64) {
	k := len(subset)
	a := make([][]float64, k)
	b := make([]float64, k)
	for i, p := range subset {
		row := make([]float64, k)
		x := float64(p.X)
		pow := 1.0
		for j := k - 1; j >= 0; j-- {
			row[j] = pow
			pow *= x
		}
		a[i] = row
		b[i] = float64(p.Y)
	}
	return a, b
}

// SolveSystem solves the square system a·x = b. The inputs are not modified.
func SolveSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	if n == 0 || len(a) != n {
		return nil, fmt.Errorf("%w: %d rows for %d right-hand values", sss.ErrInvalidArgument, len(a), n)
	}

	ac := make([][]float64, n)
	for i, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", sss.ErrInvalidArgument, i, len(row), n)
		}
		ac[i] = append([]float64(nil), row...)
	}
	bc := append([]float64(nil), b...)

	return solveInPlace(ac, bc)
}

func solveInPlace(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)

	// Forward elimination
	for i := 0; i < n; i++ {
		// Partial pivoting
		maxRow := i
		for j := i + 1; j < n; j++ {
			if math.Abs(a[j][i]) > math.Abs(a[maxRow][i]) {
				maxRow = j
			}
		}
		a[i], a[maxRow] = a[maxRow], a[i]
		b[i], b[maxRow] = b[maxRow], b[i]

		// Pivots for large x are tiny but valid. Only zero or non-finite
		// pivots are singular.
		pivot := a[i][i]
		if !finite(pivot) || pivot == 0 {
			return nil, fmt.Errorf("%w: pivot %g in column %d", sss.ErrSingularMatrix, pivot, i)
		}

		// Eliminate below
		for j := i + 1; j < n; j++ {
			factor := a[j][i] / pivot
			if factor == 0 {
				continue
			}
			b[j] -= factor * b[i]
			for c := i; c < n; c++ {
				a[j][c] -= factor * a[i][c]
			}
		}
	}

	// Back substitution
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * x[j]
		}
		x[i] = sum / a[i][i]
		if !finite(x[i]) {
			return nil, fmt.Errorf("%w: coefficient %d is %g", sss.ErrSingularMatrix, i, x[i])
		}
	}
	return x, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
