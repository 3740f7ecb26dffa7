package sss

import (
	"fmt"
	"sort"
)

// Point is a decoded share: the sample index X and the sample value Y.
type Point struct {
	X int64 `json:"x" yaml:"x"`
	Y int64 `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PointSet is the validated collection of shares for one reconstruction.
// Points are ordered by ascending X and no two points share an X.
type PointSet struct {
	Points []Point `json:"points"`

	// K is the threshold: the number of points that determine the polynomial.
	K int `json:"k"`

	// N is the share count declared by the input. It is informational only,
	// len(Points) may differ from it.
	N int `json:"n"`
}

// NewPointSet copies and sorts points and checks the threshold invariants.
func NewPointSet(points []Point, k int) (*PointSet, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: threshold k=%d must be positive", ErrInvalidMetadata, k)
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].X == sorted[i-1].X {
			return nil, fmt.Errorf("%w: x=%d", ErrDuplicateX, sorted[i].X)
		}
	}

	if len(sorted) < k {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientPoints, k, len(sorted))
	}

	return &PointSet{
		Points: sorted,
		K:      k,
		N:      len(sorted),
	}, nil
}

// Subset is one k-combination of a PointSet, in the order the points appear
// in the set.
type Subset []Point

// Xs returns the x coordinates of the subset.
func (s Subset) Xs() []int64 {
	xs := make([]int64, len(s))
	for i, p := range s {
		xs[i] = p.X
	}
	return xs
}

// Coefficients of an interpolating polynomial in the monomial basis,
// highest degree first: [a_(k-1), ..., a_1, a_0].
type Coefficients []float64

// Constant returns a_0, the secret candidate.
func (c Coefficients) Constant() float64 {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1]
}

// Degree returns the polynomial degree the coefficients describe.
func (c Coefficients) Degree() int {
	return len(c) - 1
}

// Parameters holds the configuration for a reconstruction run.
type Parameters struct {
	Workers             int    `yaml:"workers"`            // Solver goroutines, <= 0 means runtime.NumCPU()
	MaxSubsets          uint64 `yaml:"max_subsets"`        // Upper bound on C(n, k), 0 means unlimited
	Curve               string `yaml:"curve"`              // Fingerprint curve ("secp256k1", "ed25519"), empty disables
	ExpectedFingerprint string `yaml:"expect_fingerprint"` // Hex fingerprint the agreed secret must match
	CrossCheck          bool   `yaml:"cross_check"`        // Recompute every constant term with exact rationals
}
