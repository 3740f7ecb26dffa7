package polynomial

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// Polynomial represents a polynomial f(x) = a_0 + a_1*x + ... + a_t*x^t
// over the integers.
type Polynomial struct {
	Coefficients []*big.Int
}

// New generates a random polynomial of given degree with the constant term (secret) provided.
// Coefficients a_1 ... a_t are drawn uniformly from [0, bound).
// If rng is nil, crypto/rand is used.
func New(rng io.Reader, degree int, secret, bound *big.Int) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: negative degree %d", sss.ErrInvalidArgument, degree)
	}
	if secret == nil {
		return nil, errors.New("polynomial: secret cannot be nil")
	}
	if bound == nil || bound.Sign() <= 0 {
		return nil, fmt.Errorf("%w: coefficient bound must be positive", sss.ErrInvalidArgument)
	}
	if rng == nil {
		rng = rand.Reader
	}

	coeffs := make([]*big.Int, degree+1)
	coeffs[0] = new(big.Int).Set(secret)

	var err error
	for i := 1; i <= degree; i++ {
		coeffs[i], err = rand.Int(rng, bound)
		if err != nil {
			return nil, err
		}
	}

	return &Polynomial{Coefficients: coeffs}, nil
}

// Evaluate calculates f(x) exactly.
func (p *Polynomial) Evaluate(x *big.Int) *big.Int {
	// Horner's method
	degree := len(p.Coefficients) - 1
	result := new(big.Int).Set(p.Coefficients[degree])

	for i := degree - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p.Coefficients[i])
	}

	return result
}

// EvaluateMulti calculates f(x) for multiple x values
func (p *Polynomial) EvaluateMulti(xs []*big.Int) []*big.Int {
	results := make([]*big.Int, len(xs))
	for i, x := range xs {
		results[i] = p.Evaluate(x)
	}
	return results
}

// Shares evaluates the polynomial at each x and returns the resulting points.
// It fails with sss.ErrOverflow if a value does not fit in int64.
func (p *Polynomial) Shares(xs []int64) ([]sss.Point, error) {
	bxs := make([]*big.Int, len(xs))
	for i, x := range xs {
		bxs[i] = big.NewInt(x)
	}

	points := make([]sss.Point, len(xs))
	for i, y := range p.EvaluateMulti(bxs) {
		if !y.IsInt64() {
			return nil, fmt.Errorf("%w: f(%d) = %s", sss.ErrOverflow, xs[i], y)
		}
		points[i] = sss.Point{X: xs[i], Y: y.Int64()}
	}
	return points, nil
}

// ConstantTerm computes f(0) of the polynomial through points with exact
// rational arithmetic:
//
//	f(0) = Σ y_j · Π_{i≠j} x_i / (x_i - x_j)
func ConstantTerm(points []sss.Point) (*big.Rat, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points", sss.ErrInvalidArgument)
	}

	sum := new(big.Rat)
	for j, pj := range points {
		num := big.NewInt(pj.Y)
		den := big.NewInt(1)

		for i, pi := range points {
			if i == j {
				continue
			}
			if pi.X == pj.X {
				return nil, fmt.Errorf("%w: x=%d appears twice", sss.ErrSingularMatrix, pj.X)
			}
			num.Mul(num, big.NewInt(pi.X))
			den.Mul(den, new(big.Int).Sub(big.NewInt(pi.X), big.NewInt(pj.X)))
		}

		sum.Add(sum, new(big.Rat).SetFrac(num, den))
	}
	return sum, nil
}
