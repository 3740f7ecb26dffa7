// Package reconstruct runs the full pipeline over a PointSet: enumerate the
// k-subsets, solve each on a worker pool, aggregate the candidates and report.
package reconstruct

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/smallyu/go-sss-recover/internal/combin"
	"github.com/smallyu/go-sss-recover/internal/config"
	"github.com/smallyu/go-sss-recover/internal/consistency"
	"github.com/smallyu/go-sss-recover/internal/crypto/curves"
	"github.com/smallyu/go-sss-recover/internal/crypto/polynomial"
	"github.com/smallyu/go-sss-recover/internal/linalg"
	"github.com/smallyu/go-sss-recover/internal/protocol/identify"
	"github.com/smallyu/go-sss-recover/pkg/sss"
)

type job struct {
	index  int
	subset sss.Subset
}

// Run reconstructs the secret of set. A nil params uses config.Default and a
// nil logger discards output.
//
// Subsets that cannot be solved are recorded and skipped; only invalid input,
// invalid parameters or ctx cancellation make Run fail.
func Run(ctx context.Context, set *sss.PointSet, params *sss.Parameters, logger *zap.Logger) (*Report, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: nil point set", sss.ErrInvalidArgument)
	}
	if params == nil {
		p := config.Default()
		params = &p
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	n, k := len(set.Points), set.K
	total, ok := combin.Count(n, k)
	if !ok || total > math.MaxInt32 || (params.MaxSubsets > 0 && total > params.MaxSubsets) {
		return nil, fmt.Errorf("%w: C(%d, %d) subsets exceeds the limit of %d", sss.ErrInvalidArgument, n, k, params.MaxSubsets)
	}
	seq, err := combin.Subsets(set.Points, k)
	if err != nil {
		return nil, err
	}

	var curve curves.Curve
	if params.Curve != "" {
		if curve, err = curves.ByName(params.Curve); err != nil {
			return nil, err
		}
	}

	if set.N != 0 && set.N != n {
		logger.Warn("share count differs from declared n", zap.Int("declared", set.N), zap.Int("decoded", n))
	}

	workers := params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > int(total) {
		workers = int(total)
	}
	logger.Debug("starting reconstruction",
		zap.Int("points", n), zap.Int("k", k), zap.Uint64("subsets", total), zap.Int("workers", workers))

	// Each worker writes only the slots of the jobs it receives and its own
	// partial verdict, so neither needs locking.
	results := make([]SubsetResult, total)
	partials := make([]consistency.Verdict, workers)
	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var candidates []int64
			for j := range jobs {
				res := solve(j.index, j.subset, params.CrossCheck, logger)
				results[j.index] = res
				if !res.Skipped() {
					candidates = append(candidates, res.Secret)
				}
			}
			partials[w] = consistency.Aggregate(candidates)
		}(w)
	}

	var cancelled error
	index := 0
	for subset := range seq {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		select {
		case jobs <- job{index: index, subset: subset}:
			index++
		case <-ctx.Done():
			cancelled = ctx.Err()
		}
		if cancelled != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	report := &Report{
		Points:  set.Points,
		K:       k,
		N:       set.N,
		Subsets: results,
		Verdict: consistency.Aggregate(nil),
	}
	for _, partial := range partials {
		report.Verdict = consistency.Merge(report.Verdict, partial)
	}
	aggregate(report, logger)

	if curve != nil && report.Verdict.Unique {
		fingerprint(report, curve, params.ExpectedFingerprint, logger)
	}
	return report, nil
}

func solve(index int, subset sss.Subset, crossCheck bool, logger *zap.Logger) SubsetResult {
	res := SubsetResult{Index: index, Points: subset}

	coeffs, err := linalg.Solve(subset)
	var secret int64
	if err == nil {
		secret, err = consistency.Round(coeffs.Constant())
	}
	if err != nil {
		res.Err = sss.NewSubsetError(index, subset, err)
		res.Error = res.Err.Error()
		logger.Warn("skipping subset", zap.Int("index", index), zap.Int64s("xs", subset.Xs()), zap.Error(err))
		return res
	}
	res.Coefficients = coeffs
	res.Secret = secret

	if crossCheck {
		exact, err := polynomial.ConstantTerm(subset)
		if err != nil {
			logger.Warn("exact cross-check failed", zap.Int("index", index), zap.Error(err))
		} else {
			res.Exact = exact.RatString()
			if want := roundRat(exact); !want.IsInt64() || want.Int64() != secret {
				res.PrecisionLoss = true
				logger.Warn("floating point constant term disagrees with exact value",
					zap.Int("index", index), zap.Int64("float", secret), zap.String("exact", res.Exact))
			}
		}
	}

	logger.Debug("solved subset", zap.Int("index", index), zap.Int64s("xs", subset.Xs()),
		zap.Int("degree", coeffs.Degree()), zap.Int64("secret", secret))
	return res
}

// aggregate inspects the merged verdict, counts skipped subsets and looks
// for suspects when the candidates disagree.
func aggregate(report *Report, logger *zap.Logger) {
	outcomes := make([]identify.Outcome, 0, len(report.Subsets))
	for i := range report.Subsets {
		r := &report.Subsets[i]
		if r.Skipped() {
			report.Skipped++
			continue
		}
		outcomes = append(outcomes, identify.Outcome{Xs: r.Points.Xs(), Secret: r.Secret})
	}

	switch {
	case len(outcomes) == 0:
		logger.Error("no subset could be solved", zap.Int("skipped", report.Skipped))
	case report.Verdict.Unique:
		logger.Info("subsets agree", zap.Int64("secret", report.Verdict.Secret), zap.Int("subsets", len(outcomes)))
	default:
		logger.Warn("subsets disagree, shares may be inconsistent", zap.Int64s("candidates", report.Verdict.Values))
		blames, majority, ok := identify.Suspects(report.Points, outcomes)
		if ok {
			report.Majority = &majority
			report.Suspects = blames
			for _, b := range blames {
				logger.Warn("suspect share", zap.Int64("x", b.X), zap.String("reason", b.Reason))
			}
		}
	}
}

func fingerprint(report *Report, curve curves.Curve, expected string, logger *zap.Logger) {
	fp, err := curves.FingerprintHex(curve, report.Verdict.Secret)
	if err != nil {
		logger.Warn("cannot fingerprint secret", zap.String("curve", curve.Name()), zap.Error(err))
		return
	}
	report.Curve = curve.Name()
	report.Fingerprint = fp

	if expected != "" {
		match := fp == expected
		report.FingerprintMatch = &match
		if !match {
			logger.Warn("secret does not match expected fingerprint",
				zap.String("curve", curve.Name()), zap.String("expected", expected), zap.String("got", fp))
		}
	}
}

// roundRat rounds r to the nearest integer, halves away from zero.
func roundRat(r *big.Rat) *big.Int {
	num := new(big.Int).Abs(r.Num())
	den := r.Denom()

	// floor((2|num| + den) / 2den)
	q := new(big.Int).Lsh(num, 1)
	q.Add(q, den)
	q.Quo(q, new(big.Int).Lsh(den, 1))
	if r.Sign() < 0 {
		q.Neg(q)
	}
	return q
}
