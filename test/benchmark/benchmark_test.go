package benchmark

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/smallyu/go-sss-recover/internal/combin"
	"github.com/smallyu/go-sss-recover/internal/crypto/polynomial"
	"github.com/smallyu/go-sss-recover/internal/encoding/basen"
	"github.com/smallyu/go-sss-recover/internal/linalg"
	"github.com/smallyu/go-sss-recover/internal/protocol/reconstruct"
	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// setupShares evaluates a random degree k-1 polynomial at x = 1..n.
func setupShares(b *testing.B, n, k int) *sss.PointSet {
	b.Helper()
	poly, err := polynomial.New(nil, k-1, big.NewInt(123456789), big.NewInt(20))
	if err != nil {
		b.Fatalf("Polynomial generation failed: %v", err)
	}
	xs := make([]int64, n)
	for i := range xs {
		xs[i] = int64(i + 1)
	}
	points, err := poly.Shares(xs)
	if err != nil {
		b.Fatalf("Share evaluation failed: %v", err)
	}
	set, err := sss.NewPointSet(points, k)
	if err != nil {
		b.Fatalf("Invalid point set: %v", err)
	}
	return set
}

func benchmarkRun(b *testing.B, n, k, workers int) {
	set := setupShares(b, n, k)
	params := &sss.Parameters{Workers: workers}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reconstruct.Run(context.Background(), set, params, nil); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func BenchmarkRun6of10(b *testing.B) {
	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			benchmarkRun(b, 10, 6, workers)
		})
	}
}

func BenchmarkRun5of14(b *testing.B) {
	for _, workers := range []int{1, 4, 0} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			benchmarkRun(b, 14, 5, workers)
		})
	}
}

func BenchmarkRunCrossCheck(b *testing.B) {
	set := setupShares(b, 10, 6)
	params := &sss.Parameters{Workers: 4, CrossCheck: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reconstruct.Run(context.Background(), set, params, nil); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func BenchmarkSolve(b *testing.B) {
	for _, k := range []int{3, 6, 10} {
		set := setupShares(b, k, k)
		b.Run(fmt.Sprintf("k=%d", k), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := linalg.Solve(set.Points); err != nil {
					b.Fatalf("Solve failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkConstantTerm(b *testing.B) {
	set := setupShares(b, 6, 6)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := polynomial.ConstantTerm(set.Points); err != nil {
			b.Fatalf("ConstantTerm failed: %v", err)
		}
	}
}

func BenchmarkSubsets(b *testing.B) {
	set := setupShares(b, 16, 8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seq, err := combin.Subsets(set.Points, set.K)
		if err != nil {
			b.Fatalf("Subsets failed: %v", err)
		}
		for range seq {
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	for _, base := range []int{2, 10, 16, 36} {
		value, err := basen.Encode(1<<40+12345, base)
		if err != nil {
			b.Fatalf("Encode failed: %v", err)
		}
		b.Run(fmt.Sprintf("base=%d", base), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := basen.Decode(value, base); err != nil {
					b.Fatalf("Decode failed: %v", err)
				}
			}
		})
	}
}
