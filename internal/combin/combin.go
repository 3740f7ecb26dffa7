// Package combin enumerates the k-combinations of a point collection.
package combin

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// Subsets returns every k-combination of points in lexicographic order of
// index positions: {0,1,..,k-1}, {0,1,..,k}, ..., {n-k,..,n-1}.
//
// Each yielded Subset is freshly allocated and owned by the caller. The
// sequence holds no state between ranges, so it can be ranged repeatedly.
func Subsets(points []sss.Point, k int) (iter.Seq[sss.Subset], error) {
	n := len(points)
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d with %d points", sss.ErrInvalidArgument, k, n)
	}

	return func(yield func(sss.Subset) bool) {
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}

		for {
			subset := make(sss.Subset, k)
			for i, j := range idx {
				subset[i] = points[j]
			}
			if !yield(subset) {
				return
			}

			// Find the rightmost cursor that can still move right.
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}, nil
}

// Count returns C(n, k). ok is false when the result does not fit in uint64.
func Count(n, k int) (count uint64, ok bool) {
	if k < 0 || n < 0 || k > n {
		return 0, true
	}
	if k > n-k {
		k = n - k
	}

	count = 1
	for i := 1; i <= k; i++ {
		// count * (n-k+i) / i stays integral at every step.
		hi, lo := bits.Mul64(count, uint64(n-k+i))
		if hi >= uint64(i) {
			return 0, false
		}
		count, _ = bits.Div64(hi, lo, uint64(i))
	}
	return count, true
}
