// Package consistency collects secret candidates across subsets and decides
// whether the shares agree.
package consistency

import (
	"fmt"
	"math"
	"sort"

	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// Verdict is the outcome of aggregating secret candidates.
type Verdict struct {
	// Unique is true when every candidate had the same value.
	Unique bool `json:"unique"`

	// Secret is the agreed value. Only meaningful when Unique is set.
	Secret int64 `json:"secret"`

	// Values holds the distinct candidates in ascending order.
	Values []int64 `json:"values"`

	// Counts maps each distinct candidate to the number of subsets producing it.
	Counts map[int64]int `json:"counts"`
}

// Aggregate collapses candidates into a Verdict. It does not retain or
// modify the input.
func Aggregate(candidates []int64) Verdict {
	counts := make(map[int64]int, len(candidates))
	for _, c := range candidates {
		counts[c]++
	}
	return fromCounts(counts)
}

// Merge combines two verdicts as if their candidates had been aggregated
// together. It is commutative and associative.
func Merge(a, b Verdict) Verdict {
	counts := make(map[int64]int, len(a.Counts)+len(b.Counts))
	for v, n := range a.Counts {
		counts[v] += n
	}
	for v, n := range b.Counts {
		counts[v] += n
	}
	return fromCounts(counts)
}

func fromCounts(counts map[int64]int) Verdict {
	values := make([]int64, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	verdict := Verdict{
		Unique: len(values) == 1,
		Values: values,
		Counts: counts,
	}
	if verdict.Unique {
		verdict.Secret = values[0]
	}
	return verdict
}

// Round converts a real constant term to the nearest integer, halves away
// from zero.
func Round(v float64) (int64, error) {
	r := math.Round(v)
	if math.IsNaN(r) || r < math.MinInt64 || r >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: constant term %g", sss.ErrOverflow, v)
	}
	return int64(r), nil
}
