// Package identify points at the shares most likely responsible when
// subsets disagree on the secret.
//
// With at least k honest shares, every subset made only of honest shares
// yields the true secret, so that value wins a strict majority whenever the
// corrupted shares are few. A share that never takes part in a subset
// producing the majority value is reported as suspect.
package identify

import (
	"fmt"
	"sort"

	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// Outcome is the secret candidate produced by one subset.
type Outcome struct {
	Xs     []int64
	Secret int64
}

// Majority returns the candidate produced by strictly more subsets than any
// other. ok is false when outcomes is empty or the top count is tied.
func Majority(outcomes []Outcome) (secret int64, count int, ok bool) {
	counts := make(map[int64]int)
	for _, o := range outcomes {
		counts[o.Secret]++
	}

	tied := false
	for v, n := range counts {
		switch {
		case n > count:
			secret, count, tied = v, n, false
		case n == count:
			tied = true
		}
	}
	if count == 0 || tied {
		return 0, 0, false
	}
	return secret, count, true
}

// Suspects blames every point that appears in no subset agreeing with the
// majority candidate. It returns the majority value and whether one exists;
// without a majority nobody is blamed.
func Suspects(points []sss.Point, outcomes []Outcome) ([]*sss.Blame, int64, bool) {
	majority, count, ok := Majority(outcomes)
	if !ok {
		return nil, 0, false
	}

	vouched := make(map[int64]bool, len(points))
	for _, o := range outcomes {
		if o.Secret != majority {
			continue
		}
		for _, x := range o.Xs {
			vouched[x] = true
		}
	}

	var blames []*sss.Blame
	for _, p := range points {
		if vouched[p.X] {
			continue
		}
		reason := fmt.Sprintf("in no subset agreeing on majority secret %d (%d of %d subsets)", majority, count, len(outcomes))
		blames = append(blames, sss.NewBlame(p.X, reason, nil))
	}
	sort.Slice(blames, func(i, j int) bool { return blames[i].X < blames[j].X })

	return blames, majority, true
}
