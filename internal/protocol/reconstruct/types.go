package reconstruct

import (
	"github.com/smallyu/go-sss-recover/internal/consistency"
	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// SubsetResult is the outcome of solving one k-subset.
type SubsetResult struct {
	// Index is the position of the subset in enumeration order.
	Index  int        `json:"index"`
	Points sss.Subset `json:"points"`

	Coefficients sss.Coefficients `json:"coefficients,omitempty"`
	Secret       int64            `json:"secret"`

	// Exact is the rational constant term, set when cross-checking.
	Exact string `json:"exact,omitempty"`
	// PrecisionLoss reports that rounding the exact constant term gives a
	// different integer than rounding the floating point one.
	PrecisionLoss bool `json:"precision_loss,omitempty"`

	// Err is non-nil when the subset was skipped. It wraps *sss.SubsetError.
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// Skipped reports whether the subset produced no candidate.
func (r *SubsetResult) Skipped() bool {
	return r.Err != nil
}

// Report is everything a reconstruction run found out.
type Report struct {
	Points []sss.Point `json:"points"`
	K      int         `json:"k"`
	N      int         `json:"n"`

	// Subsets holds one result per k-subset, in enumeration order.
	Subsets []SubsetResult `json:"subsets"`
	Skipped int            `json:"skipped"`

	Verdict consistency.Verdict `json:"verdict"`

	// Majority and Suspects are filled in when subsets disagree and one
	// candidate wins a strict majority.
	Majority *int64       `json:"majority,omitempty"`
	Suspects []*sss.Blame `json:"suspects,omitempty"`

	Curve            string `json:"curve,omitempty"`
	Fingerprint      string `json:"fingerprint,omitempty"`
	FingerprintMatch *bool  `json:"fingerprint_match,omitempty"`
}

// Consistent is true when every solved subset agreed on one secret and,
// if an expected fingerprint was configured, the secret matches it.
func (r *Report) Consistent() bool {
	if !r.Verdict.Unique {
		return false
	}
	return r.FingerprintMatch == nil || *r.FingerprintMatch
}

// Secret returns the agreed secret and whether there is one.
func (r *Report) Secret() (int64, bool) {
	return r.Verdict.Secret, r.Verdict.Unique
}
