package sss

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by the reconstruction library.
// Callers match them with errors.Is; concrete failures wrap them with context.
var (
	ErrInvalidBase        = errors.New("invalid base")
	ErrMalformedValue     = errors.New("malformed value")
	ErrOverflow           = errors.New("value overflows int64")
	ErrInvalidMetadata    = errors.New("invalid metadata")
	ErrDuplicateX         = errors.New("duplicate x coordinate")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrSingularMatrix     = errors.New("singular matrix")
	ErrUnsupportedCurve   = errors.New("unsupported curve")
)

// SubsetError reports a failure confined to a single k-subset.
// The run that produced it keeps going with the remaining subsets.
type SubsetError struct {
	Index int
	Xs    []int64
	Err   error
}

func (e *SubsetError) Error() string {
	return fmt.Sprintf("subset %d (x=%s): %v", e.Index, joinXs(e.Xs), e.Err)
}

func (e *SubsetError) Unwrap() error {
	return e.Err
}

// NewSubsetError records the x coordinates of the subset that failed.
func NewSubsetError(index int, subset Subset, err error) *SubsetError {
	return &SubsetError{
		Index: index,
		Xs:    subset.Xs(),
		Err:   err,
	}
}

// Blame marks a share as a likely source of disagreement between subsets.
type Blame struct {
	X      int64  `json:"x"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (b *Blame) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("blame share x=%d: %s: %v", b.X, b.Reason, b.Err)
	}
	return fmt.Sprintf("blame share x=%d: %s", b.X, b.Reason)
}

func (b *Blame) Unwrap() error {
	return b.Err
}

// NewBlame creates a new Blame error.
func NewBlame(x int64, reason string, err error) *Blame {
	return &Blame{
		X:      x,
		Reason: reason,
		Err:    err,
	}
}

func joinXs(xs []int64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatInt(x, 10)
	}
	return strings.Join(parts, ",")
}
