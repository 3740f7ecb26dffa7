// Package basen converts share values between their positional string
// encoding and int64.
package basen

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/smallyu/go-sss-recover/pkg/sss"
)

const (
	MinBase = 2
	MaxBase = 36
)

// Decode parses value as a non-negative integer written in base.
//
// value must consist only of digits valid in base (0-9, then a-z or A-Z).
// Signs, underscores and whitespace are rejected, never stripped: callers
// that accept padded input must trim it themselves.
func Decode(value string, base int) (int64, error) {
	if base < MinBase || base > MaxBase {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", sss.ErrInvalidBase, base, MinBase, MaxBase)
	}
	if value == "" {
		return 0, fmt.Errorf("%w: empty value", sss.ErrMalformedValue)
	}
	for i := 0; i < len(value); i++ {
		d, ok := digit(value[i])
		if !ok || d >= base {
			return 0, fmt.Errorf("%w: %q has invalid digit %q for base %d", sss.ErrMalformedValue, value, value[i], base)
		}
	}

	// Every byte is a valid digit, so the only failure left is range.
	v, err := strconv.ParseInt(value, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q in base %d", sss.ErrOverflow, value, base)
		}
		return 0, fmt.Errorf("%w: %v", sss.ErrMalformedValue, err)
	}
	return v, nil
}

// Encode writes a non-negative v in base using lowercase digits.
func Encode(v int64, base int) (string, error) {
	if base < MinBase || base > MaxBase {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", sss.ErrInvalidBase, base, MinBase, MaxBase)
	}
	if v < 0 {
		return "", fmt.Errorf("%w: negative value %d has no digit-only encoding", sss.ErrMalformedValue, v)
	}
	return strconv.FormatInt(v, base), nil
}

func digit(c byte) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10, true
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10, true
	}
	return 0, false
}
