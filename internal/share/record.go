// Package share turns a loosely-typed input record into a validated
// sss.PointSet.
//
// The record is the decoded form of
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1":    {"base": "10", "value": "4"},
//	  "2":    {"base": 2,    "value": "111"},
//	  ...
//	}
//
// where every key other than "keys" is the decimal x coordinate of a share.
package share

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/smallyu/go-sss-recover/internal/encoding/basen"
	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// KeysField is the reserved record key holding the n/k metadata.
const KeysField = "keys"

// Record is a generic key/value record as produced by a JSON or YAML decoder.
type Record map[string]any

// FromRecord validates rec and decodes its shares.
func FromRecord(rec Record) (*sss.PointSet, error) {
	n, k, err := metadata(rec)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(rec))
	for key := range rec {
		if key != KeysField {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	points := make([]sss.Point, 0, len(keys))
	seen := make(map[int64]string, len(keys))
	for _, key := range keys {
		p, err := decodeEntry(key, rec[key])
		if err != nil {
			return nil, fmt.Errorf("share %q: %w", key, err)
		}
		if prev, dup := seen[p.X]; dup {
			return nil, fmt.Errorf("%w: keys %q and %q both give x=%d", sss.ErrDuplicateX, prev, key, p.X)
		}
		seen[p.X] = key
		points = append(points, p)
	}

	set, err := sss.NewPointSet(points, k)
	if err != nil {
		return nil, err
	}
	set.N = n
	return set, nil
}

// ToRecord renders set back into a record with every value encoded in base.
func ToRecord(set *sss.PointSet, base int) (Record, error) {
	rec := Record{
		KeysField: map[string]any{"n": set.N, "k": set.K},
	}
	for _, p := range set.Points {
		value, err := basen.Encode(p.Y, base)
		if err != nil {
			return nil, fmt.Errorf("share x=%d: %w", p.X, err)
		}
		rec[strconv.FormatInt(p.X, 10)] = map[string]any{
			"base":  strconv.Itoa(base),
			"value": value,
		}
	}
	return rec, nil
}

func metadata(rec Record) (n, k int, err error) {
	raw, ok := rec[KeysField]
	if !ok {
		return 0, 0, fmt.Errorf("%w: missing %q", sss.ErrInvalidMetadata, KeysField)
	}
	meta, ok := asMap(raw)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q is %T, want an object", sss.ErrInvalidMetadata, KeysField, raw)
	}

	n64, ok := asInt(meta["n"])
	if !ok {
		return 0, 0, fmt.Errorf("%w: n=%v is not an integer", sss.ErrInvalidMetadata, meta["n"])
	}
	k64, ok := asInt(meta["k"])
	if !ok {
		return 0, 0, fmt.Errorf("%w: k=%v is not an integer", sss.ErrInvalidMetadata, meta["k"])
	}
	if n64 <= 0 || k64 <= 0 || k64 > n64 || n64 > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: need 0 < k <= n, got n=%d k=%d", sss.ErrInvalidMetadata, n64, k64)
	}
	return int(n64), int(k64), nil
}

func decodeEntry(key string, raw any) (sss.Point, error) {
	x, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return sss.Point{}, fmt.Errorf("%w: key is not a decimal x coordinate", sss.ErrMalformedValue)
	}

	entry, ok := asMap(raw)
	if !ok {
		return sss.Point{}, fmt.Errorf("%w: entry is %T, want an object", sss.ErrMalformedValue, raw)
	}

	base, ok := asInt(entry["base"])
	if !ok || base < math.MinInt32 || base > math.MaxInt32 {
		return sss.Point{}, fmt.Errorf("%w: base=%v is not an integer", sss.ErrInvalidBase, entry["base"])
	}

	var value string
	switch v := entry["value"].(type) {
	case string:
		value = v
	case json.Number:
		value = v.String()
	case int:
		value = strconv.Itoa(v)
	case int64:
		value = strconv.FormatInt(v, 10)
	case uint64:
		value = strconv.FormatUint(v, 10)
	default:
		return sss.Point{}, fmt.Errorf("%w: value=%v (%T) is not a string", sss.ErrMalformedValue, v, v)
	}

	y, err := basen.Decode(value, int(base))
	if err != nil {
		return sss.Point{}, err
	}
	return sss.Point{X: x, Y: y}, nil
}

// asMap accepts the map shapes JSON and YAML decoders produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// asInt accepts the integer shapes JSON and YAML decoders produce, plus
// decimal strings ("base": "16").
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}
