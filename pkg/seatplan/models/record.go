package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is the flat key-value form of an entity: field name -> primitive value.
// Decoded JSON numbers arrive as float64 or json.Number; both are accepted.
type Record map[string]any

// Int returns the integer value of key, or def when the key is absent or
// not numeric or outside the int32 range. Fractional values are truncated.
func (r Record) Int(key string, def int) int {
	if v, ok := r.OptionalInt(key); ok {
		return v
	}
	return def
}

// OptionalInt returns the integer value of key and whether one was present.
// A nil value is reported as absent.
func (r Record) OptionalInt(key string) (int, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	return toInt(v)
}

// String returns the string value of key, or def when the key is absent or nil.
// Non-string primitives are formatted.
func (r Record) String(key, def string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Ints returns the integer list stored at key. Elements that are not numeric
// are dropped. The result is never nil.
func (r Record) Ints(key string) []int {
	out := []int{}
	switch vs := r[key].(type) {
	case []int:
		out = append(out, vs...)
	case []any:
		for _, v := range vs {
			if i, ok := toInt(v); ok {
				out = append(out, i)
			}
		}
	}
	return out
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return bounded(int64(n))
	case int64:
		return bounded(n)
	case int32:
		return int(n), true
	case float64:
		return truncate(n)
	case float32:
		return truncate(float64(n))
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return truncate(f)
	default:
		return 0, false
	}
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

func bounded(n int64) (int, bool) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}
