// Package sanitize coerces free-form user-entered text into numeric values.
//
// Every function in this package is total: no input, however malformed, is
// an error. Invalid or empty text is indistinguishable from a deliberate
// zero, which is the documented behavior of the input form being modeled.
package sanitize

import (
	"strconv"
	"strings"
)

// Number converts arbitrary user-entered text to a float64. The empty string
// and unparseable text both become 0.
func Number(val string) float64 {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return 0
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return n
}

// Int converts user-entered text to an int, truncating any fractional part.
func Int(val string) int {
	return int(Number(val))
}

// NumberList sanitizes each entry of a list independently.
func NumberList(vals []string) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = Number(v)
	}
	return out
}

// SplitNumberList parses a free-text comma-separated list into a numeric
// sequence, each entry independently sanitized. An empty or all-whitespace
// input yields an empty slice rather than a single zero.
func SplitNumberList(val string) []float64 {
	if strings.TrimSpace(val) == "" {
		return []float64{}
	}
	parts := strings.Split(val, ",")
	return NumberList(parts)
}
