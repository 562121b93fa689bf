package unify

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a locale-formatted cell value such as "190.440,13" or
// "-1.247,12" to a float64. Dots are grouping separators and the comma is the
// decimal mark. Nil, empty and unparseable input yield 0; the result is
// always finite. ParseAmount never fails.
func ParseAmount(v any) float64 {
	amount, _ := parseAmount(v)
	return amount
}

// parseAmount additionally reports whether the value was a usable number.
// Absent and empty values are usable zeros; garbage text and non-finite
// numbers are not.
func parseAmount(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return parseAmount(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}

	raw := strings.TrimSpace(cellString(v))
	if raw == "" {
		return 0, true
	}
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	return amount, true
}
