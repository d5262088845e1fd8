package entry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePrice normalizes and parses user price input. Both "," and "."
// are accepted as the decimal separator. The result must be a finite
// number greater than zero.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("price is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("price must be greater than 0")
	}
	return v, nil
}

// PlaceholderName fills in for an empty product name using the last
// four characters of the scanned code.
func PlaceholderName(code string) string {
	tail := code
	if len(code) > 4 {
		tail = code[len(code)-4:]
	}
	return "Produto " + tail
}

// ParseQuantity reads the quantity field, floored at 1. Absent or
// malformed input defaults to a single unit.
func ParseQuantity(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 1 {
		return 1
	}
	return v
}
