package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoerceInt reads a numeric-looking string as an int in the int32 range. A decimal value is
// truncated toward zero ("4.7" -> 4), the same way a form parser would.
func CoerceInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingValue
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err == nil {
		return int(n), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q out of range", ErrNotANumber, s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: %q out of range", ErrNotANumber, s)
	}
	return int(f), nil
}

// CoerceFloat reads a numeric-looking string as a finite float64.
func CoerceFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingValue
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return f, nil
}
