package xtal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var units = []struct {
	suffix string
	exp    int
}{
	// Longest suffix first so "mhz" is not read as "hz".
	{"ghz", 9},
	{"mhz", 6},
	{"khz", 3},
	{"hz", 0},
}

// ParseFrequency parses a frequency such as "14318180", "14'318'180",
// "14.31818MHz" or "32.768 kHz" into Hz. Digit separators ' and _ are
// ignored. The result must be positive and finite.
func ParseFrequency(s string) (float64, error) {
	clean := strings.ToLower(strings.TrimSpace(s))
	clean = strings.NewReplacer("'", "", "_", "", " ", "").Replace(clean)

	exp := 0
	for _, u := range units {
		if strings.HasSuffix(clean, u.suffix) {
			clean = strings.TrimSuffix(clean, u.suffix)
			exp = u.exp
			break
		}
	}

	hz, err := parseScaled(clean, exp)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidFrequency, s, err)
	}
	if math.IsNaN(hz) || math.IsInf(hz, 0) || hz <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidFrequency, s)
	}
	return hz, nil
}

// parseScaled returns num * 10^exp. When num has no exponent of its own the
// unit is folded into the literal so "14.31818MHz" rounds once, like 14318180.
func parseScaled(num string, exp int) (float64, error) {
	if exp == 0 {
		return strconv.ParseFloat(num, 64)
	}
	if !strings.ContainsAny(num, "ep") {
		return strconv.ParseFloat(num+"e"+strconv.Itoa(exp), 64)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	return f * math.Pow10(exp), nil
}
