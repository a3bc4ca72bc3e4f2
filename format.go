package formula

import (
	"math"
	"strconv"
	"strings"
)

// FormatResult renders a result for display. Integers have no fractional
// part. Magnitudes of at least 1e6 or below 1e-3 use scientific notation with
// two fractional digits. Other values show between two and six fractional
// digits, as many as the shortest exact representation has.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return "invalid result"
	case v == 0:
		// Also -0.
		return "0"
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if a := math.Abs(v); a >= 1e6 || a < 1e-3 {
		return strconv.FormatFloat(v, 'e', 2, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	digits := 0
	if k := strings.IndexByte(s, '.'); k >= 0 {
		digits = len(s) - k - 1
	}
	switch {
	case digits < 2:
		digits = 2
	case digits > 6:
		digits = 6
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}
