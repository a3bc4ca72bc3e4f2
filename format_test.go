package formula_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/formula"
)

func TestFormatResult(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{14, "14"},
		{-7, "-7"},
		{1e7, "10000000"},
		{1e21, "1000000000000000000000"},
		{0.5, "0.50"},
		{-2.5, "-2.50"},
		{1.25, "1.25"},
		{3.14159, "3.14159"},
		{22.857142857142858, "22.857143"},
		{999999.5, "999999.50"},
		{0.001, "0.001"},
		{1234567.5, "1.23e+06"},
		{0.0001234, "1.23e-04"},
		{-0.0005, "-5.00e-04"},
		{math.NaN(), "invalid result"},
		{math.Inf(1), "invalid result"},
		{math.Inf(-1), "invalid result"},
	}
	for _, c := range cases {
		if got := formula.FormatResult(c.v); got != c.want {
			t.Errorf("FormatResult(%g): want %q, got %q", c.v, c.want, got)
		}
	}
}
