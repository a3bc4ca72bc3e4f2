package formula_test

import (
	"testing"

	"github.com/expr-lang/expr"

	"github.com/zephyrtronium/formula"
)

// TestEvaluateMatchesExpr checks arithmetic without placeholders against an
// independent expression engine.
func TestEvaluateMatchesExpr(t *testing.T) {
	cases := []string{
		"1 + 2 * 3",
		"(1 + 2) * 3",
		"7 / 2",
		"10 / 4 / 5",
		"2 ^ 10",
		"2 ^ 3 ^ 2",
		"-2 ^ 2",
		"2 ^ -2",
		"(-2) ^ 3",
		"1.5 * 4 - 0.25",
		"-(3 - 5) * 2",
		"100 - 3 * (4 + 5) / 6",
		"0.1 + 0.2",
		"1 - 2 - 3 - 4",
		"2 * -3",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			got, err := formula.Evaluate(src, nil)
			if err != nil {
				t.Fatalf("%q failed: %v", src, err)
			}
			out, err := expr.Eval(src, nil)
			if err != nil {
				t.Fatalf("reference engine failed on %q: %v", src, err)
			}
			var want float64
			switch v := out.(type) {
			case int:
				want = float64(v)
			case int64:
				want = float64(v)
			case float64:
				want = v
			default:
				t.Fatalf("reference engine gave %T %v", out, out)
			}
			if !same(got, want, 1e-15) {
				t.Errorf("%q: reference gives %g, got %g", src, want, got)
			}
		})
	}
}
