package formula

import (
	"testing"
)

func FuzzParse(f *testing.F) {
	f.Add("{x}")
	f.Add("{y}^-{x}^2")
	f.Add("1×2")
	f.Add("((1)")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := Parse(s)
		if err != nil {
			return
		}
		// Formatting adds groups, so the formatted text may nest more deeply
		// and run longer.
		out := a.String()
		b, err := Parse(out, MaxDepth(1<<20), MaxLength(1<<30))
		if err != nil {
			t.Fatalf("%q -> %q failed to parse: %v", s, out, err)
		}
		if d, e := a.n.diff(b.n); d != nil || e != nil {
			t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", s, a.n, d, out, b.n, e)
		}
	})
}
