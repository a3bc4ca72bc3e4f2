package formula

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// placeholder is a {name} span in formula text.
type placeholder struct {
	name string
	// start is the rune index of the opening brace; end is the rune index
	// just past the closing brace.
	start, end int
}

// placeholders scans the brace-delimited spans of src in order. A close brace
// closes the nearest preceding unmatched open brace, so "{a {b}" has the
// single span "{b}". Spans whose trimmed name is empty are skipped, as are
// open braces that are never closed.
func placeholders(src []rune) []placeholder {
	var r []placeholder
	open := -1
	for i, c := range src {
		switch c {
		case '{':
			open = i
		case '}':
			if open < 0 {
				continue
			}
			name := strings.TrimSpace(string(src[open+1 : i]))
			if name != "" {
				r = append(r, placeholder{name: name, start: open, end: i + 1})
			}
			open = -1
		}
	}
	return r
}

// ExtractVariables returns the distinct placeholder names in a formula, in
// order of first appearance. Whitespace around a name inside its braces is
// not part of the name. Malformed braces are not reported here; Evaluate
// rejects them. The result is never nil.
func ExtractVariables(text string) []string {
	spans := placeholders([]rune(text))
	names := make([]string, 0, len(spans))
	seen := make(map[string]bool, len(spans))
	for _, ph := range spans {
		if seen[ph.name] {
			continue
		}
		seen[ph.name] = true
		names = append(names, ph.name)
	}
	return names
}

// checkValues rejects NaN and infinite bindings. Names are checked in sorted
// order so that the same bindings always report the same name.
func checkValues(values map[string]float64) error {
	var bad []string
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, name)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return &InvalidValueError{Name: bad[0], Value: values[bad[0]]}
}

// literal formats a value as formula text. The result never uses exponent
// notation, and negative values are parenthesized so that they keep their
// sign under exponentiation.
func literal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.Signbit(v) {
		s = "(" + s + ")"
	}
	return s
}

// substitute replaces every placeholder span whose name is bound with the
// literal text of its value. The second result maps each rune of the new
// text to its 1-based column in text; runes of a substituted literal map to
// the column of the placeholder's open brace. The map has one extra trailing
// entry giving the column just past the end of text.
func substitute(text string, values map[string]float64) (string, []int) {
	src := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	cols := make([]int, 0, len(src)+1)
	last := 0
	for _, ph := range placeholders(src) {
		v, ok := values[ph.name]
		if !ok {
			continue
		}
		for i := last; i < ph.start; i++ {
			b.WriteRune(src[i])
			cols = append(cols, i+1)
		}
		lit := literal(v)
		b.WriteString(lit)
		// Literals are ASCII, so bytes are runes.
		for range []byte(lit) {
			cols = append(cols, ph.start+1)
		}
		last = ph.end
	}
	for i := last; i < len(src); i++ {
		b.WriteRune(src[i])
		cols = append(cols, i+1)
	}
	cols = append(cols, len(src)+1)
	return b.String(), cols
}

// allowed reports whether r may appear in a formula outside placeholders.
func allowed(r rune) bool {
	switch {
	case '0' <= r && r <= '9', r == '.':
		return true
	case strings.ContainsRune(Operators, r), r == '(', r == ')':
		return true
	default:
		return unicode.IsSpace(r)
	}
}

// sanitize checks that text contains only digits, decimal points, operators,
// parentheses, and whitespace. If spans is true, placeholder spans are also
// allowed. cols maps rune indices to original columns, as from substitute; if
// it is nil, columns are rune indices plus one.
func sanitize(text string, cols []int, spans bool) error {
	src := []rune(text)
	var skip []placeholder
	if spans {
		skip = placeholders(src)
	}
	for i := 0; i < len(src); i++ {
		if len(skip) > 0 && i == skip[0].start {
			i = skip[0].end - 1
			skip = skip[1:]
			continue
		}
		if r := src[i]; !allowed(r) {
			return &CharacterError{Col: column(cols, i+1), Char: r}
		}
	}
	return nil
}

// column maps a 1-based rune position in possibly substituted text to the
// corresponding column in the original text.
func column(cols []int, pos int) int {
	if cols == nil || pos < 1 {
		return pos
	}
	if pos > len(cols) {
		return cols[len(cols)-1]
	}
	return cols[pos-1]
}
