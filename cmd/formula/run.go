package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/zephyrtronium/formula"
)

// mode selects what the runner does with each formula.
type mode int

const (
	modeEval mode = iota
	modeVars
	modeCheck
)

// runner carries out the command for each formula. Results go to out and
// failures to log.
type runner struct {
	out    io.Writer
	log    *log.Logger
	values map[string]float64
	opts   []formula.Option
	mode   mode
	// verb is the fmt verb for results, or empty to use FormatResult.
	verb string
	echo bool
}

func (r *runner) format(v float64) string {
	if r.verb == "" {
		return formula.FormatResult(v)
	}
	return fmt.Sprintf(r.verb, v)
}

// run handles one formula from the command line or an input file.
func (r *runner) run(src string) bool {
	switch r.mode {
	case modeVars:
		return r.vars(src)
	case modeCheck:
		return r.check(src)
	}
	return r.eval(src)
}

// eval evaluates src with the runner's values and reports whether it
// succeeded.
func (r *runner) eval(src string) bool {
	v, err := formula.Evaluate(src, r.values, r.opts...)
	if err != nil {
		r.log.Printf("%s: %v", src, err)
		return false
	}
	if r.echo {
		if e, err := formula.Parse(src, r.opts...); err == nil {
			fmt.Fprintf(r.out, "%v : ", e)
		}
	}
	fmt.Fprintln(r.out, r.format(v))
	return true
}

// vars prints the placeholders of src, one per line.
func (r *runner) vars(src string) bool {
	for _, name := range formula.ExtractVariables(src) {
		fmt.Fprintln(r.out, name)
	}
	return true
}

// check validates src without evaluating it.
func (r *runner) check(src string) bool {
	if err := formula.Validate(src, r.opts...); err != nil {
		r.log.Printf("%s: %v", src, err)
		return false
	}
	fmt.Fprintln(r.out, "ok")
	return true
}

// batch handles each saved formula according to the runner's mode, printing
// one line per formula prefixed with its name. When evaluating, a formula's
// own values take precedence over those given on the command line.
func (r *runner) batch(b *batchFile) bool {
	ok := true
	for _, f := range b.Formulas {
		switch r.mode {
		case modeVars:
			fmt.Fprintf(r.out, "%s: %s\n", f.Name, strings.Join(formula.ExtractVariables(f.Formula), ", "))
		case modeCheck:
			if err := formula.Validate(f.Formula, r.opts...); err != nil {
				r.log.Printf("%s: %v", f.Name, err)
				ok = false
				continue
			}
			fmt.Fprintf(r.out, "%s: ok\n", f.Name)
		default:
			values := make(map[string]float64, len(r.values)+len(f.Values))
			for k, v := range r.values {
				values[k] = v
			}
			for k, v := range f.Values {
				values[k] = v
			}
			v, err := formula.Evaluate(f.Formula, values, r.opts...)
			if err != nil {
				r.log.Printf("%s: %v", f.Name, err)
				ok = false
				continue
			}
			fmt.Fprintf(r.out, "%s: %s\n", f.Name, r.format(v))
		}
	}
	return ok
}
