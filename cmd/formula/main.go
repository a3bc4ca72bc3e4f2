package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/formula"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, batchname string
		with                    [][2]string
		vars, check, echo       bool
		prec                    int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file with one formula per line (default stdin if no args given)")
	flag.StringVar(&batchname, "batch", "", "YAML file of saved formulas to evaluate")
	flag.StringVar(&verb, "fmt", "", "result formatting string (default display format)")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", formula.DefaultPrec, "precision of calculations in bits")
	flag.BoolVar(&vars, "vars", false, "list the variables of each formula instead of evaluating")
	flag.BoolVar(&check, "check", false, "validate formulas instead of evaluating")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}
	opts := []formula.Option{formula.Prec(uint(prec))}

	values := make(map[string]float64, len(with))
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := formula.Evaluate(vl, nil, opts...)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		values[nm] = r
	}

	srcs, err := readInput(inname, flag.NArg() == 0 && batchname == "")
	if err != nil {
		log.Fatal(err)
	}
	srcs = append(srcs, flag.Args()...)

	r := runner{
		out:    os.Stdout,
		log:    log.Default(),
		values: values,
		opts:   opts,
		verb:   verb,
		echo:   echo,
	}
	switch {
	case vars:
		r.mode = modeVars
	case check:
		r.mode = modeCheck
	}
	ok := true
	if batchname != "" {
		b, err := loadBatch(batchname)
		if err != nil {
			log.Fatal(err)
		}
		ok = r.batch(b)
	}
	for _, src := range srcs {
		ok = r.run(src) && ok
	}
	if !ok {
		os.Exit(1)
	}
}

// readInput reads formulas from the named file, or from stdin when inname is
// "-" or std is set and no file is named.
func readInput(inname string, std bool) ([]string, error) {
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		return lines(in)
	case inname == "-", std:
		return lines(os.Stdin)
	}
	return nil, nil
}

// lines reads one formula per line, skipping blank lines.
func lines(in io.Reader) ([]string, error) {
	var r []string
	scan := bufio.NewScanner(in)
	for scan.Scan() {
		if s := scan.Text(); strings.TrimSpace(s) != "" {
			r = append(r, s)
		}
	}
	return r, scan.Err()
}
