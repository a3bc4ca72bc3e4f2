package formula_test

import (
	"fmt"

	"github.com/zephyrtronium/formula"
)

func Example() {
	e, err := formula.Parse("{x}^3/2 - {x}")
	if err != nil {
		panic(err)
	}
	fmt.Println(e)
	for i := 0; i < 4; i++ {
		y, err := e.Eval(map[string]float64{"x": float64(i)})
		if err != nil {
			panic(err)
		}
		fmt.Printf("x = %g   y = %g\n", float64(i), y)
	}

	// Output:
	// (({x} ^ 3) / 2) - {x}
	// x = 0   y = 0
	// x = 1   y = -0.5
	// x = 2   y = 2
	// x = 3   y = 10.5
}

func ExampleEvaluate() {
	imc, err := formula.Evaluate("{peso} / ({altura} * {altura})", map[string]float64{"peso": 70, "altura": 1.75})
	fmt.Println(formula.FormatResult(imc), err)

	_, err = formula.Evaluate("{a} + {b}", map[string]float64{"a": 1})
	fmt.Println(err)

	_, err = formula.Evaluate("1 / {x}", map[string]float64{"x": 0})
	fmt.Println(err)

	// Output:
	// 22.857143 <nil>
	// unbound variable: b
	// 3: non-finite result from "/": division by zero
}

func ExampleExtractVariables() {
	fmt.Printf("%q\n", formula.ExtractVariables("{b} + { a } * {b}"))
	// Output: ["b" "a"]
}

func ExampleValidate() {
	fmt.Println(formula.Validate("{capital} * (1 + {taxa})^{tempo}"))
	fmt.Println(formula.Validate("{a} ; DROP TABLE"))
	// Output:
	// <nil>
	// 5: illegal character ';'
}

func ExampleFormatResult() {
	fmt.Println(formula.FormatResult(14))
	fmt.Println(formula.FormatResult(0.5))
	fmt.Println(formula.FormatResult(1234567.5))
	// Output:
	// 14
	// 0.50
	// 1.23e+06
}
