package nonlinear_test

import (
	"fmt"

	"github.com/nabla-rs/diffsol/linsolver"
	"github.com/nabla-rs/diffsol/nonlinear"
	"github.com/nabla-rs/diffsol/op"
	"github.com/nabla-rs/diffsol/vector"
)

// ExampleNewton finds the positive root of 2*x^2 - 8 componentwise.
func ExampleNewton() {
	f := func(x, _ vector.Vector, _ float64, y vector.Vector) error {
		for i := 0; i < x.Len(); i++ {
			xi, _ := x.At(i)
			_ = y.Set(i, 2*xi*xi-8)
		}

		return nil
	}
	jac := func(x, _ vector.Vector, _ float64, v, y vector.Vector) error {
		for i := 0; i < x.Len(); i++ {
			xi, _ := x.At(i)
			vi, _ := v.At(i)
			_ = y.Set(i, 4*xi*vi)
		}

		return nil
	}

	o, _ := op.NewClosure(f, jac, 2, 2, nil)
	problem, _ := nonlinear.NewSolverProblem(o, vector.NewDenseFromSlice([]float64{1e-6, 1e-6}), 1e-6)

	solver := nonlinear.NewNewton(linsolver.NewLU())
	_ = solver.SetProblem(problem)

	x, _ := solver.Solve(vector.NewDenseFromSlice([]float64{2.1, 2.1}), 0)
	x0, _ := x.At(0)
	x1, _ := x.At(1)
	fmt.Printf("root: (%.4f, %.4f)\n", x0, x1)
	// Output:
	// root: (2.0000, 2.0000)
}
