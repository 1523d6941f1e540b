// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/chemometrics/matrix"
)

// ExampleCenterColumns centers two variables and restores them.
func ExampleCenterColumns() {
	x, _ := matrix.NewDenseFromRows([][]float64{{1, 10}, {3, 30}})
	xc, means, _ := matrix.CenterColumns(x)
	fmt.Println("means:", means)
	fmt.Print(xc)
	back, _ := matrix.AddCols(xc, means)
	fmt.Print(back)
	// Output:
	// means: [2 20]
	// [-1, -10]
	// [1, 10]
	// [1, 10]
	// [3, 30]
}

// ExampleInverse inverts a unit upper-triangular matrix.
func ExampleInverse() {
	a, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {0, 1}})
	inv, _ := matrix.Inverse(a)
	fmt.Print(inv)
	// Output:
	// [1, -2]
	// [0, 1]
}
