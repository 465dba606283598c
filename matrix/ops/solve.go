// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/lvmat/matrix"
)

// SolveLU solves L·U·x = b for the factors returned by LU.
//
// Implementation:
//   - Forward substitution: y(i) = b(i) - L.Row(i)·y (unit diagonal).
//   - Back substitution:    x(i) = (y(i) - U.Row(i)·x) / U(i,i).
//     Entries not yet solved are zero, so each dot product covers only the
//     solved part of the row window.
//
// Errors:
//   - matrix.ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n²), Space O(n).
func SolveLU(L, U matrix.Expr[float64], b matrix.Vec[float64]) (*matrix.Vector[float64], error) {
	n := L.Rows()
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return nil, fmt.Errorf("SolveLU: %w", err)
	}
	if err := matrix.ValidateSameShape(L, U); err != nil {
		return nil, fmt.Errorf("SolveLU: %w", err)
	}

	y := matrix.NewVector[float64](n)
	for i := 0; i < n; i++ {
		y.Set(i, b.At(i)-matrix.Dot[float64](L.Row(i), y))
	}
	x := matrix.NewVector[float64](n)
	for i := n - 1; i >= 0; i-- {
		pivot := U.At(i, i)
		if pivot == 0 {
			return nil, fmt.Errorf("SolveLU: zero pivot at %d: %w", i, ErrSingular)
		}
		x.Set(i, (y.At(i)-matrix.Dot[float64](U.Row(i), x))/pivot)
	}

	return x, nil
}

// Solve returns x with a·x = b, through LU.
func Solve(a matrix.Expr[float64], b matrix.Vec[float64]) (*matrix.Vector[float64], error) {
	L, U, err := LU(a)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}

	return SolveLU(L, U, b)
}

// Inverse returns the inverse of a square a as a FullCM matrix.
//
// Implementation:
//   - Stage 1: factor a = L·U once.
//   - Stage 2: for each basis vector e_j, solve L·U·x = e_j and store x as
//     column j (contiguous in column-major storage).
//
// Errors:
//   - matrix.ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Inverse(a matrix.Expr[float64]) (*matrix.Matrix[float64], error) {
	// Stage 1: LU decomposition
	L, U, err := LU(a)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	n := a.Rows()

	// Stage 2: Compute each column of the inverse
	inv, err := matrix.New[float64](matrix.FullCM, n, n)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	e := matrix.NewVector[float64](n)
	for col := 0; col < n; col++ {
		e.Set(col, 1)
		x, err := SolveLU(L, U, e)
		if err != nil {
			return nil, fmt.Errorf("Inverse: %w", err)
		}
		e.Set(col, 0)
		inv.Update(func(data []float64) { copy(data[col*n:(col+1)*n], x.Data()) })
	}

	return inv, nil
}
