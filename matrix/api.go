// SPDX-License-Identifier: MIT
// Package matrix: public facade over the private ew* kernels.
//
// Aliases here are thin: they exist so callers read the operation by its
// mathematical name while the loops live in ops_elementwise.go.

package matrix

import "math"

// Equal reports whether a and b have the same dimensions and the same
// logical value at every position. Layout, storage and any view-internal
// cache are irrelevant.
// Time: O(r*c) worst case. Deterministic.
func Equal[T Scalar](a, b Expr[T]) bool { return ewEqual(a, b) }

// EqualRows reports whether e equals the row-major literal rows.
func EqualRows[T Scalar](e Expr[T], rows [][]T) bool {
	if len(rows) != e.Rows() {
		return false
	}
	for i, row := range rows {
		if len(row) != e.Cols() {
			return false
		}
		for j, x := range row {
			if e.At(i, j) != x {
				return false
			}
		}
	}

	return true
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances fail with ErrNaNInf.
//
// Time: O(r*c). Space: O(1).
func AllClose[T Scalar](a, b Expr[T], rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// FNorm returns the Frobenius norm sqrt(sum A(i,j)^2) over the shape.
func FNorm[T Scalar](e Expr[T]) float64 { return math.Sqrt(ewSumSquares(e)) }

// Identity returns an n×n unit matrix of the given kind.
// An anti-symmetric kind cannot hold a unit diagonal: ErrSymmetryViolation
// for n > 0.
func Identity[T Scalar](kind Kind, n int) (*Matrix[T], error) {
	if n > 0 && kind(n, n).Symmetry == AntiSymmetric {
		return nil, matrixErrorf(ctxIdentity, n, n, ErrSymmetryViolation)
	}

	return New[T](kind, n, n, WithFill(FillUnit))
}
