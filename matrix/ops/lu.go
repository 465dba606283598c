// SPDX-License-Identifier: MIT
// Package ops provides factorizations over the structured containers of
// package matrix. Results come back in the layout that matches their
// structure (packed triangles for L, U and R), so every inner product runs
// over the intersection of a row window and a column window.
package ops

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmat/matrix"
)

// ErrSingular is returned when a zero pivot is encountered.
var ErrSingular = errors.New("ops: matrix is singular")

// LU performs Doolittle LU decomposition (no pivoting) of a square a.
// It returns L (unit lower triangular, LowerCM) and U (upper triangular,
// UpperRM) such that a = L·U.
//
// Implementation:
//   - Stage 1: validate a is square.
//   - Stage 2: L starts as the identity, U as zero.
//   - Stage 3: for each pivot row i:
//     U(i,j) = a(i,j) - L.Row(i)·U.Col(j) for j >= i,
//     L(j,i) = (a(j,i) - L.Row(j)·U.Col(i)) / U(i,i) for j > i.
//     The not-yet-computed terms of each dot product are still zero, so the
//     window intersection yields exactly the sum over k < i.
//
// Errors:
//   - matrix.ErrNonSquare, ErrSingular (zero pivot; a needs pivoting).
//
// Complexity:
//   - Time O(n³), Space O(n²) for the packed factors.
func LU(a matrix.Expr[float64]) (*matrix.Matrix[float64], *matrix.Matrix[float64], error) {
	// Stage 1: Validate input is square
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, nil, fmt.Errorf("LU: %w", err)
	}
	n := a.Rows()

	// Stage 2: Prepare L and U
	L, err := matrix.Identity[float64](matrix.LowerCM, n)
	if err != nil {
		return nil, nil, fmt.Errorf("LU: %w", err)
	}
	U, err := matrix.New[float64](matrix.UpperRM, n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("LU: %w", err)
	}

	// Stage 3: Execute decomposition
	var (
		i, j  int
		pivot float64
	)
	for i = 0; i < n; i++ {
		li := L.Row(i)
		for j = i; j < n; j++ {
			U.Set(i, j, a.At(i, j)-matrix.Dot[float64](li, U.Col(j)))
		}
		pivot = U.At(i, i)
		if pivot == 0 {
			return nil, nil, fmt.Errorf("LU: zero pivot at %d: %w", i, ErrSingular)
		}
		ui := U.Col(i)
		for j = i + 1; j < n; j++ {
			L.Set(j, i, (a.At(j, i)-matrix.Dot[float64](L.Row(j), ui))/pivot)
		}
	}

	return L, U, nil
}
