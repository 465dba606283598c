// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep views, kernels and facades minimal by delegating shape/nil/symmetry
//    checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    match them via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the expression is non-nil, including a typed nil
// *Matrix stored in the interface.
// Complexity: O(1).
func ValidateNotNil[T Scalar](e Expr[T]) error {
	if e == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if m, ok := e.(*Matrix[T]); ok && m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes a and b are not nil.
// Complexity: O(1).
func ValidateSameShape[T Scalar](a, b Expr[T]) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that e is square (Rows == Cols).
func ValidateSquare[T Scalar](e Expr[T]) error {
	if e.Rows() != e.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures the vector dimension matches the required size n.
func ValidateVecLen[T Scalar](v Vec[T], n int) error {
	if v == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if v.Dim() != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows, inputs non-nil.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateMulCompatible[T Scalar](a, b Expr[T]) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks |A(i,j) - A(j,i)| ≤ tol over the upper triangle.
// A layout with the Symmetric flag passes trivially.
// Errors: ErrNonSquare, ErrSymmetryViolation.
func ValidateSymmetric[T Scalar](e Expr[T], tol float64) error {
	if err := ValidateSquare(e); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if e.Symmetry() == Symmetric {
		return nil
	}
	n := e.Rows()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := float64(e.At(i, j)) - float64(e.At(j, i))
			if d > tol || -d > tol {
				return validatorErrorf("ValidateSymmetric", matrixErrorf(ctxAt, i, j, ErrSymmetryViolation))
			}
		}
	}

	return nil
}
