// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package and the context wrapper attached at detection sites. Constructors
// return these sentinels; contract violations (bad index, write to an
// unstored slot, incompatible operands) panic with the same sentinels wrapped,
// so tests match both paths via errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping. Call sites wrap with a "Type.Method(i,j): %w" context via
// matrixErrorf; callers use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// dimensions -> index range -> storage -> shape -> symmetry -> layout support.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNotStored signals access to a position the packer does not store.
	ErrNotStored = errors.New("matrix: position is not stored")

	// ErrStructuralZero signals a non-zero value where the shape requires zero.
	ErrStructuralZero = errors.New("matrix: non-zero value outside the shape")

	// ErrSymmetryViolation signals a value that disagrees with the value the
	// symmetry would resolve at that position (mirror or negated mirror).
	ErrSymmetryViolation = errors.New("matrix: value disagrees with symmetry")

	// ErrUnsupportedLayout marks a layout combination an operation has no
	// mapping for (e.g., a mixed-ordering product on the kernel path).
	ErrUnsupportedLayout = errors.New("matrix: unsupported layout")

	// ErrBadBandwidth indicates a negative band half-width.
	ErrBadBandwidth = errors.New("matrix: bandwidth must be >= 0")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf tolerance where a finite one is required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)

// Context tags used with matrixErrorf (no magic strings at call sites).
const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxOffset    = "Offset"
	ctxResolve   = "Resolve"
	ctxRow       = "Row"
	ctxCol       = "Col"
	ctxFromRows  = "FromRows"
	ctxFrom      = "From"
	ctxAssign    = "Assign"
	ctxAddAssign = "AddAssign"
	ctxSubAssign = "SubAssign"
	ctxWrap      = "Wrap"
	ctxValidate  = "Validate"
	ctxIdentity  = "Identity"
)

// matrixErrorf attaches method context and coordinates to a sentinel error.
//
// Implementation:
//   - Stage 1: format "Matrix.<method>(row,col): %w".
//   - Stage 2: return wrapped error.
//
// Notes:
//   - Wrap at the nearest detection site for precise coordinates.
func matrixErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// violation panics with a wrapped sentinel. Contract violations are
// programmer errors; they never surface as returned errors.
func violation(method string, row, col int, err error) {
	panic(matrixErrorf(method, row, col, err))
}
