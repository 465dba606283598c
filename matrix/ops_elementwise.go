// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise kernels (ew*) to avoid
//     duplicating tight loops across Matrix methods and the public facade.
//   - Keep all loops deterministic with flat-buffer fast paths when both
//     operands share a layout.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels).
//   - Public API uses these via thin wrappers (matrix.go, api.go).
//
// Determinism & Performance:
//   - Fixed loop orders (flat 0..n-1, or i→j over shape windows).
//   - No allocations.

package matrix

import "math"

// ewCombine computes dst[k] = op(dst[k], src[k]) over equal-length buffers.
// Time: O(n). Space: O(1).
func ewCombine[T Scalar](dst, src []T, op func(x, y T) T) {
	src = src[:len(dst)] // hoist the bounds check
	for k := range dst {
		dst[k] = op(dst[k], src[k])
	}
}

// ewScale multiplies every element by s.
func ewScale[T Scalar](data []T, s T) {
	for k := range data {
		data[k] *= s
	}
}

// ewDiv divides every element by s.
func ewDiv[T Scalar](data []T, s T) {
	for k := range data {
		data[k] /= s
	}
}

// ewEqual reports whether two expressions agree at every position.
// Positions outside both shapes are skipped (both are structural zeros).
// Time: O(r*c). Space: O(1).
func ewEqual[T Scalar](a, b Expr[T]) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	if ma, ok := a.(*Matrix[T]); ok {
		if mb, ok := b.(*Matrix[T]); ok && ma.layout.SameAs(mb.layout) {
			for k := range ma.data {
				if ma.data[k] != mb.data[k] {
					return false
				}
			}
			return true
		}
	}
	sa, sb := a.Shaper(), b.Shaper()
	for i := 0; i < a.Rows(); i++ {
		h := Hull(sa.NonzeroCols(i), sb.NonzeroCols(i))
		for j := h.Lo; j < h.Hi; j++ {
			if a.At(i, j) != b.At(i, j) {
				return false
			}
		}
	}

	return true
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b|.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
// Time: O(r*c). Space: O(1).
func ewAllClose[T Scalar](a, b Expr[T], rtol, atol float64) (bool, error) {
	// Reject non-finite tolerances; negative ones are normalized.
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", 0, 0, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	// Validate presence and shape equality using central validators.
	if err := ValidateNotNil(a); err != nil {
		return false, err
	}
	if err := ValidateNotNil(b); err != nil {
		return false, err
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, err
	}

	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, bv := float64(a.At(i, j)), float64(b.At(i, j))
			if av == bv {
				continue // covers equal infinities
			}
			if math.IsNaN(av) || math.IsNaN(bv) || math.IsInf(av, 0) || math.IsInf(bv, 0) {
				return false, nil
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil // early-exit on first violation
			}
		}
	}

	return true, nil
}

// ewSumSquares returns sum e(i,j)^2 over the shape windows.
func ewSumSquares[T Scalar](e Expr[T]) float64 {
	var s float64
	s2 := e.Shaper()
	for i := 0; i < e.Rows(); i++ {
		span := s2.NonzeroCols(i)
		for j := span.Lo; j < span.Hi; j++ {
			x := float64(e.At(i, j))
			s += x * x
		}
	}

	return s
}
