// SPDX-License-Identifier: MIT

package ops

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvmat/matrix"
)

// ErrEigenFailed is returned if the rotations do not converge within maxIter.
var ErrEigenFailed = errors.New("ops: eigen decomposition did not converge")

// Eigen performs Jacobi eigenvalue decomposition of a symmetric a.
// It returns the eigenvalues and a FullCM matrix whose columns are the
// matching eigenvectors.
//
// Implementation:
//   - Stage 1: validate symmetry within tol.
//   - Stage 2: copy the upper triangle into SymmetricCM work storage, so each
//     rotation updates one stored slot per mirrored pair.
//   - Stage 3: repeatedly zero the largest off-diagonal |A(p,q)| with a Jacobi
//     rotation, accumulating the rotations into V, until max |A(p,q)| <= tol.
//
// Errors:
//   - matrix.ErrNonSquare, matrix.ErrSymmetryViolation, ErrEigenFailed.
//
// Complexity:
//   - Time O(n²) per rotation (pivot search), Space O(n²).
func Eigen(a matrix.Expr[float64], tol float64, maxIter int) ([]float64, *matrix.Matrix[float64], error) {
	// Stage 1: Validate input
	if err := matrix.ValidateSymmetric(a, tol); err != nil {
		return nil, nil, fmt.Errorf("Eigen: %w", err)
	}
	n := a.Rows()

	// Stage 2: Prepare A (work) and V (eigenvectors)
	A, err := matrix.New[float64](matrix.SymmetricCM, n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("Eigen: %w", err)
	}
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			A.Set(i, j, a.At(i, j))
		}
	}
	V, err := matrix.Identity[float64](matrix.FullCM, n)
	if err != nil {
		return nil, nil, fmt.Errorf("Eigen: %w", err)
	}

	// Stage 3: Jacobi rotations
	var (
		iter, p, q, i, j int
		maxOff, off      float64
		theta, t, c, s   float64
		app, aqq, apq    float64
		aip, aiq         float64
	)
	for iter = 0; ; iter++ {
		maxOff = 0
		for j = 0; j < n; j++ {
			for i = 0; i < j; i++ {
				if off = math.Abs(A.At(i, j)); off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff <= tol {
			break
		}
		if iter == maxIter {
			return nil, nil, fmt.Errorf("Eigen: off-diagonal %g after %d rotations: %w", maxOff, iter, ErrEigenFailed)
		}
		app, aqq, apq = A.At(p, p), A.At(q, q), A.At(p, q)
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip, aiq = A.At(i, p), A.At(i, q)
			setUpper(A, i, p, c*aip-s*aiq)
			setUpper(A, i, q, s*aip+c*aiq)
		}
		A.Set(p, p, app-t*apq)
		A.Set(q, q, aqq+t*apq)
		A.Set(p, q, 0) // p < q

		for i = 0; i < n; i++ {
			aip, aiq = V.At(i, p), V.At(i, q)
			V.Set(i, p, c*aip-s*aiq)
			V.Set(i, q, s*aip+c*aiq)
		}
	}
	// Stage 4: Finalize eigenvalues
	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = A.At(i, i)
	}

	return eigs, V, nil
}

// setUpper writes a symmetric pair through its stored (upper) slot.
func setUpper(m *matrix.Matrix[float64], i, j int, v float64) {
	if i > j {
		i, j = j, i
	}
	m.Set(i, j, v)
}
