// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvmat/matrix"
)

// QR computes the Householder QR decomposition of a square a, returning an
// orthogonal Q (FullCM) and an upper-triangular R (UpperCM) with a = Q·R.
//
// Implementation:
//   - Stage 1: copy a into column-major work storage W; Q starts as I.
//   - Stage 2: for each column k, reflect W(k:n, k) onto ∓‖·‖·e_k:
//     v = W(k:n,k) - alpha·e_k, then W ← H·W and Q ← Q·H with
//     H = I - 2vvᵀ/vᵀv. Columns are contiguous in both buffers.
//   - Stage 3: wrap Q, copy the upper triangle of W into R; the entries below the
//     diagonal are rounding noise and are dropped.
//
// Errors:
//   - matrix.ErrNonSquare.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func QR(a matrix.Expr[float64]) (*matrix.Matrix[float64], *matrix.Matrix[float64], error) {
	// Stage 1: Validate and prepare working matrices
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}
	n := a.Rows()
	W := make([]float64, n*n) // column-major copy of a
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			W[j*n+i] = a.At(i, j)
		}
	}
	q := make([]float64, n*n) // column-major Q
	for i := 0; i < n; i++ {
		q[i*n+i] = 1
	}
	v := make([]float64, n)

	// Stage 2: Householder reflections
	var (
		k, i, j          int
		norm, alpha, tau float64
		sum              float64
	)
	for k = 0; k < n; k++ {
		col := W[k*n : (k+1)*n]
		norm = 0
		for i = k; i < n; i++ {
			norm += col[i] * col[i]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		alpha = -math.Copysign(norm, col[k])
		clear(v)
		copy(v[k:], col[k:])
		v[k] -= alpha
		var beta float64
		for i = k; i < n; i++ {
			beta += v[i] * v[i]
		}
		if beta == 0 {
			continue
		}
		tau = 2 / beta

		// W ← H·W on columns k..n-1
		for j = k; j < n; j++ {
			wj := W[j*n : (j+1)*n]
			sum = 0
			for i = k; i < n; i++ {
				sum += v[i] * wj[i]
			}
			for i = k; i < n; i++ {
				wj[i] -= tau * v[i] * sum
			}
		}
		// Q ← Q·H: row r of Q gets q_r - tau·(q_r·v)·vᵀ
		for r := 0; r < n; r++ {
			sum = 0
			for i = k; i < n; i++ {
				sum += q[i*n+r] * v[i]
			}
			for i = k; i < n; i++ {
				q[i*n+r] -= tau * sum * v[i]
			}
		}
	}

	// Stage 3: Wrap Q, extract R
	Q, err := matrix.Wrap(matrix.FullCM, n, n, q)
	if err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}
	R, err := matrix.New[float64](matrix.UpperCM, n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}
	for j = 0; j < n; j++ {
		for i = 0; i <= j; i++ {
			R.Set(i, j, W[j*n+i])
		}
	}

	return Q, R, nil
}
