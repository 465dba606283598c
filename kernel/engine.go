// SPDX-License-Identifier: MIT
// Package kernel: Engine maps matrix layouts onto the column-major contract.
//
// Supported mappings:
//
//	MulVec / VecMul       FullCM, FullRM            Dgemv
//	                      SBand(k), square Diagonal Dgbmv (kl = ku = k, lda = 2k+1)
//	                      packed Upper/Lower        Dtpmv on a copy of x
//	TpmvInPlace           packed Upper/Lower        Dtpmv on x
//	MulMat                FullCM×FullCM, FullRM×FullRM  Dgemm
//	TrmmLeft / TrmmRight  Upper/LowerFull A, Full B of the same ordering  Dtrmm
//
// A row-major buffer is the column-major buffer of the transpose, so RM
// operands run the same routines with the transpose flag (Dgemv, Dtpmv) or
// the operand roles (Dgemm, Dtrmm) flipped.
//
// Errors:
//   - Any other layout returns matrix.ErrUnsupportedLayout; callers fall back
//     to the lazy views, which handle every layout.
//   - Incompatible dimensions panic with matrix.ErrDimensionMismatch, as the
//     lazy views do.

package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/lvmat/matrix"
)

// Engine dispatches float64 matrix operations to a Kernel.
type Engine struct {
	k Kernel
}

// NewEngine returns an engine over the configured kernel (gonum by default).
func NewEngine(opts ...Option) *Engine {
	return &Engine{k: gatherOptions(opts...).kernel}
}

// Kernel returns the backend in use.
func (e *Engine) Kernel() Kernel { return e.k }

// mismatch panics with a wrapped dimension error.
func mismatch(method string, got, want int) {
	panic(fmt.Errorf("Engine.%s(%d,%d): %w", method, got, want, matrix.ErrDimensionMismatch))
}

// unsupported describes the layout the engine has no mapping for.
func unsupported(method string, a *matrix.Matrix[float64]) error {
	p, s := a.Packer(), a.Shaper()
	return fmt.Errorf("Engine.%s(%v %v on %v, %v): %w",
		method, s.Scheme(), p.Order(), p.Scheme(), a.Symmetry(), matrix.ErrUnsupportedLayout)
}

// ---------- Layout classification ----------

// fullOrder reports whether a is a plain full matrix and its ordering.
func fullOrder(a *matrix.Matrix[float64]) (matrix.Order, bool) {
	p, s := a.Packer(), a.Shaper()
	if a.Symmetry() != matrix.NoSymmetry || p.Scheme() != matrix.SchemeFull || s.Scheme() != matrix.SchemeFull {
		return 0, false
	}

	return p.Order(), true
}

// bandWidth reports whether a is square band (or diagonal) storage and its half-width.
func bandWidth(a *matrix.Matrix[float64]) (int, bool) {
	p, s := a.Packer(), a.Shaper()
	if a.Symmetry() != matrix.NoSymmetry || a.Rows() != a.Cols() || p.Scheme() != s.Scheme() {
		return 0, false
	}
	switch p.Scheme() {
	case matrix.SchemeSBand:
		return p.Bandwidth(), s.Bandwidth() == p.Bandwidth()
	case matrix.SchemeDiagonal:
		return 0, true
	default:
		return 0, false
	}
}

// uploOf maps a triangular scheme to its BLAS flag.
func uploOf(s matrix.Scheme) (blas.Uplo, bool) {
	switch s {
	case matrix.SchemeUpper:
		return blas.Upper, true
	case matrix.SchemeLower:
		return blas.Lower, true
	default:
		return 0, false
	}
}

// packedTri reports whether a is square packed triangular storage with a
// matching shape, as the column-major uplo Dtpmv must be called with.
func packedTri(a *matrix.Matrix[float64]) (uplo blas.Uplo, rowMajor bool, ok bool) {
	p, s := a.Packer(), a.Shaper()
	if a.Symmetry() != matrix.NoSymmetry || a.Rows() != a.Cols() || p.Scheme() != s.Scheme() {
		return 0, false, false
	}
	uplo, ok = uploOf(p.Scheme())

	return uplo, p.Order() == matrix.RowMajor, ok
}

// triOnFull reports whether a is a square triangular shape on full storage.
func triOnFull(a *matrix.Matrix[float64]) (uplo blas.Uplo, order matrix.Order, ok bool) {
	p, s := a.Packer(), a.Shaper()
	if a.Symmetry() != matrix.NoSymmetry || a.Rows() != a.Cols() || p.Scheme() != matrix.SchemeFull {
		return 0, 0, false
	}
	uplo, ok = uploOf(s.Scheme())

	return uplo, p.Order(), ok
}

// ---------- Matrix-vector ----------

// MulVec returns A·x.
//
// Implementation:
//   - Stage 1: assert len(x) == A.Cols().
//   - Stage 2: dispatch on the layout (see the package table).
//
// Errors:
//   - matrix.ErrUnsupportedLayout for layouts without a BLAS mapping.
//
// Complexity:
//   - Time O(stored elements of A), Space O(rows).
func (e *Engine) MulVec(a *matrix.Matrix[float64], x *matrix.Vector[float64]) (*matrix.Vector[float64], error) {
	return e.gemv("MulVec", false, a, x)
}

// VecMul returns x·A (that is Aᵀ·x).
func (e *Engine) VecMul(x *matrix.Vector[float64], a *matrix.Matrix[float64]) (*matrix.Vector[float64], error) {
	return e.gemv("VecMul", true, a, x)
}

// gemv computes op(A)·x, op = transpose when trans is set.
func (e *Engine) gemv(method string, trans bool, a *matrix.Matrix[float64], x *matrix.Vector[float64]) (*matrix.Vector[float64], error) {
	r, c := a.Dims()
	in, out := c, r
	if trans {
		in, out = r, c
	}
	if x.Dim() != in {
		mismatch(method, x.Dim(), in)
	}
	tA := blas.NoTrans
	if trans {
		tA = blas.Trans
	}
	y := matrix.NewVector[float64](out)
	if r == 0 || c == 0 {
		return y, nil
	}
	data, xs, ys := a.Data(), x.Data(), y.Data()

	if order, ok := fullOrder(a); ok {
		if order == matrix.RowMajor {
			// RM A is CM Aᵀ (c×r).
			e.k.Dgemv(flipTrans(tA), c, r, 1, data, c, xs, 1, 0, ys, 1)
		} else {
			e.k.Dgemv(tA, r, c, 1, data, r, xs, 1, 0, ys, 1)
		}
		return y, nil
	}
	if k, ok := bandWidth(a); ok {
		e.k.Dgbmv(tA, r, r, k, k, 1, data, 2*k+1, xs, 1, 0, ys, 1)
		return y, nil
	}
	if uplo, rm, ok := packedTri(a); ok {
		copy(ys, xs)
		e.tpmv(uplo, rm, tA, r, data, ys)
		return y, nil
	}

	return nil, unsupported(method, a)
}

// TpmvInPlace overwrites x with A·x for packed triangular A.
func (e *Engine) TpmvInPlace(a *matrix.Matrix[float64], x *matrix.Vector[float64]) error {
	uplo, rm, ok := packedTri(a)
	if !ok {
		return unsupported("TpmvInPlace", a)
	}
	if x.Dim() != a.Cols() {
		mismatch("TpmvInPlace", x.Dim(), a.Cols())
	}
	if a.Rows() == 0 {
		return nil
	}
	e.tpmv(uplo, rm, blas.NoTrans, a.Rows(), a.Data(), x.Data())

	return nil
}

// tpmv calls Dtpmv; RM packed storage of A is CM packed storage of Aᵀ.
func (e *Engine) tpmv(uplo blas.Uplo, rowMajor bool, tA blas.Transpose, n int, ap, x []float64) {
	if rowMajor {
		uplo, tA = flipUplo(uplo), flipTrans(tA)
	}
	e.k.Dtpmv(uplo, tA, blas.NonUnit, n, ap, x, 1)
}

// ---------- Matrix-matrix ----------

// MulMat returns A·B as a new full matrix of the operands' ordering.
//
// Implementation:
//   - FullCM×FullCM: Dgemm('N','N', m, n, k, A, lda=m, B, ldb=k, C, ldc=m).
//   - FullRM×FullRM: Cᵀ = Bᵀ·Aᵀ on the same buffers, Dgemm with the operand
//     roles swapped; the CM result of Cᵀ is the RM result of C.
//
// Errors:
//   - matrix.ErrUnsupportedLayout for any other pair (including mixed orderings).
//
// Complexity:
//   - Time O(m·n·k), Space O(m·n).
func (e *Engine) MulMat(a, b *matrix.Matrix[float64]) (*matrix.Matrix[float64], error) {
	if a.Cols() != b.Rows() {
		mismatch("MulMat", a.Cols(), b.Rows())
	}
	oa, okA := fullOrder(a)
	ob, okB := fullOrder(b)
	if !okA {
		return nil, unsupported("MulMat", a)
	}
	if !okB || oa != ob {
		return nil, unsupported("MulMat", b)
	}
	m, n, k := a.Rows(), b.Cols(), a.Cols()
	kind := matrix.Kind(matrix.FullCM)
	if oa == matrix.RowMajor {
		kind = matrix.FullRM
	}
	c := make([]float64, m*n)
	if m > 0 && n > 0 && k > 0 {
		if oa == matrix.RowMajor {
			e.k.Dgemm(blas.NoTrans, blas.NoTrans, n, m, k, 1, b.Data(), n, a.Data(), k, 0, c, n)
		} else {
			e.k.Dgemm(blas.NoTrans, blas.NoTrans, m, n, k, 1, a.Data(), m, b.Data(), k, 0, c, m)
		}
	}

	return matrix.Wrap(kind, m, n, c)
}

// TrmmLeft overwrites B with A·B for a triangular A on full storage.
func (e *Engine) TrmmLeft(a, b *matrix.Matrix[float64]) error {
	if a.Cols() != b.Rows() {
		mismatch("TrmmLeft", a.Cols(), b.Rows())
	}

	return e.trmm("TrmmLeft", blas.Left, a, b)
}

// TrmmRight overwrites B with B·A for a triangular A on full storage.
func (e *Engine) TrmmRight(a, b *matrix.Matrix[float64]) error {
	if b.Cols() != a.Rows() {
		mismatch("TrmmRight", b.Cols(), a.Rows())
	}

	return e.trmm("TrmmRight", blas.Right, a, b)
}

// trmm dispatches Dtrmm. For RM operands Bᵀ := Bᵀ·Aᵀ (or Aᵀ·Bᵀ): the side
// and the triangle flip, the transpose flag does not.
func (e *Engine) trmm(method string, side blas.Side, a, b *matrix.Matrix[float64]) error {
	uplo, oa, ok := triOnFull(a)
	if !ok {
		return unsupported(method, a)
	}
	ob, okB := fullOrder(b)
	if !okB || ob != oa {
		return unsupported(method, b)
	}
	r, c, n := b.Rows(), b.Cols(), a.Rows()
	if r == 0 || c == 0 {
		return nil
	}
	b.Update(func(data []float64) {
		if oa == matrix.RowMajor {
			e.k.Dtrmm(flipSide(side), flipUplo(uplo), blas.NoTrans, blas.NonUnit, c, r, 1, a.Data(), n, data, c)
			return
		}
		e.k.Dtrmm(side, uplo, blas.NoTrans, blas.NonUnit, r, c, 1, a.Data(), n, data, r)
	})

	return nil
}
