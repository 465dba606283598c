// SPDX-License-Identifier: MIT
// Package kernel: the column-major BLAS contract and its gonum translation.
//
// Purpose:
//   - Kernel is the fixed Fortran (column-major) calling contract for the
//     five routines this module dispatches to: Dgemv, Dgbmv, Dtpmv, Dgemm,
//     Dtrmm. A reference BLAS or a cgo binding satisfies it directly.
//   - ColMajor adapts gonum's row-major blas.Float64 to that contract without
//     moving data: a column-major buffer read row-major is the transpose.
//
// Translation rules (column-major call → row-major call):
//
//	Dgemv(tA, m, n, ...)            → Dgemv(flip tA, n, m, ...)
//	Dgbmv(tA, m, n, kl, ku, ...)    → Dgbmv(flip tA, n, m, ku, kl, ...)
//	Dtpmv(uplo, tA, ...)            → Dtpmv(flip uplo, flip tA, ...)
//	Dgemm(tA, tB, m, n, k, A, B)    → Dgemm(tB, tA, n, m, k, B, A)
//	Dtrmm(side, uplo, tA, m, n, ...) → Dtrmm(flip side, flip uplo, tA, n, m, ...)

package kernel

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"
)

// Kernel is the column-major BLAS subset used by Engine.
// Argument meaning follows reference BLAS; lda/ldb/ldc are column strides.
type Kernel interface {
	Dgemv(tA blas.Transpose, m, n int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int)
	Dgbmv(tA blas.Transpose, m, n, kl, ku int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int)
	Dtpmv(ul blas.Uplo, tA blas.Transpose, d blas.Diag, n int, ap []float64, x []float64, incX int)
	Dgemm(tA, tB blas.Transpose, m, n, k int, alpha float64, a []float64, lda int, b []float64, ldb int, beta float64, c []float64, ldc int)
	Dtrmm(s blas.Side, ul blas.Uplo, tA blas.Transpose, d blas.Diag, m, n int, alpha float64, a []float64, lda int, b []float64, ldb int)
}

// ColMajor implements Kernel over a row-major blas.Float64.
// A nil Impl uses gonum's pure-Go implementation.
type ColMajor struct {
	Impl blas.Float64
}

func (k ColMajor) impl() blas.Float64 {
	if k.Impl == nil {
		return gonum.Implementation{}
	}

	return k.Impl
}

// flipTrans swaps NoTrans and Trans (ConjTrans is Trans for real data).
func flipTrans(t blas.Transpose) blas.Transpose {
	if t == blas.NoTrans {
		return blas.Trans
	}

	return blas.NoTrans
}

func flipUplo(u blas.Uplo) blas.Uplo {
	if u == blas.Upper {
		return blas.Lower
	}

	return blas.Upper
}

func flipSide(s blas.Side) blas.Side {
	if s == blas.Left {
		return blas.Right
	}

	return blas.Left
}

// Dgemv computes y = alpha*op(A)*x + beta*y for a column-major m×n A.
func (k ColMajor) Dgemv(tA blas.Transpose, m, n int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int) {
	k.impl().Dgemv(flipTrans(tA), n, m, alpha, a, lda, x, incX, beta, y, incY)
}

// Dgbmv computes y = alpha*op(A)*x + beta*y for a column-major band A.
// Column-major band storage of A is row-major band storage of Aᵀ, whose
// sub- and super-diagonal counts are swapped.
func (k ColMajor) Dgbmv(tA blas.Transpose, m, n, kl, ku int, alpha float64, a []float64, lda int, x []float64, incX int, beta float64, y []float64, incY int) {
	k.impl().Dgbmv(flipTrans(tA), n, m, ku, kl, alpha, a, lda, x, incX, beta, y, incY)
}

// Dtpmv computes x = op(A)*x for a column-packed triangular A.
func (k ColMajor) Dtpmv(ul blas.Uplo, tA blas.Transpose, d blas.Diag, n int, ap []float64, x []float64, incX int) {
	k.impl().Dtpmv(flipUplo(ul), flipTrans(tA), d, n, ap, x, incX)
}

// Dgemm computes C = alpha*op(A)*op(B) + beta*C for column-major operands,
// as Cᵀ = op(B)ᵀ*op(A)ᵀ in row-major terms.
func (k ColMajor) Dgemm(tA, tB blas.Transpose, m, n, kk int, alpha float64, a []float64, lda int, b []float64, ldb int, beta float64, c []float64, ldc int) {
	k.impl().Dgemm(tB, tA, n, m, kk, alpha, b, ldb, a, lda, beta, c, ldc)
}

// Dtrmm computes B = alpha*op(A)*B (Left) or B = alpha*B*op(A) (Right).
func (k ColMajor) Dtrmm(s blas.Side, ul blas.Uplo, tA blas.Transpose, d blas.Diag, m, n int, alpha float64, a []float64, lda int, b []float64, ldb int) {
	k.impl().Dtrmm(flipSide(s), flipUplo(ul), tA, d, n, m, alpha, a, lda, b, ldb)
}

var _ Kernel = ColMajor{}
