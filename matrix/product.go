// SPDX-License-Identifier: MIT
// Package matrix: lazy matrix product.
//
// Purpose:
//   - ProductView computes C(i,j) = A.Row(i) · B.Col(j) on demand, summing
//     only over the intersection of the two index windows.
//   - The result layout comes from ProductPacker/ProductShaper, so positions
//     outside the composed shape cost nothing.
//
// Row cache (Full CM × Full CM):
//   - Reading a row of a column-major matrix is a strided walk. When both
//     operands are column-major full matrices, Row(i) copies row i of A into
//     a contiguous buffer once and dots it against every column of B, which
//     reproduces the "copy row, then dot" loop.
//   - The buffer belongs to that one row view. At reads A directly and
//     nothing is kept between calls, so results never depend on what was
//     read before, and writes to the operands (through methods, Data() or a
//     wrapped slice) are seen by the next read.

package matrix

// ProductView is the lazy product A*B.
type ProductView[T Scalar] struct {
	a, b   Expr[T]
	packer Packer
	shaper Shaper
	ca, cb *Matrix[T] // A and B as concrete Full CM matrices; nil otherwise
	fills  int        // row copies made by Row, observed by tests
}

// Mul returns the lazy product A*B.
//
// Implementation:
//   - Stage 1: assert a.Cols() == b.Rows().
//   - Stage 2: compose the result layout from the operands' effective packers
//     and their shapers.
//   - Stage 3: enable the row copy for Full CM × Full CM matrices.
//
// Errors:
//   - Panics with ErrDimensionMismatch on incompatible operands.
//
// Complexity:
//   - Time O(1), Space O(1); each row view of a cached product holds
//     O(cols(A)).
func Mul[T Scalar](a, b Expr[T]) *ProductView[T] {
	if checksEnabled && a.Cols() != b.Rows() {
		violation("Mul", a.Cols(), b.Rows(), ErrDimensionMismatch)
	}
	v := &ProductView[T]{
		a:      a,
		b:      b,
		packer: ProductPacker(EffectivePacker(a), EffectivePacker(b)),
		shaper: ProductShaper(a.Shaper(), b.Shaper()),
	}
	ma, okA := a.(*Matrix[T])
	mb, okB := b.(*Matrix[T])
	if okA && okB && isFullCM(ma) && isFullCM(mb) {
		v.ca, v.cb = ma, mb
	}

	return v
}

// isFullCM reports whether m is a plain column-major full matrix.
func isFullCM[T Scalar](m *Matrix[T]) bool {
	return m.layout.Symmetry == NoSymmetry &&
		m.layout.Packer.Scheme() == SchemeFull &&
		m.layout.Packer.Order() == ColMajor &&
		m.layout.Shaper.Scheme() == SchemeFull
}

// Cached reports whether row views copy the row of A before the dot products.
func (v *ProductView[T]) Cached() bool { return v.ca != nil }

// CacheFills returns how many rows of A the row views have copied.
func (v *ProductView[T]) CacheFills() int { return v.fills }

func (v *ProductView[T]) Rows() int          { return v.a.Rows() }
func (v *ProductView[T]) Cols() int          { return v.b.Cols() }
func (v *ProductView[T]) Dims() (int, int)   { return v.a.Rows(), v.b.Cols() }
func (v *ProductView[T]) Packer() Packer     { return v.packer }
func (v *ProductView[T]) Shaper() Shaper     { return v.shaper }
func (v *ProductView[T]) Symmetry() Symmetry { return NoSymmetry }

// At returns C(i,j); zero outside the composed shape.
func (v *ProductView[T]) At(i, j int) T {
	if checksEnabled {
		checkIndex(ctxAt, i, j, v.Rows(), v.Cols())
	}
	if !v.shaper.Contains(i, j) {
		return 0
	}
	if v.ca != nil {
		// strided walk over row i of A, contiguous column j of B
		r, n := v.ca.Rows(), v.ca.Cols()
		col := v.cb.data[j*n : (j+1)*n]
		var sum T
		for k, x := range col {
			sum += v.ca.data[i+k*r] * x
		}
		return sum
	}

	return Dot[T](v.a.Row(i), v.b.Col(j))
}

// Row returns row i of the product. For a cached product the row of A is
// copied once, when the view is built.
func (v *ProductView[T]) Row(i int) VectorView[T] {
	if v.ca == nil {
		return rowOf(v.shaper, i, v.At)
	}
	if checksEnabled {
		checkLine(ctxRow, i, v.Rows())
	}
	r, n := v.ca.Rows(), v.ca.Cols()
	buf := make([]T, n)
	for k := range buf {
		buf[k] = v.ca.data[i+k*r] // FullCM offset, strided by r
	}
	v.fills++

	return NewVectorView(v.Cols(), v.shaper.NonzeroCols(i), func(j int) T {
		col := v.cb.data[j*n : (j+1)*n]
		var sum T
		for k, x := range buf {
			sum += x * col[k]
		}
		return sum
	})
}

func (v *ProductView[T]) Col(j int) VectorView[T] { return colOf(v.shaper, j, v.At) }

var _ Expr[float64] = (*ProductView[float64])(nil)
