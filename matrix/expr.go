// SPDX-License-Identifier: MIT
// Package matrix: lazy matrix expressions.
//
// Purpose:
//   - Expr is the read surface shared by concrete matrices and lazy views.
//   - Views hold their operands (matrices by pointer, views by value) plus the
//     composed layout; they compute elements on access and never
//     materialize a full result until Eval, From or Assign is called.
//
// Lifetime:
//   - A view is valid while its operands are alive and unchanged; mutating an
//     operand changes what the view reads.
//
// Concurrency:
//   - Views are not safe for concurrent use (the product row cache mutates on read).

package matrix

// Expr is a matrix-like value: a concrete *Matrix or a lazy view.
type Expr[T Scalar] interface {
	Rows() int
	Cols() int
	Dims() (rows, cols int)
	// At returns the logical value at (i,j) (zero outside the shape).
	At(i, j int) T
	// Row returns row i over the shape's non-zero columns.
	Row(i int) VectorView[T]
	// Col returns column j over the shape's non-zero rows.
	Col(j int) VectorView[T]
	Packer() Packer
	Shaper() Shaper
	Symmetry() Symmetry
}

// checkIndex asserts that (i,j) addresses e.
func checkIndex(method string, i, j, r, c int) {
	if !inRange(i, j, r, c) {
		violation(method, i, j, ErrOutOfRange)
	}
}

// rowOf builds a lazy row view of any element accessor.
func rowOf[T Scalar](s Shaper, i int, at func(i, j int) T) VectorView[T] {
	return NewVectorView(s.Cols(), s.NonzeroCols(i), func(j int) T { return at(i, j) })
}

// colOf builds a lazy column view of any element accessor.
func colOf[T Scalar](s Shaper, j int, at func(i, j int) T) VectorView[T] {
	return NewVectorView(s.Rows(), s.NonzeroRows(j), func(i int) T { return at(i, j) })
}

// ---------- Elementwise binary view ----------

// BinOpView lazily evaluates op(A(i,j), B(i,j)) on the Sum-composed layout.
type BinOpView[T Scalar] struct {
	a, b   Expr[T]
	op     func(x, y T) T
	packer Packer
	shaper Shaper
}

// newBinOp asserts equal dimensions and composes the layout.
func newBinOp[T Scalar](name string, a, b Expr[T], op func(x, y T) T) *BinOpView[T] {
	if checksEnabled && (a.Rows() != b.Rows() || a.Cols() != b.Cols()) {
		violation(name, a.Rows(), b.Rows(), ErrDimensionMismatch)
	}

	return &BinOpView[T]{
		a:      a,
		b:      b,
		op:     op,
		packer: SumPacker(EffectivePacker(a), EffectivePacker(b)),
		shaper: SumShaper(a.Shaper(), b.Shaper()),
	}
}

// Add returns the lazy view A+B.
func Add[T Scalar](a, b Expr[T]) *BinOpView[T] {
	return newBinOp("Add", a, b, func(x, y T) T { return x + y })
}

// Sub returns the lazy view A-B.
func Sub[T Scalar](a, b Expr[T]) *BinOpView[T] {
	return newBinOp("Sub", a, b, func(x, y T) T { return x - y })
}

// Hadamard returns the lazy elementwise product A∘B.
func Hadamard[T Scalar](a, b Expr[T]) *BinOpView[T] {
	return newBinOp("Hadamard", a, b, func(x, y T) T { return x * y })
}

func (v *BinOpView[T]) Rows() int          { return v.a.Rows() }
func (v *BinOpView[T]) Cols() int          { return v.a.Cols() }
func (v *BinOpView[T]) Dims() (int, int)   { return v.a.Rows(), v.a.Cols() }
func (v *BinOpView[T]) Packer() Packer     { return v.packer }
func (v *BinOpView[T]) Shaper() Shaper     { return v.shaper }
func (v *BinOpView[T]) Symmetry() Symmetry { return NoSymmetry }

func (v *BinOpView[T]) At(i, j int) T {
	if checksEnabled {
		checkIndex(ctxAt, i, j, v.Rows(), v.Cols())
	}
	if !v.shaper.Contains(i, j) {
		return 0
	}

	return v.op(v.a.At(i, j), v.b.At(i, j))
}

func (v *BinOpView[T]) Row(i int) VectorView[T] { return rowOf(v.shaper, i, v.At) }
func (v *BinOpView[T]) Col(j int) VectorView[T] { return colOf(v.shaper, j, v.At) }

// ---------- Elementwise unary view ----------

// OpView lazily evaluates op(A(i,j)). It keeps A's packer, shaper and
// symmetry: scaling and negation preserve all three.
type OpView[T Scalar] struct {
	a  Expr[T]
	op func(x T) T
}

// Scale returns the lazy view s*A.
func Scale[T Scalar](a Expr[T], s T) *OpView[T] {
	return &OpView[T]{a: a, op: func(x T) T { return x * s }}
}

// Div returns the lazy view A/s.
func Div[T Scalar](a Expr[T], s T) *OpView[T] {
	return &OpView[T]{a: a, op: func(x T) T { return x / s }}
}

// Neg returns the lazy view -A.
func Neg[T Scalar](a Expr[T]) *OpView[T] {
	return &OpView[T]{a: a, op: func(x T) T { return -x }}
}

func (v *OpView[T]) Rows() int          { return v.a.Rows() }
func (v *OpView[T]) Cols() int          { return v.a.Cols() }
func (v *OpView[T]) Dims() (int, int)   { return v.a.Dims() }
func (v *OpView[T]) Packer() Packer     { return v.a.Packer() }
func (v *OpView[T]) Shaper() Shaper     { return v.a.Shaper() }
func (v *OpView[T]) Symmetry() Symmetry { return v.a.Symmetry() }

func (v *OpView[T]) At(i, j int) T {
	if !v.a.Shaper().Contains(i, j) {
		if checksEnabled {
			checkIndex(ctxAt, i, j, v.Rows(), v.Cols())
		}
		return 0
	}

	return v.op(v.a.At(i, j))
}

func (v *OpView[T]) Row(i int) VectorView[T] { return rowOf(v.a.Shaper(), i, v.At) }
func (v *OpView[T]) Col(j int) VectorView[T] { return colOf(v.a.Shaper(), j, v.At) }

// ---------- Transpose view ----------

// TransposeView presents A^T without copying.
type TransposeView[T Scalar] struct {
	a Expr[T]
}

// Transpose returns the lazy view A^T.
func Transpose[T Scalar](a Expr[T]) *TransposeView[T] { return &TransposeView[T]{a: a} }

func (v *TransposeView[T]) Rows() int               { return v.a.Cols() }
func (v *TransposeView[T]) Cols() int               { return v.a.Rows() }
func (v *TransposeView[T]) Dims() (int, int)        { return v.a.Cols(), v.a.Rows() }
func (v *TransposeView[T]) At(i, j int) T           { return v.a.At(j, i) }
func (v *TransposeView[T]) Row(i int) VectorView[T] { return v.a.Col(i) }
func (v *TransposeView[T]) Col(j int) VectorView[T] { return v.a.Row(j) }
func (v *TransposeView[T]) Packer() Packer          { return v.a.Packer().Transpose() }
func (v *TransposeView[T]) Shaper() Shaper          { return v.a.Shaper().Transpose() }
func (v *TransposeView[T]) Symmetry() Symmetry      { return v.a.Symmetry() }

// ---------- Matrix-vector ----------

// MulVec returns the lazy vector A·v (element i is Row(i)·v).
func MulVec[T Scalar](a Expr[T], v Vec[T]) VectorView[T] {
	if checksEnabled && a.Cols() != v.Dim() {
		violation("MulVec", a.Cols(), v.Dim(), ErrDimensionMismatch)
	}

	return NewVectorView(a.Rows(), Span{Lo: 0, Hi: a.Rows()}, func(i int) T {
		return Dot[T](a.Row(i), v)
	})
}

// VecMul returns the lazy vector v·A (element j is v·Col(j)).
func VecMul[T Scalar](v Vec[T], a Expr[T]) VectorView[T] {
	if checksEnabled && a.Rows() != v.Dim() {
		violation("VecMul", v.Dim(), a.Rows(), ErrDimensionMismatch)
	}

	return NewVectorView(a.Cols(), Span{Lo: 0, Hi: a.Cols()}, func(j int) T {
		return Dot[T](v, a.Col(j))
	})
}

// compile-time interface checks
var (
	_ Expr[float64] = (*BinOpView[float64])(nil)
	_ Expr[float64] = (*OpView[float64])(nil)
	_ Expr[float64] = (*TransposeView[float64])(nil)
)
