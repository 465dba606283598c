// SPDX-License-Identifier: MIT
// Package matrix: the Matrix container.
//
// Purpose:
//   - Own a flat buffer of exactly Packer.StoredSize() elements together with
//     the Layout (packer, shaper, symmetry) that interprets it.
//   - Read any position (At never fails for in-range indices), write stored
//     positions (Set), and expose rows/columns as VectorViews.
//
// Invariants:
//   - len(data) == layout.Packer.StoredSize().
//   - At(i,j) == 0 outside the shape; otherwise Resolve(symmetry, ...).
//   - Construction and assignment refuse data the layout cannot represent:
//     a non-zero outside the shape, or a value that disagrees with the
//     symmetry at a position that is not stored.
//
// Determinism & Performance:
//   - Row (RM) and column (CM) views of layouts without symmetry are zero-copy
//     slices of the buffer.
//   - Lazy views keep no copies of a matrix between reads, so writes through
//     methods, Data() or a wrapped slice are visible to them immediately.

package matrix

import (
	"fmt"
	"iter"
	"strings"
)

// Matrix is a dense or structured matrix with a fixed layout.
type Matrix[T Scalar] struct {
	layout Layout
	data   []T
}

// New allocates a rows×cols matrix of the given kind and fills it per opts.
//
// Implementation:
//   - Stage 1: validate dimensions and the layout.
//   - Stage 2: allocate StoredSize() elements.
//   - Stage 3: apply the fill (default FillZero).
//
// Errors:
//   - ErrInvalidDimensions, or any Layout.Validate error.
//
// Complexity:
//   - Time O(r*c) for validation and fill, Space O(StoredSize).
func New[T Scalar](kind Kind, rows, cols int, opts ...Option) (*Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(ctxValidate, rows, cols, ErrInvalidDimensions)
	}
	l := kind(rows, cols)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	m := &Matrix[T]{layout: l, data: make([]T, l.Packer.StoredSize())}
	m.fill(gatherOptions(opts...))

	return m, nil
}

// Must panics if err is non-nil and returns m otherwise.
func Must[T Scalar](m *Matrix[T], err error) *Matrix[T] {
	if err != nil {
		panic(err)
	}

	return m
}

// Wrap adopts data as the buffer of a rows×cols matrix of the given kind,
// without copying. Stored slots outside the shape must hold zero.
//
// Errors:
//   - ErrInvalidDimensions, Layout.Validate errors, ErrDimensionMismatch when
//     len(data) != StoredSize(), ErrStructuralZero for a non-zero slot
//     outside the shape.
func Wrap[T Scalar](kind Kind, rows, cols int, data []T) (*Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(ctxWrap, rows, cols, ErrInvalidDimensions)
	}
	l := kind(rows, cols)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if len(data) != l.Packer.StoredSize() {
		return nil, matrixErrorf(ctxWrap, len(data), l.Packer.StoredSize(), ErrDimensionMismatch)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if l.Packer.IsStored(i, j) && !l.Shaper.Contains(i, j) && data[l.Packer.Offset(i, j)] != 0 {
				return nil, matrixErrorf(ctxWrap, i, j, ErrStructuralZero)
			}
		}
	}

	return &Matrix[T]{layout: l, data: data}, nil
}

// FromRows builds a matrix from a row-major literal, regardless of the
// internal ordering. Every literal value must be representable: zero outside
// the shape and equal to the mirrored value where the packer stores only the
// mirror.
//
// Errors:
//   - ErrDimensionMismatch for ragged rows, ErrStructuralZero,
//     ErrSymmetryViolation, Layout.Validate errors.
func FromRows[T Scalar](kind Kind, rows [][]T) (*Matrix[T], error) {
	r, c := len(rows), 0
	if r > 0 {
		c = len(rows[0])
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf(ctxFromRows, i, len(row), ErrDimensionMismatch)
		}
	}
	l := kind(r, c)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	at := func(i, j int) T { return rows[i][j] }
	m := &Matrix[T]{layout: l, data: make([]T, l.Packer.StoredSize())}
	loadInto(l, m.data, at)
	if err := representable(ctxFromRows, l, at, nil); err != nil {
		return nil, err
	}

	return m, nil
}

// From builds a matrix of the given kind from any expression, with the same
// representability check as FromRows. Positions outside the expression's
// own shape are known zeros and are not evaluated.
func From[T Scalar](kind Kind, e Expr[T]) (*Matrix[T], error) {
	r, c := e.Dims()
	l := kind(r, c)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	m := &Matrix[T]{layout: l, data: make([]T, l.Packer.StoredSize())}
	loadExpr(l, m.data, e)
	if err := representable(ctxFrom, l, e.At, outsideOf(e)); err != nil {
		return nil, err
	}

	return m, nil
}

// Eval materializes e in its own composed layout.
//
// Complexity:
//   - Time O(stored positions × cost of e.At), Space O(StoredSize).
func Eval[T Scalar](e Expr[T]) *Matrix[T] {
	l := Layout{Packer: e.Packer(), Shaper: e.Shaper(), Symmetry: e.Symmetry()}
	m := &Matrix[T]{layout: l, data: make([]T, l.Packer.StoredSize())}
	loadExpr(l, m.data, e)

	return m
}

// outsideOf reports the positions where e is structurally zero.
func outsideOf[T Scalar](e Expr[T]) func(i, j int) bool {
	s := e.Shaper()

	return func(i, j int) bool { return !s.Contains(i, j) }
}

// loadInto writes at(i,j) into every stored, in-shape position of data.
func loadInto[T Scalar](l Layout, data []T, at func(i, j int) T) {
	for i := 0; i < l.Rows(); i++ {
		span := l.Shaper.NonzeroCols(i)
		for j := span.Lo; j < span.Hi; j++ {
			if l.Packer.IsStored(i, j) {
				data[l.Packer.Offset(i, j)] = at(i, j)
			}
		}
	}
}

// loadExpr is loadInto over e's row views, so each row of e is traversed
// through one view (a product copies the row of A once per row).
func loadExpr[T Scalar](l Layout, data []T, e Expr[T]) {
	for i := 0; i < l.Rows(); i++ {
		row := e.Row(i)
		span := l.Shaper.NonzeroCols(i)
		for j := span.Lo; j < span.Hi; j++ {
			if l.Packer.IsStored(i, j) {
				data[l.Packer.Offset(i, j)] = row.At(j)
			}
		}
	}
}

// representable checks that at can be stored in layout l without loss.
//
// Implementation:
//   - Outside the shape, at must be zero (positions for which skip reports
//     true are known zeros and are not evaluated).
//   - Inside the shape but unstored, at(i,j) must equal the mirror of at(j,i).
//   - Under AntiSymmetric, the diagonal must be zero.
//
// Complexity:
//   - Time O(r*c) evaluations of at in the worst case, Space O(1).
func representable[T Scalar](method string, l Layout, at func(i, j int) T, skip func(i, j int) bool) error {
	for i := 0; i < l.Rows(); i++ {
		for j := 0; j < l.Cols(); j++ {
			switch {
			case !l.Shaper.Contains(i, j):
				if skip != nil && skip(i, j) {
					continue
				}
				if at(i, j) != 0 {
					return matrixErrorf(method, i, j, ErrStructuralZero)
				}
			case !l.Packer.IsStored(i, j):
				if at(i, j) != mirror(l.Symmetry, at(j, i)) {
					return matrixErrorf(method, i, j, ErrSymmetryViolation)
				}
			case l.Symmetry == AntiSymmetric && i == j:
				if at(i, j) != 0 {
					return matrixErrorf(method, i, j, ErrSymmetryViolation)
				}
			}
		}
	}

	return nil
}

// fill applies the resolved fill mode to stored, in-shape positions.
func (m *Matrix[T]) fill(o Options) {
	switch o.fill {
	case FillNone:
		return
	case FillZero:
		clear(m.data)
	case FillOne:
		m.fillStored(func() T { return 1 })
	case FillValue:
		v := T(o.value)
		m.fillStored(func() T { return v })
	case FillRandom:
		m.fillStored(func() T { return T(o.src.Float64() * o.randomMax) })
	case FillUnit:
		clear(m.data)
		if m.layout.Symmetry == AntiSymmetric {
			return // the diagonal stays zero
		}
		for i := 0; i < min(m.Rows(), m.Cols()); i++ {
			if m.layout.Packer.IsStored(i, i) && m.layout.Shaper.Contains(i, i) {
				m.data[m.layout.Packer.Offset(i, i)] = 1
			}
		}
	}
}

// fillStored assigns next() to stored in-shape positions in row order.
// The anti-symmetric diagonal is kept at zero.
func (m *Matrix[T]) fillStored(next func() T) {
	clear(m.data)
	anti := m.layout.Symmetry == AntiSymmetric
	for i := 0; i < m.Rows(); i++ {
		span := m.layout.Shaper.NonzeroCols(i)
		for j := span.Lo; j < span.Hi; j++ {
			if m.layout.Packer.IsStored(i, j) && !(anti && i == j) {
				m.data[m.layout.Packer.Offset(i, j)] = next()
			}
		}
	}
}

// ---------- Read surface (Expr) ----------

func (m *Matrix[T]) Rows() int          { return m.layout.Packer.Rows() }
func (m *Matrix[T]) Cols() int          { return m.layout.Packer.Cols() }
func (m *Matrix[T]) Dims() (int, int)   { return m.layout.Packer.Dims() }
func (m *Matrix[T]) Packer() Packer     { return m.layout.Packer }
func (m *Matrix[T]) Shaper() Shaper     { return m.layout.Shaper }
func (m *Matrix[T]) Symmetry() Symmetry { return m.layout.Symmetry }
func (m *Matrix[T]) Layout() Layout     { return m.layout }

// Data exposes the stored buffer (no copy). Writes through it bypass the
// storage checks: slots outside the shape must stay zero.
func (m *Matrix[T]) Data() []T { return m.data }

// Update runs fn over the stored buffer. fn must keep slots outside the
// shape at zero.
func (m *Matrix[T]) Update(fn func(data []T)) {
	fn(m.data)
}

// At returns the logical value at (i,j): zero outside the shape, the stored
// value, or the symmetry-resolved mirror.
func (m *Matrix[T]) At(i, j int) T {
	if checksEnabled {
		checkIndex(ctxAt, i, j, m.Rows(), m.Cols())
	}
	if !m.layout.Shaper.Contains(i, j) {
		return 0
	}

	return Resolve(m.layout.Symmetry, m.data, m.layout.Packer, i, j)
}

// Set writes v at (i,j); the position must be stored and inside the shape.
func (m *Matrix[T]) Set(i, j int, v T) {
	if checksEnabled {
		checkIndex(ctxSet, i, j, m.Rows(), m.Cols())
		if !m.layout.Shaper.Contains(i, j) {
			violation(ctxSet, i, j, ErrStructuralZero)
		}
		if !m.layout.Packer.IsStored(i, j) {
			violation(ctxSet, i, j, ErrNotStored)
		}
	}
	m.data[m.layout.Packer.Offset(i, j)] = v
}

// rowContiguous reports whether stored rows are adjacent in the buffer.
func rowContiguous(l Layout) bool {
	return l.Symmetry == NoSymmetry && (l.Packer.Order() == RowMajor || l.Packer.Scheme() == SchemeDiagonal)
}

// colContiguous reports whether stored columns are adjacent in the buffer.
func colContiguous(l Layout) bool {
	return l.Symmetry == NoSymmetry && (l.Packer.Order() == ColMajor || l.Packer.Scheme() == SchemeDiagonal)
}

// Row returns row i over the shape's non-zero columns.
func (m *Matrix[T]) Row(i int) VectorView[T] {
	span := m.layout.Shaper.NonzeroCols(i)
	if rowContiguous(m.layout) {
		if span.Empty() {
			return SliceView[T](m.Cols(), span.Lo, nil)
		}
		off := m.layout.Packer.Offset(i, span.Lo)
		return SliceView(m.Cols(), span.Lo, m.data[off:off+span.Len()])
	}

	return rowOf(m.layout.Shaper, i, m.At)
}

// Col returns column j over the shape's non-zero rows.
func (m *Matrix[T]) Col(j int) VectorView[T] {
	span := m.layout.Shaper.NonzeroRows(j)
	if colContiguous(m.layout) {
		if span.Empty() {
			return SliceView[T](m.Rows(), span.Lo, nil)
		}
		off := m.layout.Packer.Offset(span.Lo, j)
		return SliceView(m.Rows(), span.Lo, m.data[off:off+span.Len()])
	}

	return colOf(m.layout.Shaper, j, m.At)
}

// RowViews yields (i, Row(i)) for every row.
func (m *Matrix[T]) RowViews() iter.Seq2[int, VectorView[T]] {
	return func(yield func(int, VectorView[T]) bool) {
		for i := 0; i < m.Rows(); i++ {
			if !yield(i, m.Row(i)) {
				return
			}
		}
	}
}

// ColViews yields (j, Col(j)) for every column.
func (m *Matrix[T]) ColViews() iter.Seq2[int, VectorView[T]] {
	return func(yield func(int, VectorView[T]) bool) {
		for j := 0; j < m.Cols(); j++ {
			if !yield(j, m.Col(j)) {
				return
			}
		}
	}
}

// Stored yields every stored, in-shape position and its value in row order.
func (m *Matrix[T]) Stored() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		p := m.layout.Packer
		for i := 0; i < m.Rows(); i++ {
			span := m.layout.Shaper.NonzeroCols(i)
			for j := span.Lo; j < span.Hi; j++ {
				if !p.IsStored(i, j) {
					continue
				}
				if !yield(Index{Row: i, Col: j}, m.data[p.Offset(i, j)]) {
					return
				}
			}
		}
	}
}

// ---------- Mutation ----------

// Clone returns a deep copy with the same layout.
func (m *Matrix[T]) Clone() *Matrix[T] {
	return &Matrix[T]{layout: m.layout, data: append([]T(nil), m.data...)}
}

// Assign replaces m's contents with e, resizing when dimensions differ.
// The layout family is kept; e must be representable in it. On error m is
// unchanged. With equal dimensions the existing buffer is reused, so a
// wrapped (e.g. memory-mapped) buffer stays attached.
//
// Errors:
//   - ErrStructuralZero, ErrSymmetryViolation, Layout.Validate errors.
func (m *Matrix[T]) Assign(e Expr[T]) error {
	l := m.layout
	sameDims := l.Rows() == e.Rows() && l.Cols() == e.Cols()
	if !sameDims {
		l = l.Resize(e.Rows(), e.Cols())
		if err := l.Validate(); err != nil {
			return err
		}
	}
	buf := make([]T, l.Packer.StoredSize())
	loadExpr(l, buf, e)
	if err := representable(ctxAssign, l, e.At, outsideOf(e)); err != nil {
		return err
	}
	if sameDims {
		copy(m.data, buf)
	} else {
		m.data = buf
	}
	m.layout = l

	return nil
}

// AddAssign performs m += e over m's stored positions.
// Panics with ErrDimensionMismatch, or with ErrStructuralZero /
// ErrSymmetryViolation when the sum would not be representable in m.
func (m *Matrix[T]) AddAssign(e Expr[T]) *Matrix[T] {
	m.combine(ctxAddAssign, e, func(x, y T) T { return x + y })

	return m
}

// SubAssign performs m -= e over m's stored positions.
func (m *Matrix[T]) SubAssign(e Expr[T]) *Matrix[T] {
	m.combine(ctxSubAssign, e, func(x, y T) T { return x - y })

	return m
}

// combine applies data[k] = op(data[k], e at the same position).
func (m *Matrix[T]) combine(method string, e Expr[T], op func(x, y T) T) {
	if checksEnabled {
		if m.Rows() != e.Rows() || m.Cols() != e.Cols() {
			violation(method, e.Rows(), e.Cols(), ErrDimensionMismatch)
		}
		if err := representable(method, m.layout, e.At, outsideOf(e)); err != nil {
			panic(err)
		}
	}
	if o, ok := e.(*Matrix[T]); ok && o.layout.SameAs(m.layout) {
		ewCombine(m.data, o.data, op)
	} else {
		delta := make([]T, len(m.data))
		loadExpr(m.layout, delta, e)
		m.eachStored(func(off int) { m.data[off] = op(m.data[off], delta[off]) })
	}
}

// eachStored calls fn with the offset of every stored, in-shape position.
// The anti-symmetric diagonal is skipped: it is zero by construction.
func (m *Matrix[T]) eachStored(fn func(off int)) {
	p := m.layout.Packer
	anti := m.layout.Symmetry == AntiSymmetric
	for i := 0; i < m.Rows(); i++ {
		span := m.layout.Shaper.NonzeroCols(i)
		for j := span.Lo; j < span.Hi; j++ {
			if p.IsStored(i, j) && !(anti && i == j) {
				fn(p.Offset(i, j))
			}
		}
	}
}

// AddScalar adds s to every stored, in-shape element.
func (m *Matrix[T]) AddScalar(s T) *Matrix[T] {
	m.eachStored(func(off int) { m.data[off] += s })

	return m
}

// SubScalar subtracts s from every stored, in-shape element.
func (m *Matrix[T]) SubScalar(s T) *Matrix[T] {
	m.eachStored(func(off int) { m.data[off] -= s })

	return m
}

// MulScalar multiplies every stored element by s.
func (m *Matrix[T]) MulScalar(s T) *Matrix[T] {
	ewScale(m.data, s)

	return m
}

// DivScalar divides every stored element by s.
func (m *Matrix[T]) DivScalar(s T) *Matrix[T] {
	ewDiv(m.data, s)

	return m
}

// String renders the logical matrix row by row.
func (m *Matrix[T]) String() string { return Format[T](m) }

// Format renders any expression as "{{a, b}, {c, d}}" rows.
func Format[T Scalar](e Expr[T]) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := 0; i < e.Rows(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('{')
		for j := 0; j < e.Cols(); j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprint(&sb, e.At(i, j))
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('}')

	return sb.String()
}

var _ Expr[float64] = (*Matrix[float64])(nil)
