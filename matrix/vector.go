// SPDX-License-Identifier: MIT
// Package matrix: vectors and lazy vector views with index windows.
//
// Purpose:
//   - Vector owns a contiguous buffer; VectorView is a non-owning lazy
//     sequence over an explicit index window [Lo, Hi) of a Dim()-long vector.
//   - Arithmetic intersects (dot) or unions (add/sub) the windows, so rows of
//     triangular and banded matrices combine without touching their
//     structural zeros.
//
// Determinism & Performance:
//   - Dot over two contiguous operands runs on slices aligned by the
//     Intersection drops; otherwise it calls At per index of the overlap.
//   - Views never allocate until materialized (Slice, Vector).

package matrix

import (
	"fmt"
	"iter"
	"math"
	"strings"
)

// Vec is the read surface shared by Vector and VectorView.
//
// At takes an absolute index in [0, Dim()) and returns zero outside Indices().
type Vec[T Scalar] interface {
	Dim() int
	Indices() Span
	At(k int) T
}

// ---------- Vector ----------

// Vector is an owning, contiguous vector with indices [0, Dim()).
type Vector[T Scalar] struct {
	data []T
}

// NewVector allocates a zero vector of dimension n.
func NewVector[T Scalar](n int) *Vector[T] {
	if n < 0 {
		panic(fmt.Errorf("NewVector(%d): %w", n, ErrInvalidDimensions))
	}

	return &Vector[T]{data: make([]T, n)}
}

// VectorOf copies vals into a new vector.
func VectorOf[T Scalar](vals ...T) *Vector[T] {
	return &Vector[T]{data: append([]T(nil), vals...)}
}

// VectorFrom materializes any Vec (zeros outside its window).
func VectorFrom[T Scalar](v Vec[T]) *Vector[T] {
	out := NewVector[T](v.Dim())
	span := v.Indices()
	for k := span.Lo; k < span.Hi; k++ {
		out.data[k] = v.At(k)
	}

	return out
}

func (v *Vector[T]) Dim() int      { return len(v.data) }
func (v *Vector[T]) Indices() Span { return Span{Lo: 0, Hi: len(v.data)} }

// Data exposes the backing buffer (no copy).
func (v *Vector[T]) Data() []T { return v.data }

// At returns v[k]; k must be in range.
func (v *Vector[T]) At(k int) T {
	if checksEnabled && (k < 0 || k >= len(v.data)) {
		violation(ctxAt, k, len(v.data), ErrOutOfRange)
	}

	return v.data[k]
}

// Set assigns v[k] = x.
func (v *Vector[T]) Set(k int, x T) {
	if checksEnabled && (k < 0 || k >= len(v.data)) {
		violation(ctxSet, k, len(v.data), ErrOutOfRange)
	}
	v.data[k] = x
}

// View returns a contiguous view over the whole vector.
func (v *Vector[T]) View() VectorView[T] { return SliceView(len(v.data), 0, v.data) }

// AddAssign performs v += w over w's window.
func (v *Vector[T]) AddAssign(w Vec[T]) *Vector[T] {
	checkSameDim[T](v, w)
	span := w.Indices()
	for k := span.Lo; k < span.Hi; k++ {
		v.data[k] += w.At(k)
	}

	return v
}

// SubAssign performs v -= w over w's window.
func (v *Vector[T]) SubAssign(w Vec[T]) *Vector[T] {
	checkSameDim[T](v, w)
	span := w.Indices()
	for k := span.Lo; k < span.Hi; k++ {
		v.data[k] -= w.At(k)
	}

	return v
}

// MulAssign scales v in place.
func (v *Vector[T]) MulAssign(s T) *Vector[T] {
	for k := range v.data {
		v.data[k] *= s
	}

	return v
}

// DivAssign divides v in place.
func (v *Vector[T]) DivAssign(s T) *Vector[T] {
	for k := range v.data {
		v.data[k] /= s
	}

	return v
}

// String formats v as "{a, b, c}".
func (v *Vector[T]) String() string { return formatVec[T](v) }

// ---------- VectorView ----------

// VectorView is a non-owning lazy sequence over the window span of a
// dim-long vector. Exactly one of data (contiguous, len == span.Len()) and
// at (absolute-index accessor) backs it.
type VectorView[T Scalar] struct {
	dim  int
	span Span
	data []T
	at   func(k int) T
}

// NewVectorView returns a view whose elements in span are produced by at.
func NewVectorView[T Scalar](dim int, span Span, at func(k int) T) VectorView[T] {
	return VectorView[T]{dim: dim, span: span, at: at}
}

// SliceView returns a contiguous view: data[0] is element lo.
func SliceView[T Scalar](dim, lo int, data []T) VectorView[T] {
	return VectorView[T]{dim: dim, span: Span{Lo: lo, Hi: lo + len(data)}, data: data}
}

func (v VectorView[T]) Dim() int      { return v.dim }
func (v VectorView[T]) Indices() Span { return v.span }

// Len is the window length (the number of elements the view yields).
func (v VectorView[T]) Len() int { return v.span.Len() }

// Contiguous returns the backing slice when the view has one.
func (v VectorView[T]) Contiguous() ([]T, bool) {
	if v.at != nil {
		return nil, false
	}

	return v.data, true
}

// At returns element k, zero outside the window.
func (v VectorView[T]) At(k int) T {
	if !v.span.Contains(k) {
		if checksEnabled && (k < 0 || k >= v.dim) {
			violation(ctxAt, k, v.dim, ErrOutOfRange)
		}
		return 0
	}
	if v.at != nil {
		return v.at(k)
	}

	return v.data[k-v.span.Lo]
}

// All yields (absolute index, value) pairs over the window.
func (v VectorView[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for k := v.span.Lo; k < v.span.Hi; k++ {
			if !yield(k, v.At(k)) {
				return
			}
		}
	}
}

// Values yields the window's values in order.
func (v VectorView[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := v.span.Lo; k < v.span.Hi; k++ {
			if !yield(v.At(k)) {
				return
			}
		}
	}
}

// Slice materializes the window values into a new slice.
func (v VectorView[T]) Slice() []T {
	out := make([]T, 0, v.span.Len())
	for x := range v.Values() {
		out = append(out, x)
	}

	return out
}

// Vector materializes the full-dimension vector (zeros outside the window).
func (v VectorView[T]) Vector() *Vector[T] { return VectorFrom[T](v) }

// String formats the window values as "{a, b, c}".
func (v VectorView[T]) String() string { return formatVec[T](v) }

// ---------- Arithmetic ----------

// checkSameDim asserts equal logical dimensions.
func checkSameDim[T Scalar](a, b Vec[T]) {
	if checksEnabled && a.Dim() != b.Dim() {
		violation("Vec", a.Dim(), b.Dim(), ErrDimensionMismatch)
	}
}

// contiguous extracts a slice holding exactly v's window, if v has one.
func contiguous[T Scalar](v Vec[T]) ([]T, bool) {
	switch x := v.(type) {
	case *Vector[T]:
		return x.data, true
	case VectorView[T]:
		return x.Contiguous()
	default:
		return nil, false
	}
}

// Dot returns sum a[k]*b[k] over the intersection of the operand windows.
//
// Implementation:
//   - Stage 1: assert equal Dim; intersect the windows.
//   - Stage 2: if both operands are contiguous, walk the slices starting at
//     DropA/DropB; otherwise call At for each k in the overlap.
//
// Complexity:
//   - Time O(|overlap|), Space O(1).
func Dot[T Scalar](a, b Vec[T]) T {
	checkSameDim(a, b)
	is := Intersect(a.Indices(), b.Indices())
	n := is.Len()
	var sum T
	if n == 0 {
		return sum
	}
	if sa, ok := contiguous(a); ok {
		if sb, ok := contiguous(b); ok {
			sa = sa[is.DropA : is.DropA+n]
			sb = sb[is.DropB : is.DropB+n]
			for k := range sa {
				sum += sa[k] * sb[k]
			}
			return sum
		}
	}
	for k := is.Lo; k < is.Hi; k++ {
		sum += a.At(k) * b.At(k)
	}

	return sum
}

// AddVec returns the lazy view a+b over the hull of the windows.
func AddVec[T Scalar](a, b Vec[T]) VectorView[T] {
	checkSameDim(a, b)

	return NewVectorView(a.Dim(), Hull(a.Indices(), b.Indices()), func(k int) T { return a.At(k) + b.At(k) })
}

// SubVec returns the lazy view a-b over the hull of the windows.
func SubVec[T Scalar](a, b Vec[T]) VectorView[T] {
	checkSameDim(a, b)

	return NewVectorView(a.Dim(), Hull(a.Indices(), b.Indices()), func(k int) T { return a.At(k) - b.At(k) })
}

// ScaleVec returns the lazy view s*a.
func ScaleVec[T Scalar](a Vec[T], s T) VectorView[T] {
	return NewVectorView(a.Dim(), a.Indices(), func(k int) T { return a.At(k) * s })
}

// DivVec returns the lazy view a/s.
func DivVec[T Scalar](a Vec[T], s T) VectorView[T] {
	return NewVectorView(a.Dim(), a.Indices(), func(k int) T { return a.At(k) / s })
}

// NegVec returns the lazy view -a.
func NegVec[T Scalar](a Vec[T]) VectorView[T] {
	return NewVectorView(a.Dim(), a.Indices(), func(k int) T { return -a.At(k) })
}

// Norm returns the Euclidean norm of a.
func Norm[T Scalar](a Vec[T]) float64 {
	var s float64
	span := a.Indices()
	for k := span.Lo; k < span.Hi; k++ {
		x := float64(a.At(k))
		s += x * x
	}

	return math.Sqrt(s)
}

// VecEqual compares two vectors logically: equal Dim and equal values at
// every index of the hull (outside a window a value reads as zero).
func VecEqual[T Scalar](a, b Vec[T]) bool {
	if a.Dim() != b.Dim() {
		return false
	}
	h := Hull(a.Indices(), b.Indices())
	for k := h.Lo; k < h.Hi; k++ {
		if a.At(k) != b.At(k) {
			return false
		}
	}

	return true
}

// VecEqualValues reports whether the window of v holds exactly vals.
func VecEqualValues[T Scalar](v Vec[T], vals ...T) bool {
	span := v.Indices()
	if span.Len() != len(vals) {
		return false
	}
	for k, x := range vals {
		if v.At(span.Lo+k) != x {
			return false
		}
	}

	return true
}

// formatVec renders the window values of v.
func formatVec[T Scalar](v Vec[T]) string {
	var sb strings.Builder
	sb.WriteByte('{')
	span := v.Indices()
	for k := span.Lo; k < span.Hi; k++ {
		if k > span.Lo {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v.At(k))
	}
	sb.WriteByte('}')

	return sb.String()
}
