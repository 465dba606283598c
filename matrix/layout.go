// SPDX-License-Identifier: MIT
// Package matrix: layouts bundle a packer, a shaper and a symmetry.
//
// A Kind is a layout family parameterized by dimensions; it plays the role a
// concrete matrix type plays in a language with type-level dispatch:
//
//	m := matrix.Must(matrix.New[float64](matrix.UpperCM, 4, 4))
//	b := matrix.Must(matrix.New[float64](matrix.SBand(2), 6, 6))
//
// Layout is fixed at construction; nothing re-optimizes it at runtime.

package matrix

// Layout describes how a matrix stores, shapes and mirrors its elements.
type Layout struct {
	Packer   Packer
	Shaper   Shaper
	Symmetry Symmetry
}

// Kind builds the layout of a family for the given dimensions.
type Kind func(rows, cols int) Layout

// Full storage, full shape.
func FullCM(rows, cols int) Layout { return natural(NewFullPacker(ColMajor, rows, cols)) }
func FullRM(rows, cols int) Layout { return natural(NewFullPacker(RowMajor, rows, cols)) }

// Packed triangular storage and shape.
func UpperCM(rows, cols int) Layout { return natural(NewUpperPacker(ColMajor, rows, cols)) }
func UpperRM(rows, cols int) Layout { return natural(NewUpperPacker(RowMajor, rows, cols)) }
func LowerCM(rows, cols int) Layout { return natural(NewLowerPacker(ColMajor, rows, cols)) }
func LowerRM(rows, cols int) Layout { return natural(NewLowerPacker(RowMajor, rows, cols)) }

// Diagonal storage and shape.
func Diagonal(rows, cols int) Layout { return natural(NewDiagonalPacker(rows, cols)) }

// SBand returns the symmetric-band family with half-width k. Band storage is
// square, so a kind applied to rows != cols fails validation.
func SBand(k int) Kind {
	return func(rows, cols int) Layout {
		return Layout{
			Packer:   SBandPacker{n: rows, k: k},
			Shaper:   NewBandShape(rows, cols, k),
			Symmetry: NoSymmetry,
		}
	}
}

// Symmetric matrices: upper-triangular packed storage, full shape.
func SymmetricCM(rows, cols int) Layout { return mirrored(ColMajor, Symmetric, rows, cols) }
func SymmetricRM(rows, cols int) Layout { return mirrored(RowMajor, Symmetric, rows, cols) }

// Anti-symmetric matrices: upper-triangular packed storage, full shape.
func AntiSymmetricCM(rows, cols int) Layout { return mirrored(ColMajor, AntiSymmetric, rows, cols) }
func AntiSymmetricRM(rows, cols int) Layout { return mirrored(RowMajor, AntiSymmetric, rows, cols) }

// Triangular shapes on full storage: the layout BLAS trmm expects.
func UpperFullCM(rows, cols int) Layout { return onFull(ColMajor, NewUpperShape(rows, cols)) }
func UpperFullRM(rows, cols int) Layout { return onFull(RowMajor, NewUpperShape(rows, cols)) }
func LowerFullCM(rows, cols int) Layout { return onFull(ColMajor, NewLowerShape(rows, cols)) }
func LowerFullRM(rows, cols int) Layout { return onFull(RowMajor, NewLowerShape(rows, cols)) }

func natural(p Packer) Layout {
	return Layout{Packer: p, Shaper: p.Shaper(), Symmetry: NoSymmetry}
}

func mirrored(o Order, s Symmetry, rows, cols int) Layout {
	return Layout{Packer: NewUpperPacker(o, rows, cols), Shaper: NewFullShape(rows, cols), Symmetry: s}
}

func onFull(o Order, s Shaper) Layout {
	return Layout{Packer: NewFullPacker(o, s.Rows(), s.Cols()), Shaper: s, Symmetry: NoSymmetry}
}

// Rows returns the row count.
func (l Layout) Rows() int { return l.Packer.Rows() }

// Cols returns the column count.
func (l Layout) Cols() int { return l.Packer.Cols() }

// Resize returns the layout with new dimensions (packer and shaper together).
func (l Layout) Resize(rows, cols int) Layout {
	return Layout{Packer: l.Packer.Resize(rows, cols), Shaper: l.Shaper.Resize(rows, cols), Symmetry: l.Symmetry}
}

// Transpose returns the layout of the transposed matrix.
func (l Layout) Transpose() Layout {
	return Layout{Packer: l.Packer.Transpose(), Shaper: l.Shaper.Transpose(), Symmetry: l.Symmetry}
}

// SameAs reports whether two layouts describe identical storage and shape,
// i.e. their buffers can be combined element by element.
func (l Layout) SameAs(o Layout) bool {
	return l.Symmetry == o.Symmetry &&
		l.Packer.Scheme() == o.Packer.Scheme() &&
		l.Packer.Order() == o.Packer.Order() &&
		l.Packer.Bandwidth() == o.Packer.Bandwidth() &&
		l.Shaper.Scheme() == o.Shaper.Scheme() &&
		l.Shaper.Bandwidth() == o.Shaper.Bandwidth() &&
		l.Rows() == o.Rows() && l.Cols() == o.Cols()
}

// Validate checks the structural invariants of a layout.
//
// Implementation:
//   - Stage 1: non-negative dimensions, packer and shaper agree on dims,
//     non-negative bandwidth, square band storage.
//   - Stage 2: a symmetric layout must be square.
//   - Stage 3: every in-shape position must be reachable: stored itself
//     (NoSymmetry), or stored itself or through its mirror (symmetries).
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch, ErrBadBandwidth,
//     ErrNonSquare, ErrNotStored (wrapped with the offending position).
//
// Complexity:
//   - Time O(r*c) worst case, Space O(1).
func (l Layout) Validate() error {
	if l.Packer == nil || l.Shaper == nil {
		return matrixErrorf(ctxValidate, 0, 0, ErrNilMatrix)
	}
	r, c := l.Shaper.Dims()
	if r < 0 || c < 0 {
		return matrixErrorf(ctxValidate, r, c, ErrInvalidDimensions)
	}
	if l.Packer.Scheme() == SchemeSBand && r != c {
		return matrixErrorf(ctxValidate, r, c, ErrNonSquare)
	}
	if pr, pc := l.Packer.Dims(); pr != r || pc != c {
		return matrixErrorf(ctxValidate, pr, pc, ErrDimensionMismatch)
	}
	if l.Packer.Bandwidth() < 0 || l.Shaper.Bandwidth() < 0 {
		return matrixErrorf(ctxValidate, r, c, ErrBadBandwidth)
	}
	if l.Symmetry != NoSymmetry && r != c {
		return matrixErrorf(ctxValidate, r, c, ErrNonSquare)
	}
	for i := 0; i < r; i++ {
		span := l.Shaper.NonzeroCols(i)
		for j := span.Lo; j < span.Hi; j++ {
			if l.Packer.IsStored(i, j) {
				continue
			}
			if l.Symmetry != NoSymmetry && l.Packer.IsStored(j, i) {
				continue
			}
			return matrixErrorf(ctxValidate, i, j, ErrNotStored)
		}
	}

	return nil
}
