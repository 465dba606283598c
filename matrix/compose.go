// SPDX-License-Identifier: MIT
// Package matrix: composition tables for binary matrix operations.
//
// Purpose:
//   - Pick the cheapest legal result layout for A*B (Product) and for
//     elementwise A±B, A∘B (Sum) from the operands' scheme tags.
//   - Packer and shaper composition both consult ComposeSchemes, so the
//     "what must be stored" and "what is non-zero" answers cannot drift.
//
// Table (symmetric in its arguments unless noted):
//
//	          Full  Upper  Lower  Diag   SBand
//	Full      Full  Full   Full   Full   Full
//	Upper     Full  Upper  Full   Upper  Full
//	Lower     Full  Full   Lower  Lower  Full
//	Diag      Full  Upper  Lower  Diag   SBand
//	SBand     Full  Full   Full   SBand  SBand
//
// Band parameters: Product adds the half-widths, Sum takes the larger one.
// A Diagonal operand acts as a band of half-width 0.

package matrix

// ComposeOp selects the composition rule family.
type ComposeOp uint8

const (
	// Product composes layouts for A*B.
	Product ComposeOp = iota
	// Sum composes layouts for elementwise operations (A+B, A-B, A∘B).
	Sum
)

// ComposeSchemes is the pure scheme table shared by packers and shapers.
// The op argument does not change the scheme, only the band parameter
// (see ComposeBandwidth); it is accepted so the table reads as one
// function of (op, a, b).
func ComposeSchemes(op ComposeOp, a, b Scheme) Scheme {
	_ = op
	switch {
	case a == SchemeFull || b == SchemeFull:
		return SchemeFull
	case a == SchemeDiagonal:
		return b
	case b == SchemeDiagonal:
		return a
	case a == b:
		return a // Upper⊗Upper, Lower⊗Lower, SBand⊗SBand
	default:
		return SchemeFull // opposite triangles, triangle with band
	}
}

// ComposeBandwidth returns the half-width of a band result.
func ComposeBandwidth(op ComposeOp, ka, kb int) int {
	if op == Product {
		return ka + kb
	}

	return max(ka, kb)
}

// ComposeOrders picks the ordering of a composed result.
//
// Implementation:
//   - Stage 1: Diagonal results have no ordering; band storage is CM.
//   - Stage 2: prefer the first operand whose scheme equals the result scheme
//     and that has a definite ordering (Full dominates with its own ordering,
//     the left one when both are Full).
//   - Stage 3: otherwise the first definite ordering, else ColMajor.
func ComposeOrders(result Scheme, sa Scheme, oa Order, sb Scheme, ob Order) Order {
	switch result {
	case SchemeDiagonal:
		return AnyOrder
	case SchemeSBand:
		return ColMajor
	}
	if sa == result && oa != AnyOrder {
		return oa
	}
	if sb == result && ob != AnyOrder {
		return ob
	}
	if oa != AnyOrder {
		return oa
	}
	if ob != AnyOrder {
		return ob
	}

	return ColMajor
}

// NewPacker builds a packer from its description.
func NewPacker(s Scheme, o Order, rows, cols, k int) Packer {
	switch s {
	case SchemeUpper:
		return NewUpperPacker(o, rows, cols)
	case SchemeLower:
		return NewLowerPacker(o, rows, cols)
	case SchemeDiagonal:
		return NewDiagonalPacker(rows, cols)
	case SchemeSBand:
		return NewSBandPacker(rows, k)
	default:
		return NewFullPacker(o, rows, cols)
	}
}

// NewShaper builds a shaper from its description.
func NewShaper(s Scheme, rows, cols, k int) Shaper {
	switch s {
	case SchemeUpper:
		return NewUpperShape(rows, cols)
	case SchemeLower:
		return NewLowerShape(rows, cols)
	case SchemeDiagonal:
		return NewDiagonalShape(rows, cols)
	case SchemeSBand:
		return NewBandShape(rows, cols, k)
	default:
		return NewFullShape(rows, cols)
	}
}

// composePacker applies the table to two packers with result dims (rows, cols).
func composePacker(op ComposeOp, a, b Packer, rows, cols int) Packer {
	s := ComposeSchemes(op, a.Scheme(), b.Scheme())
	o := ComposeOrders(s, a.Scheme(), a.Order(), b.Scheme(), b.Order())
	k := ComposeBandwidth(op, a.Bandwidth(), b.Bandwidth())
	if s == SchemeSBand && rows != cols {
		// band storage is square; a rectangular band result falls back to full
		return NewFullPacker(ColMajor, rows, cols)
	}

	return NewPacker(s, o, rows, cols, k)
}

// composeShaper applies the same table to two shapers.
func composeShaper(op ComposeOp, a, b Shaper, rows, cols int) Shaper {
	s := ComposeSchemes(op, a.Scheme(), b.Scheme())
	k := ComposeBandwidth(op, a.Bandwidth(), b.Bandwidth())

	return NewShaper(s, rows, cols, k)
}

// ProductPacker returns the storage layout of A*B.
func ProductPacker(a, b Packer) Packer {
	return composePacker(Product, a, b, a.Rows(), b.Cols())
}

// ProductShaper returns the shape of A*B.
func ProductShaper(a, b Shaper) Shaper {
	return composeShaper(Product, a, b, a.Rows(), b.Cols())
}

// SumPacker returns the storage layout of an elementwise A op B.
func SumPacker(a, b Packer) Packer {
	return composePacker(Sum, a, b, a.Rows(), a.Cols())
}

// SumShaper returns the shape of an elementwise A op B.
func SumShaper(a, b Shaper) Shaper {
	return composeShaper(Sum, a, b, a.Rows(), a.Cols())
}

// EffectivePacker is the packer an expression contributes to composition.
// A symmetric operand is logically full, so it composes as the full packer
// of its ordering.
func EffectivePacker[T Scalar](e Expr[T]) Packer {
	p := e.Packer()
	if e.Symmetry() == NoSymmetry {
		return p
	}

	return NewFullPacker(p.Order(), p.Rows(), p.Cols())
}
