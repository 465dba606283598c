// SPDX-License-Identifier: MIT
// Package kernel: interoperation with gonum's mat package.
//
// Purpose:
//   - ToDense copies any expression into a *mat.Dense.
//   - AsMat exposes the buffer of a full or band matrix as a mat.Matrix
//     without copying.
//   - AsExpr presents any mat.Matrix as a lazy matrix.Expr, so gonum values
//     take part in products and elementwise views directly.
//   - FromMat materializes a mat.Matrix into a layout of choice.

package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvmat/matrix"
)

// ToDense copies the logical values of e into a new *mat.Dense.
// An empty expression yields an empty (zero-value) Dense.
func ToDense(e matrix.Expr[float64]) *mat.Dense {
	r, c := e.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		span := e.Shaper().NonzeroCols(i)
		for j := span.Lo; j < span.Hi; j++ {
			d.Set(i, j, e.At(i, j))
		}
	}

	return d
}

// AsMat shares the buffer of m with gonum.
//
// Implementation:
//   - FullRM: mat.NewDense over the buffer.
//   - FullCM: the buffer is the row-major Aᵀ; return its transpose view.
//   - SBand(k): column-major band storage of A is row-major band storage of
//     Aᵀ with kl = ku = k; return its TBand view.
//
// Errors:
//   - matrix.ErrUnsupportedLayout for other layouts, matrix.ErrInvalidDimensions
//     for empty matrices (gonum has no empty dense constructor).
func AsMat(m *matrix.Matrix[float64]) (mat.Matrix, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("AsMat(%d,%d): %w", r, c, matrix.ErrInvalidDimensions)
	}
	if order, ok := fullOrder(m); ok {
		if order == matrix.RowMajor {
			return mat.NewDense(r, c, m.Data()), nil
		}
		return mat.NewDense(c, r, m.Data()).T(), nil
	}
	if m.Symmetry() == matrix.NoSymmetry && m.Packer().Scheme() == matrix.SchemeSBand && m.Shaper().Scheme() == matrix.SchemeSBand {
		k := m.Packer().Bandwidth()
		if k < r {
			return mat.NewBandDense(r, r, k, k, m.Data()).TBand(), nil
		}
	}

	return nil, unsupported("AsMat", m)
}

// FromMat materializes src into a matrix of the given kind.
// Errors are those of matrix.From (e.g. ErrStructuralZero when src has a
// non-zero outside the kind's shape).
func FromMat(kind matrix.Kind, src mat.Matrix) (*matrix.Matrix[float64], error) {
	return matrix.From[float64](kind, AsExpr(src))
}

// matExpr is the lazy matrix.Expr view of a mat.Matrix.
type matExpr struct {
	m      mat.Matrix
	rows   int
	cols   int
	shaper matrix.Shaper
}

// AsExpr wraps src as a lazy expression.
//
// Implementation:
//   - Stage 1: pick the shape: a mat.Triangular becomes an upper or lower
//     shape, a square mat.Banded with kl == ku a band shape, anything else full.
//   - Stage 2: report full row-major storage (gonum's dense ordering), which
//     covers every shape.
//
// Notes:
//   - Values are read through src.At on every access; nothing is copied.
func AsExpr(src mat.Matrix) matrix.Expr[float64] {
	r, c := src.Dims()
	var s matrix.Shaper = matrix.NewFullShape(r, c)
	switch x := src.(type) {
	case mat.Triangular:
		if _, kind := x.Triangle(); kind == mat.Upper {
			s = matrix.NewUpperShape(r, c)
		} else {
			s = matrix.NewLowerShape(r, c)
		}
	case mat.Banded:
		if kl, ku := x.Bandwidth(); kl == ku && r == c {
			s = matrix.NewBandShape(r, c, kl)
		}
	}

	return &matExpr{m: src, rows: r, cols: c, shaper: s}
}

func (e *matExpr) Rows() int                 { return e.rows }
func (e *matExpr) Cols() int                 { return e.cols }
func (e *matExpr) Dims() (int, int)          { return e.rows, e.cols }
func (e *matExpr) Shaper() matrix.Shaper     { return e.shaper }
func (e *matExpr) Symmetry() matrix.Symmetry { return matrix.NoSymmetry }

func (e *matExpr) Packer() matrix.Packer {
	return matrix.NewFullPacker(matrix.RowMajor, e.rows, e.cols)
}

// At returns zero outside the shape and src.At(i, j) inside it.
func (e *matExpr) At(i, j int) float64 {
	if !e.shaper.Contains(i, j) {
		if i < 0 || i >= e.rows || j < 0 || j >= e.cols {
			panic(fmt.Errorf("Matrix.At(%d,%d): %w", i, j, matrix.ErrOutOfRange))
		}
		return 0
	}

	return e.m.At(i, j)
}

func (e *matExpr) Row(i int) matrix.VectorView[float64] {
	return matrix.NewVectorView(e.cols, e.shaper.NonzeroCols(i), func(j int) float64 { return e.m.At(i, j) })
}

func (e *matExpr) Col(j int) matrix.VectorView[float64] {
	return matrix.NewVectorView(e.rows, e.shaper.NonzeroRows(j), func(i int) float64 { return e.m.At(i, j) })
}

var _ matrix.Expr[float64] = (*matExpr)(nil)
