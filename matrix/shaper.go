// SPDX-License-Identifier: MIT
// Package matrix: shapers describe which positions are logically non-zero.
//
// A Shaper never implies storage and a Packer never implies shape: a
// triangular shape may sit on full storage (BLAS trmm layout) or on packed
// storage. Every span is contiguous, ascending and computed in O(1); an
// empty window is returned as an empty (never inverted) Span.

package matrix

// Shaper is the shape-side description of a matrix layout.
type Shaper interface {
	Scheme() Scheme
	Rows() int
	Cols() int
	Dims() (rows, cols int)
	Bandwidth() int
	// NonzeroCols returns the columns of row that may be non-zero.
	NonzeroCols(row int) Span
	// NonzeroRows returns the rows of col that may be non-zero.
	NonzeroRows(col int) Span
	// Contains reports whether (i,j) lies inside the shape.
	Contains(i, j int) bool
	Transpose() Shaper
	Resize(rows, cols int) Shaper
}

// checkLine asserts that a row/column index addresses the shape.
func checkLine(method string, k, n int) {
	if k < 0 || k >= n {
		violation(method, k, n, ErrOutOfRange)
	}
}

// FullShape has no structural zeros.
type FullShape struct{ rows, cols int }

// NewFullShape returns a full rows×cols shape.
func NewFullShape(rows, cols int) FullShape { return FullShape{rows: rows, cols: cols} }

func (s FullShape) Scheme() Scheme               { return SchemeFull }
func (s FullShape) Rows() int                    { return s.rows }
func (s FullShape) Cols() int                    { return s.cols }
func (s FullShape) Dims() (int, int)             { return s.rows, s.cols }
func (s FullShape) Bandwidth() int               { return 0 }
func (s FullShape) Contains(i, j int) bool       { return inRange(i, j, s.rows, s.cols) }
func (s FullShape) Transpose() Shaper            { return FullShape{rows: s.cols, cols: s.rows} }
func (s FullShape) Resize(rows, cols int) Shaper { return NewFullShape(rows, cols) }

func (s FullShape) NonzeroCols(row int) Span {
	if checksEnabled {
		checkLine(ctxRow, row, s.rows)
	}

	return Span{Lo: 0, Hi: s.cols}
}

func (s FullShape) NonzeroRows(col int) Span {
	if checksEnabled {
		checkLine(ctxCol, col, s.cols)
	}

	return Span{Lo: 0, Hi: s.rows}
}

// UpperShape is zero below the main diagonal.
type UpperShape struct{ rows, cols int }

// NewUpperShape returns an upper-triangular rows×cols shape.
func NewUpperShape(rows, cols int) UpperShape { return UpperShape{rows: rows, cols: cols} }

func (s UpperShape) Scheme() Scheme               { return SchemeUpper }
func (s UpperShape) Rows() int                    { return s.rows }
func (s UpperShape) Cols() int                    { return s.cols }
func (s UpperShape) Dims() (int, int)             { return s.rows, s.cols }
func (s UpperShape) Bandwidth() int               { return 0 }
func (s UpperShape) Contains(i, j int) bool       { return inRange(i, j, s.rows, s.cols) && i <= j }
func (s UpperShape) Transpose() Shaper            { return LowerShape{rows: s.cols, cols: s.rows} }
func (s UpperShape) Resize(rows, cols int) Shaper { return NewUpperShape(rows, cols) }

// NonzeroCols is [row, cols).
func (s UpperShape) NonzeroCols(row int) Span {
	if checksEnabled {
		checkLine(ctxRow, row, s.rows)
	}

	return MakeSpan(row, s.cols)
}

// NonzeroRows is [0, min(col+1, rows)).
func (s UpperShape) NonzeroRows(col int) Span {
	if checksEnabled {
		checkLine(ctxCol, col, s.cols)
	}

	return Span{Lo: 0, Hi: min(col+1, s.rows)}
}

// LowerShape is zero above the main diagonal.
type LowerShape struct{ rows, cols int }

// NewLowerShape returns a lower-triangular rows×cols shape.
func NewLowerShape(rows, cols int) LowerShape { return LowerShape{rows: rows, cols: cols} }

func (s LowerShape) Scheme() Scheme               { return SchemeLower }
func (s LowerShape) Rows() int                    { return s.rows }
func (s LowerShape) Cols() int                    { return s.cols }
func (s LowerShape) Dims() (int, int)             { return s.rows, s.cols }
func (s LowerShape) Bandwidth() int               { return 0 }
func (s LowerShape) Contains(i, j int) bool       { return inRange(i, j, s.rows, s.cols) && j <= i }
func (s LowerShape) Transpose() Shaper            { return UpperShape{rows: s.cols, cols: s.rows} }
func (s LowerShape) Resize(rows, cols int) Shaper { return NewLowerShape(rows, cols) }

// NonzeroCols is [0, min(row+1, cols)).
func (s LowerShape) NonzeroCols(row int) Span {
	if checksEnabled {
		checkLine(ctxRow, row, s.rows)
	}

	return Span{Lo: 0, Hi: min(row+1, s.cols)}
}

// NonzeroRows is [col, rows).
func (s LowerShape) NonzeroRows(col int) Span {
	if checksEnabled {
		checkLine(ctxCol, col, s.cols)
	}

	return MakeSpan(col, s.rows)
}

// DiagonalShape is non-zero on the main diagonal only.
type DiagonalShape struct{ rows, cols int }

// NewDiagonalShape returns a diagonal rows×cols shape.
func NewDiagonalShape(rows, cols int) DiagonalShape { return DiagonalShape{rows: rows, cols: cols} }

func (s DiagonalShape) Scheme() Scheme               { return SchemeDiagonal }
func (s DiagonalShape) Rows() int                    { return s.rows }
func (s DiagonalShape) Cols() int                    { return s.cols }
func (s DiagonalShape) Dims() (int, int)             { return s.rows, s.cols }
func (s DiagonalShape) Bandwidth() int               { return 0 }
func (s DiagonalShape) Contains(i, j int) bool       { return inRange(i, j, s.rows, s.cols) && i == j }
func (s DiagonalShape) Transpose() Shaper            { return DiagonalShape{rows: s.cols, cols: s.rows} }
func (s DiagonalShape) Resize(rows, cols int) Shaper { return NewDiagonalShape(rows, cols) }

func (s DiagonalShape) NonzeroCols(row int) Span {
	if checksEnabled {
		checkLine(ctxRow, row, s.rows)
	}

	return MakeSpan(row, min(row+1, s.cols))
}

func (s DiagonalShape) NonzeroRows(col int) Span {
	if checksEnabled {
		checkLine(ctxCol, col, s.cols)
	}

	return MakeSpan(col, min(col+1, s.rows))
}

// BandShape is non-zero within k of the main diagonal on both sides.
type BandShape struct{ rows, cols, k int }

// NewBandShape returns a band shape with half-width k.
func NewBandShape(rows, cols, k int) BandShape { return BandShape{rows: rows, cols: cols, k: k} }

func (s BandShape) Scheme() Scheme               { return SchemeSBand }
func (s BandShape) Rows() int                    { return s.rows }
func (s BandShape) Cols() int                    { return s.cols }
func (s BandShape) Dims() (int, int)             { return s.rows, s.cols }
func (s BandShape) Bandwidth() int               { return s.k }
func (s BandShape) Transpose() Shaper            { return BandShape{rows: s.cols, cols: s.rows, k: s.k} }
func (s BandShape) Resize(rows, cols int) Shaper { return NewBandShape(rows, cols, s.k) }

func (s BandShape) Contains(i, j int) bool {
	return inRange(i, j, s.rows, s.cols) && j >= i-s.k && j <= i+s.k
}

// NonzeroCols is [max(0,row-k), min(cols,row+k+1)).
func (s BandShape) NonzeroCols(row int) Span {
	if checksEnabled {
		checkLine(ctxRow, row, s.rows)
	}

	return MakeSpan(max(0, row-s.k), min(s.cols, row+s.k+1))
}

// NonzeroRows is [max(0,col-k), min(rows,col+k+1)).
func (s BandShape) NonzeroRows(col int) Span {
	if checksEnabled {
		checkLine(ctxCol, col, s.cols)
	}

	return MakeSpan(max(0, col-s.k), min(s.rows, col+s.k+1))
}

var (
	_ Shaper = FullShape{}
	_ Shaper = UpperShape{}
	_ Shaper = LowerShape{}
	_ Shaper = DiagonalShape{}
	_ Shaper = BandShape{}
)
