// SPDX-License-Identifier: MIT
// Package matrix: packers map a logical (row,col) index to a storage offset.
//
// Purpose:
//   - One closed-form offset function per storage scheme and ordering.
//   - Report which positions are physically stored and the total footprint.
//
// Contract (all variants):
//   - Offset is injective over stored positions and lands in [0, StoredSize()).
//     Full, triangular and diagonal packers are onto that range; the band
//     packer leaves its k(k+1) corner slots unused, as LAPACK band storage does.
//   - IsStored never panics; it reports false outside the index range.
//   - Offset asserts range and storage when checks are enabled.
//   - Packers are values: Resize and Transpose return new packers.
//
// Triangular line starts:
//   - A "growing" family stores min(t+1, n) elements on line t
//     (Upper CM columns, Lower RM rows).
//   - A "shrinking" family stores n-t elements on line t
//     (Upper RM rows, Lower CM columns).
//   Both stay correct for rectangles with either dimension much larger.

package matrix

// Packer is the storage-side description of a matrix layout.
type Packer interface {
	Scheme() Scheme
	Order() Order
	Rows() int
	Cols() int
	Dims() (rows, cols int)
	// Bandwidth returns the band half-width (zero for non-band schemes).
	Bandwidth() int
	IsStored(i, j int) bool
	Offset(i, j int) int
	StoredSize() int
	// Transpose returns the packer of the transposed matrix. For every scheme
	// but SBand it reinterprets the same buffer: p.Transpose().Offset(j,i) ==
	// p.Offset(i,j).
	Transpose() Packer
	Resize(rows, cols int) Packer
	// Shaper returns the shape this storage backs when used on its own.
	Shaper() Shaper
}

// inRange reports whether (i,j) addresses an r×c matrix.
func inRange(i, j, r, c int) bool {
	return i >= 0 && i < r && j >= 0 && j < c
}

// checkStored asserts the (range, storage) contract of Offset.
func checkStored(stored bool, i, j, r, c int) {
	if !inRange(i, j, r, c) {
		violation(ctxOffset, i, j, ErrOutOfRange)
	}
	if !stored {
		violation(ctxOffset, i, j, ErrNotStored)
	}
}

// definite normalizes an ordering for schemes that need CM or RM.
func definite(o Order) Order {
	if o == RowMajor {
		return RowMajor
	}

	return ColMajor
}

// growStart is the offset of line t when line s holds min(s+1, n) elements.
func growStart(t, n int) int {
	if t <= n {
		return t * (t + 1) / 2
	}

	return n*(n+1)/2 + (t-n)*n
}

// shrinkStart is the offset of line t (t <= n) when line s holds n-s elements.
func shrinkStart(t, n int) int {
	return t * (2*n - t + 1) / 2
}

// ---------- Full ----------

// FullPacker stores every position in RM or CM order.
type FullPacker struct {
	order      Order
	rows, cols int
}

// NewFullPacker returns a full packer; AnyOrder is treated as ColMajor.
func NewFullPacker(order Order, rows, cols int) FullPacker {
	return FullPacker{order: definite(order), rows: rows, cols: cols}
}

func (p FullPacker) Scheme() Scheme         { return SchemeFull }
func (p FullPacker) Order() Order           { return p.order }
func (p FullPacker) Rows() int              { return p.rows }
func (p FullPacker) Cols() int              { return p.cols }
func (p FullPacker) Dims() (int, int)       { return p.rows, p.cols }
func (p FullPacker) Bandwidth() int         { return 0 }
func (p FullPacker) StoredSize() int        { return p.rows * p.cols }
func (p FullPacker) Shaper() Shaper         { return NewFullShape(p.rows, p.cols) }
func (p FullPacker) IsStored(i, j int) bool { return inRange(i, j, p.rows, p.cols) }

// Offset is i+j*rows (CM) or j+i*cols (RM).
func (p FullPacker) Offset(i, j int) int {
	if checksEnabled {
		checkStored(p.IsStored(i, j), i, j, p.rows, p.cols)
	}
	if p.order == RowMajor {
		return j + i*p.cols
	}

	return i + j*p.rows
}

func (p FullPacker) Transpose() Packer {
	return FullPacker{order: p.order.Transpose(), rows: p.cols, cols: p.rows}
}

func (p FullPacker) Resize(rows, cols int) Packer { return NewFullPacker(p.order, rows, cols) }

// ---------- Upper triangular ----------

// UpperPacker stores i <= j in packed RM or CM order.
type UpperPacker struct {
	order      Order
	rows, cols int
}

// NewUpperPacker returns a packed upper-triangular packer.
func NewUpperPacker(order Order, rows, cols int) UpperPacker {
	return UpperPacker{order: definite(order), rows: rows, cols: cols}
}

func (p UpperPacker) Scheme() Scheme   { return SchemeUpper }
func (p UpperPacker) Order() Order     { return p.order }
func (p UpperPacker) Rows() int        { return p.rows }
func (p UpperPacker) Cols() int        { return p.cols }
func (p UpperPacker) Dims() (int, int) { return p.rows, p.cols }
func (p UpperPacker) Bandwidth() int   { return 0 }
func (p UpperPacker) Shaper() Shaper   { return NewUpperShape(p.rows, p.cols) }

func (p UpperPacker) IsStored(i, j int) bool {
	return inRange(i, j, p.rows, p.cols) && i <= j
}

// Offset: RM rows shrink (row i holds cols-i elements), CM columns grow
// (column j holds min(j+1, rows) elements).
func (p UpperPacker) Offset(i, j int) int {
	if checksEnabled {
		checkStored(p.IsStored(i, j), i, j, p.rows, p.cols)
	}
	if p.order == RowMajor {
		return shrinkStart(i, p.cols) + j - i
	}

	return growStart(j, p.rows) + i
}

func (p UpperPacker) StoredSize() int {
	if p.order == RowMajor {
		return shrinkStart(min(p.rows, p.cols), p.cols)
	}

	return growStart(p.cols, p.rows)
}

func (p UpperPacker) Transpose() Packer {
	return LowerPacker{order: p.order.Transpose(), rows: p.cols, cols: p.rows}
}

func (p UpperPacker) Resize(rows, cols int) Packer { return NewUpperPacker(p.order, rows, cols) }

// ---------- Lower triangular ----------

// LowerPacker stores j <= i in packed RM or CM order.
type LowerPacker struct {
	order      Order
	rows, cols int
}

// NewLowerPacker returns a packed lower-triangular packer.
func NewLowerPacker(order Order, rows, cols int) LowerPacker {
	return LowerPacker{order: definite(order), rows: rows, cols: cols}
}

func (p LowerPacker) Scheme() Scheme   { return SchemeLower }
func (p LowerPacker) Order() Order     { return p.order }
func (p LowerPacker) Rows() int        { return p.rows }
func (p LowerPacker) Cols() int        { return p.cols }
func (p LowerPacker) Dims() (int, int) { return p.rows, p.cols }
func (p LowerPacker) Bandwidth() int   { return 0 }
func (p LowerPacker) Shaper() Shaper   { return NewLowerShape(p.rows, p.cols) }

func (p LowerPacker) IsStored(i, j int) bool {
	return inRange(i, j, p.rows, p.cols) && j <= i
}

// Offset: CM columns shrink (column j holds rows-j elements), RM rows grow
// (row i holds min(i+1, cols) elements).
func (p LowerPacker) Offset(i, j int) int {
	if checksEnabled {
		checkStored(p.IsStored(i, j), i, j, p.rows, p.cols)
	}
	if p.order == RowMajor {
		return growStart(i, p.cols) + j
	}

	return shrinkStart(j, p.rows) + i - j
}

func (p LowerPacker) StoredSize() int {
	if p.order == RowMajor {
		return growStart(p.rows, p.cols)
	}

	return shrinkStart(min(p.rows, p.cols), p.rows)
}

func (p LowerPacker) Transpose() Packer {
	return UpperPacker{order: p.order.Transpose(), rows: p.cols, cols: p.rows}
}

func (p LowerPacker) Resize(rows, cols int) Packer { return NewLowerPacker(p.order, rows, cols) }

// ---------- Diagonal ----------

// DiagonalPacker stores the main diagonal only.
type DiagonalPacker struct {
	rows, cols int
}

// NewDiagonalPacker returns a diagonal packer.
func NewDiagonalPacker(rows, cols int) DiagonalPacker {
	return DiagonalPacker{rows: rows, cols: cols}
}

func (p DiagonalPacker) Scheme() Scheme   { return SchemeDiagonal }
func (p DiagonalPacker) Order() Order     { return AnyOrder }
func (p DiagonalPacker) Rows() int        { return p.rows }
func (p DiagonalPacker) Cols() int        { return p.cols }
func (p DiagonalPacker) Dims() (int, int) { return p.rows, p.cols }
func (p DiagonalPacker) Bandwidth() int   { return 0 }
func (p DiagonalPacker) StoredSize() int  { return min(p.rows, p.cols) }
func (p DiagonalPacker) Shaper() Shaper   { return NewDiagonalShape(p.rows, p.cols) }

func (p DiagonalPacker) IsStored(i, j int) bool {
	return inRange(i, j, p.rows, p.cols) && i == j
}

func (p DiagonalPacker) Offset(i, j int) int {
	if checksEnabled {
		checkStored(p.IsStored(i, j), i, j, p.rows, p.cols)
	}

	return i
}

func (p DiagonalPacker) Transpose() Packer            { return DiagonalPacker{rows: p.cols, cols: p.rows} }
func (p DiagonalPacker) Resize(rows, cols int) Packer { return NewDiagonalPacker(rows, cols) }

// ---------- Symmetric band ----------

// SBandPacker stores |i-j| <= k of a square n×n matrix in column-major band
// storage: column j occupies the 2k+1 slots starting at j*(2k+1), with the
// diagonal at slot k. This is the LAPACK layout with kl = ku = k and
// lda = 2k+1.
type SBandPacker struct {
	n, k int
}

// NewSBandPacker returns a band packer; a negative k or n is a contract violation.
func NewSBandPacker(n, k int) SBandPacker {
	if checksEnabled && k < 0 {
		violation(ctxValidate, n, k, ErrBadBandwidth)
	}

	return SBandPacker{n: n, k: k}
}

func (p SBandPacker) Scheme() Scheme   { return SchemeSBand }
func (p SBandPacker) Order() Order     { return ColMajor }
func (p SBandPacker) Rows() int        { return p.n }
func (p SBandPacker) Cols() int        { return p.n }
func (p SBandPacker) Dims() (int, int) { return p.n, p.n }
func (p SBandPacker) Bandwidth() int   { return p.k }
func (p SBandPacker) StoredSize() int  { return p.n * (2*p.k + 1) }
func (p SBandPacker) Shaper() Shaper   { return NewBandShape(p.n, p.n, p.k) }

// LeadingDim is the stride between consecutive columns (2k+1).
func (p SBandPacker) LeadingDim() int { return 2*p.k + 1 }

func (p SBandPacker) IsStored(i, j int) bool {
	if !inRange(i, j, p.n, p.n) {
		return false
	}
	d := i - j
	if d < 0 {
		d = -d
	}

	return d <= p.k
}

// Offset is k + i - j + j*(2k+1).
func (p SBandPacker) Offset(i, j int) int {
	if checksEnabled {
		checkStored(p.IsStored(i, j), i, j, p.n, p.n)
	}

	return p.k + i - j + j*(2*p.k+1)
}

// Transpose returns p: the transposed band matrix has the same layout
// description, although element (i,j) moves to the slot of (j,i).
func (p SBandPacker) Transpose() Packer { return p }

// Resize keeps k. Band storage is square; a non-square resize is reported
// by Layout.Validate against the resized shaper.
func (p SBandPacker) Resize(rows, cols int) Packer { return SBandPacker{n: rows, k: p.k} }

// compile-time interface checks
var (
	_ Packer = FullPacker{}
	_ Packer = UpperPacker{}
	_ Packer = LowerPacker{}
	_ Packer = DiagonalPacker{}
	_ Packer = SBandPacker{}
)
