// Package matrix provides dense and structured matrices with lazy algebra.
//
// The package provides:
//
//   - Packers (FullPacker, UpperPacker, LowerPacker, DiagonalPacker,
//     SBandPacker) that map a logical (row,col) index to a storage offset in
//     row-major or column-major order.
//   - Shapers that report, in O(1), the contiguous window of logically
//     non-zero columns of a row (or rows of a column).
//   - Symmetry resolvers that read unstored positions of symmetric and
//     anti-symmetric matrices from their mirror.
//   - Vector and VectorView with index-window arithmetic: Dot only sums over
//     the intersection of its operands' windows.
//   - Matrix, a container whose Layout (packer + shaper + symmetry) is fixed
//     at construction by a Kind such as FullCM, UpperRM, SBand(k) or
//     SymmetricCM.
//   - Lazy views (Mul, Add, Sub, Hadamard, Scale, Transpose) whose result
//     layout is chosen by a pure composition table (ComposeSchemes) shared by
//     packers and shapers.
//
// A product of two banded matrices is banded, a product of two upper
// triangles is an upper triangle, and so on; evaluating such a view touches
// only the positions its shape allows:
//
//	a := matrix.Must(matrix.FromRows(matrix.SBand(1), rowsA))
//	b := matrix.Must(matrix.FromRows(matrix.SBand(2), rowsB))
//	c := matrix.Eval[float64](matrix.Mul[float64](a, b)) // SBand(3) storage
//
// Contract violations (out-of-range index, write to an unstored slot,
// incompatible operands) panic with a wrapped sentinel error. Building with
// -tags lvmat_unchecked removes those checks.
//
// See package kernel for dispatching double-precision operations to BLAS.
package matrix
