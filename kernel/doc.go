// SPDX-License-Identifier: MIT

// Package kernel routes float64 matrix operations to BLAS.
//
// What:
//
//   - Kernel: the column-major (reference BLAS) contract for Dgemv, Dgbmv,
//     Dtpmv, Dgemm and Dtrmm.
//   - ColMajor: the default Kernel, translating each call onto gonum's
//     row-major blas.Float64 without moving data.
//   - Engine: maps matrix.Matrix layouts onto Kernel calls. MulVec/VecMul
//     cover full, band, diagonal and packed triangular storage; MulMat covers
//     full×full of one ordering; TrmmLeft/TrmmRight cover triangular shapes
//     on full storage.
//   - Interop: ToDense, AsMat, AsExpr and FromMat bridge to gonum/mat.
//
// Why:
//
//   - The lazy views in package matrix handle every layout and every element
//     type; the engine is the fast path for the float64 layouts BLAS knows.
//     Results agree with the lazy path up to floating-point reassociation.
//
// Errors:
//
//   - A layout without a mapping returns matrix.ErrUnsupportedLayout.
//   - Incompatible dimensions panic with matrix.ErrDimensionMismatch wrapped.
//
// Example:
//
//	a := matrix.Must(matrix.New[float64](matrix.SBand(2), 100, 100, matrix.WithRandom()))
//	x := matrix.VectorOf(make([]float64, 100)...)
//	y, err := kernel.NewEngine().MulVec(a, x) // Dgbmv with kl = ku = 2
package kernel
