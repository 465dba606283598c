// Package lvmat is a library of structured dense matrices: containers whose
// storage, shape and symmetry are described separately, so a triangular,
// banded, diagonal or symmetric matrix stores only what it must and every
// operation touches only its non-zero windows.
//
// 🚀 What is lvmat?
//
//	A pure-Go toolkit that brings together:
//		• Packers: full, packed triangular, diagonal and band storage, row- or column-major
//		• Shapers: the non-zero row/column window of every line
//		• Symmetries: mirrored and negated-mirror resolution of unstored halves
//		• Vectors and views: dot products over intersecting index windows
//		• Lazy views: products, elementwise ops and transposes with composed layouts
//		• BLAS routing: gemv/gbmv/tpmv/gemm/trmm through gonum
//		• Memory-mapped matrix files
//
// ✨ Why choose lvmat?
//
//   - Layout-aware: the product of two bands is a band whose half-width is
//     the sum of theirs, and the result layout says so.
//   - Lazy by default: nothing materializes until Eval, From or Assign.
//   - Generic: any integer or float element type; float64 gets BLAS.
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/     packers, shapers, symmetries, vectors, Matrix and lazy views
//	matrix/ops/ LU, QR, Jacobi eigen, solves and inverses on structured results
//	kernel/     column-major BLAS contract, gonum adapter, gonum/mat interop
//	mapped/     matrices backed by memory-mapped files
//
// Quick example:
//
//	a := matrix.Must(matrix.New[float64](matrix.SBand(1), 6, 6, matrix.WithRandom()))
//	b := matrix.Must(matrix.New[float64](matrix.SBand(2), 6, 6, matrix.WithRandom()))
//	p := matrix.Mul[float64](a, b) // band of half-width 3, computed on access
//	c := matrix.Eval[float64](p)
//
//	go get github.com/katalvlaran/lvmat
package lvmat
