// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for private state
//
// Purpose:
//   - Expose the build-time check switch and private kernels to
//     matrix_test ONLY, without widening the production API.
//
// Build Policy:
//   - The _test.go suffix keeps this file out of production builds.

// ChecksEnabled mirrors the lvmat_unchecked build tag for tests that expect panics.
const ChecksEnabled = checksEnabled

// ExportedEwAllClose exposes the private AllClose kernel.
func ExportedEwAllClose[T Scalar](a, b Expr[T], rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
