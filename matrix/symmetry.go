// SPDX-License-Identifier: MIT

package matrix

// Symmetry resolves the value of a position the packer does not store.
type Symmetry uint8

const (
	// NoSymmetry: unstored positions read as zero.
	NoSymmetry Symmetry = iota
	// Symmetric: A(i,j) == A(j,i); unstored positions read their mirror.
	Symmetric
	// AntiSymmetric: A(i,j) == -A(j,i); unstored positions read their negated mirror.
	AntiSymmetric
)

// String returns the symmetry name.
func (s Symmetry) String() string {
	switch s {
	case Symmetric:
		return "Symmetric"
	case AntiSymmetric:
		return "AntiSymmetric"
	default:
		return "NoSymmetry"
	}
}

// mirror applies the symmetry relation to the mirrored value v = A(j,i).
func mirror[T Scalar](s Symmetry, v T) T {
	if s == AntiSymmetric {
		return -v
	}

	return v
}

// Resolve returns the logical value at (i,j) given the stored buffer.
//
// Implementation:
//   - Stage 1: a stored position returns data[p.Offset(i,j)].
//   - Stage 2: NoSymmetry returns zero for an unstored position.
//   - Stage 3: Symmetric/AntiSymmetric read (j,i), which must be stored,
//     negating for AntiSymmetric.
//
// Errors:
//   - Panics with ErrNotStored when neither (i,j) nor (j,i) is stored under a
//     symmetry (the layout violates its own invariant).
//
// Complexity:
//   - Time O(1), Space O(1).
func Resolve[T Scalar](s Symmetry, data []T, p Packer, i, j int) T {
	if p.IsStored(i, j) {
		return data[p.Offset(i, j)]
	}
	if s == NoSymmetry {
		return 0
	}
	if checksEnabled && !p.IsStored(j, i) {
		violation(ctxResolve, i, j, ErrNotStored)
	}

	return mirror(s, data[p.Offset(j, i)])
}
