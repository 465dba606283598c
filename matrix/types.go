// SPDX-License-Identifier: MIT

package matrix

// Scalar is the element constraint of every container in this package.
// Only signed types are admitted so that anti-symmetric negation is total.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Index is a logical (row, col) position.
type Index struct {
	Row int // zero-based row
	Col int // zero-based column
}

// Scheme tags a storage or shape family.
type Scheme uint8

const (
	SchemeFull     Scheme = iota // every position
	SchemeUpper                  // i <= j
	SchemeLower                  // j <= i
	SchemeDiagonal               // i == j
	SchemeSBand                  // |i-j| <= k
)

// schemeNames indexes Scheme.String.
var schemeNames = [...]string{"Full", "Upper", "Lower", "Diagonal", "SBand"}

// String returns the scheme name.
func (s Scheme) String() string {
	if int(s) < len(schemeNames) {
		return schemeNames[s]
	}

	return "Scheme(?)"
}

// Schemes lists every scheme tag in declaration order (handy for table tests).
func Schemes() []Scheme {
	return []Scheme{SchemeFull, SchemeUpper, SchemeLower, SchemeDiagonal, SchemeSBand}
}

// Order is the linearization of 2D storage.
type Order uint8

const (
	ColMajor Order = iota // CM: consecutive rows of a column are adjacent
	RowMajor              // RM: consecutive columns of a row are adjacent
	AnyOrder              // layouts where the distinction is meaningless (diagonal)
)

// String returns "CM", "RM" or "Any".
func (o Order) String() string {
	switch o {
	case ColMajor:
		return "CM"
	case RowMajor:
		return "RM"
	default:
		return "Any"
	}
}

// Transpose swaps CM and RM; AnyOrder is its own transpose.
func (o Order) Transpose() Order {
	switch o {
	case ColMajor:
		return RowMajor
	case RowMajor:
		return ColMajor
	default:
		return AnyOrder
	}
}
