// SPDX-License-Identifier: MIT

package matrix_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

func TestMakeSpan_NeverInverted(t *testing.T) {
	s := matrix.MakeSpan(5, 2) // hi < lo clamps to empty
	require.Equal(t, matrix.Span{Lo: 5, Hi: 5}, s)
	require.True(t, s.Empty())
	require.Equal(t, 0, s.Len())
}

func TestSpan_AllAndContains(t *testing.T) {
	s := matrix.Span{Lo: 2, Hi: 5}
	require.Equal(t, []int{2, 3, 4}, slices.Collect(s.All()))
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5)) // half-open
	assert.False(t, s.Contains(1))
}

func TestIntersect_Table(t *testing.T) {
	tests := []struct {
		name   string
		a, b   matrix.Span
		want   matrix.Span
		dropA  int
		dropB  int
		length int
	}{
		{"overlap", matrix.Span{Lo: 3, Hi: 9}, matrix.Span{Lo: 4, Hi: 11}, matrix.Span{Lo: 4, Hi: 9}, 1, 0, 5},
		{"nested", matrix.Span{Lo: 0, Hi: 10}, matrix.Span{Lo: 2, Hi: 4}, matrix.Span{Lo: 2, Hi: 4}, 2, 0, 2},
		{"equal", matrix.Span{Lo: 1, Hi: 3}, matrix.Span{Lo: 1, Hi: 3}, matrix.Span{Lo: 1, Hi: 3}, 0, 0, 2},
		{"disjoint", matrix.Span{Lo: 0, Hi: 2}, matrix.Span{Lo: 5, Hi: 7}, matrix.Span{Lo: 5, Hi: 5}, 5, 0, 0},
		{"touching", matrix.Span{Lo: 0, Hi: 3}, matrix.Span{Lo: 3, Hi: 6}, matrix.Span{Lo: 3, Hi: 3}, 3, 0, 0},
		{"empty side", matrix.Span{Lo: 2, Hi: 2}, matrix.Span{Lo: 0, Hi: 6}, matrix.Span{Lo: 2, Hi: 2}, 0, 2, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := matrix.Intersect(tc.a, tc.b)
			require.Equal(t, tc.want, is.Span)
			require.Equal(t, tc.length, is.Len())
			if tc.length > 0 {
				require.Equal(t, tc.dropA, is.DropA)
				require.Equal(t, tc.dropB, is.DropB)
			}
			// Intersection is symmetric in its span.
			require.Equal(t, is.Len(), matrix.Intersect(tc.b, tc.a).Len())
		})
	}
}

func TestHull_IgnoresEmpty(t *testing.T) {
	require.Equal(t, matrix.Span{Lo: 1, Hi: 8}, matrix.Hull(matrix.Span{Lo: 1, Hi: 3}, matrix.Span{Lo: 5, Hi: 8}))
	require.Equal(t, matrix.Span{Lo: 5, Hi: 8}, matrix.Hull(matrix.Span{Lo: 0, Hi: 0}, matrix.Span{Lo: 5, Hi: 8}))
	require.Equal(t, matrix.Span{Lo: 1, Hi: 3}, matrix.Hull(matrix.Span{Lo: 1, Hi: 3}, matrix.Span{Lo: 9, Hi: 9}))
}

// Two offset windows over iota data: the dot product only sums the overlap.
func TestDot_OffsetWindows(t *testing.T) {
	data := make([]float64, 12)
	for i := range data {
		data[i] = float64(i)
	}
	a := matrix.SliceView(12, 3, data[3:9])  // [3,9)
	b := matrix.SliceView(12, 4, data[4:11]) // [4,11)
	require.Equal(t, float64(4*4+5*5+6*6+7*7+8*8), matrix.Dot[float64](a, b))

	// Same through accessor-backed views (no contiguous fast path).
	la := matrix.NewVectorView(12, matrix.Span{Lo: 3, Hi: 9}, func(k int) float64 { return data[k] })
	lb := matrix.NewVectorView(12, matrix.Span{Lo: 4, Hi: 11}, func(k int) float64 { return data[k] })
	require.Equal(t, matrix.Dot[float64](a, b), matrix.Dot[float64](la, lb))
	require.Equal(t, matrix.Dot[float64](a, b), matrix.Dot[float64](a, lb)) // mixed
}
