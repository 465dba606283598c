// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

var (
	prodA = [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}
	prodB = [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}

	lowerA = [][]float64{{1, 0, 0, 0}, {5, 6, 0, 0}, {9, 10, 11, 0}}
	upperA = [][]float64{{1, 2, 3, 4}, {0, 6, 7, 8}, {0, 0, 11, 12}}
	diagA  = [][]float64{{1, 0, 0, 0}, {0, 6, 0, 0}, {0, 0, 11, 0}}

	lowerB = [][]float64{{1, 0, 0}, {4, 5, 0}, {7, 8, 9}, {10, 11, 12}}
	upperB = [][]float64{{1, 2, 3}, {0, 5, 6}, {0, 0, 9}, {0, 0, 0}}
	diagB  = [][]float64{{1, 0, 0}, {0, 5, 0}, {0, 0, 9}, {0, 0, 0}}
)

// rowValues collects the window values of every row of e.
func rowValues(e matrix.Expr[float64]) [][]float64 {
	out := make([][]float64, e.Rows())
	for i := range out {
		out[i] = e.Row(i).Slice()
	}

	return out
}

func TestMul_FullFull(t *testing.T) {
	want := [][]float64{{70, 80, 90}, {158, 184, 210}, {246, 288, 330}}
	for _, ka := range []matrix.Kind{matrix.FullCM, matrix.FullRM} {
		for _, kb := range []matrix.Kind{matrix.FullCM, matrix.FullRM} {
			a, b := mustRows(t, ka, prodA), mustRows(t, kb, prodB)
			p := matrix.Mul[float64](a, b)
			require.True(t, matrix.EqualRows[float64](p, want), matrix.Format[float64](p))
			require.Equal(t, matrix.SchemeFull, p.Packer().Scheme())
			require.Equal(t, a.Packer().Order(), p.Packer().Order(), "left ordering wins")
		}
	}
}

func TestMul_StructuredOperands(t *testing.T) {
	tests := []struct {
		name   string
		ka     matrix.Kind
		a      [][]float64
		kb     matrix.Kind
		b      [][]float64
		scheme matrix.Scheme
		rows   [][]float64 // window values per row
	}{
		{"Full*Lower", matrix.FullCM, prodA, matrix.LowerCM, lowerB, matrix.SchemeFull,
			[][]float64{{70, 78, 75}, {158, 174, 159}, {246, 270, 243}}},
		{"Upper*Full", matrix.UpperRM, upperA, matrix.FullCM, prodB, matrix.SchemeFull,
			[][]float64{{70, 80, 90}, {153, 174, 195}, {197, 220, 243}}},
		{"Diag*Full", matrix.Diagonal, diagA, matrix.FullRM, prodB, matrix.SchemeFull,
			[][]float64{{1, 2, 3}, {24, 30, 36}, {77, 88, 99}}},
		{"Lower*Lower", matrix.LowerCM, lowerA, matrix.LowerRM, lowerB, matrix.SchemeLower,
			[][]float64{{1}, {29, 30}, {126, 138, 99}}},
		{"Upper*Upper", matrix.UpperCM, upperA, matrix.UpperRM, upperB, matrix.SchemeUpper,
			[][]float64{{1, 12, 42}, {30, 99}, {99}}},
		{"Diag*Lower", matrix.Diagonal, diagA, matrix.LowerCM, lowerB, matrix.SchemeLower,
			[][]float64{{1}, {24, 30}, {77, 88, 99}}},
		{"Upper*Diag", matrix.UpperRM, upperA, matrix.Diagonal, diagB, matrix.SchemeUpper,
			[][]float64{{1, 10, 27}, {30, 63}, {99}}},
		{"Diag*Diag", matrix.Diagonal, diagA, matrix.Diagonal, diagB, matrix.SchemeDiagonal,
			[][]float64{{1}, {30}, {99}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := mustRows(t, tc.ka, tc.a), mustRows(t, tc.kb, tc.b)
			p := matrix.Mul[float64](a, b)
			require.Equal(t, tc.scheme, p.Packer().Scheme())
			require.Equal(t, tc.scheme, p.Shaper().Scheme())
			require.Equal(t, tc.rows, rowValues(p))
			require.Equal(t, naiveMul(a, b), rowsOf(p))

			// Materialized result: same values, composed storage.
			c := matrix.Eval[float64](p)
			require.True(t, matrix.Equal[float64](p, c))
			require.Equal(t, c.Packer().StoredSize(), len(c.Data()))
		})
	}
}

var (
	band1 = [][]float64{
		{1, 7, 0, 0, 0, 0},
		{12, 2, 8, 0, 0, 0},
		{0, 13, 3, 9, 0, 0},
		{0, 0, 14, 4, 10, 0},
		{0, 0, 0, 15, 5, 11},
		{0, 0, 0, 0, 16, 6},
	}
	band2 = [][]float64{
		{1, 7, 17, 0, 0, 0},
		{12, 2, 8, 18, 0, 0},
		{21, 13, 3, 9, 19, 0},
		{0, 22, 14, 4, 10, 20},
		{0, 0, 23, 15, 5, 11},
		{0, 0, 0, 24, 16, 6},
	}
)

func TestMul_BandBand(t *testing.T) {
	a, b := mustRows(t, matrix.SBand(1), band1), mustRows(t, matrix.SBand(2), band2)
	p := matrix.Mul[float64](a, b)
	require.Equal(t, matrix.SchemeSBand, p.Packer().Scheme())
	require.Equal(t, 3, p.Packer().Bandwidth())
	require.Equal(t, 3, p.Shaper().Bandwidth())
	require.Equal(t, [][]float64{
		{85, 21, 73, 126},
		{204, 192, 244, 108, 152},
		{219, 263, 239, 297, 147, 180},
		{294, 270, 328, 292, 356, 190},
		{330, 325, 399, 351, 421},
		{368, 384, 176, 212},
	}, rowValues(p))
	require.Equal(t, naiveMul(a, b), rowsOf(p))

	c := matrix.Eval[float64](p)
	require.Equal(t, 6*7, len(c.Data()))
	require.Equal(t, 0.0, c.At(0, 4), "outside the band")
}

func TestMul_SymmetricOperand(t *testing.T) {
	s := mustRows(t, matrix.SymmetricCM, sym33)
	f := mustRows(t, matrix.FullCM, sym33)
	p := matrix.Mul[float64](s, s)
	require.Equal(t, matrix.SchemeFull, p.Packer().Scheme())
	require.Equal(t, matrix.NoSymmetry, p.Symmetry())
	require.False(t, p.Cached(), "symmetric storage is not a full CM buffer")
	require.True(t, matrix.Equal[float64](p, matrix.Mul[float64](f, f)))
}

func TestMul_DimensionMismatch(t *testing.T) {
	a := mustRows(t, matrix.FullCM, prodA)
	requirePanicsWith(t, matrix.ErrDimensionMismatch, func() { matrix.Mul[float64](a, a) })
	require.NoError(t, matrix.ValidateMulCompatible[float64](a, matrix.Transpose[float64](a)))
	require.ErrorIs(t, matrix.ValidateMulCompatible[float64](a, a), matrix.ErrDimensionMismatch)
}

// Cached, uncached, naive and exact (integral data) evaluation agree bit for bit.
func TestMul_RandomFullCached(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{1, 2, 3, 10, 37} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := mustRows(t, matrix.FullCM, randomInts(rng, n, n+1))
			b := mustRows(t, matrix.FullCM, randomInts(rng, n+1, n))

			cached := matrix.Mul[float64](a, b)
			require.True(t, cached.Cached())
			plain := matrix.Mul[float64](hide{a}, hide{b})
			require.False(t, plain.Cached())

			want := naiveMul(a, b)
			require.Equal(t, want, rowsOf(cached))
			require.Equal(t, want, rowsOf(matrix.Eval[float64](cached)))
			require.Equal(t, want, rowsOf(plain))
			require.True(t, matrix.Equal[float64](cached, plain))

			rm := mustRows(t, matrix.FullRM, rowsOf(a))
			require.Equal(t, want, rowsOf(matrix.Mul[float64](rm, b)))
		})
	}
}

func TestMul_RowCacheFills(t *testing.T) {
	a := mustRows(t, matrix.FullCM, prodA)
	b := mustRows(t, matrix.FullCM, prodB)
	p := matrix.Mul[float64](a, b)
	require.Equal(t, 0, p.CacheFills())

	// Element reads walk A directly.
	_ = rowsOf(p)
	require.Equal(t, 0, p.CacheFills())

	// A row view copies its row of A once, however many columns it reads.
	row := p.Row(1)
	require.Equal(t, []float64{158, 184, 210}, row.Slice())
	require.Equal(t, 184.0, row.At(1))
	require.Equal(t, 1, p.CacheFills())

	// Eval traverses row views: one copy per row.
	c := matrix.Eval[float64](p)
	require.Equal(t, 1+3, p.CacheFills())
	require.True(t, matrix.Equal[float64](c, p))
}

// No read leaves state behind: every write path is seen by the next read.
func TestMul_CacheSeesMutation(t *testing.T) {
	a := mustRows(t, matrix.FullCM, prodA)
	b := mustRows(t, matrix.FullCM, prodB)
	p := matrix.Mul[float64](a, b)
	require.Equal(t, 70.0, p.At(0, 0))
	require.Equal(t, 70.0, p.Row(0).At(0))

	a.Set(0, 0, 2)
	require.Equal(t, 71.0, p.At(0, 0))
	require.Equal(t, 71.0, p.Row(0).At(0))

	a.Data()[0] = 100 // A(0,0) in column-major storage
	require.Equal(t, 100.0+2*4+3*7+4*10, p.At(0, 0))
	require.True(t, matrix.Equal[float64](p, matrix.Mul[float64](hide{a}, hide{b})))

	a.MulScalar(0)
	require.Equal(t, 0.0, p.At(0, 1))
	require.True(t, matrix.EqualRows[float64](matrix.Eval[float64](p),
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}))
}

// A slice adopted by Wrap stays shared with the caller.
func TestMul_CacheSeesWrappedWrites(t *testing.T) {
	buf := []float64{1, 0, 0, 1} // 2×2 identity, column-major
	a, err := matrix.Wrap(matrix.FullCM, 2, 2, buf)
	require.NoError(t, err)
	id, err := matrix.Identity[float64](matrix.FullCM, 2)
	require.NoError(t, err)
	p := matrix.Mul[float64](a, id)
	require.True(t, p.Cached())
	require.Equal(t, 1.0, p.At(0, 0))

	buf[0] = 100
	require.Equal(t, 100.0, p.At(0, 0))
	require.True(t, matrix.Equal[float64](p, matrix.Mul[float64](a, hide{id})))
}

func TestMulVec_Full(t *testing.T) {
	a := mustRows(t, matrix.FullCM, prodA)
	av := matrix.MulVec[float64](a, matrix.VectorOf[float64](1, 2, 3, 4))
	require.Equal(t, []float64{30, 70, 110}, av.Slice())
	va := matrix.VecMul[float64](matrix.VectorOf[float64](5, 6, 7), a)
	require.Equal(t, []float64{98, 116, 134, 152}, va.Slice())

	requirePanicsWith(t, matrix.ErrDimensionMismatch, func() {
		matrix.MulVec[float64](a, matrix.VectorOf[float64](1, 2, 3))
	})
	requirePanicsWith(t, matrix.ErrDimensionMismatch, func() {
		matrix.VecMul[float64](matrix.VectorOf[float64](1, 2, 3, 4), a)
	})
}

func TestMulVec_Band(t *testing.T) {
	v := matrix.VectorOf[float64](7, 8, 9, 10, 11, 12)
	tests := []struct {
		k    int
		rows [][]float64
		av   []float64
		va   []float64
		vav  float64
	}{
		{3, [][]float64{
			{1, 7, 17, 25, 0, 0},
			{12, 2, 8, 18, 26, 0},
			{21, 13, 3, 9, 19, 27},
			{28, 22, 14, 4, 10, 20},
			{0, 29, 23, 15, 5, 11},
			{0, 0, 30, 24, 16, 6},
		}, []float64{466, 638, 901, 888, 776, 758}, []float64{572, 721, 963, 893, 726, 636}, 42987},
		{4, [][]float64{
			{1, 7, 17, 25, 31, 0},
			{12, 2, 8, 18, 26, 32},
			{21, 13, 3, 9, 19, 27},
			{28, 22, 14, 4, 10, 20},
			{33, 29, 23, 15, 5, 11},
			{0, 34, 30, 24, 16, 6},
		}, []float64{807, 1022, 901, 888, 1007, 1030}, []float64{935, 1129, 963, 893, 943, 892}, 54251},
		{5, [][]float64{
			{1, 7, 17, 25, 31, 35},
			{12, 2, 8, 18, 26, 32},
			{21, 13, 3, 9, 19, 27},
			{28, 22, 14, 4, 10, 20},
			{33, 29, 23, 15, 5, 11},
			{36, 34, 30, 24, 16, 6},
		}, []float64{1227, 1022, 901, 888, 1007, 1282}, []float64{1367, 1129, 963, 893, 943, 1137}, 60215},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("k=%d", tc.k), func(t *testing.T) {
			a := mustRows(t, matrix.SBand(tc.k), tc.rows)
			av := matrix.MulVec[float64](a, v)
			require.Equal(t, tc.av, av.Slice())
			require.Equal(t, tc.va, matrix.VecMul[float64](v, a).Slice())
			require.Equal(t, tc.vav, matrix.Dot[float64](v, av))

			f := mustRows(t, matrix.FullRM, tc.rows)
			require.Equal(t, tc.av, matrix.MulVec[float64](f, v).Slice())
		})
	}
}
