// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

var (
	full34 = [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}
	sym33  = [][]float64{{1, 2, 3}, {2, 5, 6}, {3, 6, 8}}
)

func TestNew_AllKindsValidate(t *testing.T) {
	kinds := map[string]matrix.Kind{
		"FullCM": matrix.FullCM, "FullRM": matrix.FullRM,
		"UpperCM": matrix.UpperCM, "UpperRM": matrix.UpperRM,
		"LowerCM": matrix.LowerCM, "LowerRM": matrix.LowerRM,
		"Diagonal":    matrix.Diagonal,
		"UpperFullCM": matrix.UpperFullCM, "UpperFullRM": matrix.UpperFullRM,
		"LowerFullCM": matrix.LowerFullCM, "LowerFullRM": matrix.LowerFullRM,
	}
	for name, k := range kinds {
		for _, d := range [][2]int{{0, 0}, {1, 1}, {3, 4}, {4, 3}} {
			m, err := matrix.New[float64](k, d[0], d[1])
			require.NoError(t, err, name)
			require.Equal(t, m.Packer().StoredSize(), len(m.Data()), name)
			r, c := m.Dims()
			require.Equal(t, d, [2]int{r, c})
		}
	}
	for _, k := range []matrix.Kind{matrix.SymmetricCM, matrix.SymmetricRM, matrix.AntiSymmetricCM, matrix.AntiSymmetricRM, matrix.SBand(2)} {
		_, err := matrix.New[float64](k, 4, 4)
		require.NoError(t, err)
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := matrix.New[float64](matrix.FullCM, -1, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.New[float64](matrix.SymmetricCM, 3, 4)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.New[float64](matrix.SBand(1), 3, 4)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.New[float64](matrix.SBand(-1), 3, 3)
	require.ErrorIs(t, err, matrix.ErrBadBandwidth)

	// A hand-built layout whose storage misses part of its shape.
	bad := func(r, c int) matrix.Layout {
		return matrix.Layout{Packer: matrix.NewDiagonalPacker(r, c), Shaper: matrix.NewFullShape(r, c)}
	}
	_, err = matrix.New[float64](bad, 2, 2)
	require.ErrorIs(t, err, matrix.ErrNotStored)

	require.Panics(t, func() { matrix.Must(matrix.New[float64](matrix.FullCM, -1, 0)) })
}

func TestFromRows_OrderIndependent(t *testing.T) {
	cm := mustRows(t, matrix.FullCM, full34)
	rm := mustRows(t, matrix.FullRM, full34)
	require.True(t, matrix.EqualRows[float64](cm, full34))
	require.True(t, matrix.Equal[float64](cm, rm))
	require.Equal(t, []float64{1, 5, 9, 2, 6, 10, 3, 7, 11, 4, 8, 12}, cm.Data())
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, rm.Data())
}

func TestFromRows_RejectsUnrepresentable(t *testing.T) {
	_, err := matrix.FromRows(matrix.UpperCM, full34)
	require.ErrorIs(t, err, matrix.ErrStructuralZero)

	_, err = matrix.FromRows(matrix.SymmetricCM, [][]float64{{1, 2}, {3, 4}})
	require.ErrorIs(t, err, matrix.ErrSymmetryViolation)

	_, err = matrix.FromRows(matrix.AntiSymmetricRM, [][]float64{{1, 2}, {-2, 0}})
	require.ErrorIs(t, err, matrix.ErrSymmetryViolation, "non-zero anti-symmetric diagonal")

	_, err = matrix.FromRows(matrix.FullCM, [][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// The error carries the offending position.
	_, err = matrix.FromRows(matrix.LowerRM, [][]float64{{1, 0, 0}, {1, 1, 7}})
	require.ErrorContains(t, err, "(1,2)")
}

func TestWrap(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	m, err := matrix.Wrap(matrix.UpperRM, 3, 3, data)
	require.NoError(t, err)
	require.True(t, matrix.EqualRows[float64](m, [][]float64{{1, 2, 3}, {0, 4, 5}, {0, 0, 6}}))
	m.Set(0, 0, 9)
	require.Equal(t, 9.0, data[0], "no copy")

	_, err = matrix.Wrap(matrix.UpperRM, 3, 3, data[:5])
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// Full storage under an upper shape: the strictly lower slots must be zero.
	_, err = matrix.Wrap(matrix.UpperFullCM, 2, 2, []float64{1, 5, 2, 3})
	require.ErrorIs(t, err, matrix.ErrStructuralZero)
}

func TestMatrix_AtSetStructure(t *testing.T) {
	m := mustNew(t, matrix.UpperCM, 3, 3)
	m.Set(0, 2, 4)
	require.Equal(t, 4.0, m.At(0, 2))
	require.Equal(t, 0.0, m.At(2, 0), "outside the shape reads zero")

	requirePanicsWith(t, matrix.ErrStructuralZero, func() { m.Set(2, 0, 1) })
	requirePanicsWith(t, matrix.ErrOutOfRange, func() { m.At(3, 0) })
	requirePanicsWith(t, matrix.ErrOutOfRange, func() { m.Set(0, -1, 1) })

	s := mustRows(t, matrix.SymmetricCM, sym33)
	requirePanicsWith(t, matrix.ErrNotStored, func() { s.Set(2, 0, 1) })

	// Upper shape on full storage: BLAS trmm layout.
	f := mustRows(t, matrix.UpperFullRM, [][]float64{{1, 2}, {0, 3}})
	require.Equal(t, []float64{1, 2, 0, 3}, f.Data())
	requirePanicsWith(t, matrix.ErrStructuralZero, func() { f.Set(1, 0, 1) })
}

func TestMatrix_SymmetricMirror(t *testing.T) {
	for _, k := range []matrix.Kind{matrix.SymmetricCM, matrix.SymmetricRM} {
		s := mustRows(t, k, sym33)
		require.Equal(t, 6, len(s.Data()))
		require.True(t, matrix.EqualRows[float64](s, sym33))

		s.Set(0, 2, 0)
		require.True(t, matrix.VecEqualValues[float64](s.Row(0), 1, 2, 0))
		require.True(t, matrix.VecEqualValues[float64](s.Col(2), 0, 6, 8))
		require.Equal(t, 0.0, s.At(2, 0))
		require.NoError(t, matrix.ValidateSymmetric[float64](s, 0))
	}
}

func TestMatrix_AntiSymmetricMirror(t *testing.T) {
	rows := [][]float64{{0, 2, -3}, {-2, 0, 5}, {3, -5, 0}}
	for _, k := range []matrix.Kind{matrix.AntiSymmetricCM, matrix.AntiSymmetricRM} {
		a := mustRows(t, k, rows)
		require.True(t, matrix.EqualRows[float64](a, rows))
		require.True(t, matrix.Equal[float64](matrix.Transpose[float64](a), matrix.Neg[float64](a)))

		a.AddScalar(1) // the diagonal stays zero
		require.Equal(t, 0.0, a.At(1, 1))
		require.Equal(t, 3.0, a.At(0, 1))
		require.Equal(t, -3.0, a.At(1, 0))
	}

	f := mustNew(t, matrix.AntiSymmetricCM, 3, 3, matrix.WithFill(matrix.FillOne))
	require.True(t, matrix.EqualRows[float64](f, [][]float64{{0, 1, 1}, {-1, 0, 1}, {-1, -1, 0}}))
}

func TestMatrix_RowColViews(t *testing.T) {
	for _, k := range []matrix.Kind{matrix.FullCM, matrix.FullRM} {
		m := mustRows(t, k, full34)
		require.True(t, matrix.VecEqualValues[float64](m.Row(1), 5, 6, 7, 8))
		require.True(t, matrix.VecEqualValues[float64](m.Col(2), 3, 7, 11))
	}

	// Zero-copy along the storage order.
	rm := mustRows(t, matrix.FullRM, full34)
	_, ok := rm.Row(1).Contiguous()
	require.True(t, ok)
	_, ok = rm.Col(1).Contiguous()
	require.False(t, ok)

	band := mustRows(t, matrix.SBand(2), [][]float64{
		{1, 7, 17, 0, 0, 0},
		{12, 2, 8, 18, 0, 0},
		{21, 13, 3, 9, 19, 0},
		{0, 22, 14, 4, 10, 20},
		{0, 0, 23, 15, 5, 11},
		{0, 0, 0, 24, 16, 6},
	})
	require.Equal(t, 3, band.Row(0).Len())
	require.Equal(t, 5, band.Row(3).Len())
	require.True(t, matrix.VecEqualValues[float64](band.Row(3), 22, 14, 4, 10, 20))
	col, ok := band.Col(3).Contiguous()
	require.True(t, ok)
	require.Equal(t, []float64{18, 9, 4, 15, 24}, col)

	lo := mustRows(t, matrix.LowerRM, [][]float64{{1, 0, 0}, {2, 3, 0}, {4, 5, 6}})
	require.True(t, matrix.VecEqualValues[float64](lo.Row(2), 4, 5, 6))
	require.True(t, matrix.VecEqualValues[float64](lo.Col(1), 3, 5))
	require.Equal(t, matrix.Span{Lo: 1, Hi: 3}, lo.Col(1).Indices())

	d := mustRows(t, matrix.Diagonal, [][]float64{{1, 0, 0, 0}, {0, 2, 0, 0}})
	require.Equal(t, 0, d.Col(3).Len())
	require.True(t, matrix.VecEqualValues[float64](d.Row(1), 2))
}

func TestMatrix_Iterators(t *testing.T) {
	m := mustRows(t, matrix.LowerCM, [][]float64{{1, 0}, {2, 3}})
	var got []matrix.Index
	var vals []float64
	for at, v := range m.Stored() {
		got = append(got, at)
		vals = append(vals, v)
	}
	require.Equal(t, []matrix.Index{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}, got)
	require.Equal(t, []float64{1, 2, 3}, vals)

	n := 0
	for i, row := range m.RowViews() {
		require.Equal(t, i+1, row.Len())
		n++
	}
	require.Equal(t, 2, n)
	for j, col := range m.ColViews() {
		require.Equal(t, 2-j, col.Len())
		break
	}
}

func TestMatrix_Fills(t *testing.T) {
	one := mustNew(t, matrix.UpperFullCM, 3, 3, matrix.WithFill(matrix.FillOne))
	require.True(t, matrix.EqualRows[float64](one, [][]float64{{1, 1, 1}, {0, 1, 1}, {0, 0, 1}}))
	require.Equal(t, 0.0, one.Data()[1], "storage outside the shape stays zero")

	val := mustNew(t, matrix.SBand(1), 3, 3, matrix.WithValue(2.5))
	require.True(t, matrix.EqualRows[float64](val, [][]float64{{2.5, 2.5, 0}, {2.5, 2.5, 2.5}, {0, 2.5, 2.5}}))

	id, err := matrix.Identity[float64](matrix.FullRM, 3)
	require.NoError(t, err)
	require.True(t, matrix.EqualRows[float64](id, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))

	r1 := mustNew(t, matrix.FullCM, 4, 4, matrix.WithRandom(10))
	r2 := mustNew(t, matrix.FullCM, 4, 4, matrix.WithRandom(10))
	require.Equal(t, r1.Data(), r2.Data(), "default seed is deterministic")
	for _, x := range r1.Data() {
		require.GreaterOrEqual(t, x, 0.0)
		require.Less(t, x, 10.0)
	}
	r3 := mustNew(t, matrix.FullCM, 4, 4, matrix.WithRandom(10), matrix.WithSeed(99))
	require.NotEqual(t, r1.Data(), r3.Data())
}

// The anti-symmetric diagonal stays zero under FillUnit, and Identity
// refuses a layout that cannot hold it.
func TestMatrix_FillUnitAntiSymmetric(t *testing.T) {
	for _, kind := range []matrix.Kind{matrix.AntiSymmetricCM, matrix.AntiSymmetricRM} {
		m := mustNew(t, kind, 3, 3, matrix.WithFill(matrix.FillUnit))
		require.Zero(t, matrix.FNorm[float64](m))
		_, err := matrix.From(kind, m)
		require.NoError(t, err, "the fill is representable in its own layout")

		_, err = matrix.Identity[float64](kind, 3)
		require.ErrorIs(t, err, matrix.ErrSymmetryViolation)
	}

	empty, err := matrix.Identity[float64](matrix.AntiSymmetricCM, 0)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Rows())

	sym, err := matrix.Identity[float64](matrix.SymmetricRM, 3)
	require.NoError(t, err)
	require.True(t, matrix.EqualRows[float64](sym, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))
}

func TestMatrix_CloneIsDeep(t *testing.T) {
	m := mustRows(t, matrix.FullRM, full34)
	c := m.Clone()
	c.Set(0, 0, 100)
	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, m.Layout(), c.Layout())
}

func TestMatrix_Assign(t *testing.T) {
	m := mustNew(t, matrix.FullCM, 2, 2)
	data := m.Data()
	src := mustRows(t, matrix.FullRM, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, m.Assign(src))
	require.True(t, matrix.Equal[float64](m, src))
	require.Equal(t, []float64{1, 3, 2, 4}, data, "same dims reuse the buffer")

	// Resizing keeps the layout family.
	require.NoError(t, m.Assign(mustRows(t, matrix.FullRM, full34)))
	require.Equal(t, matrix.ColMajor, m.Packer().Order())
	require.True(t, matrix.EqualRows[float64](m, full34))

	// Unrepresentable source: error, m unchanged.
	u := mustNew(t, matrix.UpperRM, 2, 2)
	before := append([]float64(nil), u.Data()...)
	err := u.Assign(src)
	require.ErrorIs(t, err, matrix.ErrStructuralZero)
	require.Equal(t, before, u.Data())

	// Band storage cannot take a non-square source: error, m unchanged.
	band := mustRows(t, matrix.SBand(1), [][]float64{{1, 2, 0}, {3, 4, 5}, {0, 6, 7}})
	bandData := append([]float64(nil), band.Data()...)
	err = band.Assign(mustNew(t, matrix.FullCM, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	require.Equal(t, 3, band.Rows())
	require.Equal(t, 3, band.Cols())
	require.Equal(t, bandData, band.Data())

	// A lazy view of matching structure is accepted.
	up := mustRows(t, matrix.UpperCM, [][]float64{{1, 2}, {0, 3}})
	require.NoError(t, u.Assign(matrix.Scale[float64](up, 2)))
	require.True(t, matrix.EqualRows[float64](u, [][]float64{{2, 4}, {0, 6}}))
}

func TestMatrix_AddSubAssign(t *testing.T) {
	a := mustRows(t, matrix.FullCM, full34)
	b := mustRows(t, matrix.FullCM, full34)
	a.AddAssign(b)
	require.Equal(t, 24.0, a.At(2, 3))
	a.SubAssign(b)
	require.True(t, matrix.Equal[float64](a, b))

	// Mixed layouts take the general path.
	rm := mustRows(t, matrix.FullRM, full34)
	a.SubAssign(rm)
	require.Equal(t, 0.0, matrix.FNorm[float64](a))

	// Upper += Diagonal stays upper.
	u := mustRows(t, matrix.UpperRM, [][]float64{{1, 2}, {0, 3}})
	d := mustRows(t, matrix.Diagonal, [][]float64{{10, 0}, {0, 20}})
	u.AddAssign(d)
	require.True(t, matrix.EqualRows[float64](u, [][]float64{{11, 2}, {0, 23}}))

	requirePanicsWith(t, matrix.ErrStructuralZero, func() {
		u.AddAssign(mustRows(t, matrix.LowerRM, [][]float64{{1, 0}, {1, 1}}))
	})
	requirePanicsWith(t, matrix.ErrDimensionMismatch, func() {
		u.AddAssign(mustNew(t, matrix.FullCM, 3, 3))
	})
}

func TestMatrix_ScalarOps(t *testing.T) {
	m := mustRows(t, matrix.LowerCM, [][]float64{{1, 0}, {2, 3}})
	m.AddScalar(1)
	require.True(t, matrix.EqualRows[float64](m, [][]float64{{2, 0}, {3, 4}}), "structural zeros untouched")
	m.MulScalar(2).SubScalar(2).DivScalar(2)
	require.True(t, matrix.EqualRows[float64](m, [][]float64{{1, 0}, {2, 3}}))
}

func TestMatrix_IntegerElements(t *testing.T) {
	m, err := matrix.FromRows(matrix.SymmetricRM, [][]int{{1, 2}, {2, 3}})
	require.NoError(t, err)
	p := matrix.Eval[int](matrix.Mul[int](m, m))
	require.True(t, matrix.EqualRows[int](p, [][]int{{5, 8}, {8, 13}}))
}

func TestMatrix_String(t *testing.T) {
	m := mustRows(t, matrix.Diagonal, [][]float64{{1, 0}, {0, 2}})
	assert.Equal(t, "{{1, 0}, {0, 2}}", m.String())
	assert.Equal(t, "{{1, 0}, {0, 2}}", matrix.Format[float64](matrix.Transpose[float64](m)))
}

func TestMatrix_ErrorsAreWrapped(t *testing.T) {
	_, err := matrix.FromRows(matrix.UpperRM, [][]float64{{1, 2}, {3, 4}})
	require.True(t, errors.Is(err, matrix.ErrStructuralZero))
	require.ErrorContains(t, err, "Matrix.FromRows(1,0)")
}
