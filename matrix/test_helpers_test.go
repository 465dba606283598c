// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and utilities for layouts and views.
//   • Keep data integral so that every evaluation path must agree bit for bit.

package matrix_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

// hide WRAPS any Expr to hide its concrete type from type assertions.
// Implementation:
//   - Embed matrix.Expr to forward all methods.
//   - Use hide{X} in tests to force the generic (non-*Matrix) paths, e.g. a
//     product without the Full CM row cache.
type hide struct{ matrix.Expr[float64] }

// mustRows builds a matrix from a row-major literal or fails the test.
func mustRows(t testing.TB, kind matrix.Kind, rows [][]float64) *matrix.Matrix[float64] {
	t.Helper()
	m, err := matrix.FromRows(kind, rows)
	require.NoError(t, err)

	return m
}

// mustNew allocates a matrix or fails the test.
func mustNew(t testing.TB, kind matrix.Kind, r, c int, opts ...matrix.Option) *matrix.Matrix[float64] {
	t.Helper()
	m, err := matrix.New[float64](kind, r, c, opts...)
	require.NoError(t, err)

	return m
}

// rowsOf materializes the logical values of e row by row.
func rowsOf(e matrix.Expr[float64]) [][]float64 {
	out := make([][]float64, e.Rows())
	for i := range out {
		out[i] = make([]float64, e.Cols())
		for j := range out[i] {
			out[i][j] = e.At(i, j)
		}
	}

	return out
}

// naiveMul is the reference triple loop over logical values.
func naiveMul(a, b matrix.Expr[float64]) [][]float64 {
	out := make([][]float64, a.Rows())
	for i := range out {
		out[i] = make([]float64, b.Cols())
		for j := range out[i] {
			var s float64
			for k := 0; k < a.Cols(); k++ {
				s += a.At(i, k) * b.At(k, j)
			}
			out[i][j] = s
		}
	}

	return out
}

// randomInts returns an r×c literal of small integers in [-9, 9].
func randomInts(rng *rand.Rand, r, c int) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = float64(rng.IntN(19) - 9)
		}
	}

	return out
}

// masked zeroes the entries of rows that fall outside kind's shape and
// mirrors the upper triangle for symmetric kinds, so the literal is
// representable in kind.
func masked(kind matrix.Kind, rows [][]float64) [][]float64 {
	r, c := len(rows), 0
	if r > 0 {
		c = len(rows[0])
	}
	l := kind(r, c)
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			switch {
			case !l.Shaper.Contains(i, j):
			case l.Symmetry == matrix.Symmetric && i > j:
				out[i][j] = rows[j][i]
			case l.Symmetry == matrix.AntiSymmetric && i > j:
				out[i][j] = -rows[j][i]
			case l.Symmetry == matrix.AntiSymmetric && i == j:
			default:
				out[i][j] = rows[i][j]
			}
		}
	}

	return out
}

// requirePanicsWith runs fn and asserts it panics with an error matching target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	if !matrix.ChecksEnabled {
		t.Skip("contract checks compiled out")
	}
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value is not an error: %v", r)
		require.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()
	fn()
}
