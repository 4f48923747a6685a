// SPDX-License-Identifier: MIT
package blocktri_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvchain/matrix"
)

const tol = 1e-9

// system is a random, diagonally dominant (hence SPD) block-tridiagonal system.
type system struct {
	A, B []matrix.Matrix
	Y    [][]float64
}

func randSystem(t testing.TB, n, d int, seed int64) system {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	uniform := func(scale float64) []float64 {
		out := make([]float64, d*d)
		for i := range out {
			out[i] = scale * (2*rng.Float64() - 1)
		}
		return out
	}

	s := system{A: make([]matrix.Matrix, n), B: make([]matrix.Matrix, n-1), Y: make([][]float64, n)}
	for k := 0; k < n; k++ {
		g, err := matrix.NewDenseFromData(d, d, uniform(1))
		require.NoError(t, err)
		a, err := matrix.MulT(g, g)
		require.NoError(t, err)
		for i := 0; i < d; i++ {
			v, _ := a.At(i, i)
			require.NoError(t, a.Set(i, i, v+float64(d)+1))
		}
		s.A[k] = a

		y := make([]float64, d)
		for i := range y {
			y[i] = 2*rng.Float64() - 1
		}
		s.Y[k] = y
	}
	for k := 0; k < n-1; k++ {
		b, err := matrix.NewDenseFromData(d, d, uniform(0.3))
		require.NoError(t, err)
		s.B[k] = b
	}

	return s
}

// sparsify returns B with only the first row of each block kept, stored sparse.
func sparsify(t testing.TB, bs []matrix.Matrix) (dense, sparse []matrix.Matrix) {
	t.Helper()
	dense = make([]matrix.Matrix, len(bs))
	sparse = make([]matrix.Matrix, len(bs))
	for k, b := range bs {
		d, err := matrix.NewDense(b.Rows(), b.Cols())
		require.NoError(t, err)
		for j := 0; j < b.Cols(); j++ {
			v, _ := b.At(0, j)
			require.NoError(t, d.Set(0, j, v))
		}
		s, err := matrix.SparseFrom(d)
		require.NoError(t, err)
		dense[k], sparse[k] = d, s
	}

	return dense, sparse
}

func denseBlock(t testing.TB, m *matrix.Dense, bi, bj, d int) *matrix.Dense {
	t.Helper()
	out, err := matrix.NewDense(d, d)
	require.NoError(t, err)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			v, err := m.At(bi*d+i, bj*d+j)
			require.NoError(t, err)
			require.NoError(t, out.Set(i, j, v))
		}
	}

	return out
}

func requireClose(t testing.TB, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, tol, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}

func scalar(t testing.TB, v float64) matrix.Matrix {
	t.Helper()
	m, err := matrix.NewDenseFromRows([][]float64{{v}})
	require.NoError(t, err)

	return m
}
