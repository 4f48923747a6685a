// SPDX-License-Identifier: MIT
package chain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvchain/chain"
	"github.com/katalvlaran/lvchain/matrix"
)

func TestRun_TwoStateTwoStep(t *testing.T) {
	t.Parallel()
	logp0 := logVec([]float64{0.6, 0.4})
	logP := []matrix.Matrix{logTable(t, [][]float64{{0.7, 0.3}, {0.2, 0.8}})}

	res, err := chain.Run(logp0, logP)
	require.NoError(t, err)
	assert.False(t, res.Degenerate)

	assert.InDeltaSlice(t, []float64{0.6, 0.4}, res.Z0, tol)
	require.Len(t, res.ZZ, 1)
	assert.InDeltaSlice(t, []float64{0.42, 0.18, 0.08, 0.32}, res.ZZ[0].Data(), tol)
	// weights are already normalized, so Z = 1
	assert.InDelta(t, 0, res.LogZ, tol)
}

func TestRun_MatchesBruteForce(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ n, d int }{{3, 2}, {2, 3}, {4, 2}, {3, 3}} {
		logp0, logP := randChain(t, tc.n, tc.d, int64(tc.n*10+tc.d))

		res, err := chain.Run(logp0, logP)
		require.NoError(t, err)

		logZ, joints := bruteForce(t, logp0, logP)
		assert.InDelta(t, logZ, res.LogZ, 1e-9)
		for k := range joints {
			assert.InDeltaSlice(t, joints[k], res.ZZ[k].Data(), 1e-9)
		}
	}
}

func TestRun_NormalizationAndConsistency(t *testing.T) {
	t.Parallel()
	logp0, logP := randChain(t, 12, 4, 7)

	res, err := chain.Run(logp0, logP)
	require.NoError(t, err)

	sum := 0.0
	for _, v := range res.Z0 {
		sum += v
	}
	assert.InDelta(t, 1, sum, tol)

	for n, zz := range res.ZZ {
		s, err := matrix.SumAll(zz)
		require.NoError(t, err)
		assert.InDelta(t, 1, s, tol)

		if n+1 < len(res.ZZ) {
			out, err := matrix.ColSums(zz)
			require.NoError(t, err)
			in, err := matrix.RowSums(res.ZZ[n+1])
			require.NoError(t, err)
			assert.InDeltaSlice(t, out, in, 1e-9)
		}
	}

	z := res.Marginals()
	require.Len(t, z, 12)
	assert.Equal(t, res.Z0, z[0])
	first, err := matrix.RowSums(res.ZZ[0])
	require.NoError(t, err)
	assert.InDeltaSlice(t, first, z[0], tol)
}

func TestRun_LongChainStaysFinite(t *testing.T) {
	t.Parallel()
	// every step multiplies Z by ~e^50: the unscaled recursion would overflow
	d := 3
	logp0 := []float64{50, 50, 50}
	logP := make([]matrix.Matrix, 200)
	for k := range logP {
		m, err := matrix.NewDenseFromData(d, d, []float64{50, 49, 48, 47, 50, 49, 48, 47, 50})
		require.NoError(t, err)
		logP[k] = m
	}

	res, err := chain.Run(logp0, logP)
	require.NoError(t, err)
	assert.False(t, math.IsInf(res.LogZ, 0))
	assert.Greater(t, res.LogZ, 200*50.0)
	for _, zz := range res.ZZ {
		for _, v := range zz.Data() {
			assert.False(t, math.IsNaN(v))
		}
	}
}

func TestRun_SingleState(t *testing.T) {
	t.Parallel()
	logp0 := []float64{math.Log(2), math.Log(6)}

	res, err := chain.Run(logp0, nil)
	require.NoError(t, err)
	assert.Empty(t, res.ZZ)
	assert.InDeltaSlice(t, []float64{0.25, 0.75}, res.Z0, tol)
	assert.InDelta(t, math.Log(8), res.LogZ, tol)
	assert.Len(t, res.Marginals(), 1)
}

func TestRun_ZeroProbabilityEntries(t *testing.T) {
	t.Parallel()
	logp0 := logVec([]float64{1, 0})
	logP := []matrix.Matrix{
		logTable(t, [][]float64{{0, 1}, {0.5, 0.5}}),
		logTable(t, [][]float64{{0.3, 0.7}, {0.9, 0.1}}),
	}

	res, err := chain.Run(logp0, logP)
	require.NoError(t, err)
	assert.False(t, res.Degenerate)
	// the only path starts 0 → 1
	assert.InDeltaSlice(t, []float64{1, 0}, res.Z0, tol)
	assert.InDeltaSlice(t, []float64{0, 1, 0, 0}, res.ZZ[0].Data(), tol)
	assert.InDeltaSlice(t, []float64{0, 0, 0.9, 0.1}, res.ZZ[1].Data(), tol)
	assert.InDelta(t, 0, res.LogZ, tol)
}

func TestRun_Degenerate(t *testing.T) {
	t.Parallel()
	// state 0 is the only start and it can never move anywhere
	logp0 := logVec([]float64{1, 0})
	logP := []matrix.Matrix{
		logTable(t, [][]float64{{0.5, 0.5}, {0.5, 0.5}}),
		logTable(t, [][]float64{{0, 0}, {0, 0}}),
	}

	res, err := chain.Run(logp0, logP)
	require.NoError(t, err)
	assert.True(t, res.Degenerate)
	assert.True(t, math.IsInf(res.LogZ, -1))
	assert.Equal(t, []float64{0, 0}, res.Z0)
	require.Len(t, res.ZZ, 2)
	for _, zz := range res.ZZ {
		assert.Equal(t, []float64{0, 0, 0, 0}, zz.Data())
	}

	res, err = chain.Run([]float64{math.Inf(-1), math.Inf(-1)}, nil)
	require.NoError(t, err)
	assert.True(t, res.Degenerate)
	assert.Equal(t, []float64{0, 0}, res.Z0)
}

func TestRun_InputErrors(t *testing.T) {
	t.Parallel()
	two := logTable(t, [][]float64{{0.5, 0.5}, {0.5, 0.5}})
	three, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	withNaN, err := matrix.NewDenseFromData(2, 2, []float64{0, math.NaN(), 0, 0}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	withPosInf, err := matrix.NewDenseFromData(2, 2, []float64{0, 0, math.Inf(1), 0}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	tests := []struct {
		name  string
		logp0 []float64
		logP  []matrix.Matrix
		want  error
	}{
		{"empty logp0", nil, nil, matrix.ErrInvalidDimensions},
		{"NaN logp0", []float64{0, math.NaN()}, nil, matrix.ErrNaNInf},
		{"+Inf logp0", []float64{math.Inf(1), 0}, nil, matrix.ErrNaNInf},
		{"nil table", []float64{0, 0}, []matrix.Matrix{two, nil}, matrix.ErrNilMatrix},
		{"table shape", []float64{0, 0}, []matrix.Matrix{two, three}, matrix.ErrDimensionMismatch},
		{"NaN table", []float64{0, 0}, []matrix.Matrix{withNaN}, matrix.ErrNaNInf},
		{"+Inf table", []float64{0, 0}, []matrix.Matrix{withPosInf}, matrix.ErrNaNInf},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chain.Run(tc.logp0, tc.logP)
			require.ErrorIs(t, err, tc.want)
		})
	}

	var sm *matrix.ShapeMismatchError
	_, err = chain.Run([]float64{0, 0}, []matrix.Matrix{three})
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "logP[0] shape", sm.What)
	assert.Equal(t, []int{3, 3}, sm.Got)
	assert.Equal(t, []int{2, 2}, sm.Want)
}

func TestRun_OverflowingLogWeights(t *testing.T) {
	t.Parallel()
	table, err := matrix.NewDenseFromRows([][]float64{{1e308, 0}, {0, 0}})
	require.NoError(t, err)

	// α[0,0] + logP[0,0,0] exceeds the float64 range at the first step
	_, err = chain.Run([]float64{1e308, 0}, []matrix.Matrix{table})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	assert.Contains(t, err.Error(), "chain.Run: step 0")

	// a large but representable start is fine: only the sum overflows
	res, err := chain.Run([]float64{1e308, 0}, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0}, res.Z0, tol)
	assert.Equal(t, 1e308, res.LogZ)
}

func TestRun_PureAndRepeatable(t *testing.T) {
	t.Parallel()
	logp0, logP := randChain(t, 5, 3, 11)
	p0 := append([]float64(nil), logp0...)
	t0 := logP[2].(*matrix.Dense).Data()

	r1, err := chain.Run(logp0, logP)
	require.NoError(t, err)
	r2, err := chain.Run(logp0, logP)
	require.NoError(t, err)

	assert.Equal(t, r1.Z0, r2.Z0)
	assert.Equal(t, r1.LogZ, r2.LogZ)
	for k := range r1.ZZ {
		assert.Equal(t, r1.ZZ[k].Data(), r2.ZZ[k].Data())
	}
	assert.Equal(t, p0, logp0)
	assert.Equal(t, t0, logP[2].(*matrix.Dense).Data())
}

func TestRun_SparseTableMatchesDense(t *testing.T) {
	t.Parallel()
	// log-weight 0 (probability 1) is the implicit value of a sparse table
	dense, err := matrix.NewDenseFromRows([][]float64{{0, -1}, {0, 0}})
	require.NoError(t, err)
	sparse, err := matrix.SparseFrom(dense)
	require.NoError(t, err)
	logp0 := []float64{-0.5, 0}

	want, err := chain.Run(logp0, []matrix.Matrix{dense})
	require.NoError(t, err)
	got, err := chain.Run(logp0, []matrix.Matrix{sparse})
	require.NoError(t, err)
	assert.Equal(t, want.ZZ[0].Data(), got.ZZ[0].Data())
	assert.Equal(t, want.LogZ, got.LogZ)
}

func TestFromProbabilities(t *testing.T) {
	t.Parallel()
	P, err := matrix.NewDenseFromRows([][]float64{{0.7, 0.3}, {0, 1}})
	require.NoError(t, err)

	logp0, logP, err := chain.FromProbabilities([]float64{0.6, 0.4}, []matrix.Matrix{P})
	require.NoError(t, err)
	assert.InDeltaSlice(t, logVec([]float64{0.6, 0.4}), logp0, tol)
	v, err := logP[0].At(1, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	res, err := chain.Run(logp0, logP)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.42, 0.18, 0, 0.4}, res.ZZ[0].Data(), tol)

	_, _, err = chain.FromProbabilities([]float64{0.5, -0.5}, nil)
	require.ErrorIs(t, err, chain.ErrNegativeWeight)
	_, _, err = chain.FromProbabilities([]float64{math.NaN()}, nil)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, _, err = chain.FromProbabilities([]float64{1}, []matrix.Matrix{P})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
