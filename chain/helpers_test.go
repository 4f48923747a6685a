// SPDX-License-Identifier: MIT
package chain_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvchain/matrix"
)

const tol = 1e-10

// logTable builds a D×D log-weight table from probabilities; zeros become −Inf.
func logTable(t testing.TB, rows [][]float64) matrix.Matrix {
	t.Helper()
	logRows := make([][]float64, len(rows))
	for i, r := range rows {
		logRows[i] = logVec(r)
	}
	m, err := matrix.NewDenseFromRows(logRows, matrix.WithAllowLogZero())
	require.NoError(t, err)

	return m
}

func logVec(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = math.Log(v)
	}

	return out
}

// randChain draws unnormalized log-weights in [-3, 3).
func randChain(t testing.TB, n, d int, seed int64) ([]float64, []matrix.Matrix) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	draw := func(k int) []float64 {
		out := make([]float64, k)
		for i := range out {
			out[i] = 6*rng.Float64() - 3
		}
		return out
	}

	logp0 := draw(d)
	logP := make([]matrix.Matrix, n-1)
	for k := range logP {
		m, err := matrix.NewDenseFromData(d, d, draw(d*d))
		require.NoError(t, err)
		logP[k] = m
	}

	return logp0, logP
}

// bruteForce enumerates all D^N state sequences and returns log Z together
// with the pairwise joints p(z[n] = i, z[n+1] = j).
func bruteForce(t testing.TB, logp0 []float64, logP []matrix.Matrix) (float64, [][]float64) {
	t.Helper()
	d, n := len(logp0), len(logP)+1
	joints := make([][]float64, n-1)
	for k := range joints {
		joints[k] = make([]float64, d*d)
	}

	seq := make([]int, n)
	total := 0.0
	for {
		lw := logp0[seq[0]]
		for k := 0; k < n-1; k++ {
			v, err := logP[k].At(seq[k], seq[k+1])
			require.NoError(t, err)
			lw += v
		}
		w := math.Exp(lw)
		total += w
		for k := 0; k < n-1; k++ {
			joints[k][seq[k]*d+seq[k+1]] += w
		}

		// next sequence in odometer order
		pos := n - 1
		for pos >= 0 {
			seq[pos]++
			if seq[pos] < d {
				break
			}
			seq[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	for k := range joints {
		for i := range joints[k] {
			joints[k][i] /= total
		}
	}

	return math.Log(total), joints
}
