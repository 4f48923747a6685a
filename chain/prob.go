// SPDX-License-Identifier: MIT

package chain

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvchain/matrix"
)

const opFromProb = "chain.FromProbabilities"

// ErrNegativeWeight is returned by FromProbabilities for a weight below zero.
var ErrNegativeWeight = errors.New("chain: negative weight")

// FromProbabilities converts a chain given as non-negative weights into the
// log-weights Run expects. Zero weights become −Inf; the tables are built with
// matrix.WithAllowLogZero so they carry that policy.
//
// Errors: matrix.ErrNaNInf for NaN or ±Inf weights, ErrNegativeWeight,
// *matrix.ShapeMismatchError for tables that are not D×D.
func FromProbabilities(p0 []float64, P []matrix.Matrix) ([]float64, []matrix.Matrix, error) {
	logp0, err := logOf(p0)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: p0: %w", opFromProb, err)
	}

	d := len(p0)
	logP := make([]matrix.Matrix, len(P))
	for n, t := range P {
		if err = matrix.ValidateNotNil(t); err != nil {
			return nil, nil, fmt.Errorf("%s: P[%d]: %w", opFromProb, n, err)
		}
		if t.Rows() != d || t.Cols() != d {
			return nil, nil, &matrix.ShapeMismatchError{
				Op:   opFromProb,
				What: fmt.Sprintf("P[%d] shape", n),
				Got:  []int{t.Rows(), t.Cols()},
				Want: []int{d, d},
			}
		}
		flat, err := matrix.Flatten(t)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: P[%d]: %w", opFromProb, n, err)
		}
		if flat, err = logOf(flat); err != nil {
			return nil, nil, fmt.Errorf("%s: P[%d]: %w", opFromProb, n, err)
		}
		if logP[n], err = matrix.NewDenseFromData(d, d, flat, matrix.WithAllowLogZero()); err != nil {
			return nil, nil, fmt.Errorf("%s: P[%d]: %w", opFromProb, n, err)
		}
	}

	return logp0, logP, nil
}

func logOf(p []float64) ([]float64, error) {
	out := make([]float64, len(p))
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("[%d]: %w", i, matrix.ErrNaNInf)
		}
		if v < 0 {
			return nil, fmt.Errorf("[%d] = %g: %w", i, v, ErrNegativeWeight)
		}
		out[i] = math.Log(v)
	}

	return out, nil
}
