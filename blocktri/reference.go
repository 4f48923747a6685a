// SPDX-License-Identifier: MIT

package blocktri

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvchain/matrix"
)

const (
	opAssemble = "blocktri.Assemble"
	opResidual = "blocktri.Residual"
)

// Assemble builds the dense (N·D)×(N·D) matrix M with A on the diagonal,
// B above it and Bᵀ below it. Intended for checks on small systems only.
//
// Complexity: Time O(N²·D²), Space O(N²·D²).
func Assemble(A, B []matrix.Matrix) (*matrix.Dense, error) {
	as, d, err := validateDiagonal(opAssemble, A, DefaultSymmetryTolerance)
	if err != nil {
		return nil, err
	}
	n := len(as)
	if err = validateCoupling(opAssemble, B, n, d); err != nil {
		return nil, err
	}

	m, err := matrix.NewDense(n*d, n*d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAssemble, err)
	}
	var (
		k, i, j int
		v       float64
	)
	for k = 0; k < n; k++ {
		for i = 0; i < d; i++ {
			for j = 0; j < d; j++ {
				v, _ = as[k].At(i, j)
				_ = m.Set(k*d+i, k*d+j, v)
				if k == n-1 {
					continue
				}
				if v, err = B[k].At(i, j); err != nil {
					return nil, fmt.Errorf("%s: B[%d]: %w", opAssemble, k, err)
				}
				_ = m.Set(k*d+i, (k+1)*d+j, v) // B[k]
				_ = m.Set((k+1)*d+j, k*d+i, v) // B[k]ᵀ
			}
		}
	}

	return m, nil
}

// Residual returns max_n ‖A[n]·x[n] + B[n]·x[n+1] + B[n-1]ᵀ·x[n-1] − y[n]‖∞,
// the largest entry of M·x − y, without assembling M.
//
// Complexity: Time O(N·D²).
func Residual(A, B []matrix.Matrix, x, y [][]float64) (float64, error) {
	as, d, err := validateDiagonal(opResidual, A, DefaultSymmetryTolerance)
	if err != nil {
		return 0, err
	}
	n := len(as)
	if err = validateCoupling(opResidual, B, n, d); err != nil {
		return 0, err
	}
	if err = validateRHS(opResidual, x, n, d); err != nil {
		return 0, err
	}
	if err = validateRHS(opResidual, y, n, d); err != nil {
		return 0, err
	}

	worst := 0.0
	for k := 0; k < n; k++ {
		r, err := matrix.MatVec(as[k], x[k])
		if err != nil {
			return 0, fmt.Errorf("%s: %w", opResidual, err)
		}
		if k < n-1 {
			up, err := matrix.MatVec(B[k], x[k+1])
			if err != nil {
				return 0, fmt.Errorf("%s: %w", opResidual, err)
			}
			floats.Add(r, up)
		}
		if k > 0 {
			low, err := matrix.MatTVec(B[k-1], x[k-1])
			if err != nil {
				return 0, fmt.Errorf("%s: %w", opResidual, err)
			}
			floats.Add(r, low)
		}
		for i := range r {
			worst = math.Max(worst, math.Abs(r[i]-y[k][i]))
		}
	}

	return worst, nil
}
