// SPDX-License-Identifier: MIT
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvchain/matrix"
)

func TestValidators(t *testing.T) {
	t.Parallel()
	var nilDense *matrix.Dense

	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(nilDense), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(MustDense(t, 1, 1)))

	require.ErrorIs(t, matrix.ValidateSquare(MustDense(t, 2, 3)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateShape(MustDense(t, 2, 3), 3, 2), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSameShape(MustDense(t, 2, 3), MustDense(t, 3, 3)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
}

func TestValidateSymmetric(t *testing.T) {
	t.Parallel()
	m := FromRows(t, [][]float64{{1, 2}, {2 + 1e-12, 1}})
	require.NoError(t, matrix.ValidateSymmetric(m, 1e-9))
	require.ErrorIs(t, matrix.ValidateSymmetric(m, 0), matrix.ErrAsymmetry)
	require.ErrorIs(t, matrix.ValidateSymmetric(m, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(MustDense(t, 1, 2), 0), matrix.ErrDimensionMismatch)

	// the tolerance scales with the entries once they exceed 1
	big := FromRows(t, [][]float64{{4e7, 1e7}, {1e7 + 2e-8, 3e7}})
	require.NoError(t, matrix.ValidateSymmetric(big, 1e-9))
	big = FromRows(t, [][]float64{{4e7, 1e7}, {1e7 + 1, 3e7}})
	require.ErrorIs(t, matrix.ValidateSymmetric(big, 1e-9), matrix.ErrAsymmetry)
}

func TestValidateFinite(t *testing.T) {
	t.Parallel()
	raw, err := matrix.NewDenseFromRows([][]float64{{1, math.Inf(-1)}}, matrix.WithAllowLogZero())
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateFinite(raw), matrix.ErrNaNInf)
	require.NoError(t, matrix.ValidateFinite(FromRows(t, [][]float64{{1, 2}})))

	require.ErrorIs(t, matrix.ValidateFiniteVec([]float64{0, math.NaN()}), matrix.ErrNaNInf)
	require.NoError(t, matrix.ValidateLogWeights([]float64{0, math.Inf(-1)}))
	require.ErrorIs(t, matrix.ValidateLogWeights([]float64{math.Inf(1)}), matrix.ErrNaNInf)
}

func TestTypedErrors(t *testing.T) {
	t.Parallel()
	var err error = &matrix.ShapeMismatchError{Op: "blocktri.Solve", What: "B block count", Got: []int{3}, Want: []int{2}}
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	assert.Equal(t, "blocktri.Solve: B block count: got [3], want [2]: matrix: dimension mismatch", err.Error())

	err = &matrix.NotPositiveDefiniteError{Op: "blocktri.Solve", Step: 1, Plate: []int{0, 2}}
	assert.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
	assert.Contains(t, err.Error(), "plate [0 2]")

	var npd *matrix.NotPositiveDefiniteError
	require.True(t, errors.As(err, &npd))
	assert.Equal(t, 1, npd.Step)
}
