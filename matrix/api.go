// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// AI-Hints:
//   - Prefer passing *Dense to skip the one-time materialization in kernels.
//   - Use NewIdentity/NewZeros to build blocks with explicit shape and neutral elements.
//   - AllClose is the comparison used by the inference tests for block equality.

package matrix

import (
	"fmt"
	"math"
)

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewDiagonal returns the square matrix with d on its diagonal.
// Errors: ErrInvalidDimensions for an empty d, ErrNaNInf for non-finite entries.
func NewDiagonal(d []float64) (*Dense, error) {
	if err := ValidateFiniteVec(d); err != nil {
		return nil, matrixErrorf("NewDiagonal", err)
	}
	m, err := NewDense(len(d), len(d))
	if err != nil {
		return nil, matrixErrorf("NewDiagonal", err)
	}
	for i, v := range d {
		m.data[i*len(d)+i] = v
	}

	return m, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Complexity: O(1) alloc + O(rc) zeroing.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}

// CloneMatrix returns a structural clone of m (same concrete type).
func CloneMatrix(m Matrix) Matrix {
	return m.Clone()
}

// AllClose reports whether |a[i,j] − b[i,j]| ≤ atol + rtol·|b[i,j]| for all
// entries. Infinite entries compare equal only to an identical infinity.
//
// Contract:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	da, db, err := densePair(a, b)
	if err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	return vecClose(da.data, db.data, math.Abs(rtol), math.Abs(atol)), nil
}

// AllCloseVec is AllClose for plain vectors of equal length.
func AllCloseVec(a, b []float64, rtol, atol float64) (bool, error) {
	if len(a) != len(b) {
		return false, matrixErrorf("AllCloseVec", fmt.Errorf("len %d vs %d: %w", len(a), len(b), ErrDimensionMismatch))
	}

	return vecClose(a, b, math.Abs(rtol), math.Abs(atol)), nil
}

func vecClose(a, b []float64, rtol, atol float64) bool {
	for i := range a {
		x, y := a[i], b[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			return false
		}
		if math.IsInf(x, 0) || math.IsInf(y, 0) {
			if x != y {
				return false
			}
			continue
		}
		if math.Abs(x-y) > atol+rtol*math.Abs(y) {
			return false
		}
	}

	return true
}

// MaxAbsDiff returns max |a[i,j] − b[i,j]|.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func MaxAbsDiff(a, b Matrix) (float64, error) {
	d, err := Sub(a, b)
	if err != nil {
		return 0, err
	}
	worst := 0.0
	for _, v := range d.data {
		worst = math.Max(worst, math.Abs(v))
	}

	return worst, nil
}
