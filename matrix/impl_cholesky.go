// SPDX-License-Identifier: MIT

// Package matrix - Cholesky factorization of symmetric positive-definite blocks.
//
// Purpose:
//   - Give the chain recursions one place that factorizes a D×D SPD block and
//     reuses the factor for solves, the inverse and the log-determinant.
//   - Delegate the numerics to gonum's LAPACK-backed mat.Cholesky.
//
// Contract:
//   - Only the upper triangle of the input is read; callers symmetrize first
//     when the block is produced by floating-point products.
//   - A factor is immutable after Factorize and safe for concurrent readers.
//
// Complexity quicksheet:
//   - Factorize: O(n³/3); SolveVec: O(n²); Solve: O(n²·k); Inverse: O(n³).

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opCholFactorize = "Cholesky.Factorize"
	opCholSolve     = "Cholesky.Solve"
	opCholSolveVec  = "Cholesky.SolveVec"
	opCholInverse   = "Cholesky.Inverse"
)

// Cholesky holds the factor L (A = L·Lᵀ) of an n×n SPD matrix.
type Cholesky struct {
	n    int
	chol mat.Cholesky
}

// Factorize computes the Cholesky factor of the square matrix m.
// Implementation:
//   - Stage 1: validate non-nil, square and finite.
//   - Stage 2: view the upper triangle as a gonum SymDense and factorize.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (validation).
//   - ErrNotPositiveDefinite when the factorization breaks down.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// AI-Hints:
//   - The input is not retained; later writes to m do not affect the factor.
func Factorize(m Matrix) (*Cholesky, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opCholFactorize, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opCholFactorize, err)
	}
	dm, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opCholFactorize, err)
	}

	c := &Cholesky{n: dm.r}
	// gonum copies the triangle into its own storage, so aliasing dm.data is safe.
	if ok := c.chol.Factorize(mat.NewSymDense(dm.r, dm.data)); !ok {
		return nil, matrixErrorf(opCholFactorize, ErrNotPositiveDefinite)
	}

	return c, nil
}

// Size returns n, the order of the factorized matrix.
func (c *Cholesky) Size() int { return c.n }

// LogDet returns log det A = 2·Σ log L[i,i].
func (c *Cholesky) LogDet() float64 { return c.chol.LogDet() }

// SolveVec returns x with A·x = b.
//
// Errors: ErrNilMatrix (nil b), ErrDimensionMismatch (len(b) != n).
// Complexity: O(n²).
func (c *Cholesky) SolveVec(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, c.n); err != nil {
		return nil, matrixErrorf(opCholSolveVec, err)
	}
	out := make([]float64, c.n)
	err := c.chol.SolveVecTo(mat.NewVecDense(c.n, out), mat.NewVecDense(c.n, b))
	if err = dropCondition(err); err != nil {
		return nil, matrixErrorf(opCholSolveVec, err)
	}

	return out, nil
}

// Solve returns X with A·X = B for an n×k right-hand side.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (B.Rows != n).
// Complexity: O(n²·k).
func (c *Cholesky) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opCholSolve, err)
	}
	if b.Rows() != c.n {
		return nil, matrixErrorf(opCholSolve, ErrDimensionMismatch)
	}
	db, err := denseOf(b)
	if err != nil {
		return nil, matrixErrorf(opCholSolve, err)
	}
	res, err := NewDense(c.n, db.c)
	if err != nil {
		return nil, matrixErrorf(opCholSolve, err)
	}
	err = c.chol.SolveTo(mat.NewDense(c.n, db.c, res.data), mat.NewDense(db.r, db.c, db.data))
	if err = dropCondition(err); err != nil {
		return nil, matrixErrorf(opCholSolve, err)
	}

	return res, nil
}

// Inverse returns A⁻¹ as a fresh, exactly symmetric *Dense.
// Complexity: O(n³).
func (c *Cholesky) Inverse() (*Dense, error) {
	var inv mat.SymDense
	if err := dropCondition(c.chol.InverseTo(&inv)); err != nil {
		return nil, matrixErrorf(opCholInverse, err)
	}
	res, err := NewDense(c.n, c.n)
	if err != nil {
		return nil, matrixErrorf(opCholInverse, err)
	}
	var i, j int
	for i = 0; i < c.n; i++ {
		for j = 0; j < c.n; j++ {
			res.data[i*c.n+j] = inv.At(i, j)
		}
	}

	return res, nil
}

// Factor returns the lower-triangular factor L as a fresh *Dense.
func (c *Cholesky) Factor() *Dense {
	var l mat.TriDense
	c.chol.LTo(&l)
	res := &Dense{r: c.n, c: c.n, data: make([]float64, c.n*c.n), policy: defaultOptions()}
	var i, j int
	for i = 0; i < c.n; i++ {
		for j = 0; j <= i; j++ {
			res.data[i*c.n+j] = l.At(i, j)
		}
	}

	return res
}

// dropCondition discards gonum's ill-conditioning warning. The result is
// still computed in that case; only genuine failures are reported.
func dropCondition(err error) error {
	if err == nil {
		return nil
	}
	var cond mat.Condition
	if errors.As(err, &cond) {
		if math.IsInf(float64(cond), 1) {
			return fmt.Errorf("singular factor: %w", ErrNotPositiveDefinite)
		}
		return nil
	}

	return err
}
