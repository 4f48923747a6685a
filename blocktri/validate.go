// SPDX-License-Identifier: MIT

package blocktri

import (
	"fmt"

	"github.com/katalvlaran/lvchain/matrix"
)

// validateDiagonal checks the diagonal blocks and materializes them once.
// Order: count → nil → shape → finite → symmetric, block by block.
func validateDiagonal(op string, A []matrix.Matrix, symTol float64) ([]*matrix.Dense, int, error) {
	if len(A) == 0 {
		return nil, 0, fmt.Errorf("%s: empty chain: %w", op, matrix.ErrInvalidDimensions)
	}
	if err := matrix.ValidateNotNil(A[0]); err != nil {
		return nil, 0, fmt.Errorf("%s: A[0]: %w", op, err)
	}

	d := A[0].Rows()
	out := make([]*matrix.Dense, len(A))
	for n, a := range A {
		if err := matrix.ValidateNotNil(a); err != nil {
			return nil, 0, fmt.Errorf("%s: A[%d]: %w", op, n, err)
		}
		if a.Rows() != d || a.Cols() != d {
			return nil, 0, &matrix.ShapeMismatchError{
				Op:   op,
				What: fmt.Sprintf("A[%d] shape", n),
				Got:  []int{a.Rows(), a.Cols()},
				Want: []int{d, d},
			}
		}
		if err := matrix.ValidateFinite(a); err != nil {
			return nil, 0, fmt.Errorf("%s: A[%d]: %w", op, n, err)
		}
		if err := matrix.ValidateSymmetric(a, symTol); err != nil {
			return nil, 0, fmt.Errorf("%s: A[%d]: %w", op, n, err)
		}
		dense, err := matrix.ToDense(a)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: A[%d]: %w", op, n, err)
		}
		out[n] = dense
	}

	return out, d, nil
}

// validateCoupling checks there are n-1 finite D×D coupling blocks.
func validateCoupling(op string, B []matrix.Matrix, n, d int) error {
	if len(B) != n-1 {
		return &matrix.ShapeMismatchError{Op: op, What: "B block count", Got: []int{len(B)}, Want: []int{n - 1}}
	}
	for k, b := range B {
		if err := matrix.ValidateNotNil(b); err != nil {
			return fmt.Errorf("%s: B[%d]: %w", op, k, err)
		}
		if b.Rows() != d || b.Cols() != d {
			return &matrix.ShapeMismatchError{
				Op:   op,
				What: fmt.Sprintf("B[%d] shape", k),
				Got:  []int{b.Rows(), b.Cols()},
				Want: []int{d, d},
			}
		}
		if err := matrix.ValidateFinite(b); err != nil {
			return fmt.Errorf("%s: B[%d]: %w", op, k, err)
		}
	}

	return nil
}

// validateRHS checks there are n finite vectors of length d.
func validateRHS(op string, y [][]float64, n, d int) error {
	if len(y) != n {
		return &matrix.ShapeMismatchError{Op: op, What: "y block count", Got: []int{len(y)}, Want: []int{n}}
	}
	for k, v := range y {
		if len(v) != d {
			return &matrix.ShapeMismatchError{
				Op:   op,
				What: fmt.Sprintf("y[%d] length", k),
				Got:  []int{len(v)},
				Want: []int{d},
			}
		}
		if err := matrix.ValidateFiniteVec(v); err != nil {
			return fmt.Errorf("%s: y[%d]: %w", op, k, err)
		}
	}

	return nil
}
