// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"

	"github.com/katalvlaran/lvchain/matrix"
)

// validateChain checks logp0 and the N-1 D×D tables and materializes the
// tables once. Order: length → nil → shape → values, table by table.
func validateChain(op string, logp0 []float64, logP []matrix.Matrix) ([]*matrix.Dense, error) {
	d := len(logp0)
	if d == 0 {
		return nil, fmt.Errorf("%s: empty state space: %w", op, matrix.ErrInvalidDimensions)
	}
	if err := matrix.ValidateLogWeights(logp0); err != nil {
		return nil, fmt.Errorf("%s: logp0: %w", op, err)
	}

	tables := make([]*matrix.Dense, len(logP))
	for n, t := range logP {
		if err := matrix.ValidateNotNil(t); err != nil {
			return nil, fmt.Errorf("%s: logP[%d]: %w", op, n, err)
		}
		if t.Rows() != d || t.Cols() != d {
			return nil, &matrix.ShapeMismatchError{
				Op:   op,
				What: fmt.Sprintf("logP[%d] shape", n),
				Got:  []int{t.Rows(), t.Cols()},
				Want: []int{d, d},
			}
		}
		dense, err := matrix.ToDense(t)
		if err != nil {
			return nil, fmt.Errorf("%s: logP[%d]: %w", op, n, err)
		}
		for i := 0; i < d; i++ {
			if err = matrix.ValidateLogWeights(dense.RawRowView(i)); err != nil {
				return nil, fmt.Errorf("%s: logP[%d] row %d: %w", op, n, i, err)
			}
		}
		tables[n] = dense
	}

	return tables, nil
}
