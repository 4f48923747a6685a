// SPDX-License-Identifier: MIT

package chain

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvchain/internal/logging"
	"github.com/katalvlaran/lvchain/matrix"
	"github.com/katalvlaran/lvchain/plate"
)

const opBatch = "chain.RunBatch"

// BatchResult holds one Result per entry of Shape, in flat row-major order.
type BatchResult struct {
	Shape   plate.Shape
	Results []*Result
}

// At returns the result for an index of Shape.
func (r *BatchResult) At(idx []int) *Result {
	return r.Results[r.Shape.Project(idx)]
}

// Degenerate returns the flat indices of entries with Z = 0, ascending.
func (r *BatchResult) Degenerate() []int {
	var out []int
	for flat, res := range r.Results {
		if res.Degenerate {
			out = append(out, flat)
		}
	}

	return out
}

// RunBatch runs Run for every entry of Broadcast(logp0.Shape, logP.Shape).
// Degenerate entries are returned and logged at Warn, never raised.
//
// Errors:
//   - *matrix.ShapeMismatchError when plate shapes do not broadcast.
//   - Any Run error, prefixed with the plate index.
//   - ctx.Err() when the context is cancelled.
func RunBatch(ctx context.Context, logp0 plate.Batch[[]float64], logP plate.Batch[[]matrix.Matrix], opts ...Option) (*BatchResult, error) {
	o := gatherOptions(opts...)
	log := o.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}

	if err := logp0.Validate(); err != nil {
		return nil, fmt.Errorf("%s: logp0: %w", opBatch, err)
	}
	if err := logP.Validate(); err != nil {
		return nil, fmt.Errorf("%s: logP: %w", opBatch, err)
	}
	shape, err := plate.Broadcast(logp0.Shape, logP.Shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBatch, err)
	}
	log.Debug("forward-backward batch", "plates", shape.Size(), "workers", o.workers)

	res := &BatchResult{Shape: shape, Results: make([]*Result, shape.Size())}
	err = plate.Each(ctx, shape, o.workers, func(_ context.Context, flat int, idx []int) error {
		p0 := logp0.At(idx)
		tables, err := validateChain(opBatch, p0, logP.At(idx))
		if err != nil {
			return fmt.Errorf("plate %v: %w", idx, err)
		}
		r, err := run(p0, tables)
		if err != nil {
			return fmt.Errorf("plate %v: %w", idx, err)
		}
		res.Results[flat] = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if deg := res.Degenerate(); len(deg) > 0 {
		log.Warn("degenerate chains", "count", len(deg), "plates", deg)
	}
	log.Debug("forward-backward batch done", "plates", shape.Size())

	return res, nil
}
