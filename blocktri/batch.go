// SPDX-License-Identifier: MIT

package blocktri

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvchain/internal/logging"
	"github.com/katalvlaran/lvchain/matrix"
	"github.com/katalvlaran/lvchain/plate"
)

const opBatch = "blocktri.SolveBatch"

// BatchResult holds the outputs of a plate-batched solve.
//
// The band (V, C) and LogDet depend only on A and B, so they live at
// BandShape = Broadcast(A.Shape, B.Shape); X lives at
// Shape = Broadcast(BandShape, Y.Shape). Slices are indexed by flat
// row-major plate index of their own shape.
type BatchResult struct {
	Shape     plate.Shape
	BandShape plate.Shape
	V         [][]*matrix.Dense
	C         [][]*matrix.Dense
	LogDet    []float64
	X         [][][]float64
}

// At returns the single-system view for an index of Shape.
func (r *BatchResult) At(idx []int) *Result {
	b := r.BandShape.Project(idx)

	return &Result{
		V:      r.V[b],
		C:      r.C[b],
		X:      r.X[r.Shape.Project(idx)],
		LogDet: r.LogDet[b],
	}
}

// SolveBatch solves one block-tridiagonal system per plate entry.
// Each band plate is factorized exactly once and reused by every
// right-hand side that projects onto it.
//
// Errors:
//   - *matrix.ShapeMismatchError when plate shapes do not broadcast.
//   - *matrix.NotPositiveDefiniteError with Plate set to the band plate index.
//   - Any Solve error, prefixed with the plate index.
//   - ctx.Err() when the context is cancelled.
func SolveBatch(ctx context.Context, A, B plate.Batch[[]matrix.Matrix], Y plate.Batch[[][]float64], opts ...Option) (*BatchResult, error) {
	o := gatherOptions(opts...)
	log := o.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}

	if err := A.Validate(); err != nil {
		return nil, fmt.Errorf("%s: A: %w", opBatch, err)
	}
	if err := B.Validate(); err != nil {
		return nil, fmt.Errorf("%s: B: %w", opBatch, err)
	}
	if err := Y.Validate(); err != nil {
		return nil, fmt.Errorf("%s: y: %w", opBatch, err)
	}

	bandShape, err := plate.Broadcast(A.Shape, B.Shape)
	if err != nil {
		return nil, fmt.Errorf("%s: A/B plates: %w", opBatch, err)
	}
	shape, err := plate.Broadcast(bandShape, Y.Shape)
	if err != nil {
		return nil, fmt.Errorf("%s: y plates: %w", opBatch, err)
	}
	log.Debug("solve batch", "band_plates", bandShape.Size(), "rhs_plates", shape.Size(), "workers", o.workers)

	nb := bandShape.Size()
	facts := make([]*Factorization, nb)
	res := &BatchResult{
		Shape:     shape,
		BandShape: bandShape,
		V:         make([][]*matrix.Dense, nb),
		C:         make([][]*matrix.Dense, nb),
		LogDet:    make([]float64, nb),
		X:         make([][][]float64, shape.Size()),
	}

	err = plate.Each(ctx, bandShape, o.workers, func(_ context.Context, flat int, idx []int) error {
		sys, err := prepare(opBatch, A.At(idx), B.At(idx), o)
		if err != nil {
			return withPlate(err, idx)
		}
		f, err := sys.factorize(opBatch)
		if err != nil {
			return withPlate(err, idx)
		}
		v, c, err := f.invertBand(opBatch)
		if err != nil {
			return withPlate(err, idx)
		}
		facts[flat] = f
		res.V[flat], res.C[flat], res.LogDet[flat] = v, c, f.logDet
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = plate.Each(ctx, shape, o.workers, func(_ context.Context, flat int, idx []int) error {
		f := facts[bandShape.Project(idx)]
		y := Y.At(idx)
		if err := validateRHS(opBatch, y, f.n, f.d); err != nil {
			return withPlate(err, idx)
		}
		x, err := f.solveRHS(opBatch, y)
		if err != nil {
			return withPlate(err, idx)
		}
		res.X[flat] = x
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("solve batch done", "plates", shape.Size())

	return res, nil
}

// withPlate attaches a plate index: NotPositiveDefiniteError gets its Plate
// field set, anything else is prefixed.
func withPlate(err error, idx []int) error {
	var npd *matrix.NotPositiveDefiniteError
	if errors.As(err, &npd) {
		return &matrix.NotPositiveDefiniteError{Op: npd.Op, Step: npd.Step, Plate: append([]int{}, idx...)}
	}

	return fmt.Errorf("plate %v: %w", idx, err)
}
