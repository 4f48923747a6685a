// SPDX-License-Identifier: MIT

// Package blocktri: functional configuration.
//
// Design goals:
//   - Deterministic behavior: options never change numerics, only validation
//     strictness and how batched work is scheduled and logged.
//   - Safe by construction: panic only on nonsensical values (programmer error).
package blocktri

import (
	"math"

	"github.com/katalvlaran/lvchain/internal/logging"
	"github.com/katalvlaran/lvchain/matrix"
)

const (
	// DefaultWorkers bounds the plate pool; 0 means GOMAXPROCS.
	DefaultWorkers = 0

	// DefaultSymmetryTolerance bounds |A[i,j] − A[j,i]| on the diagonal
	// blocks, relative to max(1, |A[i,j]|, |A[j,i]|).
	DefaultSymmetryTolerance = matrix.DefaultEpsilon
)

const (
	panicWorkersNegative = "blocktri: WithWorkers: n must be >= 0"
	panicTolInvalid      = "blocktri: WithSymmetryTolerance: tol must be finite, non-negative"
)

// Option configures Solve, Factorize and SolveBatch.
type Option func(*options)

type options struct {
	workers int
	symTol  float64
	logger  logging.Logger // nil: resolved from the context in SolveBatch
}

// WithWorkers bounds the number of plate entries processed concurrently.
// Panics when n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersNegative)
	}

	return func(o *options) { o.workers = n }
}

// WithSymmetryTolerance sets the entry-scaled symmetry tolerance of diagonal blocks.
// Panics when tol is negative, NaN or infinite.
func WithSymmetryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolInvalid)
	}

	return func(o *options) { o.symTol = tol }
}

// WithLogger sets the logger used by SolveBatch. A nil logger is ignored.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts ...Option) options {
	o := options{workers: DefaultWorkers, symTol: DefaultSymmetryTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
