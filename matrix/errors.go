// SPDX-License-Identifier: MIT
// Package matrix: sentinel and typed error set (unified, consistent).
// This file defines the package-level sentinel errors used across the matrix
// package and the two typed errors shared by the inference kernels. All
// algorithms MUST return these and tests MUST check them via errors.Is /
// errors.As. No algorithm should panic on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. If context is essential, wrap with
// fmt.Errorf("ctx: %w", ErrX) at the outer boundary; callers still use
// errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index -> NaN/Inf -> dimension mismatch -> numeric failure.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured numeric policy (epsilon).
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set, etc.).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNotPositiveDefinite is returned when a Cholesky factorization fails.
	ErrNotPositiveDefinite = errors.New("matrix: not positive definite")
)

// ShapeMismatchError reports inconsistent dimensions among the inputs of a
// kernel call: block counts, block sizes, vector lengths or plate shapes.
// It unwraps to ErrDimensionMismatch.
type ShapeMismatchError struct {
	Op   string // kernel entry point, e.g. "blocktri.Solve"
	What string // which quantity disagreed, e.g. "B block count"
	Got  []int
	Want []int
}

// Error implements error.
func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s: got %v, want %v: %v", e.Op, e.What, e.Got, e.Want, ErrDimensionMismatch)
}

// Unwrap exposes ErrDimensionMismatch to errors.Is.
func (e *ShapeMismatchError) Unwrap() error { return ErrDimensionMismatch }

// NotPositiveDefiniteError reports the recursion step (and, for batched
// calls, the plate index) at which a diagonal block or Schur complement
// failed to factorize. It unwraps to ErrNotPositiveDefinite.
type NotPositiveDefiniteError struct {
	Op    string
	Step  int
	Plate []int // nil for unbatched calls
}

// Error implements error.
func (e *NotPositiveDefiniteError) Error() string {
	if e.Plate != nil {
		return fmt.Sprintf("%s: step %d, plate %v: %v", e.Op, e.Step, e.Plate, ErrNotPositiveDefinite)
	}

	return fmt.Sprintf("%s: step %d: %v", e.Op, e.Step, ErrNotPositiveDefinite)
}

// Unwrap exposes ErrNotPositiveDefinite to errors.Is.
func (e *NotPositiveDefiniteError) Unwrap() error { return ErrNotPositiveDefinite }

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across kernels.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
