// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense and sparse block stores.
// This file contains ONLY the public Matrix interface and the Storage tag.
// Errors and options live in dedicated files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Both block stores of this package (*Dense and *Sparse) implement it, and
// callers may supply their own implementation; kernels materialize foreign
// implementations into *Dense once at their entry point.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols) for dense storage, O(nnz) for sparse.
	Clone() Matrix
}

// Storage tags the physical layout of a block.
//
// The tag is read ONCE at a kernel boundary (see StorageOf) to pick a
// strategy for a whole recursion; kernels never branch on the concrete type
// per arithmetic operation.
type Storage int

const (
	// StorageDense is a contiguous row-major buffer (*Dense).
	StorageDense Storage = iota

	// StorageSparse is a row-compressed store of non-zeros (*Sparse).
	StorageSparse
)

// String implements fmt.Stringer.
func (s Storage) String() string {
	switch s {
	case StorageDense:
		return "dense"
	case StorageSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// storageTagger is implemented by blocks that declare their own layout.
type storageTagger interface {
	Storage() Storage
}

// StorageOf reports the layout of m. Blocks that do not declare a layout
// (foreign Matrix implementations) are treated as dense, since every kernel
// can materialize them into *Dense.
// Complexity: O(1).
func StorageOf(m Matrix) Storage {
	if t, ok := m.(storageTagger); ok {
		return t.Storage()
	}

	return StorageDense
}
