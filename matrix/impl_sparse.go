// SPDX-License-Identifier: MIT

// Package matrix - Sparse storage (compressed rows) for coupling blocks.
//
// Purpose:
//   - Hold the few non-zeros of a structurally sparse block (e.g. a
//     super-diagonal coupling that only touches a couple of state components).
//   - Provide the exact products a chain recursion needs on such blocks
//     (S·x, Sᵀ·x, S·D, Sᵀ·D) without densifying.
//
// Layout:
//   - rowPtr has r+1 entries; the non-zeros of row i live in
//     colIdx[rowPtr[i]:rowPtr[i+1]] / vals[rowPtr[i]:rowPtr[i+1]],
//     with strictly increasing column indices inside a row.
//
// Complexity quicksheet:
//   - At: O(log nnz_row); Set: O(nnz) worst case (insertion shifts);
//     products: O(nnz) per right-hand-side column.

package matrix

import (
	"fmt"
	"sort"
)

const (
	ctxSparse = "Sparse"
)

// Sparse is a compressed-row matrix of float64 values.
// The zero value is not usable; construct with NewSparse or SparseFrom.
type Sparse struct {
	r, c   int
	rowPtr []int
	colIdx []int
	vals   []float64
}

var (
	_ Matrix        = (*Sparse)(nil)
	_ storageTagger = (*Sparse)(nil)
)

// NewSparse returns an empty r×c sparse matrix.
// Errors: ErrInvalidDimensions when r<=0 or c<=0.
func NewSparse(rows, cols int) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Sparse{r: rows, c: cols, rowPtr: make([]int, rows+1)}, nil
}

// SparseFrom compresses any Matrix, keeping exactly the non-zero entries.
// Errors: ErrNilMatrix, ErrNaNInf (non-finite entries are never stored).
// Complexity: O(r*c).
func SparseFrom(m Matrix) (*Sparse, error) {
	d, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf("SparseFrom", err)
	}
	s := &Sparse{r: d.r, c: d.c, rowPtr: make([]int, d.r+1)}
	var i, j int
	var v float64
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			v = d.data[i*d.c+j]
			if !defaultOptions().acceptValue(v) {
				return nil, matrixErrorf("SparseFrom", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
			if v == 0 {
				continue
			}
			s.colIdx = append(s.colIdx, j)
			s.vals = append(s.vals, v)
		}
		s.rowPtr[i+1] = len(s.vals)
	}

	return s, nil
}

// Rows returns the number of rows.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the number of columns.
func (s *Sparse) Cols() int { return s.c }

// Storage reports StorageSparse.
func (s *Sparse) Storage() Storage { return StorageSparse }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// find locates (row, col) inside the row segment; ok reports presence and
// pos is the insertion point otherwise.
func (s *Sparse) find(row, col int) (pos int, ok bool) {
	lo, hi := s.rowPtr[row], s.rowPtr[row+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], col)

	return k, k < hi && s.colIdx[k] == col
}

// At retrieves the element at (row, col); absent entries read as 0.
func (s *Sparse) At(row, col int) (float64, error) {
	if row < 0 || row >= s.r || col < 0 || col >= s.c {
		return 0, fmt.Errorf("%s.At(%d,%d): %w", ctxSparse, row, col, ErrOutOfRange)
	}
	if k, ok := s.find(row, col); ok {
		return s.vals[k], nil
	}

	return 0, nil
}

// Set assigns v at (row, col). Writing 0 to an absent entry is a no-op;
// writing to a present entry overwrites it in place (an explicit zero stays stored).
// Errors: ErrOutOfRange, ErrNaNInf.
func (s *Sparse) Set(row, col int, v float64) error {
	if row < 0 || row >= s.r || col < 0 || col >= s.c {
		return fmt.Errorf("%s.Set(%d,%d): %w", ctxSparse, row, col, ErrOutOfRange)
	}
	if !defaultOptions().acceptValue(v) {
		return fmt.Errorf("%s.Set(%d,%d): %w", ctxSparse, row, col, ErrNaNInf)
	}
	k, ok := s.find(row, col)
	if ok {
		s.vals[k] = v
		return nil
	}
	if v == 0 {
		return nil
	}
	s.colIdx = append(s.colIdx, 0)
	s.vals = append(s.vals, 0)
	copy(s.colIdx[k+1:], s.colIdx[k:])
	copy(s.vals[k+1:], s.vals[k:])
	s.colIdx[k], s.vals[k] = col, v
	for i := row + 1; i <= s.r; i++ {
		s.rowPtr[i]++
	}

	return nil
}

// Clone returns a deep copy.
func (s *Sparse) Clone() Matrix {
	return &Sparse{
		r:      s.r,
		c:      s.c,
		rowPtr: append([]int(nil), s.rowPtr...),
		colIdx: append([]int(nil), s.colIdx...),
		vals:   append([]float64(nil), s.vals...),
	}
}

// ToDense expands s into a fresh *Dense.
// Complexity: O(r*c) allocation + O(nnz) writes.
func (s *Sparse) ToDense() *Dense {
	d := &Dense{r: s.r, c: s.c, data: make([]float64, s.r*s.c), policy: defaultOptions()}
	for i := 0; i < s.r; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			d.data[i*s.c+s.colIdx[k]] = s.vals[k]
		}
	}

	return d
}

// MulVec computes y = S·x.
// Errors: ErrDimensionMismatch when len(x) != Cols.
// Complexity: O(nnz).
func (s *Sparse) MulVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, s.c); err != nil {
		return nil, matrixErrorf("Sparse.MulVec", err)
	}
	y := make([]float64, s.r)
	var acc float64
	for i := 0; i < s.r; i++ {
		acc = zeroSum
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			acc += s.vals[k] * x[s.colIdx[k]]
		}
		y[i] = acc
	}

	return y, nil
}

// MulTVec computes y = Sᵀ·x without forming Sᵀ.
// Errors: ErrDimensionMismatch when len(x) != Rows.
// Complexity: O(nnz).
func (s *Sparse) MulTVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, s.r); err != nil {
		return nil, matrixErrorf("Sparse.MulTVec", err)
	}
	y := make([]float64, s.c)
	for i := 0; i < s.r; i++ {
		if x[i] == 0 {
			continue
		}
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			y[s.colIdx[k]] += s.vals[k] * x[i]
		}
	}

	return y, nil
}

// MulDense computes S·B for a dense right operand.
// Errors: ErrNilMatrix, ErrDimensionMismatch (S.Cols != B.Rows).
// Complexity: O(nnz · B.Cols).
func (s *Sparse) MulDense(b Matrix) (*Dense, error) {
	db, err := denseOf(b)
	if err != nil {
		return nil, matrixErrorf("Sparse.MulDense", err)
	}
	if s.c != db.r {
		return nil, matrixErrorf("Sparse.MulDense", ErrDimensionMismatch)
	}
	res := &Dense{r: s.r, c: db.c, data: make([]float64, s.r*db.c), policy: defaultOptions()}
	var i, j, k, col int
	var v float64
	for i = 0; i < s.r; i++ {
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			col, v = s.colIdx[k], s.vals[k]
			for j = 0; j < db.c; j++ {
				res.data[i*db.c+j] += v * db.data[col*db.c+j]
			}
		}
	}

	return res, nil
}

// TMulDense computes Sᵀ·B for a dense right operand without forming Sᵀ.
// Errors: ErrNilMatrix, ErrDimensionMismatch (S.Rows != B.Rows).
// Complexity: O(nnz · B.Cols).
func (s *Sparse) TMulDense(b Matrix) (*Dense, error) {
	db, err := denseOf(b)
	if err != nil {
		return nil, matrixErrorf("Sparse.TMulDense", err)
	}
	if s.r != db.r {
		return nil, matrixErrorf("Sparse.TMulDense", ErrDimensionMismatch)
	}
	res := &Dense{r: s.c, c: db.c, data: make([]float64, s.c*db.c), policy: defaultOptions()}
	var i, j, k, col int
	var v float64
	for i = 0; i < s.r; i++ {
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			col, v = s.colIdx[k], s.vals[k]
			// row i of B contributes to row col of the result
			for j = 0; j < db.c; j++ {
				res.data[col*db.c+j] += v * db.data[i*db.c+j]
			}
		}
	}

	return res, nil
}
