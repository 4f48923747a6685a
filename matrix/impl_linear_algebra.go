// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication (plain
// and with either operand transposed), transpose, scaling, symmetrization and
// row/column reductions. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Purpose:
//   - Provide the block arithmetic of the chain recursions (D×D blocks, length-D vectors).
//   - Keep one code path per kernel: operands are materialized as *Dense once at
//     entry (denseOf) and the kernel then runs a single flat loop.
//
// Notes:
//   - Inputs are never mutated; every result is a freshly allocated *Dense.
//   - All kernels use central validators and wrap errors via matrixErrorf.

package matrix

// zeroSum is the initial sum value for dot products and reductions.
const zeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd        = "Add"
	opSub        = "Sub"
	opMul        = "Mul"
	opTMul       = "TMul"
	opMulT       = "MulT"
	opTranspose  = "Transpose"
	opScale      = "Scale"
	opMatVec     = "MatVec"
	opMatTVec    = "MatTVec"
	opSymmetrize = "Symmetrize"
	opReduce     = "Reduce"
)

// densePair materializes two operands for a binary kernel.
func densePair(a, b Matrix) (*Dense, *Dense, error) {
	da, err := denseOf(a)
	if err != nil {
		return nil, nil, err
	}
	db, err := denseOf(b)
	if err != nil {
		return nil, nil, err
	}

	return da, db, nil
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Materialize operands. Allocate result.
//   - Stage 2: single flat loop 0..n-1.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opTag).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, db, err := densePair(a, b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	n := da.r * da.c
	for idx := 0; idx < n; idx++ { // deterministic 0..n-1
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Errors: ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
// Complexity: Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
// Errors: ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
// Complexity: Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j with row-major strides, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, db, err := densePair(a, b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < da.r; i++ {
		rowOffsetA = i * da.c
		rowOffsetR = i * db.c
		for k = 0; k < da.c; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * db.c
			for j = 0; j < db.c; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// TMul computes C = Aᵀ × B without materializing Aᵀ.
// Errors: ErrNilMatrix, ErrDimensionMismatch (A.Rows != B.Rows).
// Complexity: Time O(n*r*c), Space O(r*c).
func TMul(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opTMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opTMul, err)
	}
	if a.Rows() != b.Rows() {
		return nil, matrixErrorf(opTMul, ErrDimensionMismatch)
	}
	da, db, err := densePair(a, b)
	if err != nil {
		return nil, matrixErrorf(opTMul, err)
	}
	res, err := NewDense(da.c, db.c)
	if err != nil {
		return nil, matrixErrorf(opTMul, err)
	}

	var (
		i, j, k int
		av      float64
	)
	// Σ_k A[k,i]·B[k,j]: walk k outermost so both operands stream by rows.
	for k = 0; k < da.r; k++ {
		for i = 0; i < da.c; i++ {
			av = da.data[k*da.c+i]
			if av == 0 {
				continue
			}
			for j = 0; j < db.c; j++ {
				res.data[i*db.c+j] += av * db.data[k*db.c+j]
			}
		}
	}

	return res, nil
}

// MulT computes C = A × Bᵀ without materializing Bᵀ.
// Errors: ErrNilMatrix, ErrDimensionMismatch (A.Cols != B.Cols).
// Complexity: Time O(r*n*c), Space O(r*c).
func MulT(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMulT, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMulT, err)
	}
	if a.Cols() != b.Cols() {
		return nil, matrixErrorf(opMulT, ErrDimensionMismatch)
	}
	da, db, err := densePair(a, b)
	if err != nil {
		return nil, matrixErrorf(opMulT, err)
	}
	res, err := NewDense(da.r, db.r)
	if err != nil {
		return nil, matrixErrorf(opMulT, err)
	}

	var (
		i, j, k    int
		acc        float64
		rowA, rowB int
	)
	for i = 0; i < da.r; i++ {
		rowA = i * da.c
		for j = 0; j < db.r; j++ {
			rowB = j * db.c
			acc = zeroSum
			for k = 0; k < da.c; k++ {
				acc += da.data[rowA+k] * db.data[rowB+k]
			}
			res.data[i*db.r+j] = acc
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - If you only need Aᵀ*x or Aᵀ*B, prefer MatTVec / TMul instead of forming Aᵀ.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j, baseSrc int
	for i = 0; i < dm.r; i++ {
		baseSrc = i * dm.c
		for j = 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[baseSrc+j]
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = v * alpha
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var (
		i, j, base int
		acc        float64
	)
	for i = 0; i < d.r; i++ {
		acc = zeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// MatTVec computes y = mᵀ * x without forming mᵀ.
//
// Contract: m non-nil; x non-nil; len(x) == m.Rows().
// Complexity: Time O(r*c), Space O(c) for y.
func MatTVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	d, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}

	y := make([]float64, d.c)
	var (
		i, j, base int
		xv         float64
	)
	for i = 0; i < d.r; i++ {
		xv = x[i]
		if xv == 0 {
			continue
		}
		base = i * d.c
		for j = 0; j < d.c; j++ {
			y[j] += d.data[base+j] * xv
		}
	}

	return y, nil
}

// Symmetrize returns 0.5·(m + mᵀ) for a square m.
// Used after every Schur-complement and inverse-block update to suppress the
// rounding asymmetry accumulated by the products.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square).
// Complexity: Time O(n^2), Space O(n^2).
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	dm, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	n := dm.r
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}

	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		res.data[i*n+i] = dm.data[i*n+i]
		for j = i + 1; j < n; j++ {
			v = 0.5 * (dm.data[i*n+j] + dm.data[j*n+i])
			res.data[i*n+j] = v
			res.data[j*n+i] = v
		}
	}

	return res, nil
}

// SumAll returns Σ_{i,j} m[i,j].
// Errors: ErrNilMatrix.
func SumAll(m Matrix) (float64, error) {
	dm, err := denseOf(m)
	if err != nil {
		return 0, matrixErrorf(opReduce, err)
	}
	acc := zeroSum
	for _, v := range dm.data {
		acc += v
	}

	return acc, nil
}

// RowSums returns s[i] = Σ_j m[i,j] (summing out the second index).
// Errors: ErrNilMatrix.
func RowSums(m Matrix) ([]float64, error) {
	dm, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opReduce, err)
	}
	out := make([]float64, dm.r)
	for i := 0; i < dm.r; i++ {
		acc := zeroSum
		for _, v := range dm.data[i*dm.c : (i+1)*dm.c] {
			acc += v
		}
		out[i] = acc
	}

	return out, nil
}

// ColSums returns s[j] = Σ_i m[i,j] (summing out the first index).
// Errors: ErrNilMatrix.
func ColSums(m Matrix) ([]float64, error) {
	dm, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opReduce, err)
	}
	out := make([]float64, dm.c)
	for i := 0; i < dm.r; i++ {
		for j, v := range dm.data[i*dm.c : (i+1)*dm.c] {
			out[j] += v
		}
	}

	return out, nil
}

// Flatten returns a row-major copy of m's elements.
// Errors: ErrNilMatrix, or an At failure of a foreign implementation.
func Flatten(m Matrix) ([]float64, error) {
	dm, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf("Flatten", err)
	}
	if dm == m {
		return dm.Data(), nil
	}

	return dm.data, nil // already a private copy
}
