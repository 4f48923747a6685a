// SPDX-License-Identifier: MIT

// Package matrix provides the small-block linear algebra used by the chain
// inference kernels of lvchain.
//
// The matrix package provides:
//
//   - Dense, a row-major D×D (or D×K) block with a numeric admission policy
//     (NaN/Inf rejection, optional -Inf as log-zero).
//   - Sparse, a compressed-row block for structurally sparse couplings, with
//     the exact products a recursion needs (S·x, Sᵀ·x, S·D, Sᵀ·D).
//   - Storage, a tag read once per kernel call to pick a dense or sparse
//     strategy for a whole recursion.
//   - Kernels (Add, Sub, Mul, TMul, MulT, Transpose, Scale, MatVec, MatTVec,
//     Symmetrize and the reductions) that never mutate their inputs.
//   - Cholesky, a factor of an SPD block over gonum's mat.Cholesky, giving
//     solves, the inverse and the log-determinant from one factorization.
//   - The shared error vocabulary of the module: sentinels matched with
//     errors.Is, plus ShapeMismatchError and NotPositiveDefiniteError
//     matched with errors.As.
//
// Blocks are small (D is typically below a few dozen), so every kernel
// allocates a fresh result and loops in a fixed order; results are
// bit-for-bit reproducible for identical inputs.
package matrix
