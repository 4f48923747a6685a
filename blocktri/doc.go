// SPDX-License-Identifier: MIT

// Package blocktri solves symmetric positive-definite block-tridiagonal
// systems exactly, in time linear in the chain length.
//
// 🚀 What is it for?
//
//	Linear-Gaussian chains (state-space models in information form) give a
//	precision matrix M whose only non-zero blocks are the diagonal A[n] and
//	the couplings B[n] (above) / B[n]ᵀ (below). Inference needs
//	  • the mean x solving M·x = y,
//	  • the marginal covariances V[n] and cross covariances C[n]
//	    (the band of M⁻¹),
//	  • log det M for the evidence.
//
// ✨ Key features:
//   - block Thomas / block-LU with Cholesky factors, O(N·D³)
//   - Schur complements and inverse blocks symmetrized after every update
//   - Factorize once, Solve many right-hand sides
//   - sparse coupling blocks kept sparse (all B as *matrix.Sparse)
//   - plate batching with broadcasting (SolveBatch)
//
// ⚙️ Usage:
//
//	res, err := blocktri.Solve(A, B, y)
//	if err != nil {
//	  var npd *matrix.NotPositiveDefiniteError
//	  if errors.As(err, &npd) { /* step npd.Step is not PD */ }
//	}
//	fmt.Println(res.X, res.LogDet)
//
// Performance:
//
//   - Time:   O(N·D³)
//   - Memory: O(N·D²)
package blocktri
