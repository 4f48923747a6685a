// SPDX-License-Identifier: MIT

// Package chain runs exact inference on discrete-state chains with the
// scaled, log-domain forward-backward recursion.
//
// 🚀 What is it for?
//
//	A chain z[0] → z[1] → … → z[N-1] over D states is described by
//	  • logp0[i]     : log-weight of the initial state,
//	  • logP[n][i][j]: log-weight of the move i → j from step n to n+1,
//	                    with the emission evidence at n+1 already folded in.
//	Weights are unnormalized; −Inf stands for a zero-probability entry.
//	Run returns the posterior marginal of z[0], the joint marginal of every
//	adjacent pair (z[n], z[n+1]) and log Z, the log partition function.
//
// ✨ Key features:
//   - every step renormalized in the log domain, so arbitrarily long chains
//     neither underflow nor overflow
//   - per-step forward and backward records, never mutated after creation
//   - degenerate chains (Z = 0) reported in the result, not raised
//   - plate batching with broadcasting (RunBatch)
//
// ⚙️ Usage:
//
//	res, err := chain.Run(logp0, logP)
//	if err != nil {
//	  // *matrix.ShapeMismatchError or matrix.ErrNaNInf
//	}
//	if res.Degenerate {
//	  // res.LogZ == -Inf, marginals are zero
//	}
//	fmt.Println(res.Z0, res.ZZ, res.LogZ)
//
// Performance:
//
//   - Time:   O(N·D²)
//   - Memory: O(N·D²) for the returned joints, O(N·D) scratch
package chain
