// Package lvchain is a small library of exact-inference kernels for
// chain-structured probabilistic models.
//
// 🚀 What is inside?
//
//	Two pure, synchronous kernels and the plumbing they share:
//		• blocktri: block-tridiagonal SPD solver (block Thomas): x, the band
//		  of the inverse and log det, in O(N·D³)
//		• chain   : scaled log-domain forward-backward for discrete chains:
//		  initial and pairwise marginals and log Z, in O(N·D²)
//		• matrix  : row-major Dense, CSR Sparse, Cholesky, validators and
//		  the shared error taxonomy
//		• plate   : plate shapes, broadcasting and the bounded worker pool
//		  that runs independent batch entries in parallel
//
// ✨ Why?
//
//   - Exact: no sampling, no approximation, the band of M⁻¹ matches dense inversion
//   - Stable: Schur complements symmetrized, forward-backward renormalized every step
//   - Batched: any leading plate shape, broadcast per entry
//
// The lvchain command (cmd/lvchain) runs both kernels on YAML or JSON problem files.
//
//	go get github.com/katalvlaran/lvchain
package lvchain
