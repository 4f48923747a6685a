// SPDX-License-Identifier: MIT

// Package blocktri - block Thomas solver.
//
// Implementation (three passes over immutable per-step records):
//   - factorize: S[0] = A[0]; S[n+1] = sym(A[n+1] − B[n]ᵀ·S[n]⁻¹·B[n]).
//     Record n keeps chol(S[n]) and C[n] = S[n]⁻¹·B[n]; logdet = Σ log det S[n].
//   - solveRHS: z[0] = y[0]; z[n+1] = y[n+1] − B[n]ᵀ·S[n]⁻¹·z[n];
//     x[N-1] = S[N-1]⁻¹·z[N-1]; x[n] = S[n]⁻¹·(z[n] − B[n]·x[n+1]).
//   - invertBand: V[N-1] = S[N-1]⁻¹; V[n] = sym(S[n]⁻¹ + C[n]·V[n+1]·C[n]ᵀ);
//     the super-diagonal block of M⁻¹ is −C[n]·V[n+1].
//
// Complexity:
//   - Time O(N·D³), Space O(N·D²). The dense inverse would cost O(N³·D³).

package blocktri

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvchain/matrix"
)

const (
	opSolve     = "blocktri.Solve"
	opFactorize = "blocktri.Factorize"
	opFactSolve = "blocktri.Factorization.Solve"
	opFactBand  = "blocktri.Factorization.Band"
)

// Result holds the outputs of one block-tridiagonal solve.
type Result struct {
	V      []*matrix.Dense // diagonal blocks of M⁻¹, N of them
	C      []*matrix.Dense // super-diagonal blocks of M⁻¹ (row n, column n+1), N-1 of them
	X      [][]float64     // solution of M·x = y, N vectors of length D
	LogDet float64         // log det M
}

// factorStep is the record of forward step n.
type factorStep struct {
	chol *matrix.Cholesky // factor of the Schur complement S[n]; S[0] = A[0]
	c    *matrix.Dense    // S[n]⁻¹·B[n]; nil on the last step
}

// Factorization is the forward sweep of a block-tridiagonal matrix M. It is
// immutable and can serve any number of right-hand sides, concurrently.
type Factorization struct {
	n, d   int
	ops    blockOps
	steps  []factorStep
	logDet float64
}

// Solve runs the block Thomas algorithm on the system defined by diagonal
// blocks A (N of them, D×D, SPD), super-diagonal blocks B (N-1 of them) and
// right-hand side y (N vectors of length D).
//
// Errors:
//   - *matrix.ShapeMismatchError for inconsistent counts or sizes.
//   - *matrix.NotPositiveDefiniteError naming the failing step.
//   - matrix.ErrNilMatrix, matrix.ErrNaNInf, matrix.ErrAsymmetry for invalid blocks.
//
// No partial result is returned on error. Inputs are never modified.
func Solve(A, B []matrix.Matrix, y [][]float64, opts ...Option) (*Result, error) {
	sys, err := prepare(opSolve, A, B, gatherOptions(opts...))
	if err != nil {
		return nil, err
	}
	if err = validateRHS(opSolve, y, len(sys.as), sys.d); err != nil {
		return nil, err
	}
	f, err := sys.factorize(opSolve)
	if err != nil {
		return nil, err
	}
	x, err := f.solveRHS(opSolve, y)
	if err != nil {
		return nil, err
	}
	v, c, err := f.invertBand(opSolve)
	if err != nil {
		return nil, err
	}

	return &Result{V: v, C: c, X: x, LogDet: f.logDet}, nil
}

// Factorize runs only the forward sweep, for reuse across right-hand sides.
// Errors are those of Solve minus the right-hand-side checks.
func Factorize(A, B []matrix.Matrix, opts ...Option) (*Factorization, error) {
	sys, err := prepare(opFactorize, A, B, gatherOptions(opts...))
	if err != nil {
		return nil, err
	}

	return sys.factorize(opFactorize)
}

// Blocks returns N.
func (f *Factorization) Blocks() int { return f.n }

// BlockSize returns D.
func (f *Factorization) BlockSize() int { return f.d }

// Storage reports the coupling-block strategy chosen for this system.
func (f *Factorization) Storage() matrix.Storage { return f.ops.storage() }

// LogDet returns log det M.
func (f *Factorization) LogDet() float64 { return f.logDet }

// Solve returns x with M·x = y.
func (f *Factorization) Solve(y [][]float64) ([][]float64, error) {
	if err := validateRHS(opFactSolve, y, f.n, f.d); err != nil {
		return nil, err
	}

	return f.solveRHS(opFactSolve, y)
}

// Band returns the diagonal (V) and super-diagonal (C) blocks of M⁻¹.
func (f *Factorization) Band() (V, C []*matrix.Dense, err error) {
	return f.invertBand(opFactBand)
}

func stepErr(op string, n int, err error) error {
	return fmt.Errorf("%s: step %d: %w", op, n, err)
}

// system is a validated block-tridiagonal matrix: dense diagonal blocks and
// the coupling strategy picked for B.
type system struct {
	as  []*matrix.Dense
	ops blockOps
	d   int
}

// prepare validates A and B and materializes them once.
func prepare(op string, A, B []matrix.Matrix, o options) (*system, error) {
	as, d, err := validateDiagonal(op, A, o.symTol)
	if err != nil {
		return nil, err
	}
	if err = validateCoupling(op, B, len(as), d); err != nil {
		return nil, err
	}
	ops, err := newOps(B)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &system{as: as, ops: ops, d: d}, nil
}

func (sys *system) factorize(op string) (*Factorization, error) {
	as, ops, n := sys.as, sys.ops, len(sys.as)
	f := &Factorization{n: n, d: sys.d, ops: ops, steps: make([]factorStep, n)}
	s := as[0]
	for k := 0; k < n; k++ {
		if k > 0 {
			// S[k] = sym(A[k] − B[k-1]ᵀ·C[k-1])
			btc, err := ops.tmul(k-1, f.steps[k-1].c)
			if err != nil {
				return nil, stepErr(op, k, err)
			}
			diff, err := matrix.Sub(as[k], btc)
			if err != nil {
				return nil, stepErr(op, k, err)
			}
			if s, err = matrix.Symmetrize(diff); err != nil {
				return nil, stepErr(op, k, err)
			}
		}

		ch, err := matrix.Factorize(s)
		if err != nil {
			if errors.Is(err, matrix.ErrNotPositiveDefinite) {
				return nil, &matrix.NotPositiveDefiniteError{Op: op, Step: k}
			}
			return nil, stepErr(op, k, err)
		}
		st := factorStep{chol: ch}
		if k < n-1 {
			if st.c, err = ch.Solve(ops.coupling(k)); err != nil {
				return nil, stepErr(op, k, err)
			}
		}
		f.steps[k] = st
		f.logDet += ch.LogDet()
	}

	return f, nil
}

func (f *Factorization) solveRHS(op string, y [][]float64) ([][]float64, error) {
	z := make([][]float64, f.n)
	z[0] = append([]float64(nil), y[0]...)
	for k := 0; k < f.n-1; k++ {
		w, err := f.steps[k].chol.SolveVec(z[k])
		if err != nil {
			return nil, stepErr(op, k, err)
		}
		bw, err := f.ops.tvec(k, w)
		if err != nil {
			return nil, stepErr(op, k, err)
		}
		z[k+1] = floats.SubTo(make([]float64, f.d), y[k+1], bw)
	}

	x := make([][]float64, f.n)
	var err error
	if x[f.n-1], err = f.steps[f.n-1].chol.SolveVec(z[f.n-1]); err != nil {
		return nil, stepErr(op, f.n-1, err)
	}
	for k := f.n - 2; k >= 0; k-- {
		bx, err := f.ops.vec(k, x[k+1])
		if err != nil {
			return nil, stepErr(op, k, err)
		}
		r := floats.SubTo(make([]float64, f.d), z[k], bx)
		if x[k], err = f.steps[k].chol.SolveVec(r); err != nil {
			return nil, stepErr(op, k, err)
		}
	}

	return x, nil
}

func (f *Factorization) invertBand(op string) ([]*matrix.Dense, []*matrix.Dense, error) {
	v := make([]*matrix.Dense, f.n)
	c := make([]*matrix.Dense, f.n-1)

	var err error
	if v[f.n-1], err = f.steps[f.n-1].chol.Inverse(); err != nil {
		return nil, nil, stepErr(op, f.n-1, err)
	}
	for k := f.n - 2; k >= 0; k-- {
		st := f.steps[k]
		inv, err := st.chol.Inverse()
		if err != nil {
			return nil, nil, stepErr(op, k, err)
		}
		cv, err := matrix.Mul(st.c, v[k+1])
		if err != nil {
			return nil, nil, stepErr(op, k, err)
		}
		cvc, err := matrix.MulT(cv, st.c)
		if err != nil {
			return nil, nil, stepErr(op, k, err)
		}
		sum, err := matrix.Add(inv, cvc)
		if err != nil {
			return nil, nil, stepErr(op, k, err)
		}
		if v[k], err = matrix.Symmetrize(sum); err != nil {
			return nil, nil, stepErr(op, k, err)
		}
		if c[k], err = matrix.Scale(cv, -1); err != nil {
			return nil, nil, stepErr(op, k, err)
		}
	}

	return v, c, nil
}
