// SPDX-License-Identifier: MIT

// Package chain - scaled forward-backward.
//
// Implementation (three passes, each producing its own per-step records):
//   - forward: α[0] = logp0; for n = 1..N-1
//     v[i,j] = α[n-1,i] + logP[n-1,i,j], c[n] = lse(v), α[n,j] = lse_i(v[i,j] − c[n]).
//     Every α[n], n ≥ 1, is normalized, so log Z = Σ c[n].
//   - backward: β[N-1] = 0; for n = N-2..0
//     v[i,j] = β[n+1,j] + logP[n,i,j], β[n,i] = lse_j(v[i,j] − lse(v)).
//   - joints: v[i,j] = α[n,i] + β[n+1,j] + logP[n,i,j], zz[n] = exp(v − lse(v)),
//     renormalized by its own sum; z0[i] = Σ_j zz[0,i,j].
//
// A −Inf normalizer at any step means Z = 0: the chain is degenerate.
// A +Inf normalizer means the finite log-weights overflowed float64; that
// is an ErrNaNInf error carrying the step.

package chain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvchain/matrix"
)

const opRun = "chain.Run"

// Result holds the posterior quantities of one chain.
type Result struct {
	Z0         []float64       // marginal of z[0], sums to 1
	ZZ         []*matrix.Dense // joint of (z[n], z[n+1]), N-1 of them, each sums to 1
	LogZ       float64         // log partition function; −Inf when Degenerate
	Degenerate bool            // Z = 0; Z0 and ZZ are all zeros
}

// forwardStep is the normalized forward message at step n and the
// normalizer consumed to produce it (0 at n = 0).
type forwardStep struct {
	logAlpha []float64
	logC     float64
}

// backwardStep is the normalized backward message at step n.
type backwardStep struct {
	logBeta []float64
}

// Run computes the posterior marginals of a discrete chain given the
// initial log-weights logp0 (length D) and N-1 D×D log-weight tables.
// Entries may be −Inf; NaN and +Inf are rejected.
//
// Errors:
//   - matrix.ErrInvalidDimensions for an empty logp0.
//   - *matrix.ShapeMismatchError when a table is not D×D.
//   - matrix.ErrNilMatrix, matrix.ErrNaNInf for invalid tables.
//   - matrix.ErrNaNInf with the step index when log-weights overflow.
//
// A chain with Z = 0 is not an error: Result.Degenerate is set instead.
func Run(logp0 []float64, logP []matrix.Matrix) (*Result, error) {
	tables, err := validateChain(opRun, logp0, logP)
	if err != nil {
		return nil, err
	}

	return run(logp0, tables)
}

// Marginals returns the state marginals z[0..N-1]: z[0] = Z0 and
// z[n+1] = Σ_i ZZ[n][i, ·].
func (r *Result) Marginals() [][]float64 {
	out := make([][]float64, len(r.ZZ)+1)
	out[0] = append([]float64(nil), r.Z0...)
	for n, zz := range r.ZZ {
		out[n+1], _ = matrix.ColSums(zz)
	}

	return out
}

func run(logp0 []float64, tables []*matrix.Dense) (*Result, error) {
	d := len(logp0)
	if len(tables) == 0 {
		logZ := floats.LogSumExp(logp0)
		if math.IsInf(logZ, -1) {
			return degenerate(d, 0)
		}
		z0 := make([]float64, d)
		for i, v := range logp0 {
			z0[i] = math.Exp(v - logZ)
		}
		floats.Scale(1/floats.Sum(z0), z0)

		return &Result{Z0: z0, ZZ: []*matrix.Dense{}, LogZ: logZ}, nil
	}

	fwd, ok, err := forward(logp0, tables)
	if err != nil {
		return nil, err
	}
	if !ok {
		return degenerate(d, len(tables))
	}
	bwd, ok := backward(d, tables)
	if !ok {
		return degenerate(d, len(tables))
	}

	res := &Result{ZZ: make([]*matrix.Dense, len(tables))}
	for _, st := range fwd[1:] {
		res.LogZ += st.logC
	}
	if math.IsInf(res.LogZ, 1) {
		return nil, fmt.Errorf("%s: log Z: %w", opRun, matrix.ErrNaNInf)
	}
	v := make([]float64, d*d)
	for n, t := range tables {
		joint(v, fwd[n].logAlpha, bwd[n+1].logBeta, t)
		c := floats.LogSumExp(v)
		if math.IsInf(c, -1) {
			return degenerate(d, len(tables))
		}
		if overflowed(c) {
			return nil, overflowErr(n)
		}
		p := make([]float64, d*d)
		for k := range v {
			p[k] = math.Exp(v[k] - c)
		}
		floats.Scale(1/floats.Sum(p), p)

		zz, err := matrix.NewDenseFromData(d, d, p)
		if err != nil {
			return nil, err
		}
		res.ZZ[n] = zz
	}
	res.Z0, _ = matrix.RowSums(res.ZZ[0])

	return res, nil
}

// forward returns the N forward records, or false once a normalizer is −Inf.
func forward(logp0 []float64, tables []*matrix.Dense) ([]forwardStep, bool, error) {
	d := len(logp0)
	steps := make([]forwardStep, len(tables)+1)
	steps[0] = forwardStep{logAlpha: append([]float64(nil), logp0...)}

	v := make([]float64, d*d)
	col := make([]float64, d)
	for n, t := range tables {
		prev := steps[n].logAlpha
		for i := 0; i < d; i++ {
			row := t.RawRowView(i)
			for j := 0; j < d; j++ {
				v[i*d+j] = prev[i] + row[j]
			}
		}
		c := floats.LogSumExp(v)
		if math.IsInf(c, -1) {
			return nil, false, nil
		}
		if overflowed(c) {
			return nil, false, overflowErr(n)
		}

		next := make([]float64, d)
		for j := 0; j < d; j++ {
			for i := 0; i < d; i++ {
				col[i] = v[i*d+j] - c
			}
			next[j] = floats.LogSumExp(col)
		}
		steps[n+1] = forwardStep{logAlpha: next, logC: c}
	}

	return steps, true, nil
}

// backward returns the N backward records, or false once a normalizer is −Inf.
func backward(d int, tables []*matrix.Dense) ([]backwardStep, bool) {
	n := len(tables) + 1
	steps := make([]backwardStep, n)
	steps[n-1] = backwardStep{logBeta: make([]float64, d)}

	v := make([]float64, d*d)
	for k := n - 2; k >= 0; k-- {
		next := steps[k+1].logBeta
		for i := 0; i < d; i++ {
			row := tables[k].RawRowView(i)
			for j := 0; j < d; j++ {
				v[i*d+j] = next[j] + row[j]
			}
		}
		c := floats.LogSumExp(v)
		if math.IsInf(c, -1) {
			return nil, false
		}

		beta := make([]float64, d)
		for i := 0; i < d; i++ {
			row := v[i*d : (i+1)*d]
			beta[i] = floats.LogSumExp(row) - c
		}
		steps[k] = backwardStep{logBeta: beta}
	}

	return steps, true
}

// overflowed reports a normalizer that left the finite range upwards.
func overflowed(c float64) bool { return math.IsInf(c, 1) || math.IsNaN(c) }

func overflowErr(step int) error {
	return fmt.Errorf("%s: step %d: %w", opRun, step, matrix.ErrNaNInf)
}

// joint fills v with α[i] + β[j] + t[i,j].
func joint(v, logAlpha, logBeta []float64, t *matrix.Dense) {
	d := len(logAlpha)
	for i := 0; i < d; i++ {
		row := t.RawRowView(i)
		for j := 0; j < d; j++ {
			v[i*d+j] = logAlpha[i] + logBeta[j] + row[j]
		}
	}
}

// degenerate is the NaN-free result of a chain with Z = 0.
func degenerate(d, steps int) (*Result, error) {
	res := &Result{
		Z0:         make([]float64, d),
		ZZ:         make([]*matrix.Dense, steps),
		LogZ:       math.Inf(-1),
		Degenerate: true,
	}
	for n := range res.ZZ {
		zz, err := matrix.NewDense(d, d)
		if err != nil {
			return nil, err
		}
		res.ZZ[n] = zz
	}

	return res, nil
}
