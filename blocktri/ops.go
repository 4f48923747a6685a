// SPDX-License-Identifier: MIT

package blocktri

import (
	"github.com/katalvlaran/lvchain/matrix"
)

// blockOps is the coupling-block strategy of one solve. It is picked once
// from the storage of B and then used for every step of every pass.
type blockOps interface {
	storage() matrix.Storage
	// coupling returns B[n] as a right-hand side for a Cholesky solve.
	coupling(n int) matrix.Matrix
	// tmul returns B[n]ᵀ·m.
	tmul(n int, m *matrix.Dense) (*matrix.Dense, error)
	// tvec returns B[n]ᵀ·x.
	tvec(n int, x []float64) ([]float64, error)
	// vec returns B[n]·x.
	vec(n int, x []float64) ([]float64, error)
}

type denseOps []*matrix.Dense

func (b denseOps) storage() matrix.Storage      { return matrix.StorageDense }
func (b denseOps) coupling(n int) matrix.Matrix { return b[n] }
func (b denseOps) tmul(n int, m *matrix.Dense) (*matrix.Dense, error) {
	return matrix.TMul(b[n], m)
}
func (b denseOps) tvec(n int, x []float64) ([]float64, error) { return matrix.MatTVec(b[n], x) }
func (b denseOps) vec(n int, x []float64) ([]float64, error)  { return matrix.MatVec(b[n], x) }

type sparseOps []*matrix.Sparse

func (b sparseOps) storage() matrix.Storage      { return matrix.StorageSparse }
func (b sparseOps) coupling(n int) matrix.Matrix { return b[n] }
func (b sparseOps) tmul(n int, m *matrix.Dense) (*matrix.Dense, error) {
	return b[n].TMulDense(m)
}
func (b sparseOps) tvec(n int, x []float64) ([]float64, error) { return b[n].MulTVec(x) }
func (b sparseOps) vec(n int, x []float64) ([]float64, error)  { return b[n].MulVec(x) }

// newOps classifies the coupling blocks. All-sparse input keeps the sparse
// strategy; any dense (or foreign) block densifies the whole set. Blocks are
// copied, so a Factorization never observes later writes by the caller.
func newOps(bs []matrix.Matrix) (blockOps, error) {
	if len(bs) > 0 && allSparse(bs) {
		out := make(sparseOps, len(bs))
		for n, b := range bs {
			out[n] = b.Clone().(*matrix.Sparse)
		}
		return out, nil
	}

	out := make(denseOps, len(bs))
	for n, b := range bs {
		d, err := matrix.ToDense(b)
		if err != nil {
			return nil, err
		}
		out[n] = d
	}

	return out, nil
}

func allSparse(bs []matrix.Matrix) bool {
	for _, b := range bs {
		if matrix.StorageOf(b) != matrix.StorageSparse {
			return false
		}
		if _, ok := b.(*matrix.Sparse); !ok {
			return false
		}
	}

	return true
}
