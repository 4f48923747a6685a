// SPDX-License-Identifier: MIT
package blocktri_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/lvchain/blocktri"
	"github.com/katalvlaran/lvchain/matrix"
	"github.com/katalvlaran/lvchain/plate"
)

var (
	sinkRes   *blocktri.Result
	sinkBatch *blocktri.BatchResult
)

func BenchmarkSolve(b *testing.B) {
	for _, tc := range []struct{ n, d int }{{100, 2}, {100, 8}, {1000, 4}} {
		b.Run(fmt.Sprintf("N=%d/D=%d", tc.n, tc.d), func(b *testing.B) {
			s := randSystem(b, tc.n, tc.d, 42)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				res, err := blocktri.Solve(s.A, s.B, s.Y)
				if err != nil {
					b.Fatal(err)
				}
				sinkRes = res
			}
		})
	}
}

func BenchmarkSolveBatch(b *testing.B) {
	const plates = 16
	systems := make([][]matrix.Matrix, plates)
	couplings := make([][]matrix.Matrix, plates)
	rhs := make([][][]float64, plates)
	for p := 0; p < plates; p++ {
		s := randSystem(b, 200, 4, int64(p))
		systems[p], couplings[p], rhs[p] = s.A, s.B, s.Y
	}
	A, _ := plate.NewBatch(plate.Shape{plates}, systems)
	B, _ := plate.NewBatch(plate.Shape{plates}, couplings)
	Y, _ := plate.NewBatch(plate.Shape{plates}, rhs)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := blocktri.SolveBatch(context.Background(), A, B, Y)
		if err != nil {
			b.Fatal(err)
		}
		sinkBatch = res
	}
}
