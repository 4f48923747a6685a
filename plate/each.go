// SPDX-License-Identifier: MIT

package plate

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Func is invoked once per plate entry with its flat and multi-index.
type Func func(ctx context.Context, flat int, idx []int) error

// Each runs fn for every entry of shape on a bounded goroutine pool.
// workers ≤ 0 bounds the pool at GOMAXPROCS.
//
// The first error cancels the context handed to the remaining calls and is
// the one returned; entries never started because of the cancellation are
// skipped. Entries are independent, so fn must not share mutable state
// across indices except through per-index result slots.
func Each(ctx context.Context, shape Shape, workers int, fn Func) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(workers)

	n := shape.Size()
	for flat := 0; flat < n; flat++ {
		flat := flat
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return fn(ctx, flat, shape.Unravel(flat))
		})
	}

	return p.Wait()
}
