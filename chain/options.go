// SPDX-License-Identifier: MIT

package chain

import "github.com/katalvlaran/lvchain/internal/logging"

// DefaultWorkers bounds the plate pool; 0 means GOMAXPROCS.
const DefaultWorkers = 0

const panicWorkersNegative = "chain: WithWorkers: n must be >= 0"

// Option configures RunBatch.
type Option func(*options)

type options struct {
	workers int
	logger  logging.Logger // nil: resolved from the context
}

// WithWorkers bounds the number of chains processed concurrently.
// Panics when n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersNegative)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger used by RunBatch. A nil logger is ignored.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts ...Option) options {
	o := options{workers: DefaultWorkers}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
