// SPDX-License-Identifier: MIT

// Package plate implements the batch ("plate") dimension shared by the
// inference kernels: shapes, the broadcasting rule, plate-shaped batches,
// and a bounded parallel driver over plate entries.
//
// Every kernel input may carry a leading plate shape. The output plate shape
// is the broadcast of the input shapes, and each output entry reads the input
// entry obtained by projecting its index back onto that input's shape
// (Shape.Project). Broadcast is the only implementation of the rule in this
// module; both kernels call it.
//
// Plate entries are independent, so Each runs them on a
// github.com/sourcegraph/conc/pool context pool; the first failure cancels
// the rest.
package plate
