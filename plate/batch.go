// SPDX-License-Identifier: MIT

package plate

import (
	"fmt"

	"github.com/katalvlaran/lvchain/matrix"
)

// Batch is a plate-shaped collection: Items holds one value per plate entry
// of Shape in row-major order. A Batch with the empty Shape holds exactly
// one item and broadcasts against anything.
type Batch[T any] struct {
	Shape Shape
	Items []T
}

// NewBatch validates that len(items) matches shape.Size().
// The items slice is retained, not copied.
func NewBatch[T any](shape Shape, items []T) (Batch[T], error) {
	if err := shape.Validate(); err != nil {
		return Batch[T]{}, fmt.Errorf("plate.NewBatch: %w", err)
	}
	if len(items) != shape.Size() {
		return Batch[T]{}, &matrix.ShapeMismatchError{
			Op:   "plate.NewBatch",
			What: "item count",
			Got:  []int{len(items)},
			Want: []int{shape.Size()},
		}
	}

	return Batch[T]{Shape: shape, Items: items}, nil
}

// Validate checks Items against Shape, for batches built as literals.
func (b Batch[T]) Validate() error {
	_, err := NewBatch(b.Shape, b.Items)

	return err
}

// Single wraps one item as a scalar-plate batch.
func Single[T any](item T) Batch[T] {
	return Batch[T]{Shape: Shape{}, Items: []T{item}}
}

// Len returns the number of items.
func (b Batch[T]) Len() int { return len(b.Items) }

// At returns the item addressed by a broadcast-result index.
func (b Batch[T]) At(idx []int) T {
	return b.Items[b.Shape.Project(idx)]
}
