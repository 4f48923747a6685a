// SPDX-License-Identifier: MIT

// Package plate - shapes and the broadcasting rule.
//
// Rule (aligned from the right, as in array broadcasting):
//   - Two dimensions are compatible when they are equal or one of them is 1.
//   - Missing leading dimensions behave as 1.
//   - The broadcast dimension is the larger of the two.
//
// Complexity quicksheet:
//   - Broadcast: O(k·d) for k shapes of rank ≤ d; Project/Unravel: O(d).

package plate

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvchain/matrix"
)

const opBroadcast = "plate.Broadcast"

// Shape is a plate (batch) shape. The empty shape is the scalar plate with
// exactly one entry.
type Shape []int

// Size returns the number of plate entries (product of dims; 1 for the empty shape).
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}

	return n
}

// Equal reports element-wise equality.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}

// String renders the shape as "(d0, d1, ...)"; the scalar plate is "()".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprint(d)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Validate rejects negative or zero dimensions.
func (s Shape) Validate() error {
	for _, d := range s {
		if d <= 0 {
			return fmt.Errorf("plate shape %v: %w", []int(s), matrix.ErrInvalidDimensions)
		}
	}

	return nil
}

// Unravel converts a flat row-major index into a multi-index of s.
// The caller guarantees 0 ≤ flat < s.Size().
func (s Shape) Unravel(flat int) []int {
	idx := make([]int, len(s))
	for k := len(s) - 1; k >= 0; k-- {
		idx[k] = flat % s[k]
		flat /= s[k]
	}

	return idx
}

// Project maps an index of a broadcast result onto the flat index of s.
// idx is aligned from the right; dimensions of size 1 in s pin their
// coordinate to 0 and extra leading coordinates of idx are ignored.
// Requires len(idx) ≥ len(s) and s broadcastable to the result shape.
func (s Shape) Project(idx []int) int {
	off := len(idx) - len(s)
	flat := 0
	for k, d := range s {
		c := 0
		if d != 1 {
			c = idx[off+k]
		}
		flat = flat*d + c
	}

	return flat
}

// Broadcast returns the common shape of all inputs under the broadcasting rule.
// Broadcast() and Broadcast(Shape{}) are the scalar plate.
//
// Errors:
//   - *matrix.ShapeMismatchError (unwraps to matrix.ErrDimensionMismatch)
//     naming the first incompatible pair.
//   - matrix.ErrInvalidDimensions for non-positive dims.
func Broadcast(shapes ...Shape) (Shape, error) {
	rank := 0
	for _, s := range shapes {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", opBroadcast, err)
		}
		if len(s) > rank {
			rank = len(s)
		}
	}

	out := make(Shape, rank)
	for k := range out {
		out[k] = 1
	}
	for _, s := range shapes {
		off := rank - len(s)
		for k, d := range s {
			cur := out[off+k]
			switch {
			case cur == d || d == 1:
			case cur == 1:
				out[off+k] = d
			default:
				return nil, &matrix.ShapeMismatchError{
					Op:   opBroadcast,
					What: fmt.Sprintf("plate axis %d", k-len(s)),
					Got:  append([]int(nil), s...),
					Want: append([]int(nil), out...),
				}
			}
		}
	}

	return out, nil
}

// IsSubset reports whether a broadcasts to b without changing b, i.e.
// Broadcast(a, b) == b.
func IsSubset(a, b Shape) bool {
	if len(a) > len(b) {
		return false
	}
	off := len(b) - len(a)
	for k, d := range a {
		if d != 1 && d != b[off+k] {
			return false
		}
	}

	return true
}
