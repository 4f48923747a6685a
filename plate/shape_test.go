// SPDX-License-Identifier: MIT
package plate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvchain/matrix"
	"github.com/katalvlaran/lvchain/plate"
)

func TestIsSubset(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b plate.Shape
		want bool
	}{
		{plate.Shape{}, plate.Shape{}, true},
		{plate.Shape{}, plate.Shape{3}, true},
		{plate.Shape{1}, plate.Shape{1}, true},
		{plate.Shape{1}, plate.Shape{3}, true},
		{plate.Shape{1}, plate.Shape{4, 1}, true},
		{plate.Shape{1}, plate.Shape{4, 3}, true},
		{plate.Shape{1}, plate.Shape{1, 3}, true},
		{plate.Shape{3}, plate.Shape{1, 3}, true},
		{plate.Shape{3}, plate.Shape{4, 3}, true},
		{plate.Shape{5, 1, 3}, plate.Shape{6, 5, 4, 3}, true},
		{plate.Shape{5, 4, 3}, plate.Shape{6, 5, 4, 3}, true},

		{plate.Shape{1}, plate.Shape{}, false},
		{plate.Shape{3}, plate.Shape{1}, false},
		{plate.Shape{4, 3}, plate.Shape{3}, false},
		{plate.Shape{4, 3}, plate.Shape{1, 3}, false},
		{plate.Shape{6, 1, 4, 3}, plate.Shape{6, 1, 1, 3}, false},
	}
	for _, tc := range tests {
		assert.Equalf(t, tc.want, plate.IsSubset(tc.a, tc.b), "IsSubset(%v, %v)", tc.a, tc.b)
		if tc.want {
			// a subset never changes the broadcast of the superset
			got, err := plate.Broadcast(tc.a, tc.b)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.b), "Broadcast(%v, %v) = %v", tc.a, tc.b, got)
		}
	}
}

func TestBroadcast(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		shapes []plate.Shape
		want   plate.Shape
	}{
		{"none", nil, plate.Shape{}},
		{"scalar", []plate.Shape{{}}, plate.Shape{}},
		{"scalar and vector", []plate.Shape{{}, {3}}, plate.Shape{3}},
		{"ones stretch", []plate.Shape{{4, 1}, {3}}, plate.Shape{4, 3}},
		{"three way", []plate.Shape{{2, 1, 1}, {1, 5, 1}, {7}}, plate.Shape{2, 5, 7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := plate.Broadcast(tc.shapes...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBroadcastIncompatible(t *testing.T) {
	t.Parallel()
	_, err := plate.Broadcast(plate.Shape{2, 3}, plate.Shape{4})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	var sm *matrix.ShapeMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, []int{4}, sm.Got)

	_, err = plate.Broadcast(plate.Shape{0})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestUnravelProject(t *testing.T) {
	t.Parallel()
	s := plate.Shape{2, 3}
	assert.Equal(t, 6, s.Size())
	assert.Equal(t, 1, plate.Shape{}.Size())
	for flat := 0; flat < s.Size(); flat++ {
		idx := s.Unravel(flat)
		assert.Equal(t, flat, s.Project(idx))
	}
	assert.Equal(t, []int{1, 2}, s.Unravel(5))

	// projection onto broadcast inputs
	out := []int{1, 2}
	assert.Equal(t, 2, plate.Shape{3}.Project(out))
	assert.Equal(t, 1, plate.Shape{2, 1}.Project(out))
	assert.Equal(t, 0, plate.Shape{}.Project(out))
	assert.Equal(t, "(2, 3)", s.String())
}

func TestBatch(t *testing.T) {
	t.Parallel()
	b, err := plate.NewBatch(plate.Shape{2, 1}, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", b.At([]int{1, 0}))
	assert.Equal(t, "a", b.At([]int{0, 4}))
	assert.Equal(t, 2, b.Len())

	s := plate.Single(7)
	assert.Equal(t, 7, s.At([]int{3, 9}))
	assert.Equal(t, plate.Shape{}, s.Shape)

	_, err = plate.NewBatch(plate.Shape{3}, []int{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
