// SPDX-License-Identifier: MIT
package plate_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvchain/plate"
)

func TestEachVisitsEveryEntryOnce(t *testing.T) {
	t.Parallel()
	shape := plate.Shape{3, 4}
	hits := make([]int32, shape.Size())

	err := plate.Each(context.Background(), shape, 3, func(_ context.Context, flat int, idx []int) error {
		if shape.Project(idx) != flat {
			return errors.New("index mismatch")
		}
		atomic.AddInt32(&hits[flat], 1)
		return nil
	})
	require.NoError(t, err)
	for i, h := range hits {
		assert.Equalf(t, int32(1), h, "entry %d", i)
	}
}

func TestEachScalarPlate(t *testing.T) {
	t.Parallel()
	var calls int32
	err := plate.Each(context.Background(), plate.Shape{}, 0, func(context.Context, int, []int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls)
}

func TestEachFirstErrorWins(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	err := plate.Each(context.Background(), plate.Shape{16}, 1, func(_ context.Context, flat int, _ []int) error {
		if flat == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestEachCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls int32
	err := plate.Each(ctx, plate.Shape{4}, 2, func(context.Context, int, []int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls)
}
