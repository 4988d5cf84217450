package parallel

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

func TestParallelizeCoversEveryItemOnce(t *testing.T) {
	for _, items := range []int{0, 1, 7, 1000, 4097} {
		t.Run(fmt.Sprintf("items=%d", items), func(t *testing.T) {
			seen := make([]int32, items)
			Parallelize(items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&seen[i], 1)
				}
			})
			for i, n := range seen {
				assert.Equalf(t, int32(1), n, "item %d visited %d times", i, n)
			}
		})
	}
}

func TestParallelizeWithThresholdRunsSequentially(t *testing.T) {
	var calls int
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)
}

func TestParallelizeErrReturnsLowestRangeError(t *testing.T) {
	err := ParallelizeErr(1000, func(start, end int) error {
		if start > 0 {
			return fmt.Errorf("range starting at %d failed", start)
		}
		return nil
	})
	if err == nil {
		// single core machine: one range starting at 0
		return
	}
	assert.Contains(t, err.Error(), "range starting at")
}

func TestParallelizeErrRecoversPanics(t *testing.T) {
	err := ParallelizeErrWithThreshold(5, 10, func(start, end int) error {
		panic("boom")
	})
	require.Error(t, err)

	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "boom", panicErr.PanicValue)
}
