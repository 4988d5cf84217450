package model_selection

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

func makeData(n int) ([][]float64, []string) {
	X := make([][]float64, n)
	y := make([]string, n)
	for i := range X {
		X[i] = []float64{float64(i)}
		if i%2 == 0 {
			y[i] = "even"
		} else {
			y[i] = "odd"
		}
	}
	return X, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	X, y := makeData(150)
	s, err := TrainTestSplit(X, y, 0.6, 42)
	require.NoError(t, err)

	assert.Len(t, s.XTrain, 90)
	assert.Len(t, s.YTrain, 90)
	assert.Len(t, s.XTest, 60)
	assert.Len(t, s.YTest, 60)
}

func TestTrainTestSplitIsPartition(t *testing.T) {
	X, y := makeData(37)
	s, err := TrainTestSplit(X, y, 0.6, 7)
	require.NoError(t, err)

	var seen []int
	for i, row := range s.XTrain {
		idx := int(row[0])
		seen = append(seen, idx)
		assert.Equal(t, y[idx], s.YTrain[i], "label must follow its instance")
	}
	for i, row := range s.XTest {
		idx := int(row[0])
		seen = append(seen, idx)
		assert.Equal(t, y[idx], s.YTest[i], "label must follow its instance")
	}

	sort.Ints(seen)
	for i, idx := range seen {
		require.Equal(t, i, idx)
	}
}

func TestTrainTestSplitSeeded(t *testing.T) {
	X, y := makeData(50)

	a, err := TrainTestSplit(X, y, 0.6, 123)
	require.NoError(t, err)
	b, err := TrainTestSplit(X, y, 0.6, 123)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := TrainTestSplit(X, y, 0.6, 124)
	require.NoError(t, err)
	assert.NotEqual(t, a.YTrain, c.YTrain)
}

func TestTrainTestSplitErrors(t *testing.T) {
	X, y := makeData(10)

	_, err := TrainTestSplit(nil, nil, 0.6, 1)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = TrainTestSplit(X, y[:3], 0.6, 1)
	var dim *errors.DimensionError
	assert.True(t, errors.As(err, &dim))

	for _, ratio := range []float64{0, 1, -0.5, 1.5} {
		_, err = TrainTestSplit(X, y, ratio, 1)
		var validation *errors.ValidationError
		assert.True(t, errors.As(err, &validation), "ratio %v", ratio)
	}

	_, err = TrainTestSplit(X[:2], y[:2], 0.1, 1)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}
