// Package model_selection splits labelled data for evaluation.
package model_selection

import (
	"math"
	"math/rand"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// Split is one train/test partition of a labelled data set.
type Split struct {
	XTrain [][]float64
	YTrain []string
	XTest  [][]float64
	YTest  []string
}

// TrainTestSplit shuffles X and y with a generator seeded by seed and puts
// the first round(trainRatio*n) instances into the training part. The same
// seed always yields the same partition.
//
// Rows are shared with X, not copied.
func TrainTestSplit(X [][]float64, y []string, trainRatio float64, seed int64) (*Split, error) {
	n := len(X)
	if n == 0 {
		return nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return nil, errors.NewDimensionError("TrainTestSplit", n, len(y), 0)
	}
	if !(trainRatio > 0 && trainRatio < 1) {
		return nil, errors.NewValidationError("train_ratio", "must be in (0, 1)", trainRatio)
	}

	nTrain := int(math.Round(trainRatio * float64(n)))
	if nTrain == 0 || nTrain == n {
		return nil, errors.NewValueError("TrainTestSplit",
			"train ratio leaves one of the partitions empty")
	}

	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(n)

	s := &Split{
		XTrain: make([][]float64, 0, nTrain),
		YTrain: make([]string, 0, nTrain),
		XTest:  make([][]float64, 0, n-nTrain),
		YTest:  make([]string, 0, n-nTrain),
	}
	for i, idx := range indices {
		if i < nTrain {
			s.XTrain = append(s.XTrain, X[idx])
			s.YTrain = append(s.YTrain, y[idx])
		} else {
			s.XTest = append(s.XTest, X[idx])
			s.YTest = append(s.YTest, y[idx])
		}
	}
	return s, nil
}
