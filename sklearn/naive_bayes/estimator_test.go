package naive_bayes

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

func TestGaussianNBNotFitted(t *testing.T) {
	nb := NewGaussianNB()

	if nb.state.IsFitted() {
		t.Error("Model should not be fitted before Train()")
	}
	if nb.Classes() != nil {
		t.Errorf("Classes() before Train() = %v, want nil", nb.Classes())
	}

	checks := map[string]error{}
	_, checks["Predict"] = nb.Predict([]float64{1})
	_, checks["PredictLabel"] = nb.PredictLabel([]float64{1})
	_, checks["PredictProba"] = nb.PredictProba(mat.NewDense(1, 1, nil))
	_, checks["PredictBatch"] = nb.PredictBatch([][]float64{{1}})
	_, checks["Score"] = nb.Score([][]float64{{1}}, []string{"A"})
	_, checks["Model"] = nb.Model()
	_, checks["ExportWeights"] = nb.ExportWeights()

	for method, err := range checks {
		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("%s() error = %v, want NotFittedError", method, err)
			continue
		}
		if notFitted.Method != method {
			t.Errorf("NotFittedError.Method = %q, want %q", notFitted.Method, method)
		}
	}
}

func TestGaussianNBTrainAndPredict(t *testing.T) {
	X, y := separableData()
	nb := NewGaussianNB()
	require.NoError(t, nb.Train(X, y))

	if !nb.state.IsFitted() {
		t.Error("Model should be fitted after Train()")
	}
	nFeatures, nSamples, nClasses := nb.state.GetDimensions()
	assert.Equal(t, 2, nFeatures)
	assert.Equal(t, 6, nSamples)
	assert.Equal(t, 2, nClasses)
	assert.Equal(t, []string{"A", "B"}, nb.Classes())

	proba, err := nb.Predict([]float64{0.1, -0.1})
	require.NoError(t, err)
	assert.Greater(t, proba["A"], 0.99)

	label, err := nb.PredictLabel([]float64{5, 5})
	require.NoError(t, err)
	assert.Equal(t, "B", label)

	labels, err := nb.PredictBatch(X)
	require.NoError(t, err)
	assert.Equal(t, y, labels)

	score, err := nb.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestGaussianNBFitMatrix(t *testing.T) {
	X, y := separableData()
	Xm := mat.NewDense(len(X), 2, nil)
	for i, row := range X {
		Xm.SetRow(i, row)
	}

	nb := NewGaussianNB()
	require.NoError(t, nb.FitMatrix(Xm, y))

	proba, err := nb.PredictProba(Xm)
	require.NoError(t, err)
	rows, cols := proba.Dims()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 2, cols)
	for i := 0; i < rows; i++ {
		assert.InDelta(t, 1.0, proba.At(i, 0)+proba.At(i, 1), 1e-9)
	}
}

func TestGaussianNBFailedTrainKeepsModel(t *testing.T) {
	X, y := separableData()
	nb := NewGaussianNB()
	require.NoError(t, nb.Train(X, y))

	before, err := nb.Predict([]float64{1, 1})
	require.NoError(t, err)
	m, err := nb.Model()
	require.NoError(t, err)

	err = nb.Train([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, []string{"x", "x", "y"})
	var degenerate *errors.DegenerateClassError
	require.True(t, errors.As(err, &degenerate))

	after, err := nb.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"A", "B"}, nb.Classes())

	current, err := nb.Model()
	require.NoError(t, err)
	assert.Same(t, m, current)
}

func TestGaussianNBRetrainReplacesModel(t *testing.T) {
	X, y := separableData()
	nb := NewGaussianNB()
	require.NoError(t, nb.Train(X, y))

	require.NoError(t, nb.Train([][]float64{{1}, {2}, {3}, {4}}, []string{"p", "p", "q", "q"}))
	assert.Equal(t, []string{"p", "q"}, nb.Classes())

	_, err := nb.Predict([]float64{1, 1})
	var dim *errors.DimensionError
	assert.True(t, errors.As(err, &dim))
}

func TestGaussianNBConcurrentTrainAndPredict(t *testing.T) {
	X, y := separableData()
	shifted := make([][]float64, len(X))
	for i, row := range X {
		shifted[i] = []float64{row[0] + 1, row[1] + 1}
	}

	nb := NewGaussianNB()
	require.NoError(t, nb.Train(X, y))

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				proba, err := nb.Predict([]float64{2.5, 2.5})
				if err != nil {
					t.Errorf("Predict() error = %v", err)
					return
				}
				if len(proba) != 2 {
					t.Errorf("Predict() returned %d classes, want 2", len(proba))
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		data := X
		if i%2 == 1 {
			data = shifted
		}
		require.NoError(t, nb.Train(data, y))
	}
	wg.Wait()
}

func TestGaussianNBParams(t *testing.T) {
	nb := NewGaussianNB(WithVarSmoothing(1e-9), WithParallelThreshold(10))

	params := nb.GetParams()
	assert.Equal(t, 1e-9, params["var_smoothing"])
	assert.Equal(t, 10, params["parallel_threshold"])

	require.NoError(t, nb.SetParams(map[string]interface{}{
		"var_smoothing":      1e-6,
		"parallel_threshold": 500,
	}))
	params = nb.GetParams()
	assert.Equal(t, 1e-6, params["var_smoothing"])
	assert.Equal(t, 500, params["parallel_threshold"])

	// constant attribute only trains with smoothing
	X := [][]float64{{1, 2}, {1, 3}, {4, 5}, {6, 7}}
	y := []string{"A", "A", "B", "B"}
	require.NoError(t, nb.Train(X, y))
	m, err := nb.Model()
	require.NoError(t, err)
	assert.Greater(t, m.Epsilon(), 0.0)

	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{"negative smoothing", map[string]interface{}{"var_smoothing": -1.0}},
		{"non-numeric smoothing", map[string]interface{}{"var_smoothing": "big"}},
		{"zero threshold", map[string]interface{}{"parallel_threshold": 0}},
		{"unknown key", map[string]interface{}{"alpha": 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nb.SetParams(tt.params)
			var validation *errors.ValidationError
			assert.True(t, errors.As(err, &validation), "got %v", err)
		})
	}

	// rejected updates leave the previous values in place
	assert.Equal(t, 1e-6, nb.GetParams()["var_smoothing"])
}

func TestGaussianNBImportWeights(t *testing.T) {
	X, y := threeClassData()
	source := NewGaussianNB(WithParallelThreshold(7))
	require.NoError(t, source.Train(X, y))

	w, err := source.ExportWeights()
	require.NoError(t, err)

	target := NewGaussianNB()
	require.NoError(t, target.ImportWeights(w))
	assert.True(t, target.IsFitted())
	assert.Equal(t, source.Classes(), target.Classes())
	assert.Equal(t, 7, target.GetParams()["parallel_threshold"])

	q := []float64{5.8, 2.8, 4.4, 1.3}
	want, err := source.Predict(q)
	require.NoError(t, err)
	got, err := target.Predict(q)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, target.ImportWeights(nil))
	assert.Equal(t, source.Classes(), target.Classes())
}

func TestGaussianNBLogging(t *testing.T) {
	previous := log.GetProvider()
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	defer log.SetProvider(previous)

	X, y := separableData()
	nb := NewGaussianNB()
	require.NoError(t, nb.Train(X, y))

	logger := provider.Logger()
	assert.True(t, logger.ContainsMessage("training started"))
	assert.True(t, logger.ContainsMessage("model trained"))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "GaussianNB"))
	assert.True(t, logger.ContainsField(log.ComponentKey, "naive_bayes"))

	err := nb.Train([][]float64{{1}, {2}, {3}}, []string{"A", "A", "B"})
	require.Error(t, err)

	failures := logger.EntriesWithMessage("training failed")
	require.Len(t, failures, 1)
	assert.Equal(t, "ERROR", failures[0]["level"])
	assert.Equal(t, log.ErrorDegenerateClass, failures[0][log.ErrorCodeKey])
	assert.Contains(t, failures[0][log.ErrAttrKey], `class "B"`)
}
