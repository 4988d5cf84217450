package naive_bayes

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussnb/core/model"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

var (
	_ model.Classifier      = (*GaussianNB)(nil)
	_ model.ParameterGetter = (*GaussianNB)(nil)
	_ model.ParameterSetter = (*GaussianNB)(nil)
	_ model.WeightExporter  = (*GaussianNB)(nil)
)

// GaussianNB is a reusable Gaussian Naive Bayes classifier.
//
// Train publishes a new GaussianModel atomically; predictions issued while a
// Train is in flight see either the old or the new model, never a mix. A
// failed Train leaves the previously trained model in place.
type GaussianNB struct {
	state *model.StateManager
	model *GaussianModel // guarded by state

	paramsMu sync.RWMutex
	opts     options
}

// NewGaussianNB creates an untrained classifier.
func NewGaussianNB(opts ...Option) *GaussianNB {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GaussianNB{
		state: model.NewStateManager(),
		opts:  o,
	}
}

// Train fits the classifier to instances and labels. See the package level
// Train for the estimator and its errors.
func (nb *GaussianNB) Train(instances [][]float64, labels []string) error {
	logger := log.GetLoggerWithName("naive_bayes").With(log.ModelNameKey, modelType)

	m, err := Train(instances, labels, nb.options()...)
	if err != nil {
		logger.Error("training failed", err,
			log.OperationKey, log.OperationTrain,
			log.ErrorCodeKey, log.ErrorCode(err),
		)
		return err
	}
	nb.publish(m)

	logger.Info("model trained",
		log.OperationKey, log.OperationTrain,
		log.SamplesKey, m.NSamples(),
		log.FeaturesKey, m.NFeatures(),
		log.ClassesKey, m.NClasses(),
	)
	return nil
}

// FitMatrix trains from a gonum matrix with one instance per row.
func (nb *GaussianNB) FitMatrix(X mat.Matrix, labels []string) error {
	rows, _ := X.Dims()
	instances := make([][]float64, rows)
	for i := range instances {
		instances[i] = mat.Row(nil, i, X)
	}
	return nb.Train(instances, labels)
}

func (nb *GaussianNB) publish(m *GaussianModel) {
	_ = nb.state.WithStateMut(m.NFeatures(), m.NSamples(), m.NClasses(), func() error {
		nb.model = m
		return nil
	})
}

func (nb *GaussianNB) options() []Option {
	nb.paramsMu.RLock()
	defer nb.paramsMu.RUnlock()
	return []Option{
		WithVarSmoothing(nb.opts.varSmoothing),
		WithParallelThreshold(nb.opts.parallelThreshold),
	}
}

// Model returns the current trained model, or a NotFittedError.
func (nb *GaussianNB) Model() (*GaussianModel, error) {
	return nb.current("Model")
}

func (nb *GaussianNB) current(method string) (*GaussianModel, error) {
	var m *GaussianModel
	_ = nb.state.WithState(func() error {
		m = nb.model
		return nil
	})
	if m == nil {
		return nil, errors.NewNotFittedError(modelType, method)
	}
	return m, nil
}

// IsFitted reports whether Train has succeeded at least once.
func (nb *GaussianNB) IsFitted() bool {
	return nb.state.IsFitted()
}

// Predict returns the posterior probability of every class for instance.
func (nb *GaussianNB) Predict(instance []float64) (map[string]float64, error) {
	m, err := nb.current("Predict")
	if err != nil {
		return nil, err
	}
	return m.Predict(instance)
}

// PredictLabel returns the most probable class for instance.
func (nb *GaussianNB) PredictLabel(instance []float64) (string, error) {
	m, err := nb.current("PredictLabel")
	if err != nil {
		return "", err
	}
	return m.PredictLabel(instance)
}

// PredictProba returns the posterior matrix for every row of X.
func (nb *GaussianNB) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	m, err := nb.current("PredictProba")
	if err != nil {
		return nil, err
	}
	return m.PredictProba(X)
}

// PredictBatch returns the most probable class for every instance.
func (nb *GaussianNB) PredictBatch(instances [][]float64) ([]string, error) {
	m, err := nb.current("PredictBatch")
	if err != nil {
		return nil, err
	}
	return m.PredictBatch(instances)
}

// Score returns the classification accuracy on instances.
func (nb *GaussianNB) Score(instances [][]float64, labels []string) (float64, error) {
	m, err := nb.current("Score")
	if err != nil {
		return 0, err
	}
	return m.Score(instances, labels)
}

// Classes returns the trained class labels in index order, or nil before
// training.
func (nb *GaussianNB) Classes() []string {
	m, err := nb.current("Classes")
	if err != nil {
		return nil
	}
	return m.Classes()
}

// GetParams returns the hyperparameters.
func (nb *GaussianNB) GetParams() map[string]interface{} {
	nb.paramsMu.RLock()
	defer nb.paramsMu.RUnlock()
	return map[string]interface{}{
		"var_smoothing":      nb.opts.varSmoothing,
		"parallel_threshold": nb.opts.parallelThreshold,
	}
}

// SetParams updates hyperparameters. They take effect on the next Train.
func (nb *GaussianNB) SetParams(params map[string]interface{}) error {
	next := func() options {
		nb.paramsMu.RLock()
		defer nb.paramsMu.RUnlock()
		return nb.opts
	}()

	for key, value := range params {
		switch key {
		case "var_smoothing":
			v, ok := numberParam(value)
			if !ok || v < 0 {
				return errors.NewValidationError(key, "must be a non-negative number", value)
			}
			next.varSmoothing = v
		case "parallel_threshold":
			v, ok := numberParam(value)
			if !ok || v < 1 {
				return errors.NewValidationError(key, "must be a positive integer", value)
			}
			next.parallelThreshold = int(v)
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}

	nb.paramsMu.Lock()
	nb.opts = next
	nb.paramsMu.Unlock()
	return nil
}

// ExportWeights snapshots the trained parameters.
func (nb *GaussianNB) ExportWeights() (*model.ModelWeights, error) {
	m, err := nb.current("ExportWeights")
	if err != nil {
		return nil, err
	}
	return m.ExportWeights()
}

// ImportWeights replaces the trained model with one rebuilt from w.
func (nb *GaussianNB) ImportWeights(w *model.ModelWeights) error {
	m, err := FromWeights(w)
	if err != nil {
		return err
	}
	nb.publish(m)

	nb.paramsMu.Lock()
	nb.opts = m.opts
	nb.paramsMu.Unlock()
	return nil
}
