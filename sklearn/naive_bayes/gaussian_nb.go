package naive_bayes

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gaussnb/core/model"
	"github.com/YuminosukeSato/gaussnb/core/parallel"
	"github.com/YuminosukeSato/gaussnb/metrics"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

const (
	modelType    = "GaussianNB"
	modelVersion = "1.0.0"

	defaultParallelThreshold = 1000
)

// Option configures Train and GaussianNB.
type Option func(*options)

type options struct {
	varSmoothing      float64
	parallelThreshold int
}

func defaultOptions() options {
	return options{parallelThreshold: defaultParallelThreshold}
}

// WithVarSmoothing adds eps times the largest attribute variance of the
// whole training set to every class variance. The default 0 keeps the plain
// unbiased estimator.
func WithVarSmoothing(eps float64) Option {
	return func(o *options) {
		o.varSmoothing = eps
	}
}

// WithParallelThreshold sets the number of rows above which batch
// prediction is spread across CPU cores.
func WithParallelThreshold(rows int) Option {
	return func(o *options) {
		o.parallelThreshold = rows
	}
}

// GaussianModel holds the fitted parameters of a Gaussian Naive Bayes
// classifier. It is created by Train and never modified afterwards, so any
// number of goroutines may call its prediction methods concurrently.
//
// Classes are indexed in the order they first appear in the training labels.
type GaussianModel struct {
	classes    []string
	classIndex map[string]int
	classCount []int
	classPrior []float64

	theta    *mat.Dense // nClasses x nFeatures means
	variance *mat.Dense // nClasses x nFeatures sample variances

	nFeatures int
	nSamples  int

	epsilon float64 // smoothing actually added to each variance
	opts    options
}

// Train estimates class priors and per-class, per-attribute means and
// sample variances from instances and their parallel labels.
//
// Every instance must have the same number of attributes and every class
// needs at least two instances, otherwise Train returns a DimensionError or a
// DegenerateClassError respectively.
func Train(instances [][]float64, labels []string, opts ...Option) (*GaussianModel, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	logger := log.GetLoggerWithName("naive_bayes").With(log.ModelNameKey, modelType)

	if err := validateTrainingSet(instances, labels); err != nil {
		return nil, err
	}
	nSamples, nFeatures := len(instances), len(instances[0])

	logger.Debug("training started",
		log.OperationKey, log.OperationTrain,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
	)

	m := &GaussianModel{
		classIndex: make(map[string]int),
		nFeatures:  nFeatures,
		nSamples:   nSamples,
		opts:       o,
	}

	// first-seen order, not sorted
	for _, label := range labels {
		if _, ok := m.classIndex[label]; !ok {
			m.classIndex[label] = len(m.classes)
			m.classes = append(m.classes, label)
		}
	}
	nClasses := len(m.classes)

	m.classCount = make([]int, nClasses)
	for _, label := range labels {
		m.classCount[m.classIndex[label]]++
	}
	for c, n := range m.classCount {
		if n < 2 {
			return nil, errors.NewDegenerateClassError(m.classes[c], n)
		}
	}

	m.theta = mat.NewDense(nClasses, nFeatures, nil)
	for i, x := range instances {
		c := m.classIndex[labels[i]]
		for a, v := range x {
			m.theta.Set(c, a, m.theta.At(c, a)+v)
		}
	}
	for c := 0; c < nClasses; c++ {
		row := m.theta.RawRowView(c)
		for a := range row {
			row[a] /= float64(m.classCount[c])
		}
	}

	m.variance = mat.NewDense(nClasses, nFeatures, nil)
	for i, x := range instances {
		c := m.classIndex[labels[i]]
		for a, v := range x {
			d := v - m.theta.At(c, a)
			m.variance.Set(c, a, m.variance.At(c, a)+d*d)
		}
	}
	for c := 0; c < nClasses; c++ {
		row := m.variance.RawRowView(c)
		for a := range row {
			row[a] /= float64(m.classCount[c] - 1)
		}
	}

	if o.varSmoothing > 0 {
		m.epsilon = o.varSmoothing * maxAttributeVariance(instances)
		for c := 0; c < nClasses; c++ {
			row := m.variance.RawRowView(c)
			for a := range row {
				row[a] += m.epsilon
			}
		}
	}

	for c := 0; c < nClasses; c++ {
		for a, v := range m.variance.RawRowView(c) {
			if v == 0 {
				return nil, errors.NewZeroVarianceError(m.classes[c], m.classCount[c], a)
			}
		}
	}
	if err := errors.CheckMatrix("GaussianNB.Train variance", m.variance, nClasses, nFeatures); err != nil {
		return nil, err
	}

	m.classPrior = make([]float64, nClasses)
	for c, n := range m.classCount {
		m.classPrior[c] = float64(n) / float64(nSamples)
	}

	logger.Debug("training completed",
		log.OperationKey, log.OperationTrain,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.ClassesKey, nClasses,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return m, nil
}

func validateTrainingSet(instances [][]float64, labels []string) error {
	if len(instances) == 0 {
		return errors.NewModelError("GaussianNB.Train", "empty data", errors.ErrEmptyData)
	}
	if len(labels) != len(instances) {
		return errors.NewDimensionError("GaussianNB.Train", len(instances), len(labels), 0)
	}
	nFeatures := len(instances[0])
	if nFeatures == 0 {
		return errors.NewValueError("GaussianNB.Train", "instances must have at least one attribute")
	}
	for i, x := range instances {
		if len(x) != nFeatures {
			return errors.NewDimensionError("GaussianNB.Train", nFeatures, len(x), 1)
		}
		if err := errors.CheckNumericalStability("GaussianNB.Train input", x, i); err != nil {
			return err
		}
	}
	return nil
}

// maxAttributeVariance is the largest population variance of any attribute
// over the whole training set.
func maxAttributeVariance(instances [][]float64) float64 {
	col := make([]float64, len(instances))
	var maxVar float64
	for a := range instances[0] {
		for i, x := range instances {
			col[i] = x[a]
		}
		if v := stat.PopVariance(col, nil); v > maxVar {
			maxVar = v
		}
	}
	return maxVar
}

// PDF is the Gaussian probability density with the given mean and variance at x.
func PDF(mean, variance, x float64) float64 {
	d := x - mean
	return 1 / math.Sqrt(2*math.Pi*variance) * math.Exp(-d*d/(2*variance))
}

// JointLikelihood returns prior[c] times the product of the attribute
// densities for every class c, in class index order. The values are not
// normalized.
func (m *GaussianModel) JointLikelihood(instance []float64) ([]float64, error) {
	if len(instance) != m.nFeatures {
		return nil, errors.NewDimensionError("GaussianModel.Predict", m.nFeatures, len(instance), 1)
	}

	joint := make([]float64, len(m.classes))
	for c := range m.classes {
		p := m.classPrior[c]
		mean := m.theta.RawRowView(c)
		variance := m.variance.RawRowView(c)
		for a, x := range instance {
			p *= PDF(mean[a], variance[a], x)
		}
		joint[c] = p
	}
	return joint, nil
}

// posterior normalizes the joint likelihoods by the total evidence.
func (m *GaussianModel) posterior(instance []float64) ([]float64, error) {
	joint, err := m.JointLikelihood(instance)
	if err != nil {
		return nil, err
	}

	evidence := floats.Sum(joint)
	if err := errors.CheckScalar("GaussianModel.Predict evidence", evidence); err != nil {
		return nil, err
	}
	if evidence == 0 {
		return nil, errors.NewZeroEvidenceError("GaussianModel.Predict", len(m.classes))
	}

	for c := range joint {
		joint[c] /= evidence
	}
	return joint, nil
}

// Predict returns the posterior probability of every training class for
// instance. The values sum to 1 up to rounding.
//
// Predict fails with a DimensionError when the attribute count differs from
// training, and with a ZeroEvidenceError when every joint likelihood
// underflows to zero.
func (m *GaussianModel) Predict(instance []float64) (map[string]float64, error) {
	proba, err := m.posterior(instance)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(m.classes))
	for c, label := range m.classes {
		out[label] = proba[c]
	}
	return out, nil
}

// PredictLabel returns the class with the highest posterior. Ties go to the
// class seen first during training.
func (m *GaussianModel) PredictLabel(instance []float64) (string, error) {
	proba, err := m.posterior(instance)
	if err != nil {
		return "", err
	}
	return m.classes[argmax(proba)], nil
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// PredictProba returns an nRows x nClasses matrix whose row i is the
// posterior distribution for row i of X, columns in class index order.
func (m *GaussianModel) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return nil, errors.NewModelError("GaussianModel.PredictProba", "empty data", errors.ErrEmptyData)
	}
	if cols != m.nFeatures {
		return nil, errors.NewDimensionError("GaussianModel.PredictProba", m.nFeatures, cols, 1)
	}

	out := mat.NewDense(rows, len(m.classes), nil)
	err := parallel.ParallelizeErrWithThreshold(rows, m.opts.parallelThreshold, func(start, end int) error {
		row := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(row, i, X)
			proba, err := m.posterior(row)
			if err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
			out.SetRow(i, proba)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PredictBatch returns the most probable class for every instance.
func (m *GaussianModel) PredictBatch(instances [][]float64) ([]string, error) {
	if len(instances) == 0 {
		return nil, errors.NewModelError("GaussianModel.PredictBatch", "empty data", errors.ErrEmptyData)
	}

	labels := make([]string, len(instances))
	err := parallel.ParallelizeErrWithThreshold(len(instances), m.opts.parallelThreshold, func(start, end int) error {
		for i := start; i < end; i++ {
			label, err := m.PredictLabel(instances[i])
			if err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
			labels[i] = label
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

// Score returns the accuracy of PredictBatch on instances against labels.
func (m *GaussianModel) Score(instances [][]float64, labels []string) (float64, error) {
	if len(labels) != len(instances) {
		return 0, errors.NewDimensionError("GaussianModel.Score", len(instances), len(labels), 0)
	}
	predicted, err := m.PredictBatch(instances)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(labels, predicted)
}

// Classes returns the class labels in index (first-seen) order.
func (m *GaussianModel) Classes() []string {
	return append([]string(nil), m.classes...)
}

// ClassIndex returns the dense index of label.
func (m *GaussianModel) ClassIndex(label string) (int, bool) {
	c, ok := m.classIndex[label]
	return c, ok
}

// NClasses returns the number of classes.
func (m *GaussianModel) NClasses() int { return len(m.classes) }

// NFeatures returns the number of attributes per instance.
func (m *GaussianModel) NFeatures() int { return m.nFeatures }

// NSamples returns the number of training instances.
func (m *GaussianModel) NSamples() int { return m.nSamples }

// ClassCount returns the number of training instances per class.
func (m *GaussianModel) ClassCount() []int {
	return append([]int(nil), m.classCount...)
}

// ClassPrior returns the prior probability of every class.
func (m *GaussianModel) ClassPrior() []float64 {
	return append([]float64(nil), m.classPrior...)
}

// Theta returns a copy of the nClasses x nFeatures matrix of means.
func (m *GaussianModel) Theta() *mat.Dense {
	return mat.DenseCopyOf(m.theta)
}

// Variance returns a copy of the nClasses x nFeatures matrix of variances.
func (m *GaussianModel) Variance() *mat.Dense {
	return mat.DenseCopyOf(m.variance)
}

// Epsilon returns the smoothing term that was added to every variance.
func (m *GaussianModel) Epsilon() float64 { return m.epsilon }

// ExportWeights snapshots the fitted parameters.
func (m *GaussianModel) ExportWeights() (*model.ModelWeights, error) {
	w := &model.ModelWeights{
		ModelType:  modelType,
		Version:    modelVersion,
		Classes:    m.Classes(),
		ClassCount: m.ClassCount(),
		ClassPrior: m.ClassPrior(),
		Theta:      denseRows(m.theta),
		Variance:   denseRows(m.variance),
		Hyperparameters: map[string]interface{}{
			"var_smoothing":      m.opts.varSmoothing,
			"parallel_threshold": m.opts.parallelThreshold,
		},
		Metadata: map[string]interface{}{
			"n_features": m.nFeatures,
			"n_samples":  m.nSamples,
			"epsilon":    m.epsilon,
		},
		IsFitted: true,
	}
	w.Metadata["checksum"] = w.Checksum()
	return w, nil
}

// FromWeights rebuilds a GaussianModel from exported parameters.
func FromWeights(w *model.ModelWeights) (*GaussianModel, error) {
	if w == nil {
		return nil, errors.NewValueError("FromWeights", "weights cannot be nil")
	}
	if w.ModelType != modelType {
		return nil, errors.NewValueError("FromWeights", "model type mismatch: expected "+modelType+", got "+w.ModelType)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if !w.IsFitted {
		return nil, errors.NewNotFittedError(modelType, "FromWeights")
	}

	nClasses, nFeatures := len(w.Classes), len(w.Theta[0])
	m := &GaussianModel{
		classIndex: make(map[string]int, nClasses),
		classes:    append([]string(nil), w.Classes...),
		classCount: append([]int(nil), w.ClassCount...),
		classPrior: append([]float64(nil), w.ClassPrior...),
		theta:      mat.NewDense(nClasses, nFeatures, nil),
		variance:   mat.NewDense(nClasses, nFeatures, nil),
		nFeatures:  nFeatures,
		opts:       defaultOptions(),
	}
	for c, label := range m.classes {
		if _, dup := m.classIndex[label]; dup {
			return nil, errors.NewValidationError("classes", "duplicate class label", label)
		}
		m.classIndex[label] = c
		m.theta.SetRow(c, w.Theta[c])
		m.variance.SetRow(c, w.Variance[c])
		m.nSamples += m.classCount[c]
	}
	for c := 0; c < nClasses; c++ {
		for a, v := range m.variance.RawRowView(c) {
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, errors.NewZeroVarianceError(m.classes[c], m.classCount[c], a)
			}
		}
	}

	if v, ok := numberParam(w.Hyperparameters["var_smoothing"]); ok {
		m.opts.varSmoothing = v
	}
	if v, ok := numberParam(w.Hyperparameters["parallel_threshold"]); ok {
		m.opts.parallelThreshold = int(v)
	}
	if v, ok := numberParam(w.Metadata["epsilon"]); ok {
		m.epsilon = v
	}
	return m, nil
}

func denseRows(d *mat.Dense) [][]float64 {
	r, _ := d.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, d)
	}
	return out
}

// numberParam accepts the numeric types that survive gob and JSON round trips.
func numberParam(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
