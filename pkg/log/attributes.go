// Package log defines standard attribute keys for classifier operations.
//
// Using the same keys everywhere lets log pipelines filter training and
// prediction events without parsing messages. Keys are hierarchical
// ("model.name", "data.samples") and grouped by concern below.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator, e.g. "GaussianNB".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: "train", "predict",
	// "predict_proba", "score", "evaluate".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record, e.g.
	// "naive_bayes", "datasets", "cli".
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: "training", "inference", "evaluation".
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of instances (rows).
	SamplesKey = "data.samples"

	// FeaturesKey is the number of attributes per instance.
	FeaturesKey = "data.features"

	// ClassesKey is the number of distinct class labels.
	ClassesKey = "data.classes"

	// ClassKey is a single class label.
	ClassKey = "data.class"

	// SourceKey is the path or name the data was read from.
	SourceKey = "data.source"
)

// Performance and evaluation.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records the fraction of correctly classified instances.
	AccuracyKey = "metrics.accuracy"

	// PredsKey is the number of predictions made.
	PredsKey = "preds.count"

	// ConfidenceKey is the posterior probability of the predicted class.
	ConfidenceKey = "preds.confidence"
)

// Errors.
const (
	// ErrorCodeKey is a structured error code, see the Error* values below.
	ErrorCodeKey = "error.code"

	// SuggestionKey carries a hint for resolving the problem.
	SuggestionKey = "error.suggestion"
)

// Configuration.
const (
	// HyperParamsKey contains estimator hyperparameters.
	HyperParamsKey = "model.hyperparams"

	// RandomSeedKey records the seed of the train/test split.
	RandomSeedKey = "config.random_seed"

	// TrainRatioKey records the training fraction of the split.
	TrainRatioKey = "config.train_ratio"
)

// Standard attribute values.
const (
	OperationTrain        = "train"
	OperationPredict      = "predict"
	OperationPredictProba = "predict_proba"
	OperationScore        = "score"
	OperationEvaluate     = "evaluate"

	PhaseTraining   = "training"
	PhaseInference  = "inference"
	PhaseEvaluation = "evaluation"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorDegenerateClass   = "DEGENERATE_CLASS"
	ErrorZeroEvidence      = "ZERO_EVIDENCE"
	ErrorInvalidInput      = "INVALID_INPUT"
)
