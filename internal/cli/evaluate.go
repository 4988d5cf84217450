package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussnb/internal/report"
	"github.com/YuminosukeSato/gaussnb/metrics"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
	"github.com/YuminosukeSato/gaussnb/sklearn/model_selection"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [data-file]",
	Short: "Train on a random split and print the confusion matrix",
	Long: `Load a delimited data file, split it into a training and a testing part,
train the classifier on the first and print the confusion matrix of its
predictions on the second. Rows are actual classes, columns predicted ones.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvaluate,
}

var (
	evalTrainRatio float64
	evalSeed       int64
)

func init() {
	evaluateCmd.Flags().Float64Var(&evalTrainRatio, "train-ratio", 0, "fraction of instances used for training (default from config, 0.6)")
	evaluateCmd.Flags().Int64Var(&evalSeed, "seed", 0, "random seed of the split (default from config, 42)")
	rootCmd.AddCommand(evaluateCmd)
}

// Evaluation is the outcome of one evaluate run.
type Evaluation struct {
	Split     *model_selection.Split
	Model     *naive_bayes.GaussianModel
	Predicted []string
	Confusion *metrics.Confusion
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("train-ratio") {
		cfg.Split.TrainRatio = evalTrainRatio
	}
	if cmd.Flags().Changed("seed") {
		cfg.Split.Seed = evalSeed
	}
	if err := cfg.Split.Validate(); err != nil {
		return err
	}

	ds, err := loadDataset(args)
	if err != nil {
		return err
	}

	ev, err := evaluate(ds.Instances, ds.Labels, cfg.Split.TrainRatio, cfg.Split.Seed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if IsJSON() {
		return report.WriteJSON(out, report.NewConfusionJSON(ev.Confusion))
	}
	fmt.Fprintln(out, report.ConfusionTable(ev.Confusion))
	fmt.Fprintln(out, report.Summary(ev.Confusion))
	return nil
}

// evaluate splits X and y, trains on the training part and builds the
// confusion matrix over the union of training and testing labels.
func evaluate(X [][]float64, y []string, trainRatio float64, seed int64) (*Evaluation, error) {
	start := time.Now()
	logger := log.GetLoggerWithName("cli").With(log.OperationKey, log.OperationEvaluate)

	split, err := model_selection.TrainTestSplit(X, y, trainRatio, seed)
	if err != nil {
		return nil, err
	}
	logger.Debug("data split",
		log.TrainRatioKey, trainRatio,
		log.RandomSeedKey, seed,
		log.SamplesKey, len(X),
	)

	m, err := naive_bayes.Train(split.XTrain, split.YTrain, modelOptions()...)
	if err != nil {
		return nil, err
	}

	for class, n := range unseenClasses(m, split.YTest) {
		errors.Warn(errors.NewUnseenClassWarning(class, n))
	}

	predicted, err := m.PredictBatch(split.XTest)
	if err != nil {
		return nil, err
	}

	labels := metrics.UnionLabels(split.YTrain, split.YTest)
	cm, err := metrics.ConfusionMatrix(split.YTest, predicted, labels)
	if err != nil {
		return nil, err
	}

	logger.Info("evaluation completed",
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, len(split.YTest),
		log.ClassesKey, len(labels),
		log.AccuracyKey, cm.Accuracy(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Evaluation{
		Split:     split,
		Model:     m,
		Predicted: predicted,
		Confusion: cm,
	}, nil
}

// unseenClasses counts the testing labels the model was never trained on.
func unseenClasses(m *naive_bayes.GaussianModel, labels []string) map[string]int {
	unseen := make(map[string]int)
	for _, label := range labels {
		if _, ok := m.ClassIndex(label); !ok {
			unseen[label]++
		}
	}
	return unseen
}
