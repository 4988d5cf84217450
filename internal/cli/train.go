package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussnb/core/model"
	"github.com/YuminosukeSato/gaussnb/internal/report"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

var trainCmd = &cobra.Command{
	Use:   "train [data-file]",
	Short: "Train on a whole data file and save the fitted parameters",
	Long: `Train the classifier on every instance of a data file and write the
fitted parameters to a model file. Files ending in .gob are written in gob
encoding, everything else as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrain,
}

var trainOutput string

func init() {
	trainCmd.Flags().StringVarP(&trainOutput, "output", "o", "model.json", "model file to write")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(args)
	if err != nil {
		return err
	}

	nb := naive_bayes.NewGaussianNB(modelOptions()...)
	if err := nb.Train(ds.Instances, ds.Labels); err != nil {
		return err
	}

	weights, err := nb.ExportWeights()
	if err != nil {
		return err
	}
	if err := saveWeights(trainOutput, weights); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if IsJSON() {
		return report.WriteJSON(out, map[string]interface{}{
			"model":     trainOutput,
			"classes":   weights.Classes,
			"n_samples": ds.Len(),
		})
	}
	fmt.Fprintf(out, "trained on %d instances of %d classes, saved to %s\n",
		ds.Len(), len(weights.Classes), trainOutput)
	return nil
}

func isGob(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gob")
}

func saveWeights(path string, w *model.ModelWeights) error {
	if isGob(path) {
		return model.SaveModel(w, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create model file %s", path)
	}
	if err := w.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadWeights(path string) (*model.ModelWeights, error) {
	if isGob(path) {
		return model.LoadModel(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open model file %s", path)
	}
	defer f.Close()
	return model.ReadWeightsJSON(f)
}
