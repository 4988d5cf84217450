package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussnb/internal/report"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

var predictCmd = &cobra.Command{
	Use:   "predict -m model.json v1,v2,...",
	Short: "Print the class distribution of one instance",
	Long: `Load a model written by "gaussnb train" and print the posterior
probability of every class for one instance. Attribute values may be given
as one comma separated argument or as separate arguments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPredict,
}

var predictModel string

func init() {
	predictCmd.Flags().StringVarP(&predictModel, "model", "m", "model.json", "model file written by train")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	instance, err := parseInstance(args)
	if err != nil {
		return err
	}

	weights, err := loadWeights(predictModel)
	if err != nil {
		return err
	}
	m, err := naive_bayes.FromWeights(weights)
	if err != nil {
		return err
	}

	proba, err := m.Predict(instance)
	if err != nil {
		return err
	}
	label, err := m.PredictLabel(instance)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if IsJSON() {
		return report.WriteJSON(out, map[string]interface{}{
			"label":         label,
			"probabilities": proba,
		})
	}
	fmt.Fprintln(out, report.DistributionTable(m.Classes(), proba))
	fmt.Fprintf(out, "predicted class: %s\n", label)
	return nil
}

func parseInstance(args []string) ([]float64, error) {
	var instance []float64
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.NewValueError("predict", "attribute is not a number: "+strconv.Quote(field))
			}
			instance = append(instance, v)
		}
	}
	if len(instance) == 0 {
		return nil, errors.NewValueError("predict", "no attribute values given")
	}
	return instance, nil
}
