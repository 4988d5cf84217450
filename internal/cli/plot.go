package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussnb/internal/report"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

var plotCmd = &cobra.Command{
	Use:   "plot [data-file]",
	Short: "Draw the per-class Gaussian densities of one attribute",
	Long: `Train on a whole data file and draw the fitted density of one attribute
for every class. The output extension picks the format (png, svg, pdf, ...).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlot,
}

var (
	plotAttribute int
	plotOutput    string
)

func init() {
	plotCmd.Flags().IntVar(&plotAttribute, "attribute", 0, "zero based attribute index")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "density.png", "image file to write")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(args)
	if err != nil {
		return err
	}

	m, err := naive_bayes.Train(ds.Instances, ds.Labels, modelOptions()...)
	if err != nil {
		return err
	}

	name := ds.AttributeName(plotAttribute)
	if err := report.SaveDensities(plotOutput, m, plotAttribute, name, cfg.Output.PlotWidth, cfg.Output.PlotHeight); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if IsJSON() {
		return report.WriteJSON(out, map[string]interface{}{
			"output":    plotOutput,
			"attribute": name,
		})
	}
	fmt.Fprintf(out, "densities of %s saved to %s\n", name, plotOutput)
	return nil
}
