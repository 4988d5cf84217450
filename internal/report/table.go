// Package report renders evaluation results for the terminal, as JSON and
// as density charts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/YuminosukeSato/gaussnb/metrics"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

// CornerHeader labels the top-left cell of the confusion matrix.
const CornerHeader = "-"

// ConfusionTable renders cm with actual classes as rows and predicted
// classes as columns.
func ConfusionTable(cm *metrics.Confusion) string {
	headers := append([]string{CornerHeader}, cm.Labels...)

	rows := make([][]string, len(cm.Labels))
	for i, actual := range cm.Labels {
		row := make([]string, 0, len(cm.Labels)+1)
		row = append(row, actual)
		for _, predicted := range cm.Labels {
			row = append(row, strconv.Itoa(cm.Count(actual, predicted)))
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return headerStyle
			case row == col-1:
				return diagonalStyle
			case rows[row][col] != "0":
				return missStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	return t.Render()
}

// DistributionTable renders a posterior distribution in class index order.
func DistributionTable(classes []string, proba map[string]float64) string {
	rows := make([][]string, len(classes))
	for i, class := range classes {
		rows[i] = []string{class, strconv.FormatFloat(proba[class], 'f', 6, 64)}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("class", "probability").
		Rows(rows...)

	return t.Render()
}

// Summary renders a one-line accuracy summary.
func Summary(cm *metrics.Confusion) string {
	return titleStyle.Render("accuracy") + " " +
		fmt.Sprintf("%.4f", cm.Accuracy()) + " " +
		labelStyle.Render(fmt.Sprintf("(%d/%d correct)", cm.Correct(), cm.Total()))
}

// ConfusionJSON is the JSON form of an evaluation.
type ConfusionJSON struct {
	Labels    []string  `json:"labels"`
	Matrix    [][]int   `json:"matrix"`
	Accuracy  float64   `json:"accuracy"`
	Recall    []float64 `json:"recall"`
	Precision []float64 `json:"precision"`
}

// NewConfusionJSON converts cm for JSON output.
func NewConfusionJSON(cm *metrics.Confusion) ConfusionJSON {
	out := ConfusionJSON{
		Labels:    append([]string(nil), cm.Labels...),
		Matrix:    make([][]int, len(cm.Labels)),
		Accuracy:  cm.Accuracy(),
		Recall:    make([]float64, len(cm.Labels)),
		Precision: make([]float64, len(cm.Labels)),
	}
	for i, actual := range cm.Labels {
		out.Matrix[i] = make([]int, len(cm.Labels))
		for j, predicted := range cm.Labels {
			out.Matrix[i][j] = cm.Count(actual, predicted)
		}
		out.Recall[i] = cm.Recall(actual)
		out.Precision[i] = cm.Precision(actual)
	}
	return out
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode JSON output")
	}
	return nil
}
