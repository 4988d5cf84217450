package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussnb/metrics"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

func sampleConfusion(t *testing.T) *metrics.Confusion {
	t.Helper()
	cm, err := metrics.ConfusionMatrix(
		[]string{"setosa", "setosa", "versicolor", "virginica"},
		[]string{"setosa", "versicolor", "versicolor", "virginica"},
		[]string{"setosa", "versicolor", "virginica"},
	)
	require.NoError(t, err)
	return cm
}

func sampleModel(t *testing.T) *naive_bayes.GaussianModel {
	t.Helper()
	m, err := naive_bayes.Train(
		[][]float64{{1.0, 10}, {1.2, 11}, {0.8, 12}, {3.0, 20}, {3.3, 21}, {2.9, 19}},
		[]string{"small", "small", "small", "large", "large", "large"},
	)
	require.NoError(t, err)
	return m
}

func TestConfusionTable(t *testing.T) {
	out := ConfusionTable(sampleConfusion(t))

	lines := strings.Split(out, "\n")
	var header string
	for _, line := range lines {
		if strings.Contains(line, "setosa") {
			header = line
			break
		}
	}
	require.NotEmpty(t, header)
	assert.Contains(t, header, CornerHeader)
	assert.Less(t, strings.Index(header, "setosa"), strings.Index(header, "versicolor"))
	assert.Less(t, strings.Index(header, "versicolor"), strings.Index(header, "virginica"))

	var setosaRow string
	for _, line := range lines[1:] {
		if strings.Contains(line, "setosa") && line != header {
			setosaRow = line
			break
		}
	}
	require.NotEmpty(t, setosaRow)
	fields := strings.FieldsFunc(setosaRow, func(r rune) bool { return r == '│' || r == '|' || r == ' ' })
	assert.Equal(t, []string{"setosa", "1", "1", "0"}, fields)
}

func TestDistributionTable(t *testing.T) {
	out := DistributionTable([]string{"a", "b"}, map[string]float64{"a": 0.25, "b": 0.75})
	assert.Contains(t, out, "probability")
	assert.Contains(t, out, "0.250000")
	assert.Contains(t, out, "0.750000")
	assert.Less(t, strings.Index(out, "0.250000"), strings.Index(out, "0.750000"))
}

func TestSummary(t *testing.T) {
	out := Summary(sampleConfusion(t))
	assert.Contains(t, out, "0.7500")
	assert.Contains(t, out, "3/4")
}

func TestConfusionJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewConfusionJSON(sampleConfusion(t))))

	var decoded ConfusionJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"setosa", "versicolor", "virginica"}, decoded.Labels)
	assert.Equal(t, [][]int{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}, decoded.Matrix)
	assert.Equal(t, 0.75, decoded.Accuracy)
	assert.Equal(t, []float64{0.5, 1, 1}, decoded.Recall)
	assert.Equal(t, []float64{1, 0.5, 1}, decoded.Precision)
}

func TestPlotDensities(t *testing.T) {
	m := sampleModel(t)

	p, err := PlotDensities(m, 0, "width")
	require.NoError(t, err)
	assert.Equal(t, "width", p.X.Label.Text)
	assert.Less(t, p.X.Min, 1.0)
	assert.Greater(t, p.X.Max, 3.0)

	_, err = PlotDensities(m, 2, "missing")
	var validation *errors.ValidationError
	assert.True(t, errors.As(err, &validation))
}

func TestWriteDensities(t *testing.T) {
	m := sampleModel(t)

	var buf bytes.Buffer
	require.NoError(t, WriteDensities(&buf, m, 1, "height", "svg", 12, 8))
	assert.Contains(t, buf.String(), "<svg")

	err := WriteDensities(&bytes.Buffer{}, m, 1, "height", "bogus", 12, 8)
	assert.Error(t, err)
}

func TestSaveDensities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "density.png")
	require.NoError(t, SaveDensities(path, sampleModel(t), 0, "width", 12, 8))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
