package datasets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

const irisSample = `5.1,3.5,1.4,0.2,Iris-setosa
4.9,3.0,1.4,0.2,Iris-setosa
7.0,3.2,4.7,1.4,Iris-versicolor
6.4,3.2,4.5,1.5,Iris-versicolor
6.3,3.3,6.0,2.5,Iris-virginica
5.8,2.7,5.1,1.9,Iris-virginica

`

func TestLoadDelimited(t *testing.T) {
	rows, header, err := LoadDelimited(strings.NewReader(irisSample), ',', false)
	require.NoError(t, err)
	assert.Nil(t, header)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"5.1", "3.5", "1.4", "0.2", "Iris-setosa"}, rows[0])
}

func TestLoadDelimitedHeaderAndWhitespace(t *testing.T) {
	input := "sepal_length; sepal_width ;class\n\n 1.0 ; 2.0 ; a \n   \n3.0;4.0;b\n"
	rows, header, err := LoadDelimited(strings.NewReader(input), ';', true)
	require.NoError(t, err)
	assert.Equal(t, []string{"sepal_length", "sepal_width", "class"}, header)
	assert.Equal(t, [][]string{{"1.0", "2.0", "a"}, {"3.0", "4.0", "b"}}, rows)
}

func TestSplitValuesFromClasses(t *testing.T) {
	rows, _, err := LoadDelimited(strings.NewReader(irisSample), ',', false)
	require.NoError(t, err)

	X, y, err := SplitValuesFromClasses(rows)
	require.NoError(t, err)
	require.Len(t, X, 6)
	assert.Equal(t, []float64{5.1, 3.5, 1.4, 0.2}, X[0])
	assert.Equal(t, "Iris-virginica", y[5])
}

func TestSplitValuesFromClassesErrors(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]string
		check func(t *testing.T, err error)
	}{
		{
			name: "empty",
			rows: nil,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrEmptyData))
			},
		},
		{
			name: "label only",
			rows: [][]string{{"a"}},
			check: func(t *testing.T, err error) {
				var valueErr *errors.ValueError
				assert.True(t, errors.As(err, &valueErr))
			},
		},
		{
			name: "ragged",
			rows: [][]string{{"1", "2", "a"}, {"1", "a"}},
			check: func(t *testing.T, err error) {
				var dim *errors.DimensionError
				require.True(t, errors.As(err, &dim))
				assert.Equal(t, 3, dim.Expected)
				assert.Equal(t, 2, dim.Got)
				assert.Contains(t, err.Error(), "row 2")
			},
		},
		{
			name: "not a number",
			rows: [][]string{{"1", "2", "a"}, {"1", "x", "a"}},
			check: func(t *testing.T, err error) {
				var valueErr *errors.ValueError
				require.True(t, errors.As(err, &valueErr))
				assert.Contains(t, err.Error(), "row 2 column 2")
			},
		},
		{
			name: "empty label",
			rows: [][]string{{"1", ""}},
			check: func(t *testing.T, err error) {
				var valueErr *errors.ValueError
				assert.True(t, errors.As(err, &valueErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SplitValuesFromClasses(tt.rows)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iris.tsv")
	content := "a\tb\tclass\n1\t2\tx\n3\t4\ty\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ds, err := LoadFile(path, '\t', true)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 2, ds.NFeatures())
	assert.Equal(t, []string{"x", "y"}, ds.Labels)
	assert.Equal(t, "b", ds.AttributeName(1))
	assert.Equal(t, "x2", ds.AttributeName(2))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), ',', false)
	assert.Error(t, err)
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: ",", want: ','},
		{in: "", want: ','},
		{in: ";", want: ';'},
		{in: "tab", want: '\t'},
		{in: `\t`, want: '\t'},
		{in: "\t", want: '\t'},
		{in: "::", wantErr: true},
		{in: `"`, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDelimiter(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseDelimiter(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseDelimiter(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
