// Package datasets reads labelled numeric data from delimited text files.
//
// Every row holds the attribute values followed by the class label in the
// last column, the layout of the UCI iris file:
//
//	5.1,3.5,1.4,0.2,Iris-setosa
package datasets

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

// Dataset is a parsed labelled data set.
type Dataset struct {
	// Header holds the column names when the file has a header row.
	Header []string

	Instances [][]float64
	Labels    []string
}

// Len returns the number of instances.
func (d *Dataset) Len() int { return len(d.Instances) }

// NFeatures returns the number of attributes per instance.
func (d *Dataset) NFeatures() int {
	if len(d.Instances) == 0 {
		return 0
	}
	return len(d.Instances[0])
}

// AttributeName returns the header name of attribute a, or "x<a>" without a header.
func (d *Dataset) AttributeName(a int) string {
	if a >= 0 && a < len(d.Header)-1 {
		return d.Header[a]
	}
	return "x" + strconv.Itoa(a)
}

// ParseDelimiter turns a configured delimiter into a rune. "tab" and `\t`
// are accepted for tab separated files.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "":
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, errors.NewValidationError("delimiter", "must be a single character", s)
	}
	return r, nil
}

// LoadDelimited splits r into rows of trimmed fields. Blank lines are
// skipped. With hasHeader the first row is returned separately.
func LoadDelimited(r io.Reader, delimiter rune, hasHeader bool) (rows [][]string, header []string, err error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to read delimited data")
		}
		if isBlank(record) {
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if hasHeader && header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}
	return rows, header, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// SplitValuesFromClasses parses every column but the last as a float64
// attribute and uses the last column as the class label.
func SplitValuesFromClasses(rows [][]string) ([][]float64, []string, error) {
	if len(rows) == 0 {
		return nil, nil, errors.NewModelError("SplitValuesFromClasses", "empty data", errors.ErrEmptyData)
	}

	width := len(rows[0])
	if width < 2 {
		return nil, nil, errors.NewValueError("SplitValuesFromClasses",
			"every row needs at least one attribute and a class label")
	}

	instances := make([][]float64, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, nil, errors.Wrapf(
				errors.NewDimensionError("SplitValuesFromClasses", width, len(row), 1),
				"row %d", i+1)
		}
		values := make([]float64, width-1)
		for a, field := range row[:width-1] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, errors.Wrapf(
					errors.NewValueError("SplitValuesFromClasses", "attribute is not a number: "+strconv.Quote(field)),
					"row %d column %d", i+1, a+1)
			}
			values[a] = v
		}
		if row[width-1] == "" {
			return nil, nil, errors.Wrapf(
				errors.NewValueError("SplitValuesFromClasses", "empty class label"),
				"row %d", i+1)
		}
		instances[i] = values
		labels[i] = row[width-1]
	}
	return instances, labels, nil
}

// Load reads and parses a labelled data set from r.
func Load(r io.Reader, delimiter rune, hasHeader bool) (*Dataset, error) {
	rows, header, err := LoadDelimited(r, delimiter, hasHeader)
	if err != nil {
		return nil, err
	}
	instances, labels, err := SplitValuesFromClasses(rows)
	if err != nil {
		return nil, err
	}
	return &Dataset{Header: header, Instances: instances, Labels: labels}, nil
}

// LoadFile reads and parses the labelled data set at path.
func LoadFile(path string, delimiter rune, hasHeader bool) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open data file %s", path)
	}
	defer f.Close()

	ds, err := Load(f, delimiter, hasHeader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}

	log.GetLoggerWithName("datasets").Debug("dataset loaded",
		log.SourceKey, path,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.NFeatures(),
	)
	return ds, nil
}
