package config

import (
	"math"

	"github.com/YuminosukeSato/gaussnb/datasets"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Data.Validate(); err != nil {
		errs = append(errs, errors.Wrap(err, "data"))
	}

	if err := c.Split.Validate(); err != nil {
		errs = append(errs, errors.Wrap(err, "split"))
	}

	if err := c.Model.Validate(); err != nil {
		errs = append(errs, errors.Wrap(err, "model"))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, errors.Wrap(err, "logging"))
	}

	if err := c.Output.Validate(); err != nil {
		errs = append(errs, errors.Wrap(err, "output"))
	}

	return errors.Join(errs...)
}

func (d *DataConfig) Validate() error {
	_, err := datasets.ParseDelimiter(d.Delimiter)
	return err
}

func (s *SplitConfig) Validate() error {
	if !(s.TrainRatio > 0 && s.TrainRatio < 1) {
		return errors.NewValidationError("train_ratio", "must be between 0 and 1 (exclusive)", s.TrainRatio)
	}
	return nil
}

func (m *ModelConfig) Validate() error {
	var errs []error

	if m.VarSmoothing < 0 || math.IsNaN(m.VarSmoothing) || math.IsInf(m.VarSmoothing, 0) {
		errs = append(errs, errors.NewValidationError("var_smoothing", "must be a non-negative number", m.VarSmoothing))
	}

	if m.ParallelThreshold < 1 {
		errs = append(errs, errors.NewValidationError("parallel_threshold", "must be at least 1", m.ParallelThreshold))
	}

	return errors.Join(errs...)
}

func (l *LoggingConfig) Validate() error {
	var errs []error

	if _, ok := log.ParseLevel(l.Level); !ok {
		errs = append(errs, errors.NewValidationError("level", "must be one of debug, info, warn, error", l.Level))
	}

	switch l.Format {
	case "console", "json", "cloud":
	default:
		errs = append(errs, errors.NewValidationError("format", "must be console, json or cloud", l.Format))
	}

	return errors.Join(errs...)
}

func (o *OutputConfig) Validate() error {
	if o.PlotWidth <= 0 || o.PlotHeight <= 0 {
		return errors.NewValidationError("plot_width/plot_height", "must be positive", [2]float64{o.PlotWidth, o.PlotHeight})
	}
	return nil
}
