package config

import (
	"strings"
	"testing"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"tab delimiter", func(c *Config) { c.Data.Delimiter = "tab" }, ""},
		{"long delimiter", func(c *Config) { c.Data.Delimiter = "::" }, "delimiter"},
		{"zero train ratio", func(c *Config) { c.Split.TrainRatio = 0 }, "train_ratio"},
		{"full train ratio", func(c *Config) { c.Split.TrainRatio = 1 }, "train_ratio"},
		{"negative smoothing", func(c *Config) { c.Model.VarSmoothing = -1 }, "var_smoothing"},
		{"zero threshold", func(c *Config) { c.Model.ParallelThreshold = 0 }, "parallel_threshold"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "format"},
		{"zero plot size", func(c *Config) { c.Output.PlotWidth = 0 }, "plot_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Split.TrainRatio = 2
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"split", "train_ratio", "logging", "level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}

	var validation *errors.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("expected a ValidationError in %v", err)
	}
}
