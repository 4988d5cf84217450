package config

func Default() *Config {
	return &Config{
		Data: DataConfig{
			Delimiter: ",",
		},
		Split: SplitConfig{
			TrainRatio: 0.6,
			Seed:       42,
		},
		Model: ModelConfig{
			VarSmoothing:      0,
			ParallelThreshold: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			PlotWidth:  16,
			PlotHeight: 10,
		},
	}
}
