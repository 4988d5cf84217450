package config

type Config struct {
	Data    DataConfig    `yaml:"data"`
	Split   SplitConfig   `yaml:"split"`
	Model   ModelConfig   `yaml:"model"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// DataConfig describes the delimited input file.
type DataConfig struct {
	Path string `yaml:"path"`
	// Delimiter is a single character, or "tab".
	Delimiter string `yaml:"delimiter"`
	HasHeader bool   `yaml:"has_header"`
}

// SplitConfig controls the train/test partition used by evaluate.
type SplitConfig struct {
	TrainRatio float64 `yaml:"train_ratio"`
	Seed       int64   `yaml:"seed"`
}

// ModelConfig holds the classifier hyperparameters.
type ModelConfig struct {
	VarSmoothing      float64 `yaml:"var_smoothing"`
	ParallelThreshold int     `yaml:"parallel_threshold"`
}

type LoggingConfig struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level"`
	// Format: console, json (zerolog) or cloud (slog, Cloud Logging fields)
	Format string `yaml:"format"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	JSON bool `yaml:"json"`
	// Plot size in centimetres
	PlotWidth  float64 `yaml:"plot_width"`
	PlotHeight float64 `yaml:"plot_height"`
}
