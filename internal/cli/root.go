package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussnb/datasets"
	"github.com/YuminosukeSato/gaussnb/internal/config"
	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/pkg/log"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	verbose bool

	// cfg is the effective configuration, loaded before every command runs
	cfg = config.Default()

	// Version info (set from main)
	Version = "0.1.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gaussnb",
	Short: "Gaussian Naive Bayes classifier for delimited numeric data",
	Long: `gaussnb trains a Gaussian Naive Bayes classifier on delimited text files
whose last column is the class label (for example the UCI iris data set),
evaluates it on a seeded train/test split and prints the confusion matrix.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// IsJSON returns whether JSON output is enabled
func IsJSON() bool {
	return jsonOut || cfg.Output.JSON
}

// IsVerbose returns whether verbose output is enabled
func IsVerbose() bool {
	return verbose
}

// setup loads the configuration and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	level, _ := log.ParseLevel(cfg.Logging.Level)
	if verbose {
		level = log.LevelDebug
	}
	installLogger(cmd.ErrOrStderr(), level, cfg.Logging.Format)
	return nil
}

func installLogger(w io.Writer, level log.Level, format string) {
	if format == "cloud" {
		log.SetupLogger(w, strings.ToLower(level.String()))
		errors.SetZerologWarnFunc(nil)
		errors.SetWarningHandler(func(warning error) {
			log.GetLogger().Warn(warning.Error())
		})
		return
	}
	provider := log.NewZerologProvider(w, level, format)
	provider.InstallWarnings()
	log.SetProvider(provider)
}

// dataPath returns the data file named on the command line, falling back to
// data.path from the configuration.
func dataPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Data.Path != "" {
		return cfg.Data.Path, nil
	}
	return "", errors.New("no data file given: pass it as an argument or set data.path in the config")
}

func loadDataset(args []string) (*datasets.Dataset, error) {
	path, err := dataPath(args)
	if err != nil {
		return nil, err
	}
	delimiter, err := datasets.ParseDelimiter(cfg.Data.Delimiter)
	if err != nil {
		return nil, err
	}
	return datasets.LoadFile(path, delimiter, cfg.Data.HasHeader)
}

func modelOptions() []naive_bayes.Option {
	return []naive_bayes.Option{
		naive_bayes.WithVarSmoothing(cfg.Model.VarSmoothing),
		naive_bayes.WithParallelThreshold(cfg.Model.ParallelThreshold),
	}
}
