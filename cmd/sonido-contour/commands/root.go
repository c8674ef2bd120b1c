package commands

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-contour/config"
	"github.com/RyanBlaney/sonido-contour/logging"
)

const envPrefix = "CONTOUR"

var (
	// Global flags
	cfgFile  string
	logLevel string
	passBand float64

	// Global configuration, resolved before any subcommand runs
	globalConfig config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sonido-contour",
	Short: "Pitch contour cleaning tool",
	Long: `sonido-contour cleans pitch contours produced by a pitch tracker.

A raw contour is a list of [seconds, Hz] pairs with -1 marking unvoiced
frames. Cleaning converts to semitones, drops values outside the densest
pass band, drops samples that change faster than a voice can, collapses
silences and rebases time to zero.

Contours are read and written as .json, .yaml, .csv or .msgpack, chosen
by file extension.

Examples:
  # Clean a contour and write it as CSV
  sonido-contour filter raw.json -o clean.csv

  # Compare a learner's recording with the reference
  sonido-contour compare learner.json reference.json

  # Watch the cleaned contour grow sample by sample
  sonido-contour replay raw.json --terminal
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Float64Var(&passBand, "pass-band", config.DefaultPassBandWidth, "pass band width in semitones")

	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(plotCmd)
}

// setup resolves the configuration and installs the logger
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	globalConfig = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	base := logrus.New()
	base.SetOutput(cmd.ErrOrStderr())
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger := logging.NewLogrusLogger(base)
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)
	return nil
}

// loadConfig layers flags and CONTOUR_* environment variables over the
// config file, which is itself layered over the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"config", "log-level", "pass-band"} {
		if err := v.BindPFlag(name, cmd.Flag(name)); err != nil {
			return config.Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg := config.Default()
	if path := v.GetString("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if v.IsSet("log-level") {
		cfg.LogLevel = v.GetString("log-level")
	}
	if v.IsSet("pass-band") {
		cfg.Filter.PassBandWidth = v.GetFloat64("pass-band")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// getConfig returns the global configuration
func getConfig() config.Config {
	return globalConfig
}
