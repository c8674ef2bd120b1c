package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-contour/scoring"
)

var (
	compareCleaned  bool
	compareJSON     bool
	compareRegister bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <contour-a> <contour-b>",
	Short: "DTW distance between two contours",
	Long: `Compare two contours with Dynamic Time Warping.

Both inputs are cleaned first unless --cleaned is given. Silences are
ignored and, unless --keep-register is given, each contour's mean pitch is
removed so that speakers in different registers can be compared.
0 means identical; larger is worse.

Examples:
  sonido-contour compare learner.json reference.json
  sonido-contour compare a.csv b.csv --cleaned --json`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareCleaned, "cleaned", false, "inputs are already cleaned (semitones)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print the full result as JSON")
	compareCmd.Flags().BoolVar(&compareRegister, "keep-register", false, "compare absolute pitch instead of shape")
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, err := loadContour(args[0], compareCleaned)
	if err != nil {
		return err
	}
	b, err := loadContour(args[1], compareCleaned)
	if err != nil {
		return err
	}

	cfg := getConfig().Score
	if compareRegister {
		cfg.RemoveRegister = false
	}

	result, err := scoring.Compare(a, b, cfg)
	if err != nil {
		return err
	}

	if compareJSON {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", result.Distance)
	return nil
}
