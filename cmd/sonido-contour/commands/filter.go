package commands

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-contour/contourio"
	"github.com/RyanBlaney/sonido-contour/logging"
)

var (
	filterOutput string
	filterFormat string
	filterReport bool
)

var filterCmd = &cobra.Command{
	Use:   "filter <raw-contour>",
	Short: "Clean a raw contour",
	Long: `Clean a raw (seconds, Hz) contour into (seconds from start, semitones).

The result goes to the --output file, or to stdout in --format.

Examples:
  sonido-contour filter raw.json
  sonido-contour filter raw.csv -o clean.msgpack
  sonido-contour filter raw.json --report --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "output file (default: stdout)")
	filterCmd.Flags().StringVar(&filterFormat, "format", "json", "stdout format: json, yaml, csv")
	filterCmd.Flags().BoolVar(&filterReport, "report", false, "print what each stage removed to stderr")
}

func runFilter(cmd *cobra.Command, args []string) error {
	raw, err := contourio.ReadFile(args[0])
	if err != nil {
		return err
	}
	f, err := newFilter()
	if err != nil {
		return err
	}

	clean, report := f.ApplyWithReport(raw)
	logging.Info("filtered contour", logging.Fields{
		"input":    args[0],
		"samples":  report.InputLength,
		"kept":     report.OutputLength,
		"outliers": report.Outliers,
		"glitches": report.Glitches,
	})
	if filterReport {
		if err := printJSON(cmd.ErrOrStderr(), report); err != nil {
			return err
		}
	}

	return writeContour(cmd.OutOrStdout(), filterOutput, filterFormat, clean)
}
