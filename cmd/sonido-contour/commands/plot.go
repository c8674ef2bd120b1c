package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-contour/render"
)

var (
	plotCleaned bool
	plotWidth   int
	plotHeight  int
)

var plotCmd = &cobra.Command{
	Use:   "plot <contour>",
	Short: "Draw a cleaned contour in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlot,
}

func init() {
	plotCmd.Flags().BoolVar(&plotCleaned, "cleaned", false, "input is already cleaned (semitones)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 0, "chart width in columns (default from config)")
	plotCmd.Flags().IntVar(&plotHeight, "height", 0, "chart height in rows (default from config)")
}

func runPlot(cmd *cobra.Command, args []string) error {
	c, err := loadContour(args[0], plotCleaned)
	if err != nil {
		return err
	}

	display := getConfig().Display
	if plotWidth > 0 {
		display.Width = plotWidth
	}
	if plotHeight > 0 {
		display.Height = plotHeight
	}
	if err := display.Validate(); err != nil {
		return err
	}

	return render.Terminal(cmd.OutOrStdout(), display).Draw(render.Frame{
		Graph:  1,
		Points: c,
		Label:  filepath.Base(args[0]),
	})
}
