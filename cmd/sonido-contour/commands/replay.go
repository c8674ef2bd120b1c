package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
	"github.com/RyanBlaney/sonido-contour/contourio"
	"github.com/RyanBlaney/sonido-contour/logging"
	"github.com/RyanBlaney/sonido-contour/render"
	"github.com/RyanBlaney/sonido-contour/session"
)

var (
	replayTerminal bool
	replayRealtime bool
	replayRecord   bool
	replayGraph    int
)

var replayCmd = &cobra.Command{
	Use:   "replay <raw-contour>",
	Short: "Feed a raw contour through a capture session",
	Long: `Replay a raw contour sample by sample through a capture session.

After every sample the whole contour is cleaned again and published as a
frame: one JSON line per frame on stdout, or a redrawn terminal chart with
--terminal. With --record the session ends on a silence timeout or the
maximum duration, as a live recording would.

Examples:
  sonido-contour replay raw.json
  sonido-contour replay raw.json --terminal --realtime`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayTerminal, "terminal", false, "draw frames as a terminal chart instead of JSON lines")
	replayCmd.Flags().BoolVar(&replayRealtime, "realtime", false, "pace samples by their timestamps")
	replayCmd.Flags().BoolVar(&replayRecord, "record", false, "stop on silence timeout or max duration")
	replayCmd.Flags().IntVar(&replayGraph, "graph", 1, "graph number attached to every frame")
}

func runReplay(cmd *cobra.Command, args []string) error {
	raw, err := contourio.ReadFile(args[0])
	if err != nil {
		return err
	}
	f, err := newFilter()
	if err != nil {
		return err
	}

	cfg := getConfig()
	var display render.Display = render.JSONLines(cmd.OutOrStdout())
	if replayTerminal {
		display = render.Terminal(cmd.OutOrStdout(), cfg.Display)
	}
	mode := session.ModePlayback
	if replayRecord {
		mode = session.ModeRecord
	}

	s, err := session.New(session.Options{
		Mode:    mode,
		Graph:   replayGraph,
		Label:   filepath.Base(args[0]),
		Config:  cfg.Session,
		Filter:  f,
		Display: display,
		// a terminal chart only needs the newest frame, a JSON stream needs all
		Lossless: !replayTerminal,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithFields(ctx, logging.Fields{"input": args[0]})

	src := make(chan contour.Sample)
	go feed(ctx, raw, src)

	if err := s.Run(ctx, src); err != nil {
		return err
	}

	logging.WithContext(ctx).Info("replay finished", logging.Fields{
		"session":  s.ID(),
		"reason":   s.Reason().String(),
		"raw":      len(s.Raw()),
		"filtered": len(s.Filtered()),
	})
	return s.Close()
}

// feed sends samples to src, paced by their timestamps when realtime is set
func feed(ctx context.Context, raw contour.Contour, src chan<- contour.Sample) {
	defer close(src)

	start := time.Now()
	for _, sample := range raw {
		if replayRealtime {
			due := start.Add(time.Duration((sample.T - raw[0].T) * float64(time.Second)))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Until(due)):
			}
		}
		select {
		case <-ctx.Done():
			return
		case src <- sample:
		}
	}
}
