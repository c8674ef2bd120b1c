// Package scoring compares two cleaned pitch contours. Contours of the same
// phrase differ in speed and in speaker register; DTW absorbs the first and
// mean removal the second.
package scoring

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/sonido-contour/algorithms/common"
	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
	"github.com/RyanBlaney/sonido-contour/algorithms/stats"
	"github.com/RyanBlaney/sonido-contour/config"
	"github.com/RyanBlaney/sonido-contour/logging"
)

// ErrEmptyContour is returned when a contour has no voiced samples
var ErrEmptyContour = errors.New("contour has no voiced samples")

// Result describes how closely two contours match
type Result struct {
	Distance    float64                `json:"distance"`     // accumulated DTW cost, 0 for identical contours
	PerStep     float64                `json:"per_step"`     // Distance divided by PathLength
	PathLength  int                    `json:"path_length"`  // number of aligned pairs
	QueryLength int                    `json:"query_length"` // voiced samples compared from a
	RefLength   int                    `json:"ref_length"`   // voiced samples compared from b
	Quality     stats.AlignmentQuality `json:"quality"`      // shape of the alignment path
}

// Compare aligns a against b. Both are expected in semitones, as produced
// by contour.Filter. Silences carry no pitch and are left out wherever they
// occur.
func Compare(a, b contour.Contour, cfg config.ScoreConfig) (Result, error) {
	query, ref := a.VoicedValues(), b.VoicedValues()
	if len(query) == 0 {
		return Result{}, fmt.Errorf("first contour: %w", ErrEmptyContour)
	}
	if len(ref) == 0 {
		return Result{}, fmt.Errorf("second contour: %w", ErrEmptyContour)
	}

	if cfg.RemoveRegister {
		query = common.Center(query)
		ref = common.Center(ref)
	}

	dtw := stats.NewDTWAlignmentWithParams(cfg.BandRadius, stats.StepSymmetric, stats.EuclideanDistance)
	aligned, err := dtw.AlignVectors(query, ref)
	if err != nil {
		return Result{}, fmt.Errorf("failed to align contours: %w", err)
	}

	result := Result{
		Distance:    aligned.Total,
		PerStep:     aligned.Distance,
		PathLength:  len(aligned.Path),
		QueryLength: aligned.QueryLength,
		RefLength:   aligned.RefLength,
		Quality:     stats.Quality(aligned),
	}

	logging.Debug("compared contours", logging.Fields{
		"component":   "contour_scoring",
		"distance":    result.Distance,
		"per_step":    result.PerStep,
		"path_length": result.PathLength,
	})

	return result, nil
}

// Distance returns the accumulated DTW cost between a and b
func Distance(a, b contour.Contour, cfg config.ScoreConfig) (float64, error) {
	result, err := Compare(a, b, cfg)
	if err != nil {
		return 0, err
	}
	return result.Distance, nil
}
