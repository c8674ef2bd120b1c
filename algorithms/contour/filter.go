package contour

import (
	"fmt"

	"github.com/RyanBlaney/sonido-contour/config"
	"github.com/RyanBlaney/sonido-contour/logging"
)

// Report describes what one filtering run removed
type Report struct {
	InputLength      int  `json:"input_length"`
	OutputLength     int  `json:"output_length"`
	Band             Band `json:"band"`
	Outliers         int  `json:"outliers"`           // dropped by the range window
	Glitches         int  `json:"glitches"`           // dropped by the slew-rate check
	SilencesRemoved  int  `json:"silences_removed"`   // merged or trimmed unvoiced samples
	SlewFilterActive bool `json:"slew_filter_active"` // false when too few samples to rate-limit
}

// Filter turns a raw (seconds, Hz or Unvoiced) contour into a cleaned
// (seconds from start, semitones or Unvoiced) contour:
//
//  1. frequency to semitones
//  2. range window: drop voiced values outside the most populated band
//  3. slew rate: drop samples with implausible jumps on both sides
//  4. normalize: collapse silence runs, trim trailing silence, rebase time
//
// A Filter holds only configuration and is safe for concurrent use. It
// does not hold the contour; callers re-run Apply over the whole raw
// buffer whenever a sample arrives, since the band can move as more of the
// contour is seen.
type Filter struct {
	width  float64
	limits SlewLimits
	logger logging.Logger
}

// NewFilter creates a filter from a validated configuration
func NewFilter(cfg config.FilterConfig) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create contour filter: %w", err)
	}
	return &Filter{
		width: cfg.PassBandWidth,
		limits: SlewLimits{
			RiseRate: cfg.RiseRate,
			FallRate: cfg.FallRate,
		},
		logger: logging.WithFields(logging.Fields{
			"component": "contour_filter",
		}),
	}, nil
}

// DefaultFilter returns a filter with config.DefaultFilterConfig()
func DefaultFilter() *Filter {
	return &Filter{
		width:  config.DefaultPassBandWidth,
		limits: DefaultSlewLimits(),
		logger: logging.WithFields(logging.Fields{
			"component": "contour_filter",
		}),
	}
}

// WithLogger returns a copy of f logging through logger
func (f *Filter) WithLogger(logger logging.Logger) *Filter {
	cp := *f
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	cp.logger = logger
	return &cp
}

// PassBandWidth returns the range-window width in semitones
func (f *Filter) PassBandWidth() float64 {
	return f.width
}

// Limits returns the slew-rate limits
func (f *Filter) Limits() SlewLimits {
	return f.limits
}

// Apply runs the full pipeline over raw. raw is not modified.
func (f *Filter) Apply(raw Contour) Contour {
	out, _ := f.ApplyWithReport(raw)
	return out
}

// ApplyWithReport runs the full pipeline and reports what was removed
func (f *Filter) ApplyWithReport(raw Contour) (Contour, Report) {
	report := Report{InputLength: len(raw)}

	semis := ToSemitones(raw)

	inBand, band, outliers := RejectOutliers(semis, f.width)
	report.Band = band
	report.Outliers = len(outliers)

	report.SlewFilterActive = len(inBand) > 2
	smooth, glitches := RejectGlitches(inBand, f.limits)
	report.Glitches = len(glitches)

	out := Normalize(smooth)
	report.SilencesRemoved = len(smooth) - len(out)
	report.OutputLength = len(out)

	// one line per run; a session re-filters its whole buffer per sample
	f.logger.Debug("filtered contour", logging.Fields{
		"samples":  report.InputLength,
		"kept":     report.OutputLength,
		"outliers": report.Outliers,
		"glitches": report.Glitches,
		"low":      band.Low,
		"high":     band.High,
	})

	return out, report
}

// Apply runs the pipeline with the default configuration
func Apply(raw Contour) Contour {
	return DefaultFilter().Apply(raw)
}
