// Package session owns a growing raw pitch contour for one recording or
// playback and republishes the filtered contour after every sample.
//
// The contour filter is stateless and not safe for concurrent mutation of
// the same contour; a Session serializes all access with one mutex, so any
// number of goroutines may call Push, Raw and Filtered. Frames go to the
// display through render.Async or render.Queued and never block the
// producer.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
	"github.com/RyanBlaney/sonido-contour/config"
	"github.com/RyanBlaney/sonido-contour/logging"
	"github.com/RyanBlaney/sonido-contour/render"
)

var (
	// ErrStopped is returned by Push once the session has ended
	ErrStopped = errors.New("session stopped")
	// ErrOutOfOrder is returned by Push for a sample older than the last one
	ErrOutOfOrder = errors.New("sample out of order")
)

// Mode selects how the session ends on its own
type Mode int

const (
	// ModeRecord ends after a silence timeout or the maximum duration
	ModeRecord Mode = iota
	// ModePlayback runs until the source is drained or the session is closed
	ModePlayback
)

func (m Mode) String() string {
	switch m {
	case ModeRecord:
		return "record"
	case ModePlayback:
		return "playback"
	default:
		return "unknown"
	}
}

// StopReason says why a session ended
type StopReason int

const (
	Running StopReason = iota
	StopSilence
	StopMaxDuration
	StopDrained
	StopCanceled
	StopClosed
)

func (r StopReason) String() string {
	switch r {
	case Running:
		return "running"
	case StopSilence:
		return "silence"
	case StopMaxDuration:
		return "max_duration"
	case StopDrained:
		return "drained"
	case StopCanceled:
		return "canceled"
	case StopClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Options configures a Session
type Options struct {
	Mode    Mode
	Graph   int    // graph number passed through to the display
	Label   string // optional annotation passed through to the display
	Config  config.SessionConfig
	Filter  *contour.Filter // nil uses contour.DefaultFilter()
	Display render.Display  // nil discards frames

	// Lossless delivers every frame to Display in order. By default only
	// the newest undelivered frame is kept, which suits live charts.
	Lossless bool
}

// Session accumulates raw samples and republishes the filtered contour
type Session struct {
	id      string
	mode    Mode
	graph   int
	label   string
	cfg     config.SessionConfig
	filter  *contour.Filter
	display *render.AsyncDisplay
	logger  logging.Logger

	mu         sync.Mutex
	raw        contour.Contour
	filtered   contour.Contour
	seenVoiced bool
	lastVoiced float64
	reason     StopReason
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a running session
func New(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	filter := opts.Filter
	if filter == nil {
		filter = contour.DefaultFilter()
	}
	var display render.Display = opts.Display
	if display == nil {
		display = render.DisplayFunc(func(render.Frame) error { return nil })
	}

	var async *render.AsyncDisplay
	if opts.Lossless {
		async = render.Queued(display)
	} else {
		async = render.Async(display)
	}

	id := uuid.New().String()
	return &Session{
		id:      id,
		mode:    opts.Mode,
		graph:   opts.Graph,
		label:   opts.Label,
		cfg:     opts.Config,
		filter:  filter,
		display: async,
		logger: logging.WithFields(logging.Fields{
			"component": "contour_session",
			"session":   id,
			"mode":      opts.Mode.String(),
			"graph":     opts.Graph,
		}),
		done: make(chan struct{}),
	}, nil
}

// ID returns the session's unique identifier
func (s *Session) ID() string {
	return s.id
}

// Push appends a raw (seconds, Hz or contour.Unvoiced) sample, re-filters
// the whole buffer and publishes the result. The returned contour is the
// caller's to keep. In ModeRecord the sample may end the session; the
// sample is still recorded and published in that case.
func (s *Session) Push(sample contour.Sample) (contour.Contour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reason != Running {
		return nil, ErrStopped
	}
	if n := len(s.raw); n > 0 && sample.T < s.raw[n-1].T {
		return nil, fmt.Errorf("%w: t=%v after t=%v", ErrOutOfOrder, sample.T, s.raw[n-1].T)
	}

	s.raw = append(s.raw, sample)
	s.filtered = s.filter.Apply(s.raw)

	if err := s.display.Draw(render.Frame{
		Graph:  s.graph,
		Points: s.filtered.Clone(),
		Label:  s.label,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish frame: %w", err)
	}

	s.track(sample)

	return s.filtered.Clone(), nil
}

// track updates the silence and duration limits after sample was added
func (s *Session) track(sample contour.Sample) {
	if sample.IsVoiced() {
		s.seenVoiced = true
		s.lastVoiced = sample.T
	}
	if s.mode != ModeRecord {
		return
	}

	if !sample.IsVoiced() && s.seenVoiced && sample.T-s.lastVoiced > s.cfg.SilenceTimeout {
		s.stopLocked(StopSilence)
		return
	}
	if s.cfg.MaxDuration > 0 && sample.T-s.raw[0].T >= s.cfg.MaxDuration {
		s.stopLocked(StopMaxDuration)
	}
}

func (s *Session) stopLocked(reason StopReason) {
	if s.reason != Running {
		return
	}
	s.reason = reason
	close(s.done)
	s.logger.Info("session stopped", logging.Fields{
		"reason":   reason.String(),
		"raw":      len(s.raw),
		"filtered": len(s.filtered),
	})
}

func (s *Session) stop(reason StopReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(reason)
}

// Done is closed when the session stops for any reason
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Reason returns why the session stopped, or Running
func (s *Session) Reason() StopReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Raw returns a copy of the raw samples received so far
func (s *Session) Raw() contour.Contour {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Clone()
}

// Filtered returns a copy of the latest filtered contour
func (s *Session) Filtered() contour.Contour {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered.Clone()
}

// Run pushes samples from src until src is closed, ctx is done or the
// session stops on its own. Out-of-order samples are logged and skipped.
// It returns ctx.Err() on cancellation and nil otherwise.
func (s *Session) Run(ctx context.Context, src <-chan contour.Sample) error {
	logger := s.logger.WithContext(ctx)

	for {
		select {
		case <-ctx.Done():
			s.stop(StopCanceled)
			return ctx.Err()
		case <-s.done:
			return nil
		case sample, ok := <-src:
			if !ok {
				s.stop(StopDrained)
				return nil
			}
			if _, err := s.Push(sample); err != nil {
				switch {
				case errors.Is(err, ErrStopped):
					return nil
				case errors.Is(err, ErrOutOfOrder):
					logger.Warn("skipping sample", logging.Fields{"error": err.Error()})
				default:
					return err
				}
			}
		}
	}
}

// Close stops the session and waits for the last frame to be delivered
func (s *Session) Close() error {
	s.stop(StopClosed)
	var err error
	s.closeOnce.Do(func() {
		err = s.display.Close()
	})
	return err
}
