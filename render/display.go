package render

import (
	"errors"
	"sync"

	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
	"github.com/RyanBlaney/sonido-contour/logging"
)

// ErrDisplayClosed is returned by Draw after Close
var ErrDisplayClosed = errors.New("display closed")

// Frame is one full redraw of a graph: the whole filtered contour, not a
// delta. Label is an optional annotation passed through untouched.
type Frame struct {
	Graph  int             `json:"graph"`
	Points contour.Contour `json:"points"`
	Label  string          `json:"label,omitempty"`
}

// Display receives frames. Implementations may be slow; wrap them with
// Async or Queued when the caller must not wait.
type Display interface {
	Draw(frame Frame) error
}

// DisplayFunc adapts a function to Display
type DisplayFunc func(frame Frame) error

func (f DisplayFunc) Draw(frame Frame) error {
	return f(frame)
}

// AsyncDisplay forwards frames to another Display from a single goroutine,
// so Draw never blocks on a slow display. Built with Async it keeps only the
// newest undelivered frame and a slow display skips stale frames; built with
// Queued it delivers every frame in order.
type AsyncDisplay struct {
	next       Display
	latestOnly bool
	notify     chan struct{}
	logger     logging.Logger

	mu      sync.Mutex
	pending []Frame
	closed  bool
	wg      sync.WaitGroup
}

// Async starts forwarding the newest frame to next. Use it for live views.
// Call Close to stop.
func Async(next Display) *AsyncDisplay {
	return startAsync(next, true)
}

// Queued starts forwarding every frame to next, in order. Use it for data
// sinks that must see each frame. Call Close to stop.
func Queued(next Display) *AsyncDisplay {
	return startAsync(next, false)
}

func startAsync(next Display, latestOnly bool) *AsyncDisplay {
	a := &AsyncDisplay{
		next:       next,
		latestOnly: latestOnly,
		notify:     make(chan struct{}, 1),
		logger: logging.WithFields(logging.Fields{
			"component":   "async_display",
			"latest_only": latestOnly,
		}),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *AsyncDisplay) run() {
	defer a.wg.Done()
	for {
		<-a.notify

		a.mu.Lock()
		batch := a.pending
		a.pending = nil
		closed := a.closed
		a.mu.Unlock()

		for _, frame := range batch {
			if err := a.next.Draw(frame); err != nil {
				a.logger.Error(err, "failed to draw frame", logging.Fields{
					"graph":  frame.Graph,
					"points": len(frame.Points),
				})
			}
		}
		if closed {
			return
		}
	}
}

func (a *AsyncDisplay) wake() {
	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// Draw queues frame. With Async it replaces any frame not yet delivered.
func (a *AsyncDisplay) Draw(frame Frame) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrDisplayClosed
	}
	if a.latestOnly {
		a.pending = a.pending[:0]
	}
	a.pending = append(a.pending, frame)
	a.mu.Unlock()

	a.wake()
	return nil
}

// Close delivers the pending frames and stops the goroutine
func (a *AsyncDisplay) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.wake()
	a.wg.Wait()
	return nil
}
