package render

import (
	"github.com/RyanBlaney/sonido-contour/algorithms/common"
	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
)

// PlotRange returns the vertical range for drawing c: the voiced min and
// max, with the floor lowered so at least minSpan semitones are shown below
// the highest pitch. Tone shapes then keep their relative size instead of
// a nearly flat contour filling the whole graph. ok is false when c has no
// voiced samples.
func PlotRange(c contour.Contour, minSpan float64) (lo, hi float64, ok bool) {
	lo, hi, ok = common.MinMax(c.VoicedValues())
	if !ok {
		return 0, 0, false
	}
	if lo > hi-minSpan {
		lo = hi - minSpan
	}
	return lo, hi, true
}
