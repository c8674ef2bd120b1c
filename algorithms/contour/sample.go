package contour

// Unvoiced is the in-band value a pitch front end reports for a frame in
// which no pitch was detected.
const Unvoiced = -1.0

// Sample is one (time, value) point of a pitch contour. Y holds a frequency
// in Hz before the semitone transform and a pitch in semitones after it,
// or Unvoiced.
type Sample struct {
	T float64 `json:"t"` // seconds
	Y float64 `json:"y"`
}

// Voiced returns a sample carrying a detected pitch value
func Voiced(t, y float64) Sample {
	return Sample{T: t, Y: y}
}

// Silent returns an unvoiced sample at time t
func Silent(t float64) Sample {
	return Sample{T: t, Y: Unvoiced}
}

// IsVoiced reports whether the sample carries a pitch value.
// All sentinel handling in this package goes through it.
func (s Sample) IsVoiced() bool {
	return s.Y != Unvoiced
}

// Contour is a time-ordered sequence of samples. Timestamps are
// non-decreasing. Pipeline stages never modify their input contour.
type Contour []Sample

// Clone returns a copy that shares no storage with c. Clone of a nil
// contour is an empty, non-nil contour.
func (c Contour) Clone() Contour {
	out := make(Contour, len(c))
	copy(out, c)
	return out
}

// VoicedValues returns the Y values of all voiced samples in order
func (c Contour) VoicedValues() []float64 {
	values := make([]float64, 0, len(c))
	for _, s := range c {
		if s.IsVoiced() {
			values = append(values, s.Y)
		}
	}
	return values
}

// VoicedCount returns the number of voiced samples
func (c Contour) VoicedCount() int {
	n := 0
	for _, s := range c {
		if s.IsVoiced() {
			n++
		}
	}
	return n
}

// IsTimeOrdered reports whether timestamps never decrease
func (c Contour) IsTimeOrdered() bool {
	for i := 1; i < len(c); i++ {
		if c[i].T < c[i-1].T {
			return false
		}
	}
	return true
}

// Duration returns the time between the first and last sample
func (c Contour) Duration() float64 {
	if len(c) < 2 {
		return 0
	}
	return c[len(c)-1].T - c[0].T
}
