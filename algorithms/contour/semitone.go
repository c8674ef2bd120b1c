package contour

import "math"

// 12 semitones per octave
var semitoneScale = 12 / math.Ln2

// Semitone converts a frequency in Hz to semitones, (12/ln2)*ln(f).
// Frequencies below 1 Hz map to 0. Callers must not pass Unvoiced.
func Semitone(f float64) float64 {
	if f < 1 {
		return 0
	}
	return semitoneScale * math.Log(f)
}

// HertzFromSemitone is the inverse of Semitone for s >= 0
func HertzFromSemitone(s float64) float64 {
	return math.Exp(s / semitoneScale)
}

// ToSemitones converts every voiced sample of c to semitones.
// Unvoiced samples are copied unchanged.
func ToSemitones(c Contour) Contour {
	out := make(Contour, len(c))
	for i, s := range c {
		if s.IsVoiced() {
			s.Y = Semitone(s.Y)
		}
		out[i] = s
	}
	return out
}
