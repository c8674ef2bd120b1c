package contour

import "github.com/RyanBlaney/sonido-contour/config"

// SlewLimits are the fastest accepted pitch changes in semitones per second
type SlewLimits struct {
	RiseRate float64 `json:"rise_rate"`
	FallRate float64 `json:"fall_rate"`
}

// DefaultSlewLimits returns the published human rise and fall limits
func DefaultSlewLimits() SlewLimits {
	return SlewLimits{
		RiseRate: config.DefaultRiseRate,
		FallRate: config.DefaultFallRate,
	}
}

// CheckSlewRate reports whether a voice can move from one sample to the
// other in the time between them. The samples may be given in either
// order. A transition to or from an unvoiced sample always passes.
func CheckSlewRate(p0, p1 Sample, limits SlewLimits) bool {
	if p1.T < p0.T {
		p0, p1 = p1, p0
	}
	if !p0.IsVoiced() || !p1.IsVoiced() {
		return true
	}

	dt := p1.T - p0.T
	switch {
	case p1.Y > p0.Y:
		return p1.Y < p0.Y+dt*limits.RiseRate
	case p1.Y < p0.Y:
		return p1.Y > p0.Y-dt*limits.FallRate
	default:
		return true
	}
}

// RejectGlitches drops samples whose transitions both into and out of them
// are too fast. A sample with a single implausible edge is kept. After a
// drop the next sample's incoming transition counts as passing, so one
// glitch never takes a neighbour with it. Contours of two samples or fewer
// are returned as a copy.
func RejectGlitches(c Contour, limits SlewLimits) (Contour, []Sample) {
	if len(c) <= 2 {
		return c.Clone(), nil
	}

	kept := make(Contour, 0, len(c))
	var dropped []Sample
	incomingOK := true

	for i := 0; i < len(c)-1; i++ {
		curr, next := c[i], c[i+1]
		outgoingOK := CheckSlewRate(curr, next, limits)

		if !incomingOK && !outgoingOK {
			dropped = append(dropped, curr)
			incomingOK = true
			continue
		}

		kept = append(kept, curr)
		incomingOK = outgoingOK
	}
	kept = append(kept, c[len(c)-1])

	return kept, dropped
}
