package contour

import (
	"math/rand/v2"
	"testing"
)

func TestCheckSlewRate(t *testing.T) {
	limits := SlewLimits{RiseRate: 100, FallRate: 200}
	tests := []struct {
		name   string
		p0, p1 Sample
		want   bool
	}{
		{"flat", Voiced(0, 80), Voiced(0.01, 80), true},
		{"slow rise", Voiced(0, 80), Voiced(0.1, 89), true},
		{"rise at limit fails", Voiced(0, 80), Voiced(0.1, 90), false},
		{"fast rise", Voiced(0, 80), Voiced(0.01, 85), false},
		{"slow fall", Voiced(0, 80), Voiced(0.1, 61), true},
		{"fast fall", Voiced(0, 80), Voiced(0.01, 75), false},
		{"unvoiced start", Silent(0), Voiced(0.001, 120), true},
		{"unvoiced end", Voiced(0, 120), Silent(0.001), true},
		{"same time different pitch", Voiced(1, 80), Voiced(1, 81), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckSlewRate(tt.p0, tt.p1, limits); got != tt.want {
				t.Fatalf("CheckSlewRate(%+v, %+v) = %v, want %v", tt.p0, tt.p1, got, tt.want)
			}
			if got := CheckSlewRate(tt.p1, tt.p0, limits); got != tt.want {
				t.Fatalf("reversed CheckSlewRate(%+v, %+v) = %v, want %v", tt.p1, tt.p0, got, tt.want)
			}
		})
	}
}

func TestRejectGlitchesDropsIsolatedSpike(t *testing.T) {
	c := ToSemitones(Contour{Voiced(0, 100), Voiced(0.02, 200), Voiced(0.04, 102)})

	kept, dropped := RejectGlitches(c, DefaultSlewLimits())

	if len(kept) != 2 {
		t.Fatalf("kept %d samples, want 2: %+v", len(kept), kept)
	}
	if len(dropped) != 1 || dropped[0].T != 0.02 {
		t.Fatalf("dropped = %+v, want the sample at 0.02", dropped)
	}
}

func TestRejectGlitchesKeepsOneSidedEdge(t *testing.T) {
	// a genuine fast step: each side of it has one bad transition only
	c := Contour{Voiced(0, 80), Voiced(0.01, 80), Voiced(0.02, 95), Voiced(0.03, 95)}

	kept, dropped := RejectGlitches(c, DefaultSlewLimits())
	if len(kept) != 4 || len(dropped) != 0 {
		t.Fatalf("kept %+v dropped %+v", kept, dropped)
	}
}

func TestRejectGlitchesDoesNotCascade(t *testing.T) {
	c := Contour{
		Voiced(0.00, 80),
		Voiced(0.01, 95), // spike
		Voiced(0.02, 80), // bad in and out, but its incoming edge came from the spike
		Voiced(0.03, 90), // spike
		Voiced(0.04, 80),
	}

	kept, dropped := RejectGlitches(c, DefaultSlewLimits())

	wantTimes := []float64{0, 0.02, 0.04}
	if len(kept) != len(wantTimes) {
		t.Fatalf("kept %+v, want times %v", kept, wantTimes)
	}
	for i, s := range kept {
		if s.T != wantTimes[i] {
			t.Fatalf("kept[%d] at %v, want %v", i, s.T, wantTimes[i])
		}
	}
	if len(dropped) != 2 {
		t.Fatalf("dropped %+v, want 2 spikes", dropped)
	}
}

func TestRejectGlitchesShortContours(t *testing.T) {
	limits := DefaultSlewLimits()
	for _, c := range []Contour{nil, {Voiced(0, 80)}, {Voiced(0, 80), Voiced(0.001, 120)}} {
		kept, dropped := RejectGlitches(c, limits)
		if len(kept) != len(c) || dropped != nil {
			t.Fatalf("RejectGlitches(%+v) = %+v, %+v", c, kept, dropped)
		}
	}
}

func TestRejectGlitchesKeepsSamplesNextToSilence(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	limits := DefaultSlewLimits()

	for trial := 0; trial < 300; trial++ {
		c := randomSemitoneContour(rng, 3+rng.IntN(40))
		kept, _ := RejectGlitches(c, limits)

		keptAt := make(map[float64]bool, len(kept))
		for _, s := range kept {
			keptAt[s.T] = true
		}
		for i, s := range c {
			if !s.IsVoiced() {
				continue
			}
			nextToSilence := (i > 0 && !c[i-1].IsVoiced()) || (i+1 < len(c) && !c[i+1].IsVoiced())
			if nextToSilence && !keptAt[s.T] {
				t.Fatalf("trial %d: dropped silence-adjacent sample %+v from %+v", trial, s, c)
			}
		}
		if !kept.IsTimeOrdered() {
			t.Fatalf("trial %d: output out of order", trial)
		}
	}
}

// randomSemitoneContour builds a contour with strictly increasing times,
// occasional silence and occasional large jumps.
func randomSemitoneContour(rng *rand.Rand, n int) Contour {
	c := make(Contour, n)
	t := rng.Float64()
	y := 75 + rng.Float64()*10
	for i := range c {
		t += 0.005 + rng.Float64()*0.04
		switch r := rng.Float64(); {
		case r < 0.2:
			c[i] = Silent(t)
			continue
		case r < 0.35:
			c[i] = Voiced(t, y+rng.NormFloat64()*20)
			continue
		}
		y += rng.NormFloat64()
		c[i] = Voiced(t, y)
	}
	return c
}
