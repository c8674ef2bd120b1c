package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
	"github.com/RyanBlaney/sonido-contour/config"
)

func semitones(ys ...float64) contour.Contour {
	c := make(contour.Contour, len(ys))
	for i, y := range ys {
		c[i] = contour.Sample{T: float64(i) * 0.01, Y: y}
	}
	return c
}

func TestCompareIdentical(t *testing.T) {
	c := semitones(80, 81, 83, 82, 80)
	result, err := Compare(c, c, config.DefaultScoreConfig())
	if err != nil {
		t.Fatal(err)
	}
	if result.Distance != 0 || result.PerStep != 0 {
		t.Fatalf("identical contours: %+v", result)
	}
	if result.PathLength != 5 || result.Quality.DiagonalRatio != 1 {
		t.Fatalf("unexpected path: %+v", result)
	}
}

func TestCompareIgnoresSilences(t *testing.T) {
	a := semitones(-1, 80, 82, -1, 84, -1)
	b := semitones(80, 82, 84)
	d, err := Distance(a, b, config.DefaultScoreConfig())
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Fatalf("distance = %v, want 0", d)
	}
}

func TestCompareRegister(t *testing.T) {
	low := semitones(70, 72, 75, 73)
	high := semitones(82, 84, 87, 85)

	cfg := config.DefaultScoreConfig()
	d, err := Distance(low, high, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d) > 1e-9 {
		t.Fatalf("transposed copy with register removal: distance = %v, want 0", d)
	}

	cfg.RemoveRegister = false
	d, err = Distance(low, high, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if d != 48 {
		t.Fatalf("without register removal: distance = %v, want 48", d)
	}
}

func TestCompareAbsorbsTempo(t *testing.T) {
	slow := semitones(80, 80, 81, 81, 83, 83, 82, 82)
	fast := semitones(80, 81, 83, 82)
	d, err := Distance(slow, fast, config.DefaultScoreConfig())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d) > 1e-9 {
		t.Fatalf("distance = %v, want 0", d)
	}
}

func TestCompareOrdersByShape(t *testing.T) {
	ref := semitones(80, 82, 84, 86, 88)
	near := semitones(80, 82, 84, 85, 88)
	far := semitones(88, 86, 84, 82, 80)

	cfg := config.DefaultScoreConfig()
	dNear, err := Distance(near, ref, cfg)
	if err != nil {
		t.Fatal(err)
	}
	dFar, err := Distance(far, ref, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !(dNear < dFar) {
		t.Fatalf("near = %v, far = %v", dNear, dFar)
	}
}

func TestCompareEmpty(t *testing.T) {
	voiced := semitones(80, 81)
	silent := semitones(-1, -1)
	cfg := config.DefaultScoreConfig()

	if _, err := Compare(silent, voiced, cfg); !errors.Is(err, ErrEmptyContour) {
		t.Fatalf("err = %v, want ErrEmptyContour", err)
	}
	if _, err := Compare(voiced, nil, cfg); !errors.Is(err, ErrEmptyContour) {
		t.Fatalf("err = %v, want ErrEmptyContour", err)
	}
}
