package common

import (
	"math"
	"testing"
)

func TestMeanAndStandardDeviation(t *testing.T) {
	if Mean(nil) != 0 {
		t.Fatal("mean of empty slice should be 0")
	}
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Mean(data); got != 5 {
		t.Fatalf("Mean = %v, want 5", got)
	}
	// sample standard deviation
	if got := StandardDeviation(data); math.Abs(got-2.138089935) > 1e-6 {
		t.Fatalf("StandardDeviation = %v", got)
	}
	if StandardDeviation([]float64{3}) != 0 {
		t.Fatal("single value should have zero deviation")
	}
}

func TestMinMax(t *testing.T) {
	if _, _, ok := MinMax(nil); ok {
		t.Fatal("empty slice should not be ok")
	}
	lo, hi, ok := MinMax([]float64{3, -1, 8, 2})
	if !ok || lo != -1 || hi != 8 {
		t.Fatalf("MinMax = %v, %v, %v", lo, hi, ok)
	}
}

func TestCenter(t *testing.T) {
	in := []float64{80, 82, 84}
	out := Center(in)
	want := []float64{-2, 0, 2}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("Center = %v, want %v", out, want)
		}
	}
	if in[0] != 80 {
		t.Fatal("input modified")
	}
	if len(Center(nil)) != 0 {
		t.Fatal("empty center not empty")
	}
}

func TestClampLerp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatal("Clamp")
	}
	if Lerp(10, 20, 0.25) != 12.5 {
		t.Fatal("Lerp")
	}
	if InverseLerp(10, 20, 12.5) != 0.25 || InverseLerp(4, 4, 9) != 0 {
		t.Fatal("InverseLerp")
	}
}
