package contour

import (
	"slices"
	"sort"
)

// Band is the value interval kept by the range-window selector
type Band struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"` // values inside [Low, High]
	Empty bool    `json:"empty"` // no values were given; every value passes
}

// Contains reports whether y lies within the band. An empty band contains
// everything.
func (b Band) Contains(y float64) bool {
	if b.Empty {
		return true
	}
	return y >= b.Low && y <= b.High
}

// Width returns High - Low
func (b Band) Width() float64 {
	if b.Empty {
		return 0
	}
	return b.High - b.Low
}

// SelectRange finds the interval [low, high] with high-low <= width holding
// the most values. Among equally populated intervals the one with the
// lowest low wins. values is not modified. A negative or NaN width is
// treated as 0, so the band always holds at least one value.
//
// Worst case is O(n^2) in the number of values; contours are a few hundred
// samples at most.
func SelectRange(values []float64, width float64) Band {
	if len(values) == 0 {
		return Band{Empty: true}
	}

	sorted := slices.Clone(values)
	sort.Float64s(sorted)
	n := len(sorted)

	if !(width >= 0) {
		width = 0
	}

	// a single value always fits, so the first i sets the band
	var band Band
	count := 0

	for i := 0; i < n; i++ {
		if n-i <= count {
			break
		}
		low := sorted[i]
		for j := n - 1; j >= i; j-- {
			if j-i+1 < count {
				break
			}
			high := sorted[j]
			if high-low <= width {
				if j-i+1 > count {
					band = Band{Low: low, High: high, Count: j - i + 1}
					count = j - i + 1
				}
				break
			}
		}
	}

	return band
}

// RejectOutliers drops voiced samples of c that fall outside the most
// populated band of the given width. Unvoiced samples are always kept.
// It returns the kept contour, the band and the dropped samples.
func RejectOutliers(c Contour, width float64) (Contour, Band, []Sample) {
	band := SelectRange(c.VoicedValues(), width)

	kept := make(Contour, 0, len(c))
	var dropped []Sample
	for _, s := range c {
		if !s.IsVoiced() || band.Contains(s.Y) {
			kept = append(kept, s)
			continue
		}
		dropped = append(dropped, s)
	}
	return kept, band, dropped
}
