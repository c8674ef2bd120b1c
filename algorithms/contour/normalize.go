package contour

// CollapseSilence replaces every run of consecutive unvoiced samples with
// the first sample of the run.
func CollapseSilence(c Contour) Contour {
	out := make(Contour, 0, len(c))
	for _, s := range c {
		if !s.IsVoiced() && len(out) > 0 && !out[len(out)-1].IsVoiced() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// TrimTrailingSilence removes a final unvoiced sample. Run it after
// CollapseSilence; only one trailing sample is removed.
func TrimTrailingSilence(c Contour) Contour {
	if len(c) > 0 && !c[len(c)-1].IsVoiced() {
		return c[:len(c)-1].Clone()
	}
	return c.Clone()
}

// Rebase shifts all timestamps so the first sample is at t = 0
func Rebase(c Contour) Contour {
	out := c.Clone()
	if len(out) == 0 {
		return out
	}
	t0 := out[0].T
	for i := range out {
		out[i].T -= t0
	}
	return out
}

// Normalize collapses silence runs, drops a trailing silence marker and
// rebases time to zero.
func Normalize(c Contour) Contour {
	return Rebase(TrimTrailingSilence(CollapseSilence(c)))
}
