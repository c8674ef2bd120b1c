package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRates(t *testing.T) {
	cfg := DefaultFilterConfig()
	// 8.7 ms per semitone loosened by 1.66 allows about 190 st/s rising
	if math.Abs(cfg.RiseRate-190.8) > 0.1 {
		t.Errorf("rise rate = %v, want ~190.8", cfg.RiseRate)
	}
	if math.Abs(cfg.FallRate-286.2) > 0.1 {
		t.Errorf("fall rate = %v, want ~286.2", cfg.FallRate)
	}
	if cfg.PassBandWidth != 14 {
		t.Errorf("pass band = %v, want 14", cfg.PassBandWidth)
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero band", func(c *Config) { c.Filter.PassBandWidth = 0 }},
		{"nan rise", func(c *Config) { c.Filter.RiseRate = math.NaN() }},
		{"inf fall", func(c *Config) { c.Filter.FallRate = math.Inf(1) }},
		{"negative timeout", func(c *Config) { c.Session.SilenceTimeout = -1 }},
		{"negative duration", func(c *Config) { c.Session.MaxDuration = -2 }},
		{"tiny display", func(c *Config) { c.Display.Width = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contour.yaml")
	doc := `
log_level: debug
filter:
  pass_band_width_semitones: 12
session:
  silence_timeout_seconds: 0.8
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.Filter.PassBandWidth != 12 {
		t.Errorf("pass band = %v, want 12", cfg.Filter.PassBandWidth)
	}
	if cfg.Filter.RiseRate != DefaultRiseRate {
		t.Errorf("rise rate not defaulted: %v", cfg.Filter.RiseRate)
	}
	if cfg.Session.SilenceTimeout != 0.8 || cfg.Session.MaxDuration != DefaultMaxDuration {
		t.Errorf("session = %+v", cfg.Session)
	}
}

func TestLoadFileEmptyAndInvalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(empty)
	if err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if cfg != Default() {
		t.Errorf("empty file should yield defaults, got %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("filter:\n  rise_rate_semitones_per_second: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("negative rate: err = %v, want ErrInvalidConfig", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("missing file: expected error")
	}
}
