package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Pitch change speed in human speech, Oxford Handbook of Chinese
// Linguistics ch. 36 pp. 490-491: t_rise = 89.6 + 8.7*d ms and
// t_fall = 100.4 + 5.8*d ms for a change of d semitones.
const (
	RiseTimePerSemitone = 0.0087 // seconds
	FallTimePerSemitone = 0.0058 // seconds

	// SafetyFactor loosens the published limits. 1 filters hard, 4 removes
	// practically nothing.
	SafetyFactor = 1.66

	// DefaultRiseRate and DefaultFallRate are the fastest accepted pitch
	// changes in semitones per second.
	DefaultRiseRate = SafetyFactor / RiseTimePerSemitone
	DefaultFallRate = SafetyFactor / FallTimePerSemitone

	// DefaultPassBandWidth is slightly wider than an octave so that a full
	// four-tone excursion fits while register jumps do not.
	DefaultPassBandWidth = 14.0

	DefaultSilenceTimeout = 0.5  // seconds
	DefaultMaxDuration    = 10.0 // seconds
	DefaultBandRadius     = 10
	DefaultMinOctaveSpan  = 12.0 // semitones
)

// ErrInvalidConfig is returned (wrapped) by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// FilterConfig configures the contour cleaning pipeline
type FilterConfig struct {
	PassBandWidth float64 `json:"pass_band_width_semitones" yaml:"pass_band_width_semitones"`
	RiseRate      float64 `json:"rise_rate_semitones_per_second" yaml:"rise_rate_semitones_per_second"`
	FallRate      float64 `json:"fall_rate_semitones_per_second" yaml:"fall_rate_semitones_per_second"`
}

// SessionConfig configures a capture session. These limits are owned by the
// session, not by the filter.
type SessionConfig struct {
	SilenceTimeout float64 `json:"silence_timeout_seconds" yaml:"silence_timeout_seconds"`
	MaxDuration    float64 `json:"max_duration_seconds" yaml:"max_duration_seconds"` // 0 = unlimited
}

// ScoreConfig configures contour comparison
type ScoreConfig struct {
	BandRadius     int  `json:"band_radius" yaml:"band_radius"` // Sakoe-Chiba radius, <= 0 disables the band
	RemoveRegister bool `json:"remove_register" yaml:"remove_register"`
}

// DisplayConfig configures the render collaborators
type DisplayConfig struct {
	MinSpan float64 `json:"min_span_semitones" yaml:"min_span_semitones"`
	Width   int     `json:"width" yaml:"width"`
	Height  int     `json:"height" yaml:"height"`
}

// Config is the root configuration document
type Config struct {
	LogLevel string        `json:"log_level" yaml:"log_level"`
	Filter   FilterConfig  `json:"filter" yaml:"filter"`
	Session  SessionConfig `json:"session" yaml:"session"`
	Score    ScoreConfig   `json:"score" yaml:"score"`
	Display  DisplayConfig `json:"display" yaml:"display"`
}

// DefaultFilterConfig returns the published physiological limits
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		PassBandWidth: DefaultPassBandWidth,
		RiseRate:      DefaultRiseRate,
		FallRate:      DefaultFallRate,
	}
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		SilenceTimeout: DefaultSilenceTimeout,
		MaxDuration:    DefaultMaxDuration,
	}
}

func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		BandRadius:     DefaultBandRadius,
		RemoveRegister: true,
	}
}

func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		MinSpan: DefaultMinOctaveSpan,
		Width:   72,
		Height:  16,
	}
}

// Default returns a complete configuration with every section defaulted
func Default() Config {
	return Config{
		LogLevel: "info",
		Filter:   DefaultFilterConfig(),
		Session:  DefaultSessionConfig(),
		Score:    DefaultScoreConfig(),
		Display:  DefaultDisplayConfig(),
	}
}

// Validate checks the filter limits
func (c FilterConfig) Validate() error {
	if !positive(c.PassBandWidth) {
		return fmt.Errorf("%w: pass band width must be positive, got %v", ErrInvalidConfig, c.PassBandWidth)
	}
	if !positive(c.RiseRate) {
		return fmt.Errorf("%w: rise rate must be positive, got %v", ErrInvalidConfig, c.RiseRate)
	}
	if !positive(c.FallRate) {
		return fmt.Errorf("%w: fall rate must be positive, got %v", ErrInvalidConfig, c.FallRate)
	}
	return nil
}

func (c SessionConfig) Validate() error {
	if !positive(c.SilenceTimeout) {
		return fmt.Errorf("%w: silence timeout must be positive, got %v", ErrInvalidConfig, c.SilenceTimeout)
	}
	if c.MaxDuration < 0 || math.IsNaN(c.MaxDuration) {
		return fmt.Errorf("%w: max duration must not be negative, got %v", ErrInvalidConfig, c.MaxDuration)
	}
	return nil
}

func (c DisplayConfig) Validate() error {
	if c.MinSpan < 0 || math.IsNaN(c.MinSpan) {
		return fmt.Errorf("%w: min span must not be negative, got %v", ErrInvalidConfig, c.MinSpan)
	}
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("%w: display must be at least 2x2, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.Filter.Validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Display.Validate(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// LoadFile reads a YAML document on top of Default(); keys missing from the
// file keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
