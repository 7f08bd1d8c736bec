// Package config loads the blockdsp command configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-blockdsp/dsp/segment"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BLOCKDSP_"

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the complete command configuration.
type Config struct {
	LogLevel string        `yaml:"log_level"` // debug, info, warn, error
	Segment  SegmentConfig `yaml:"segment"`
	Filter   FilterConfig  `yaml:"filter"`
	Output   OutputConfig  `yaml:"output"`
}

// SegmentConfig drives the resynth command.
type SegmentConfig struct {
	Overlap    float64 `yaml:"overlap"`     // overlap factor in [0, 1)
	WindowSize int     `yaml:"window_size"` // samples per window
	Channel    int     `yaml:"channel"`     // source channel to segment
}

// FilterConfig drives the filter command.
type FilterConfig struct {
	BlockSize  int  `yaml:"block_size"`  // samples per Filter call
	TapChannel int  `yaml:"tap_channel"` // -1 uses every channel of the tap file
	PadTaps    bool `yaml:"pad_taps"`    // zero-extend taps for exact linear convolution
	Direct     bool `yaml:"direct"`      // time-domain filter instead of the block engine
}

// OutputConfig describes written files.
type OutputConfig struct {
	BitDepth int `yaml:"bit_depth"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Segment: SegmentConfig{
			Overlap:    segment.DefaultOverlap,
			WindowSize: segment.DefaultWindowSize,
		},
		Filter: FilterConfig{
			BlockSize:  1024,
			TapChannel: -1,
			PadTaps:    true,
		},
		Output: OutputConfig{
			BitDepth: 24,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, applies
// BLOCKDSP_* environment overrides and validates the result. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type override struct {
	key   string
	apply func(string) error
}

func (cfg *Config) overrides() []override {
	return []override{
		{"LOG_LEVEL", stringSetter(&cfg.LogLevel)},
		{"OVERLAP", floatSetter(&cfg.Segment.Overlap)},
		{"WINDOW_SIZE", intSetter(&cfg.Segment.WindowSize)},
		{"CHANNEL", intSetter(&cfg.Segment.Channel)},
		{"BLOCK_SIZE", intSetter(&cfg.Filter.BlockSize)},
		{"TAP_CHANNEL", intSetter(&cfg.Filter.TapChannel)},
		{"PAD_TAPS", boolSetter(&cfg.Filter.PadTaps)},
		{"DIRECT", boolSetter(&cfg.Filter.Direct)},
		{"BIT_DEPTH", intSetter(&cfg.Output.BitDepth)},
	}
}

func (cfg *Config) applyEnvOverrides(lookup func(string) (string, bool)) error {
	for _, o := range cfg.overrides() {
		val, ok := lookup(EnvPrefix + o.key)
		if !ok {
			continue
		}
		if err := o.apply(val); err != nil {
			return fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, o.key, val, err)
		}
	}
	return nil
}

func stringSetter(dst *string) func(string) error {
	return func(v string) error {
		*dst = v
		return nil
	}
}

func intSetter(dst *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func floatSetter(dst *float64) func(string) error {
	return func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst = f
		return nil
	}
}

func boolSetter(dst *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
}

// Validate checks value ranges.
func (cfg *Config) Validate() error {
	switch {
	case !(cfg.Segment.Overlap >= 0 && cfg.Segment.Overlap < 1):
		return fmt.Errorf("%w: segment.overlap %v not in [0, 1)", ErrInvalid, cfg.Segment.Overlap)
	case cfg.Segment.WindowSize <= 0:
		return fmt.Errorf("%w: segment.window_size must be positive, got %d", ErrInvalid, cfg.Segment.WindowSize)
	case cfg.Segment.Channel < 0:
		return fmt.Errorf("%w: segment.channel must not be negative, got %d", ErrInvalid, cfg.Segment.Channel)
	case cfg.Filter.BlockSize <= 0:
		return fmt.Errorf("%w: filter.block_size must be positive, got %d", ErrInvalid, cfg.Filter.BlockSize)
	case cfg.Filter.TapChannel < -1:
		return fmt.Errorf("%w: filter.tap_channel must be -1 or a channel index, got %d", ErrInvalid, cfg.Filter.TapChannel)
	}
	switch cfg.Output.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: output.bit_depth %d (want 8, 16, 24 or 32)", ErrInvalid, cfg.Output.BitDepth)
	}
	return nil
}
