package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockdsp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 0.5, cfg.Segment.Overlap)
	assert.Equal(t, 2048, cfg.Segment.WindowSize)
	assert.Equal(t, -1, cfg.Filter.TapChannel)
	assert.True(t, cfg.Filter.PadTaps)
}

func TestLoadFileKeepsUnsetDefaults(t *testing.T) {
	path := writeFile(t, `
log_level: debug
segment:
  overlap: 0.75
filter:
  block_size: 256
  pad_taps: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.75, cfg.Segment.Overlap)
	assert.Equal(t, 2048, cfg.Segment.WindowSize)
	assert.Equal(t, 256, cfg.Filter.BlockSize)
	assert.False(t, cfg.Filter.PadTaps)
	assert.Equal(t, 24, cfg.Output.BitDepth)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "segment:\n  window_size: 512\n")
	t.Setenv("BLOCKDSP_WINDOW_SIZE", "1024")
	t.Setenv("BLOCKDSP_DIRECT", "true")
	t.Setenv("BLOCKDSP_OVERLAP", "0.25")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Segment.WindowSize)
	assert.Equal(t, 0.25, cfg.Segment.Overlap)
	assert.True(t, cfg.Filter.Direct)
}

func TestBadEnvValue(t *testing.T) {
	t.Setenv("BLOCKDSP_BLOCK_SIZE", "many")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLOCKDSP_BLOCK_SIZE")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "segment: [1, 2"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"overlap one", func(c *Config) { c.Segment.Overlap = 1 }},
		{"negative overlap", func(c *Config) { c.Segment.Overlap = -0.1 }},
		{"zero window", func(c *Config) { c.Segment.WindowSize = 0 }},
		{"negative channel", func(c *Config) { c.Segment.Channel = -1 }},
		{"zero block", func(c *Config) { c.Filter.BlockSize = 0 }},
		{"tap channel", func(c *Config) { c.Filter.TapChannel = -2 }},
		{"bit depth", func(c *Config) { c.Output.BitDepth = 12 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	require.NoError(t, Default().Validate())
}

func TestValidationAppliesToFile(t *testing.T) {
	_, err := Load(writeFile(t, "output:\n  bit_depth: 20\n"))
	require.ErrorIs(t, err, ErrInvalid)
}
