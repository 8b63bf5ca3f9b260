package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvDeck, "")
	t.Setenv(EnvStart, "")
	t.Setenv(EnvMute, "")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 150.0, cfg.Chirp.SymbolDuration)
	assert.Equal(t, 1.5, cfg.Chirp.Step)
	assert.Equal(t, 44100, cfg.Tone.SampleRate)
	assert.Equal(t, 0, cfg.StartSlide)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.StartSlide = 3
	cfg.Chirp.Step = 2.5
	cfg.Tone.Mute = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chirp:\n  amplitude: 30\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.Chirp.Amplitude)
	assert.Equal(t, 150.0, cfg.Chirp.SymbolDuration)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chirp: [1, 2"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		t.Setenv(EnvDeck, "/tmp/deck.yaml")
		t.Setenv(EnvStart, "4")
		t.Setenv(EnvMute, "true")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/deck.yaml", cfg.DeckFile)
		assert.Equal(t, 4, cfg.StartSlide)
		assert.True(t, cfg.Tone.Mute)
	})

	t.Run("bad start", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvStart, "four")
		_, err := Load("")
		assert.ErrorContains(t, err, EnvStart)
	})

	t.Run("bad mute", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvMute, "loud")
		_, err := Load("")
		assert.ErrorContains(t, err, EnvMute)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *Config)
		msg  string
	}{
		{"symbol duration", func(c *Config) { c.Chirp.SymbolDuration = 0 }, "symbol_duration"},
		{"step", func(c *Config) { c.Chirp.Step = -1 }, "chirp.step"},
		{"epsilon", func(c *Config) { c.Chirp.Epsilon = 500 }, "epsilon"},
		{"sample rate", func(c *Config) { c.Tone.SampleRate = 0 }, "sample_rate"},
		{"symbol ms", func(c *Config) { c.Tone.SymbolMs = 0 }, "symbol_ms"},
		{"f order", func(c *Config) { c.Tone.F1 = c.Tone.F0 }, "f0 < f1"},
		{"nyquist", func(c *Config) { c.Tone.F1 = 30000 }, "Nyquist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.msg)
		})
	}
}
