package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Slide transitions
	TransitionSeconds = 0.35
	HiddenScale       = 0.9

	// Indicator dots
	DotRadius    = 4
	DotSpacing   = 18
	DotY         = WindowHeight - 24
	DotHitRadius = 9

	// Chirp canvas, in layout units
	ChirpX      = 40
	ChirpY      = 200
	ChirpWidth  = 600
	ChirpHeight = 260

	// Spectrogram next to the chirp canvas
	SpectrogramX       = 670
	SpectrogramY       = 200
	SpectrogramWidth   = 314
	SpectrogramHeight  = 260
	SpectrogramColumns = 64
	SpectrogramBins    = 48
	SpectrogramFFTSize = 512

	// Background particles
	ParticleCount = 50
	ParticleSpeed = 0.5
)

// Env overrides.
const (
	EnvDeck  = "LORAWAN_DECK_FILE"
	EnvStart = "LORAWAN_DECK_START"
	EnvMute  = "LORAWAN_DECK_MUTE"
)

// Config holds the user-tunable settings. Zero values are replaced by
// Default() before a file is applied.
type Config struct {
	// DeckFile is a YAML deck replacing the built-in one. Empty uses the
	// built-in deck.
	DeckFile string `yaml:"deck_file,omitempty"`
	// StartSlide is the index shown at startup, clamped like any jump.
	StartSlide int `yaml:"start_slide"`

	Chirp ChirpConfig `yaml:"chirp"`
	Tone  ToneConfig  `yaml:"tone"`
	Frame FrameConfig `yaml:"frame"`
}

// ChirpConfig shapes the drawn sweep.
type ChirpConfig struct {
	SymbolDuration float64 `yaml:"symbol_duration"`
	K              float64 `yaml:"k"`
	Amplitude      float64 `yaml:"amplitude"`
	Epsilon        float64 `yaml:"epsilon"`
	Step           float64 `yaml:"step"`
	StrokeWidth    float32 `yaml:"stroke_width"`
}

// ToneConfig shapes the audible chirp.
type ToneConfig struct {
	Mute       bool    `yaml:"mute"`
	SampleRate int     `yaml:"sample_rate"`
	F0         float64 `yaml:"f0"`
	F1         float64 `yaml:"f1"`
	SymbolMs   int     `yaml:"symbol_ms"`
	Volume     float64 `yaml:"volume"`
}

// FrameConfig is the example uplink shown in the frame explorer.
type FrameConfig struct {
	DevAddr string `yaml:"dev_addr"`
	FCnt    uint32 `yaml:"fcnt"`
	FPort   uint8  `yaml:"fport"`
	Payload string `yaml:"payload"`
	NwkSKey string `yaml:"nwk_s_key"`
	AppSKey string `yaml:"app_s_key"`
}

func Default() *Config {
	return &Config{
		Chirp: ChirpConfig{
			SymbolDuration: 150,
			K:              0.002,
			Amplitude:      50,
			Epsilon:        2,
			Step:           1.5,
			StrokeWidth:    2,
		},
		Tone: ToneConfig{
			SampleRate: 44100,
			F0:         220,
			F1:         1760,
			SymbolMs:   400,
			Volume:     0.3,
		},
		Frame: FrameConfig{
			DevAddr: "26011bda",
			FCnt:    42,
			FPort:   1,
			Payload: "T=21.5C H=40%",
			NwkSKey: "44024241ed4ce9a68c6a8bc055233fd3",
			AppSKey: "ec925802ae430ca77fd3dd73cb2cc588",
		},
	}
}

// Load reads a YAML config. A missing file yields the defaults. Env
// overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvDeck); v != "" {
		c.DeckFile = v
	}
	if v := os.Getenv(EnvStart); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStart, err)
		}
		c.StartSlide = n
	}
	if v := os.Getenv(EnvMute); v != "" {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMute, err)
		}
		c.Tone.Mute = mute
	}
	return nil
}

// Validate rejects values that would make the sweep or the tone degenerate.
func (c *Config) Validate() error {
	switch {
	case c.Chirp.SymbolDuration <= 0:
		return fmt.Errorf("chirp.symbol_duration must be positive, got %g", c.Chirp.SymbolDuration)
	case c.Chirp.Step <= 0:
		return fmt.Errorf("chirp.step must be positive, got %g", c.Chirp.Step)
	case c.Chirp.Epsilon < 0 || c.Chirp.Epsilon >= c.Chirp.SymbolDuration:
		return fmt.Errorf("chirp.epsilon must be in [0, symbol_duration), got %g", c.Chirp.Epsilon)
	case c.Tone.SampleRate <= 0:
		return fmt.Errorf("tone.sample_rate must be positive, got %d", c.Tone.SampleRate)
	case c.Tone.SymbolMs <= 0:
		return fmt.Errorf("tone.symbol_ms must be positive, got %d", c.Tone.SymbolMs)
	case c.Tone.F0 <= 0 || c.Tone.F1 <= c.Tone.F0:
		return fmt.Errorf("tone: need 0 < f0 < f1, got f0=%g f1=%g", c.Tone.F0, c.Tone.F1)
	case c.Tone.F1 >= float64(c.Tone.SampleRate)/2:
		return fmt.Errorf("tone.f1 %g is above Nyquist for %d Hz", c.Tone.F1, c.Tone.SampleRate)
	}
	return nil
}
