package chirp

import (
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// TapRingSize is how many recent samples the player keeps for the
// spectrogram.
const TapRingSize = 8192

// Player plays a Tone through the system speaker: tone -> tap -> ctrl.
// The speaker is initialized lazily on the first Toggle.
type Player struct {
	tone *Tone
	tap  *Tap
	ctrl *beep.Ctrl

	initDone bool
	paused   bool
	logger   *zap.Logger
}

func NewPlayer(tone *Tone, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	tap := NewTap(tone, TapRingSize)
	return &Player{
		tone:   tone,
		tap:    tap,
		ctrl:   &beep.Ctrl{Streamer: tap, Paused: true},
		paused: true,
		logger: logger,
	}
}

// Toggle starts playback on first use and flips pause afterwards.
func (p *Player) Toggle() error {
	if !p.initDone {
		format := p.tone.SampleRate
		if err := speaker.Init(format, format.N(time.Second/20)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
		p.paused = false
		p.ctrl.Paused = false
		speaker.Play(p.ctrl)
		p.logger.Info("chirp tone playing",
			zap.Int("sample_rate", int(format)),
			zap.Float64("f0", p.tone.F0),
			zap.Float64("f1", p.tone.F1))
		return nil
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
	return nil
}

// Pause silences the tone if it is playing.
func (p *Player) Pause() {
	if !p.initDone || p.paused {
		return
	}
	speaker.Lock()
	p.paused = true
	p.ctrl.Paused = true
	speaker.Unlock()
}

func (p *Player) Playing() bool { return p.initDone && !p.paused }

// Recent returns the last n samples that reached the speaker.
func (p *Player) Recent(n int) []float64 { return p.tap.Snapshot(n) }

// ExportWAV writes symbols whole chirp symbols from a fresh copy of t as a
// 16-bit stereo WAV.
func ExportWAV(w io.WriteSeeker, t *Tone, symbols int) error {
	if symbols < 1 {
		return fmt.Errorf("export wav: symbols must be positive, got %d", symbols)
	}
	src := NewTone(t.SampleRate, t.F0, t.F1, t.Symbol)
	src.Volume = t.Volume
	format := beep.Format{SampleRate: t.SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, beep.Take(src.SymbolSamples()*symbols, src), format); err != nil {
		return fmt.Errorf("export wav: %w", err)
	}
	return nil
}
