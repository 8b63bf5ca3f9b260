package chirp

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Tone streams an endless train of linear up-chirps: every symbol sweeps
// from F0 to F1 and the next symbol starts again at F0.
type Tone struct {
	SampleRate beep.SampleRate
	F0, F1     float64
	Symbol     time.Duration
	Volume     float64

	pos int
}

func NewTone(sr beep.SampleRate, f0, f1 float64, symbol time.Duration) *Tone {
	return &Tone{SampleRate: sr, F0: f0, F1: f1, Symbol: symbol, Volume: 0.3}
}

// SymbolSamples returns the number of samples in one symbol.
func (t *Tone) SymbolSamples() int {
	n := t.SampleRate.N(t.Symbol)
	if n < 1 {
		n = 1
	}
	return n
}

// At returns the mono sample at index i inside a symbol.
func (t *Tone) At(i int) float64 {
	n := t.SymbolSamples()
	sr := float64(t.SampleRate)
	tt := float64(i%n) / sr
	period := float64(n) / sr
	rate := (t.F1 - t.F0) / period
	return t.Volume * math.Sin(2*math.Pi*(t.F0*tt+rate*tt*tt/2))
}

func (t *Tone) Stream(samples [][2]float64) (int, bool) {
	n := t.SymbolSamples()
	for i := range samples {
		v := t.At(t.pos)
		samples[i] = [2]float64{v, v}
		t.pos++
		if t.pos >= n {
			t.pos = 0
		}
	}
	return len(samples), true
}

func (t *Tone) Err() error { return nil }

// Symbols renders count whole symbols as mono samples without touching the
// streaming position.
func (t *Tone) Symbols(count int) []float64 {
	n := t.SymbolSamples()
	out := make([]float64, n*count)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}
