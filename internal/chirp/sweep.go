// Package chirp draws and synthesizes the LoRa up-chirp: a sine whose
// instantaneous frequency grows linearly over one symbol.
package chirp

import (
	"image/color"
	"math"
)

// Params fixes the shape of the drawn sweep. Units are display
// (device-independent) pixels.
type Params struct {
	// SymbolDuration is the length of one sweep period along x.
	SymbolDuration float64
	// K scales the quadratic phase: y = sin(K*t*t).
	K float64
	// Amplitude is the peak displacement from the center line. It is capped
	// to MaxAmplitudeRatio of the surface height.
	Amplitude float64
	// Epsilon is the width of the wrap zone that starts a new stroke.
	Epsilon float64
	// Step advances the time offset once per frame.
	Step float64

	StrokeWidth float32
	Stroke      color.RGBA
	Background  color.RGBA
}

const MaxAmplitudeRatio = 0.45

func DefaultParams() Params {
	return Params{
		SymbolDuration: 150,
		K:              0.002,
		Amplitude:      50,
		Epsilon:        2,
		Step:           1.5,
		StrokeWidth:    2,
		Stroke:         color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
		Background:     color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff},
	}
}

// Point is a vertex in display units.
type Point struct {
	X, Y float64
}

// Segment is one continuous stroke.
type Segment []Point

// Phase returns the position inside the current sweep period for column x.
func (p Params) Phase(x, offset float64) float64 {
	t := math.Mod(x+offset, p.SymbolDuration)
	if t < 0 {
		t += p.SymbolDuration
	}
	return t
}

// Displacement returns the vertical offset from the center line at phase t.
func (p Params) Displacement(t, amplitude float64) float64 {
	return amplitude * math.Sin(p.K*t*t)
}

func (p Params) amplitudeFor(height float64) float64 {
	a := p.Amplitude
	if limit := height * MaxAmplitudeRatio; a > limit {
		a = limit
	}
	return a
}

// Trace samples the sweep at every integer column in [0, width) and splits it
// into strokes. A new stroke starts when t enters the wrap zone [0, Epsilon),
// so the tail of one period is never joined to the head of the next.
// Zero-sized surfaces yield no segments.
func Trace(width, height, offset float64, p Params) []Segment {
	if width <= 0 || height <= 0 || p.SymbolDuration <= 0 {
		return nil
	}
	centerY := height / 2
	amp := p.amplitudeFor(height)

	var (
		segs  []Segment
		cur   Segment
		prevT = math.Inf(1)
	)
	cols := int(math.Ceil(width))
	for i := 0; i < cols; i++ {
		x := float64(i)
		t := p.Phase(x, offset)
		wrapped := t < prevT || (t < p.Epsilon && prevT >= p.Epsilon)
		if wrapped && len(cur) > 0 {
			segs = append(segs, cur)
			cur = nil
		}
		cur = append(cur, Point{X: x, Y: centerY + p.Displacement(t, amp)})
		prevT = t
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}
