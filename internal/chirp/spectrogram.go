package chirp

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrogram slices samples into cols Hann-windowed frames of fftSize
// samples and returns, per column, bins magnitudes covering 0..Nyquist,
// normalized so the loudest cell is 1. Columns are spread evenly over the
// input. It returns nil when there are fewer than fftSize samples.
func Spectrogram(samples []float64, cols, bins, fftSize int) [][]float64 {
	if cols <= 0 || bins <= 0 || fftSize < 2 || len(samples) < fftSize {
		return nil
	}
	step := 0
	if cols > 1 {
		step = (len(samples) - fftSize) / (cols - 1)
	}
	half := fftSize / 2

	out := make([][]float64, cols)
	peak := 0.0
	frame := make([]float64, fftSize)
	for c := 0; c < cols; c++ {
		start := c * step
		copy(frame, samples[start:start+fftSize])
		window.Apply(frame, window.Hann)
		coeffs := fft.FFTReal(frame)

		col := make([]float64, bins)
		for b := 0; b < bins; b++ {
			lo := b * half / bins
			hi := max((b+1)*half/bins, lo+1)
			for k := lo; k < hi; k++ {
				if m := cmplx.Abs(coeffs[k]); m > col[b] {
					col[b] = m
				}
			}
			peak = max(peak, col[b])
		}
		out[c] = col
	}
	if peak > 0 {
		for _, col := range out {
			for b := range col {
				col[b] /= peak
			}
		}
	}
	return out
}

// PeakBin returns the index of the strongest bin in col.
func PeakBin(col []float64) int {
	best := 0
	for i, v := range col {
		if v > col[best] {
			best = i
		}
	}
	return best
}
