package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X_k|²/n for k = 0..n/2 of the mean-removed series.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for k := range ps {
		a := cmplx.Abs(spectrum[k])
		ps[k] = a * a / float64(n)
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// of a series sampled every dt seconds, or 0 if there is none.
func DominantFrequency(series []float64, dt float64) float64 {
	ps := PowerSpectrum(series)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] == 0 {
		return 0
	}
	return float64(best) / (float64(len(series)) * dt)
}
