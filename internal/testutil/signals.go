package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic sine wave.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates uniform white noise in [-amplitude, amplitude] with a
// fixed seed for reproducibility.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// CoupledInterference convolves a reference signal with short coupling taps,
// simulating how an interference source leaks into a measurement channel:
//
//	y[n] = sum_k taps[k] * ref[n-k]   (ref[<0] treated as zero)
func CoupledInterference(ref, taps []float64) []float64 {
	out := make([]float64, len(ref))
	for n := range ref {
		var y float64
		for k, h := range taps {
			if n-k < 0 {
				break
			}
			y += h * ref[n-k]
		}
		out[n] = y
	}
	return out
}

// Add returns the element-wise sum of a and b, which must have equal length.
func Add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// MeanSquare returns mean(x[i]^2), or 0 for an empty slice.
func MeanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum / float64(len(x))
}

// Correlation returns the normalized correlation coefficient of a and b at
// zero lag: dot(a,b) / (|a| * |b|). Returns 0 if either vector is zero.
func Correlation(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / math.Sqrt(na*nb)
}
