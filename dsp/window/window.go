// Package window provides the window functions used by the spectral
// noise-reduction evaluator. Only symmetric forms of a few classic windows
// are implemented; coefficient application dispatches to SIMD-optimized
// vector math where available.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The zero value is Hann, so callers
// embedding a Type in a config get a sensible default while every type,
// including rectangular, stays selectable.
type Type int

const (
	TypeHann Type = iota
	TypeRectangular
	TypeHamming
	TypeBlackman
)

// Generate returns the symmetric window coefficients of the given type and
// size. Returns nil for size <= 0.
func Generate(t Type, size int) []float64 {
	if size <= 0 {
		return nil
	}
	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out
	}

	m := float64(size - 1)
	for i := range out {
		phase := 2 * math.Pi * float64(i) / m
		switch t {
		case TypeRectangular:
			out[i] = 1
		case TypeHamming:
			out[i] = 0.54 - 0.46*math.Cos(phase)
		case TypeBlackman:
			out[i] = 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
		default: // TypeHann
			out[i] = 0.5 * (1 - math.Cos(phase))
		}
	}
	return out
}

// Apply multiplies samples by coeffs in place. Both slices must have the
// same length.
func Apply(samples, coeffs []float64) {
	vecmath.MulBlockInPlace(samples, coeffs)
}

// ApplyTo writes samples[i] * coeffs[i] into dst. All slices must have the
// same length.
func ApplyTo(dst, samples, coeffs []float64) {
	vecmath.MulBlock(dst, samples, coeffs)
}

// CoherentGain returns the mean of the coefficients, the DC gain the window
// applies to a coherent signal. Returns 0 for empty coefficients.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs))
}
