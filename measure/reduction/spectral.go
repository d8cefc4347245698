package reduction

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-anc/dsp/window"
)

const defaultSegmentSize = 1024

// Band is a frequency interval in Hz. A periodogram bin belongs to the band
// when LowHz <= f <= HighHz.
type Band struct {
	LowHz  float64
	HighHz float64
}

// BandReduction holds the power reduction inside one frequency band of one
// channel. Powers are relative periodogram sums; only their ratio is
// calibrated.
type BandReduction struct {
	Band
	ReductionPct float64
	PowerBefore  float64
	PowerAfter   float64
	// ZeroPower marks a band with zero before-power; ReductionPct is 0.
	ZeroPower bool
}

// SpectralConfig holds Welch-periodogram parameters for [EvaluateSpectral].
type SpectralConfig struct {
	// SampleRate in Hz; defaults to the segment size, putting band edges
	// in bin units.
	SampleRate float64
	// SegmentSize is the FFT segment length, a power of two >= 2; other
	// values are rejected. Zero selects the default of 1024. The size is
	// clamped to the recording length. Segments overlap 50%.
	SegmentSize int
	// WindowType selects the Welch window; the zero value is Hann.
	WindowType window.Type
	// Bands to evaluate; defaults to a single band covering the whole
	// spectrum up to Nyquist.
	Bands []Band
}

// SpectralReport holds per-channel, per-band reduction results.
type SpectralReport struct {
	// Channels[ch] lists one BandReduction per configured band.
	Channels [][]BandReduction
	// SegmentSize and BinHz describe the periodogram resolution used.
	SegmentSize int
	BinHz       float64
}

// EvaluateSpectral compares Welch-averaged periodograms of every channel
// before and after filtering, aggregated into the configured frequency
// bands. Shape mismatches are fatal, as in [Evaluate].
func EvaluateSpectral(before, after [][]float64, cfg SpectralConfig) (*SpectralReport, error) {
	if err := validateShapes(before, after); err != nil {
		return nil, err
	}
	segSize := cfg.SegmentSize
	if segSize == 0 {
		segSize = defaultSegmentSize
	}
	// Validated before any work: a degenerate segment would stall the
	// Welch hop, and a non-power-of-two has no FFT plan.
	if segSize < 2 || segSize&(segSize-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSegmentSize, cfg.SegmentSize)
	}
	// Clamp the segment size to the shortest channel so every channel
	// yields at least one full segment. Halving preserves the power of
	// two, and the floor of 2 keeps the hop positive.
	samples := 0
	for ch := range before {
		if len(before[ch]) < 2 {
			return nil, ErrShortSignal
		}
		if samples == 0 || len(before[ch]) < samples {
			samples = len(before[ch])
		}
	}
	for segSize > samples && segSize > 2 {
		segSize /= 2
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = float64(segSize)
	}
	binHz := sampleRate / float64(segSize)

	coeffs := window.Generate(cfg.WindowType, segSize)

	bands := cfg.Bands
	if len(bands) == 0 {
		bands = []Band{{LowHz: 0, HighHz: sampleRate / 2}}
	}

	plan, err := algofft.NewPlan64(segSize)
	if err != nil {
		return nil, err
	}

	rep := &SpectralReport{
		Channels:    make([][]BandReduction, len(before)),
		SegmentSize: segSize,
		BinHz:       binHz,
	}
	for ch := range before {
		psdBefore, err := welchPSD(plan, before[ch], coeffs, segSize)
		if err != nil {
			return nil, err
		}
		psdAfter, err := welchPSD(plan, after[ch], coeffs, segSize)
		if err != nil {
			return nil, err
		}
		rep.Channels[ch] = bandReductions(psdBefore, psdAfter, bands, binHz)
	}
	return rep, nil
}

// welchPSD averages 50%-overlapping windowed periodograms of x and returns
// the non-negative-frequency power bins [0..segSize/2].
func welchPSD(plan *algofft.Plan[complex128], x, coeffs []float64, segSize int) ([]float64, error) {
	hop := segSize / 2
	segments := 0

	binCount := segSize/2 + 1
	psd := make([]float64, binCount)
	windowed := make([]float64, segSize)
	inData := make([]complex128, segSize)
	out := make([]complex128, segSize)
	re := make([]float64, binCount)
	im := make([]float64, binCount)
	power := make([]float64, binCount)

	for start := 0; start+segSize <= len(x); start += hop {
		window.ApplyTo(windowed, x[start:start+segSize], coeffs)
		for i, v := range windowed {
			inData[i] = complex(v, 0)
		}
		if err := plan.Forward(out, inData); err != nil {
			return nil, err
		}
		for i := range binCount {
			re[i] = real(out[i])
			im[i] = imag(out[i])
		}
		vecmath.Power(power, re, im)
		for i, p := range power {
			psd[i] += p
		}
		segments++
	}

	// The segment size is clamped to the recording length up front, so at
	// least one segment always fits.
	for i := range psd {
		psd[i] /= float64(segments)
	}
	return psd, nil
}

func bandReductions(psdBefore, psdAfter []float64, bands []Band, binHz float64) []BandReduction {
	out := make([]BandReduction, len(bands))
	for i, band := range bands {
		var pb, pa float64
		for bin := range psdBefore {
			f := float64(bin) * binHz
			if f < band.LowHz || f > band.HighHz {
				continue
			}
			pb += psdBefore[bin]
			pa += psdAfter[bin]
		}
		br := BandReduction{Band: band, PowerBefore: pb, PowerAfter: pa}
		if pb == 0 {
			br.ZeroPower = true
		} else {
			br.ReductionPct = 100 * (1 - pa/pb)
		}
		out[i] = br
	}
	return out
}
