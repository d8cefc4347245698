package reduction

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrDimensionMismatch reports before/after matrices whose channel or
	// sample counts disagree.
	ErrDimensionMismatch = errors.New("reduction: dimension mismatch")

	// ErrShortSignal reports a channel too short for spectral analysis.
	ErrShortSignal = errors.New("reduction: signal too short for spectral analysis")

	// ErrInvalidSegmentSize reports a Welch segment size that is not a
	// power of two >= 2.
	ErrInvalidSegmentSize = errors.New("reduction: segment size must be a power of two >= 2")
)

// Report holds per-channel noise-reduction results.
type Report struct {
	// ReductionPct is 100 * (1 - PowerAfter/PowerBefore) per channel.
	// Negative values mean filtering increased power.
	ReductionPct []float64
	// PowerBefore and PowerAfter are mean-square powers over the full
	// recording.
	PowerBefore []float64
	PowerAfter  []float64
	// ZeroPower marks channels whose before-power was zero; their
	// ReductionPct is reported as 0.
	ZeroPower []bool
}

// MeanReductionPct returns the average reduction over all channels whose
// before-power was non-zero. Returns 0 if no such channel exists.
func (r *Report) MeanReductionPct() float64 {
	var sum float64
	count := 0
	for ch, pct := range r.ReductionPct {
		if r.ZeroPower[ch] {
			continue
		}
		sum += pct
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Evaluate compares per-channel signal power before and after filtering.
// Both matrices must have identical channel and sample counts; a mismatch
// is fatal and produces no report.
func Evaluate(before, after [][]float64) (*Report, error) {
	if err := validateShapes(before, after); err != nil {
		return nil, err
	}

	channels := len(before)
	rep := &Report{
		ReductionPct: make([]float64, channels),
		PowerBefore:  make([]float64, channels),
		PowerAfter:   make([]float64, channels),
		ZeroPower:    make([]bool, channels),
	}
	for ch := range before {
		pb := meanSquare(before[ch])
		pa := meanSquare(after[ch])
		rep.PowerBefore[ch] = pb
		rep.PowerAfter[ch] = pa
		if pb == 0 {
			rep.ZeroPower[ch] = true
			continue
		}
		rep.ReductionPct[ch] = 100 * (1 - pa/pb)
	}
	return rep, nil
}

func validateShapes(before, after [][]float64) error {
	if len(before) != len(after) {
		return fmt.Errorf("%w: %d channels before, %d after",
			ErrDimensionMismatch, len(before), len(after))
	}
	for ch := range before {
		if len(before[ch]) != len(after[ch]) {
			return fmt.Errorf("%w: channel %d has %d samples before, %d after",
				ErrDimensionMismatch, ch, len(before[ch]), len(after[ch]))
		}
	}
	return nil
}

// meanSquare returns mean(x[i]^2) using the vectorized element product.
func meanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sq := make([]float64, len(x))
	vecmath.MulBlock(sq, x, x)
	var sum float64
	for _, v := range sq {
		sum += v
	}
	return sum / float64(len(x))
}
