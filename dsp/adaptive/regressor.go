package adaptive

import "fmt"

// Regressor builds time-lagged regressor vectors from a multichannel
// reference matrix. For time index n it stacks, for each reference channel,
// the Order most recent samples ending at n (inclusive), most-recent-first.
// The layout defines what each weight coefficient corresponds to, so the
// same Regressor convention is shared by both filter banks.
type Regressor struct {
	refs    [][]float64
	order   int
	samples int
}

// NewRegressor validates the reference matrix and wraps it. The matrix is
// not copied; callers must not mutate it while the Regressor is in use.
func NewRegressor(refs [][]float64, order int) (*Regressor, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}
	n := len(refs[0])
	for i, ref := range refs {
		if len(ref) != n {
			return nil, fmt.Errorf("%w: reference channel %d has %d samples, want %d",
				ErrDimensionMismatch, i, len(ref), n)
		}
	}
	if order <= 0 {
		return nil, fmt.Errorf("%w: order=%d", ErrInvalidFilterOrder, order)
	}
	if order > n {
		return nil, fmt.Errorf("%w: order=%d exceeds %d samples", ErrInvalidFilterOrder, order, n)
	}
	return &Regressor{refs: refs, order: order, samples: n}, nil
}

// Length returns the regressor length, Order() * NumRefs().
func (r *Regressor) Length() int { return r.order * len(r.refs) }

// Order returns the number of lags per reference channel.
func (r *Regressor) Order() int { return r.order }

// NumRefs returns the number of reference channels.
func (r *Regressor) NumRefs() int { return len(r.refs) }

// Samples returns the sample count of the reference matrix.
func (r *Regressor) Samples() int { return r.samples }

// Fill writes the regressor for time index n into dst:
//
//	dst[c*Order+j] = refs[c][n-j]   for j = 0..Order-1
//
// dst must have at least Length() elements and n must satisfy
// Order-1 <= n < Samples().
func (r *Regressor) Fill(dst []float64, n int) {
	f := r.order
	for c, ref := range r.refs {
		block := dst[c*f : (c+1)*f]
		for j := range block {
			block[j] = ref[n-j]
		}
	}
}
