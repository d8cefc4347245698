package adaptive

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	minForgettingFactor = 0.99
	maxForgettingFactor = 1.0
)

// RLSConfig holds the RLS bank parameters.
type RLSConfig struct {
	// Order is the number of time lags per reference channel.
	Order int
	// Lambda is the forgetting factor in [0.99, 1.0]. Values near 1 give
	// long memory (stationary interference); values near 0.99 track
	// non-stationary interference faster but are noisier.
	Lambda float64
	// Delta scales the initial inverse-correlation matrix P = I/Delta.
	Delta float64
	// ResymInterval, when positive, re-symmetrizes P every that many
	// updates: P = (P + P^T)/2. Repeated division by Lambda erodes the
	// symmetry of P over very long recordings; the guard changes the
	// output numerically, so it is off by default.
	ResymInterval int
}

// RLS is a per-channel recursive-least-squares adaptive filter bank. It
// converges in far fewer samples than [LMS] at O((Order*R)^2) cost per
// sample per channel.
type RLS struct {
	cfg  RLSConfig
	bank bankConfig
}

// NewRLS validates the configuration and creates an RLS bank.
func NewRLS(cfg RLSConfig, opts ...Option) (*RLS, error) {
	if cfg.Order <= 0 {
		return nil, fmt.Errorf("%w: order=%d", ErrInvalidFilterOrder, cfg.Order)
	}
	if cfg.Lambda < minForgettingFactor || cfg.Lambda > maxForgettingFactor {
		return nil, fmt.Errorf("%w: lambda=%v", ErrInvalidForgettingFactor, cfg.Lambda)
	}
	if cfg.Delta <= 0 {
		return nil, fmt.Errorf("%w: delta=%v", ErrInvalidDelta, cfg.Delta)
	}
	bank := defaultBankConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&bank)
		}
	}
	return &RLS{cfg: cfg, bank: bank}, nil
}

// Config returns the bank configuration.
func (r *RLS) Config() RLSConfig { return r.cfg }

// Filter cancels the reference-correlated interference in every channel and
// returns the residual matrix plus the final weight tensor. Contract and
// warm-up behavior match [LMS.Filter].
func (r *RLS) Filter(channels, refs [][]float64) ([][]float64, *WeightTensor, error) {
	samples, err := validateShapes(channels, refs)
	if err != nil {
		return nil, nil, err
	}
	if r.cfg.Order > samples {
		return nil, nil, fmt.Errorf("%w: order=%d exceeds %d samples",
			ErrInvalidFilterOrder, r.cfg.Order, samples)
	}
	reg, err := NewRegressor(refs, r.cfg.Order)
	if err != nil {
		return nil, nil, err
	}

	out := make([][]float64, len(channels))
	tensor := newWeightTensor(r.cfg.Order, len(refs), len(channels))
	runChannels(len(channels), r.bank.workers, func(ch int) {
		out[ch] = rlsChannel(channels[ch], reg, r.cfg, tensor.data[ch])
	})
	return out, tensor, nil
}

// rlsChannel runs the RLS recursion over one channel. The weight vector is
// backed by w, so the final snapshot lands in the tensor without a copy;
// the inverse-correlation matrix P is private to this call and discarded.
func rlsChannel(d []float64, reg *Regressor, cfg RLSConfig, w []float64) []float64 {
	m := reg.Length()
	out := make([]float64, len(d))

	wv := mat.NewVecDense(m, w)
	p := mat.NewDense(m, m, nil)
	for i := range m {
		p.Set(i, i, 1/cfg.Delta)
	}

	xs := make([]float64, m)
	x := mat.NewVecDense(m, xs)
	px := mat.NewVecDense(m, nil)
	gain := mat.NewVecDense(m, nil)
	outer := mat.NewDense(m, m, nil)
	scratch := mat.NewDense(m, m, nil)

	updates := 0
	for n := reg.Order() - 1; n < len(d); n++ {
		reg.Fill(xs, n)

		// Kalman gain k = P*x / (lambda + x^T*P*x).
		px.MulVec(p, x)
		den := cfg.Lambda + mat.Dot(x, px)
		gain.ScaleVec(1/den, px)

		e := d[n] - mat.Dot(wv, x)
		out[n] = e
		wv.AddScaledVec(wv, e, gain)

		// P = (P - k*x^T*P) / lambda.
		outer.Outer(1, gain, x)
		scratch.Mul(outer, p)
		p.Sub(p, scratch)
		p.Scale(1/cfg.Lambda, p)

		updates++
		if cfg.ResymInterval > 0 && updates%cfg.ResymInterval == 0 {
			resymmetrize(p)
		}
	}
	return out
}

// resymmetrize replaces p with (p + p^T)/2 in place.
func resymmetrize(p *mat.Dense) {
	rows, _ := p.Dims()
	for i := range rows {
		for j := i + 1; j < rows; j++ {
			v := 0.5 * (p.At(i, j) + p.At(j, i))
			p.Set(i, j, v)
			p.Set(j, i, v)
		}
	}
}
