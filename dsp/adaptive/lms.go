package adaptive

import "fmt"

// LMSConfig holds the LMS bank parameters.
type LMSConfig struct {
	// Order is the number of time lags per reference channel.
	Order int
	// Mu is the fixed step size shared by all channels. The engine does
	// not bound or detect divergence; a too-large Mu grows without bound.
	Mu float64
}

// LMS is a per-channel least-mean-squares adaptive filter bank.
type LMS struct {
	cfg  LMSConfig
	bank bankConfig
}

// NewLMS validates the configuration and creates an LMS bank.
func NewLMS(cfg LMSConfig, opts ...Option) (*LMS, error) {
	if cfg.Order <= 0 {
		return nil, fmt.Errorf("%w: order=%d", ErrInvalidFilterOrder, cfg.Order)
	}
	if cfg.Mu <= 0 {
		return nil, fmt.Errorf("%w: mu=%v", ErrInvalidStepSize, cfg.Mu)
	}
	bank := defaultBankConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&bank)
		}
	}
	return &LMS{cfg: cfg, bank: bank}, nil
}

// Config returns the bank configuration.
func (l *LMS) Config() LMSConfig { return l.cfg }

// Filter cancels the reference-correlated interference in every channel and
// returns the residual matrix plus the final weight tensor. The inputs are
// never mutated; the filtered matrix has the same shape as channels. The
// first Order-1 samples of each output channel stay zero (warm-up region,
// see the package documentation).
func (l *LMS) Filter(channels, refs [][]float64) ([][]float64, *WeightTensor, error) {
	samples, err := validateShapes(channels, refs)
	if err != nil {
		return nil, nil, err
	}
	if l.cfg.Order > samples {
		return nil, nil, fmt.Errorf("%w: order=%d exceeds %d samples",
			ErrInvalidFilterOrder, l.cfg.Order, samples)
	}
	reg, err := NewRegressor(refs, l.cfg.Order)
	if err != nil {
		return nil, nil, err
	}

	out := make([][]float64, len(channels))
	tensor := newWeightTensor(l.cfg.Order, len(refs), len(channels))
	runChannels(len(channels), l.bank.workers, func(ch int) {
		out[ch] = lmsChannel(channels[ch], reg, l.cfg.Mu, tensor.data[ch])
	})
	return out, tensor, nil
}

// lmsChannel runs the LMS recursion over one channel. w receives the final
// weight snapshot; the intermediate state lives only in this call.
func lmsChannel(d []float64, reg *Regressor, mu float64, w []float64) []float64 {
	out := make([]float64, len(d))
	x := make([]float64, reg.Length())
	for n := reg.Order() - 1; n < len(d); n++ {
		reg.Fill(x, n)

		var yhat float64
		for k, xk := range x {
			yhat += w[k] * xk
		}
		e := d[n] - yhat
		out[n] = e

		g := mu * e
		for k, xk := range x {
			w[k] += g * xk
		}
	}
	return out
}
