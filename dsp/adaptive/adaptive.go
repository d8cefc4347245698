package adaptive

import (
	"fmt"
	"runtime"
	"sync"
)

type bankConfig struct {
	workers int
}

func defaultBankConfig() bankConfig {
	return bankConfig{workers: 1}
}

// Option configures a filter bank.
type Option func(*bankConfig)

// WithParallelism fans the per-channel filtering out over n worker
// goroutines. n <= 0 selects GOMAXPROCS. The default is sequential
// execution; the output is bit-identical either way, since channels share
// no state.
func WithParallelism(n int) Option {
	return func(cfg *bankConfig) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		cfg.workers = n
	}
}

// WeightTensor holds the final converged weight vector of every channel,
// shape Order x NumRefs x NumChannels. It is produced once by a bank's
// Filter call and immutable afterward.
type WeightTensor struct {
	order int
	refs  int
	data  [][]float64 // per channel, flattened ref-major, lag-minor
}

func newWeightTensor(order, refs, channels int) *WeightTensor {
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, order*refs)
	}
	return &WeightTensor{order: order, refs: refs, data: data}
}

// Order returns the number of lags per reference channel.
func (t *WeightTensor) Order() int { return t.order }

// NumRefs returns the number of reference channels.
func (t *WeightTensor) NumRefs() int { return t.refs }

// NumChannels returns the number of filtered channels.
func (t *WeightTensor) NumChannels() int { return len(t.data) }

// At returns the weight for channel ch, reference ref and lag lag.
// Lag 0 is the most recent sample, matching the Regressor layout.
func (t *WeightTensor) At(ch, ref, lag int) float64 {
	return t.data[ch][ref*t.order+lag]
}

// Channel returns a copy of channel ch's flattened weight vector in
// Regressor layout.
func (t *WeightTensor) Channel(ch int) []float64 {
	w := make([]float64, len(t.data[ch]))
	copy(w, t.data[ch])
	return w
}

// validateShapes checks that all channel rows and all reference rows share
// one sample count. It returns that count. Called before any sample is
// processed, so a failed call leaves no partial output.
func validateShapes(channels, refs [][]float64) (int, error) {
	if len(refs) == 0 {
		return 0, ErrNoReferences
	}
	n := len(refs[0])
	for i, ref := range refs {
		if len(ref) != n {
			return 0, fmt.Errorf("%w: reference channel %d has %d samples, want %d",
				ErrDimensionMismatch, i, len(ref), n)
		}
	}
	for i, ch := range channels {
		if len(ch) != n {
			return 0, fmt.Errorf("%w: channel %d has %d samples, reference has %d",
				ErrDimensionMismatch, i, len(ch), n)
		}
	}
	return n, nil
}

// runChannels executes fn for every channel index, either sequentially or
// on a bounded worker pool. fn must touch only its own channel's state.
func runChannels(count, workers int, fn func(ch int)) {
	if workers > count {
		workers = count
	}
	if workers <= 1 {
		for ch := range count {
			fn(ch)
		}
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for ch := range jobs {
				fn(ch)
			}
		}()
	}
	for ch := range count {
		jobs <- ch
	}
	close(jobs)
	wg.Wait()
}
