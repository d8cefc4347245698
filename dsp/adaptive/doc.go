// Package adaptive provides multi-reference adaptive interference
// cancellation for multichannel recordings.
//
// The engine removes environmental interference from a channel matrix
// (C channels x N samples) using simultaneously recorded reference sensors
// (R channels x N samples). For every time index a regressor of time-lagged
// reference samples predicts the interference seen by each channel; the
// prediction is subtracted and the residual is the output. Two filter banks
// are provided:
//
//   - [LMS] updates weights by stochastic gradient descent. Cost is
//     O(F*R) per sample per channel. Convergence speed depends on the
//     step size Mu; stability is the caller's responsibility.
//   - [RLS] maintains an inverse-correlation estimate and converges much
//     faster at O((F*R)^2) per sample per channel. The forgetting factor
//     Lambda trades memory length against tracking speed.
//
// Channels are filtered independently: there is no cross-channel coupling,
// and [WithParallelism] fans the per-channel work out over goroutines
// without changing the output. Within a channel, samples are processed in
// strict time order.
//
// The first Order-1 output samples of every channel are left at zero. The
// regressor needs Order past reference samples, so the warm-up region has
// no prediction; it is intentionally not back-filled with the raw input.
// Callers that need the leading samples must take them from the input
// matrix.
//
// Both banks validate their configuration and the matrix shapes before any
// sample is processed. There is no partial output: a call either filters
// every channel or returns an error. Numerical divergence (a too-large Mu,
// or covariance erosion in very long RLS runs) is not detected; callers
// should judge the output, for example with measure/reduction.
//
// Basic usage:
//
//	lms, err := adaptive.NewLMS(adaptive.LMSConfig{Order: 10, Mu: 0.01})
//	if err != nil {
//	    return err
//	}
//	filtered, weights, err := lms.Filter(channels, refs)
package adaptive
