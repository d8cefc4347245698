// Package reduction quantifies how much signal power an interference-
// cancellation pass removed.
//
// [Evaluate] compares per-channel mean-square power before and after
// filtering and reports the reduction as a percentage. A negative
// percentage means filtering increased power for that channel; it is
// reported as-is so callers can decide how to react. Channels whose
// before-power is zero are flagged instead of causing a division by zero.
//
// [EvaluateSpectral] breaks the same comparison down over frequency using
// Welch-averaged periodograms, which localizes the reduction to bands such
// as powerline harmonics.
package reduction
