package config

import "runtime"

// Threshold resolution chain (highest priority first):
//   1. CLI flag (--threshold)
//   2. Environment variable (FIBRANGE_THRESHOLD)
//   3. Adaptive hardware estimation (this file)
//   4. Static default in fibonacci/constants.go

// ApplyAdaptiveThresholds adjusts the configuration thresholds based on
// hardware characteristics (CPU cores) when default values are detected.
// This provides automatic performance tuning without requiring explicit
// calibration.
//
// The function only modifies thresholds that are set to their zero default,
// preserving any user-specified overrides via command-line flags.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of the
// optimal parallel threshold without running benchmarks. Fewer cores means
// goroutine overhead dominates sooner, so the threshold rises.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return -1 // No parallelism
	case numCPU <= 2:
		return 8192 // High threshold - parallelism overhead is significant
	case numCPU <= 4:
		return 4096 // Default
	case numCPU <= 8:
		return 2048 // Can use more parallelism
	case numCPU <= 16:
		return 1024 // Many cores available
	default:
		return 512 // High core count - aggressive parallelism
	}
}
