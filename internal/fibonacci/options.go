// This file contains configuration options for Fibonacci calculations.

package fibonacci

import "runtime"

// Options configures a Fibonacci calculation.
type Options struct {
	// ParallelThreshold is the bit size threshold for executing the three
	// multiplications of a doubling step on separate goroutines.
	// If 0, DefaultParallelThreshold is used. Negative disables parallel
	// multiplication entirely.
	ParallelThreshold int
}

// normalizeOptions returns a copy of opts with default values filled in for
// zero values. This ensures consistent threshold handling across all
// calculator implementations.
func normalizeOptions(opts Options) Options {
	normalized := opts
	if normalized.ParallelThreshold == 0 {
		normalized.ParallelThreshold = DefaultParallelThreshold
	}
	return normalized
}

// shouldParallelizeMultiplication determines whether the multiplications of a
// doubling step should be parallelized, based on pre-computed operand bit
// lengths. BitLen() traverses the internal representation of big.Int, so the
// caller caches these values once per iteration.
func shouldParallelizeMultiplication(opts Options, fkBitLen, fk1BitLen int) bool {
	if opts.ParallelThreshold < 0 || runtime.GOMAXPROCS(0) <= 1 {
		return false
	}
	maxBitLen := fk1BitLen
	if fkBitLen > maxBitLen {
		maxBitLen = fkBitLen
	}
	threshold := opts.ParallelThreshold
	if threshold == 0 {
		threshold = DefaultParallelThreshold
	}
	return maxBitLen > threshold
}
