package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// These constants control the behavior of adaptive algorithms and are based on
// empirical benchmarks across various hardware configurations.

const (
	// DefaultParallelThreshold is the default bit size threshold at which the
	// three multiplications of a doubling step are executed on separate
	// goroutines. Below this threshold, the overhead of goroutine creation
	// exceeds the benefits of parallelism.
	//
	// Empirically determined: 4096 bits provides optimal performance on most
	// modern multi-core CPUs for Fibonacci calculations.
	DefaultParallelThreshold = 4096

	// MaxFibUint64 = 93 because F(93) is the largest Fibonacci number that
	// fits in a uint64, as F(94) exceeds 2^64. Indexes at or below this value
	// are computed by plain iterative addition without big.Int overhead.
	MaxFibUint64 = 93
)

// ─────────────────────────────────────────────────────────────────────────────
// Growth Rate Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// Used to estimate the bit length of F(n): F(n) has about n*log2(phi) bits.
	FibonacciGrowthFactor = 0.69424

	// Log10Phi is log10(phi). F(n) has close to n*log10(phi) decimal digits;
	// the digit estimator refines this with the -log10(sqrt(5)) correction
	// from Binet's formula.
	Log10Phi = 0.20898764024997873

	// Log10Sqrt5 is log10(sqrt(5)), the constant term of Binet's formula.
	Log10Sqrt5 = 0.3494850021680094
)
