package fibonacci

import (
	"context"
	"fmt"
	"math/big"
)

// IterativeAddition computes F(n) by direct application of the recurrence
// F(n) = F(n-1) + F(n-2), performing n big.Int additions.
//
// At O(n) additions it is far slower than Fast Doubling for large n, but its
// simplicity makes it the reference oracle: the test suite compares every
// other algorithm against it over a wide index range. It is also registered
// as a selectable strategy so callers can cross-check results at runtime.
type IterativeAddition struct{}

// cancellationCheckInterval is the number of additions between context
// checks. Checking every iteration would dominate the loop for small
// operands.
const cancellationCheckInterval = 1024

// Name returns the descriptive name of the algorithm.
func (it *IterativeAddition) Name() string {
	return "Iterative Addition (O(n), Reference)"
}

// CalculateCore computes F(n) by iterative addition.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - reporter: The function used for reporting progress.
//   - n: The index of the Fibonacci number to calculate.
//   - opts: Unused; the algorithm has no tunable thresholds.
//
// Returns:
//   - *big.Int: The calculated Fibonacci number.
//   - error: An error if one occurred (e.g., context cancellation).
func (it *IterativeAddition) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, _ Options) (*big.Int, error) {
	if reporter == nil {
		reporter = nopReporter
	}
	a := big.NewInt(0)
	b := big.NewInt(1)

	lastReported := -1.0
	for i := uint64(0); i < n; i++ {
		if i%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("iterative addition canceled at step %d/%d: %w", i, n, err)
			}
			progress := float64(i) / float64(n)
			if progress-lastReported >= 0.01 {
				lastReported = progress
				reporter(progress)
			}
		}
		a.Add(a, b)
		a, b = b, a
	}
	return a, nil
}
