package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"
	"sync"

	"github.com/agbru/fibrange/internal/parallel"
)

// FastDoubling implements the "Fast Doubling" algorithm for calculating
// Fibonacci numbers.
//
// Formula Derivation:
// The algorithm's identities can be derived from the matrix exponentiation form:
//
//	[ F(n+1) F(n)   ] = [ 1 1 ]^n
//	[ F(n)   F(n-1) ]   [ 1 0 ]
//
// Squaring the matrix for F(k) yields the matrix for F(2k), from which we
// extract the two core identities:
//
//	F(2k)   = F(k) * [2*F(k+1) - F(k)]
//	F(2k+1) = F(k+1)² + F(k)²
//
// Starting from the pair (F(0), F(1)) = (0, 1), the loop scans the binary
// representation of n from its most significant bit to its least significant
// bit. Each iteration applies the doubling step; when the current bit is 1 the
// pair is advanced by one additional index. The formulation is strictly
// iterative: recursion depth proportional to log n is avoided and the six
// big.Int temporaries of the CalculationState can be reused across iterations.
//
// Algorithmic Complexity:
// The time complexity is often cited as O(log n), which refers to the number
// of arithmetic operations. Since we use arbitrary-precision integers
// (math/big), the cost of each multiplication dominates: F(n) has Θ(n) bits,
// so if M(k) is the cost of multiplying two k-bit numbers, the total cost is
// O(log n * M(n)) — super-logarithmic in wall-clock time even though the
// multiplication count is logarithmic.
//
// Optimization Details:
//   - Zero-Allocation Strategy: a sync.Pool reuses CalculationState objects,
//     which significantly reduces memory allocation and garbage collector
//     overhead during the main loop.
//   - Multi-core Parallelism: above a configurable bit-size threshold, the
//     three multiplications of the doubling step run on separate goroutines.
//     The threshold defaults to 4096 bits, determined empirically to balance
//     goroutine overhead against parallel gains.
type FastDoubling struct{}

// Name returns the descriptive name of the algorithm.
func (fd *FastDoubling) Name() string {
	return "Fast Doubling (O(log n), Parallel, Zero-Alloc)"
}

// CalculateCore computes F(n) using the Fast Doubling algorithm.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - reporter: The function used for reporting progress.
//   - n: The index of the Fibonacci number to calculate.
//   - opts: Configuration options for the calculation.
//
// Returns:
//   - *big.Int: The calculated Fibonacci number.
//   - error: An error if one occurred (e.g., context cancellation).
func (fd *FastDoubling) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, opts Options) (*big.Int, error) {
	s := AcquireState()
	defer ReleaseState(s)

	if err := runDoublingLoop(ctx, reporter, n, normalizeOptions(opts), s); err != nil {
		return nil, err
	}
	return new(big.Int).Set(s.FK), nil
}

// Pair holds the adjacent Fibonacci values (F(n), F(n+1)) produced by one
// doubling run. Both integers are freshly allocated copies owned by the
// caller; the internal scratch state is returned to the pool.
type Pair struct {
	// F is F(n).
	F *big.Int
	// Next is F(n+1).
	Next *big.Int
}

// ComputePair computes the pair (F(n), F(n+1)) using the Fast Doubling
// algorithm. The doubling loop maintains the adjacent-pair invariant
// throughout, so both values are available at no extra multiplication cost.
func ComputePair(ctx context.Context, n uint64, opts Options) (Pair, error) {
	s := AcquireState()
	defer ReleaseState(s)

	if err := runDoublingLoop(ctx, nopReporter, n, normalizeOptions(opts), s); err != nil {
		return Pair{}, err
	}
	return Pair{
		F:    new(big.Int).Set(s.FK),
		Next: new(big.Int).Set(s.FK1),
	}, nil
}

// runDoublingLoop executes the Fast Doubling loop over the bits of n, leaving
// FK = F(n) and FK1 = F(n+1) in the state. The state must be freshly reset
// (FK=0, FK1=1); opts must be normalized.
//
// Exactly bits.Len64(n) iterations are performed, each costing three
// big.Int multiplications plus shifts and additions.
func runDoublingLoop(ctx context.Context, reporter ProgressReporter, n uint64, opts Options, s *CalculationState) error {
	if reporter == nil {
		reporter = nopReporter
	}
	numBits := bits.Len64(n)

	// Weighted progress: iteration cost roughly quadruples per step because
	// operand size doubles, so later iterations carry exponentially more work.
	totalWork := calcTotalWork(numBits)
	workDone := 0.0
	stepWeight := 1.0
	lastReported := -1.0

	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("fast doubling canceled at bit %d/%d: %w", i, numBits-1, err)
		}

		// Doubling Step: T4 = 2*FK1 - FK, then
		//   T3 = FK * T4    = F(2k)
		//   T1 = FK1²
		//   T2 = FK²
		//   T1 = T1 + T2    = F(2k+1)
		s.T4.Lsh(s.FK1, 1).Sub(s.T4, s.FK)

		// Cache bit lengths once; BitLen() traverses the representation.
		fkBitLen := s.FK.BitLen()
		fk1BitLen := s.FK1.BitLen()

		if err := executeDoublingStepMultiplications(s, shouldParallelizeMultiplication(opts, fkBitLen, fk1BitLen)); err != nil {
			return fmt.Errorf("doubling step failed at bit %d/%d: %w", i, numBits-1, err)
		}

		s.T1.Add(s.T1, s.T2)
		// Rotate the pointers for the next iteration: FK becomes F(2k) (from
		// T3), FK1 becomes F(2k+1) (from T1); the old FK/FK1 become scratch.
		s.FK, s.FK1, s.T2, s.T3, s.T1 = s.T3, s.T1, s.FK, s.FK1, s.T2

		// Addition Step: if the i-th bit of n is 1, advance the pair by one:
		//   F(k)   <- F(k+1)
		//   F(k+1) <- F(k) + F(k+1)
		if (n>>uint(i))&1 == 1 {
			s.T4.Add(s.FK, s.FK1)
			s.FK, s.FK1, s.T4 = s.FK1, s.T4, s.FK
		}

		workDone = reportStepProgress(reporter, &lastReported, totalWork, workDone, stepWeight)
		stepWeight *= 4
	}
	return nil
}

// executeDoublingStepMultiplications performs the three multiplications
// required for a doubling step, either sequentially or on three goroutines.
// T4 must already hold 2*FK1 - FK. Destinations are disjoint and the shared
// sources (FK, FK1, T4) are read-only during the step, so no synchronization
// beyond the WaitGroup is required.
//
// Allocation failures inside math/big surface as runtime panics; the parallel
// path converts them to errors via the collector so that a worker goroutine
// never crashes the process.
func executeDoublingStepMultiplications(s *CalculationState, inParallel bool) error {
	if !inParallel {
		s.T3.Mul(s.FK, s.T4)
		s.T1.Mul(s.FK1, s.FK1)
		s.T2.Mul(s.FK, s.FK)
		return nil
	}

	var wg sync.WaitGroup
	var ec parallel.ErrorCollector
	wg.Add(3)

	go func() {
		defer wg.Done()
		defer recoverToCollector(&ec, "multiply F(k) * (2F(k+1)-F(k))")
		s.T3.Mul(s.FK, s.T4)
	}()
	go func() {
		defer wg.Done()
		defer recoverToCollector(&ec, "square F(k+1)")
		s.T1.Mul(s.FK1, s.FK1)
	}()
	go func() {
		defer wg.Done()
		defer recoverToCollector(&ec, "square F(k)")
		s.T2.Mul(s.FK, s.FK)
	}()

	wg.Wait()
	return ec.Err()
}

// CalculationState aggregates temporary variables for the "Fast Doubling"
// algorithm, allowing efficient management via an object pool.
type CalculationState struct {
	FK, FK1, T1, T2, T3, T4 *big.Int
}

// Reset prepares the state for a new calculation.
// It initializes FK to 0 and FK1 to 1, which are the base values for the
// Fast Doubling algorithm.
func (s *CalculationState) Reset() {
	s.FK.SetInt64(0)
	s.FK1.SetInt64(1)
	// T1..T4 are scratch space, no need to clear them.
}

// maxPooledWords bounds the size of big.Int buffers kept in the pool.
// States holding larger buffers are discarded so the GC can reclaim the
// memory after a very large calculation.
const maxPooledWords = 1 << 20 // 64 MiB of big.Word per integer on 64-bit

func exceedsPoolLimit(x *big.Int) bool {
	return cap(x.Bits()) > maxPooledWords
}

var statePool = sync.Pool{
	New: func() any {
		return &CalculationState{
			FK:  new(big.Int),
			FK1: new(big.Int),
			T1:  new(big.Int),
			T2:  new(big.Int),
			T3:  new(big.Int),
			T4:  new(big.Int),
		}
	},
}

// AcquireState gets a state from the pool and resets it.
// The returned state must be released using ReleaseState, preferably with defer:
//
//	state := AcquireState()
//	defer ReleaseState(state)
//
// This ensures the state is returned to the pool even if an error occurs or a
// panic is triggered.
func AcquireState() *CalculationState {
	s := statePool.Get().(*CalculationState)
	s.Reset()
	return s
}

// ReleaseState puts a state back into the pool. Safe to call with nil.
// Oversized states are dropped instead of pooled to avoid pinning the memory
// of a very large calculation.
func ReleaseState(s *CalculationState) {
	if s == nil {
		return
	}
	if exceedsPoolLimit(s.FK) || exceedsPoolLimit(s.FK1) ||
		exceedsPoolLimit(s.T1) || exceedsPoolLimit(s.T2) ||
		exceedsPoolLimit(s.T3) || exceedsPoolLimit(s.T4) {
		return
	}
	statePool.Put(s)
}
