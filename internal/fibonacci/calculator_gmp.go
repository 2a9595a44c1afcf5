//go:build gmp

// GMP-backed calculator core, compiled only with -tags=gmp. The default
// build stays pure Go on math/big; opting in needs libgmp development
// headers at build time (libgmp-dev on Debian-likes, "brew install gmp" on
// macOS) and pulls in cgo, so it is never the portable path.

package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/ncw/gmp"
)

func init() {
	RegisterCalculator("gmp", func() coreCalculator { return &GMPCalculator{} })
}

// GMPCalculator runs the same iterative Fast Doubling loop as FastDoubling,
// but with every big-integer operation routed through GMP. For indexes in
// the hundreds of millions GMP's assembly multiplication outruns math/big by
// enough to amortize the cgo crossings; below that the pure Go core usually
// wins.
type GMPCalculator struct{}

// Name returns the name of the algorithm.
func (c *GMPCalculator) Name() string {
	return "GMP Fast Doubling (cgo)"
}

// gmpDouble advances the pair (F(k), F(k+1)) held in fk and fk1 to
// (F(2k), F(2k+1)), using the caller's scratch integers u and v. Mirrors the
// T-register choreography of the math/big loop, minus the pointer rotation:
// gmp.Int writes in place, so plain Set calls close the step.
func gmpDouble(fk, fk1, u, v *gmp.Int) {
	// u = fk * (2*fk1 - fk) = F(2k)
	u.MulUint32(fk1, 2)
	u.Sub(u, fk)
	u.Mul(fk, u)

	// v = fk1² + fk² = F(2k+1); fk doubles as scratch for fk1² since
	// F(2k) is already parked in u.
	v.Mul(fk, fk)
	fk.Mul(fk1, fk1)
	v.Add(v, fk)

	fk.Set(u)
	fk1.Set(v)
}

// CalculateCore executes the calculation using GMP's optimized arithmetic.
func (c *GMPCalculator) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, _ Options) (*big.Int, error) {
	if reporter == nil {
		reporter = nopReporter
	}
	if n == 0 {
		return big.NewInt(0), nil
	}

	fk := gmp.NewInt(0)
	fk1 := gmp.NewInt(1)
	u := gmp.NewInt(0)
	v := gmp.NewInt(0)

	numBits := bits.Len64(n)
	totalWork := calcTotalWork(numBits)
	workDone := 0.0
	stepWeight := 1.0
	lastReported := -1.0

	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("gmp fast doubling canceled at bit %d/%d: %w", i, numBits-1, err)
		}

		gmpDouble(fk, fk1, u, v)

		// Odd bit: advance the pair by one index.
		if (n>>uint(i))&1 == 1 {
			u.Add(fk, fk1)
			fk.Set(fk1)
			fk1.Set(u)
		}

		workDone = reportStepProgress(reporter, &lastReported, totalWork, workDone, stepWeight)
		stepWeight *= 4
	}

	// gmp.Int and big.Int share no representation; round-trip through bytes.
	return new(big.Int).SetBytes(fk.Bytes()), nil
}
