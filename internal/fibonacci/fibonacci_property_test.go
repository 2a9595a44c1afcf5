package fibonacci

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// calcF computes F(n) with the given core or fails the property.
func calcF(calc coreCalculator, n uint64) *big.Int {
	v, err := calc.CalculateCore(context.Background(), nil, n, defaultTestOpts())
	if err != nil {
		return nil
	}
	return v
}

// TestCassinisIdentity_PropertyBased verifies Cassini's identity
// F(n-1)*F(n+1) - F(n)^2 = (-1)^n for random indexes. The identity couples
// three adjacent values, so an off-by-one anywhere in the doubling loop
// breaks it immediately.
func TestCassinisIdentity_PropertyBased(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	for _, calc := range allCalculators() {
		calc := calc
		properties.Property("Cassini holds for "+calc.Name(), prop.ForAll(
			func(n uint64) bool {
				prev := calcF(calc, n-1)
				cur := calcF(calc, n)
				next := calcF(calc, n+1)
				if prev == nil || cur == nil || next == nil {
					return false
				}

				lhs := new(big.Int).Mul(prev, next)
				lhs.Sub(lhs, new(big.Int).Mul(cur, cur))

				want := big.NewInt(1)
				if n%2 == 1 {
					want.SetInt64(-1)
				}
				return lhs.Cmp(want) == 0
			},
			gen.UInt64Range(1, 2000),
		))
	}

	properties.TestingRun(t)
}

// TestRecurrenceRelation_PropertyBased verifies the defining recurrence
// F(n+2) = F(n+1) + F(n) for random indexes.
func TestRecurrenceRelation_PropertyBased(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	for _, calc := range allCalculators() {
		calc := calc
		properties.Property("recurrence holds for "+calc.Name(), prop.ForAll(
			func(n uint64) bool {
				a := calcF(calc, n)
				b := calcF(calc, n+1)
				c := calcF(calc, n+2)
				if a == nil || b == nil || c == nil {
					return false
				}
				return new(big.Int).Add(a, b).Cmp(c) == 0
			},
			gen.UInt64Range(0, 5000),
		))
	}

	properties.TestingRun(t)
}

// TestDoublingIdentity_PropertyBased verifies the two doubling identities
// directly against independently computed values:
//
//	F(2n)   = F(n) * (2*F(n+1) - F(n))
//	F(2n+1) = F(n+1)^2 + F(n)^2
func TestDoublingIdentity_PropertyBased(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	calc := &FastDoubling{}
	properties.Property("doubling identities hold", prop.ForAll(
		func(n uint64) bool {
			fn := calcF(calc, n)
			fn1 := calcF(calc, n+1)
			f2n := calcF(calc, 2*n)
			f2n1 := calcF(calc, 2*n+1)
			if fn == nil || fn1 == nil || f2n == nil || f2n1 == nil {
				return false
			}

			even := new(big.Int).Lsh(fn1, 1)
			even.Sub(even, fn).Mul(even, fn)

			odd := new(big.Int).Mul(fn1, fn1)
			odd.Add(odd, new(big.Int).Mul(fn, fn))

			return even.Cmp(f2n) == 0 && odd.Cmp(f2n1) == 0
		},
		gen.UInt64Range(1, 2000),
	))

	properties.TestingRun(t)
}
