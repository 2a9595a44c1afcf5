package fibonacci

import (
	"context"
	"testing"
)

// FuzzFastDoublingConsistency verifies that the fast doubling core produces
// results consistent with matrix exponentiation. The two implementations
// share no arithmetic beyond math/big, so agreement is strong evidence of
// correctness.
func FuzzFastDoublingConsistency(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(2))
	f.Add(uint64(10))
	f.Add(uint64(92))
	f.Add(uint64(93))
	f.Add(uint64(94))
	f.Add(uint64(100))
	f.Add(uint64(1000))
	f.Add(uint64(5000))

	f.Fuzz(func(t *testing.T, n uint64) {
		// Keep fuzz iterations fast.
		if n > 50000 {
			return
		}

		ctx := context.Background()
		opts := defaultTestOpts()

		fd := &FastDoubling{}
		gotFD, err := fd.CalculateCore(ctx, nil, n, opts)
		if err != nil {
			t.Fatalf("fast doubling failed for n=%d: %v", n, err)
		}

		mx := &MatrixExponentiation{}
		gotMX, err := mx.CalculateCore(ctx, nil, n, opts)
		if err != nil {
			t.Fatalf("matrix failed for n=%d: %v", n, err)
		}

		if gotFD.Cmp(gotMX) != 0 {
			t.Errorf("inconsistent results for n=%d:\n  fast:   %s\n  matrix: %s",
				n, gotFD.String(), gotMX.String())
		}
		if gotFD.Sign() < 0 {
			t.Errorf("negative result for n=%d: %s", n, gotFD.String())
		}
	})
}

// FuzzEstimateDigitsMatchesActual verifies that the closed-form digit
// estimate equals the decimal length of the computed value.
func FuzzEstimateDigitsMatchesActual(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(2))
	f.Add(uint64(93))
	f.Add(uint64(100))
	f.Add(uint64(4782))

	f.Fuzz(func(t *testing.T, n uint64) {
		if n > 30000 {
			return
		}

		fd := &FastDoubling{}
		value, err := fd.CalculateCore(context.Background(), nil, n, defaultTestOpts())
		if err != nil {
			t.Fatalf("calculation failed for n=%d: %v", n, err)
		}

		want := len(value.Text(10))
		if got := EstimateDigits(n); got != want {
			t.Errorf("EstimateDigits(%d) = %d, want %d", n, got, want)
		}
	})
}

// FuzzProgressMonotonicity verifies that progress reports never move
// backwards and stay inside [0, 1].
func FuzzProgressMonotonicity(f *testing.F) {
	f.Add(uint64(100))
	f.Add(uint64(1000))
	f.Add(uint64(10000))

	f.Fuzz(func(t *testing.T, n uint64) {
		if n < 10 || n > 20000 {
			return
		}

		var last float64
		reporter := func(progress float64) {
			if progress < last {
				t.Errorf("non-monotonic progress for n=%d: %f -> %f", n, last, progress)
			}
			if progress < 0 || progress > 1 {
				t.Errorf("progress out of range for n=%d: %f", n, progress)
			}
			last = progress
		}

		fd := &FastDoubling{}
		if _, err := fd.CalculateCore(context.Background(), reporter, n, defaultTestOpts()); err != nil {
			t.Fatalf("calculation failed for n=%d: %v", n, err)
		}
	})
}
