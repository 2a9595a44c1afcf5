package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"
)

// MatrixExponentiation computes F(n) by raising the Fibonacci Q-matrix
//
//	[ 1 1 ]
//	[ 1 0 ]
//
// to the n-th power by binary exponentiation; F(n) is the off-diagonal
// element of the result.
//
// Powers of the Q-matrix are symmetric, so only three entries (a, b, c for
// [[a b], [b c]]) are stored and squared. Each squaring costs four
// multiplications, one more than a Fast Doubling step, which makes this
// algorithm a useful independently-derived cross-check rather than the
// default.
type MatrixExponentiation struct{}

// Name returns the descriptive name of the algorithm.
func (m *MatrixExponentiation) Name() string {
	return "Matrix Exponentiation (O(log n), Symmetric)"
}

// symMatrix is a symmetric 2x2 matrix [[a b], [b c]] with big.Int entries.
type symMatrix struct {
	a, b, c *big.Int
}

func newSymMatrix(a, b, c int64) *symMatrix {
	return &symMatrix{
		a: big.NewInt(a),
		b: big.NewInt(b),
		c: big.NewInt(c),
	}
}

// square replaces m with m², using t as scratch space.
// For [[a b], [b c]]:
//
//	a' = a² + b²
//	b' = b * (a + c)
//	c' = b² + c²
func (m *symMatrix) square(t *symMatrix) {
	t.a.Mul(m.a, m.a)       // a²
	t.c.Mul(m.c, m.c)       // c²
	t.b.Mul(m.b, m.b)       // b²
	sum := new(big.Int).Add(m.a, m.c)
	m.b.Mul(m.b, sum)       // b' = b(a+c)
	m.a.Add(t.a, t.b)       // a' = a² + b²
	m.c.Add(t.c, t.b)       // c' = b² + c²
}

// mulQ replaces m with m * Q where Q = [[1 1], [1 0]].
// For symmetric m = [[a b], [b c]]:
//
//	[ a b ] [ 1 1 ]   [ a+b  a ]
//	[ b c ] [ 1 0 ] = [ b+c  b ]
//
// The product of a symmetric power of Q with Q is again a power of Q and
// hence symmetric: a' = a+b, b' = a, c' = b.
func (m *symMatrix) mulQ() {
	// Rotate pointers so the old c buffer becomes scratch for a', while
	// b' and c' are simply the old a and b values.
	m.a, m.b, m.c = m.c, m.a, m.b
	m.a.Add(m.b, m.c)
}

// CalculateCore computes F(n) as the b entry of Q^n, scanning the bits of n
// from most significant to least significant.
func (m *MatrixExponentiation) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, _ Options) (*big.Int, error) {
	if reporter == nil {
		reporter = nopReporter
	}
	if n == 0 {
		reporter(1.0)
		return big.NewInt(0), nil
	}

	// result starts as Q^1; the loop consumes the remaining bits of n.
	result := newSymMatrix(1, 1, 0)
	scratch := newSymMatrix(0, 0, 0)

	numBits := bits.Len64(n)
	totalWork := calcTotalWork(numBits - 1)
	workDone := 0.0
	stepWeight := 1.0
	lastReported := -1.0

	for i := numBits - 2; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("matrix exponentiation canceled at bit %d/%d: %w", i, numBits-1, err)
		}
		result.square(scratch)
		if (n>>uint(i))&1 == 1 {
			result.mulQ()
		}
		workDone = reportStepProgress(reporter, &lastReported, totalWork, workDone, stepWeight)
		stepWeight *= 4
	}
	return result.b, nil
}
