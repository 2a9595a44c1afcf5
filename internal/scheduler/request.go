// Package scheduler distributes batches of exact Fibonacci computations
// across a pool of workers.
//
// Per-index cost is far from uniform: F(n) has Θ(n) digits, so the
// multiplications inside a single computation grow with the index. A static
// partition of [Start, End] into equal contiguous slices would leave the
// workers owning the low end idle while the high end is still grinding. The
// scheduler therefore hands out small chunks dynamically: workers claim the
// next chunk from an atomic cursor and come back for more, so a worker that
// drew cheap indexes simply claims additional work.
package scheduler

import (
	"math"
	"math/big"
	"runtime"

	apperrors "github.com/agbru/fibrange/internal/errors"
)

// DefaultChunkSize is the number of consecutive indexes claimed per chunk
// when the request does not specify one and the adaptive sizing would exceed
// it. Chunks must be small relative to the range so the dynamic claiming can
// actually balance load; 64 keeps claim-counter traffic negligible while
// bounding the size of the final straggler chunk.
const DefaultChunkSize = 64

// Request describes one batch computation over the inclusive index range
// [Start, End]. It is created by the caller and consumed once by
// ComputeRange.
type Request struct {
	// Start is the first Fibonacci index to compute (inclusive).
	Start int64
	// End is the last Fibonacci index to compute (inclusive).
	End int64
	// Workers is the worker pool size. Zero or negative means all available
	// hardware parallelism (runtime.GOMAXPROCS). Concurrency is always an
	// explicit per-request setting, never ambient process state.
	Workers int
	// ChunkSize overrides the number of indexes claimed per chunk.
	// Zero or negative selects an adaptive size.
	ChunkSize int
}

// Validate checks the range invariants before any worker is dispatched.
// Both bounds must be non-negative, Start must not exceed End, and the
// resulting count must be representable as an int64.
func (r Request) Validate() error {
	if r.Start < 0 || r.End < 0 {
		return apperrors.NewRangeError(r.Start, r.End, "bounds must be non-negative")
	}
	if r.Start > r.End {
		return apperrors.NewRangeError(r.Start, r.End, "start must not exceed end")
	}
	// End-Start is exact here (both bounds non-negative, ordered), but the
	// +1 in Len overflows when the span covers the whole int64 range.
	if uint64(r.End)-uint64(r.Start)+1 > math.MaxInt64 {
		return apperrors.NewRangeError(r.Start, r.End, "length exceeds the representable count")
	}
	return nil
}

// Len returns the number of indexes in the range.
func (r Request) Len() int64 {
	return r.End - r.Start + 1
}

// workerCount resolves the effective pool size: the requested count, capped
// by the range length (extra workers would never claim a chunk).
func (r Request) workerCount() int {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if total := r.Len(); int64(workers) > total {
		workers = int(total)
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// chunkSize resolves the effective chunk size. The adaptive default aims for
// several chunks per worker so load can rebalance, capped at
// DefaultChunkSize and never below 1.
func (r Request) chunkSize(workers int) int64 {
	if r.ChunkSize > 0 {
		return int64(r.ChunkSize)
	}
	chunk := r.Len() / int64(workers*8)
	if chunk > DefaultChunkSize {
		chunk = DefaultChunkSize
	}
	if chunk < 1 {
		chunk = 1
	}
	return chunk
}

// Result is the ordered outcome of a range computation: one exact value per
// index in [Start, End], at slot i - Start. It is owned exclusively by the
// caller once ComputeRange returns; during computation each slot is written
// exactly once, by the single worker whose chunk covers it.
type Result struct {
	// Start is the first index of the computed range.
	Start int64
	// Values holds F(Start), F(Start+1), ... in order.
	Values []*big.Int
}

// Value returns F(n) for an index inside the computed range, or nil when n
// is out of bounds.
func (res *Result) Value(n int64) *big.Int {
	i := n - res.Start
	if i < 0 || i >= int64(len(res.Values)) {
		return nil
	}
	return res.Values[i]
}

// Len returns the number of computed values.
func (res *Result) Len() int {
	return len(res.Values)
}

// Strings renders every value in decimal, in range order.
func (res *Result) Strings() []string {
	out := make([]string, len(res.Values))
	for i, v := range res.Values {
		out[i] = v.String()
	}
	return out
}
