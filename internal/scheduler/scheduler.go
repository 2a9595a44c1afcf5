package scheduler

import (
	"context"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/fibonacci"
)

var (
	rangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibrange_ranges_total",
			Help: "The total number of range computations processed",
		},
		[]string{"status"},
	)
	rangeIndexesComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fibrange_range_indexes_computed_total",
			Help: "The total number of individual indexes computed by range workers",
		},
	)
	rangeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fibrange_range_duration_seconds",
			Help:    "The duration of range computations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		},
	)
)

// Scheduler drives a fibonacci.Calculator over index ranges with a
// dynamically balanced worker pool. The zero value is not usable; construct
// with New.
type Scheduler struct {
	calc fibonacci.Calculator
	opts fibonacci.Options
}

// New creates a Scheduler that computes every index with the given
// calculator and options. The calculator must be safe for concurrent use,
// which all calculators produced by the fibonacci factory are.
func New(calc fibonacci.Calculator, opts fibonacci.Options) *Scheduler {
	if calc == nil {
		panic("scheduler: calculator cannot be nil")
	}
	return &Scheduler{calc: calc, opts: opts}
}

// ComputeRange computes the exact value of F(n) for every n in
// [req.Start, req.End] and returns them in index order.
//
// The range is validated before any worker starts; an invalid range fails
// fast with apperrors.RangeError. Workers then claim chunks of consecutive
// indexes from an atomic cursor until the range is exhausted. The result
// buffer is pre-sized and partitioned by index, so workers never contend on
// the data path; the claim cursor and the progress counter are the only
// shared words.
//
// Failure is all-or-nothing: the first error cancels the remaining workers
// through the errgroup context, partial values are discarded and only the
// error is returned. Retrying cannot help — each value is a pure function of
// its index and a failure is either cancellation or resource exhaustion.
//
// The reporter, if non-nil, receives completed-index progress in [0, 1].
// The final content of the result is deterministic and independent of worker
// scheduling order.
func (s *Scheduler) ComputeRange(ctx context.Context, req Request, reporter fibonacci.ProgressReporter) (res *Result, err error) {
	tracer := otel.Tracer("scheduler")
	ctx, span := tracer.Start(ctx, "ComputeRange")
	span.SetAttributes(
		attribute.Int64("range.start", req.Start),
		attribute.Int64("range.end", req.End),
		attribute.Int("range.workers", req.Workers),
	)
	defer span.End()

	if err := req.Validate(); err != nil {
		rangesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	total := req.Len()
	workers := req.workerCount()
	chunk := req.chunkSize(workers)

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
			if apperrors.IsContextError(err) {
				status = "canceled"
			}
		}
		rangesTotal.WithLabelValues(status).Inc()
		rangeDuration.Observe(duration.Seconds())

		log.Debug().
			Int64("start", req.Start).
			Int64("end", req.End).
			Int("workers", workers).
			Int64("chunk", chunk).
			Dur("duration", duration).
			Str("status", status).
			Msg("range computation completed")
	}()

	values := make([]*big.Int, total)

	// nextChunk is the claim cursor: each Add reserves [claimed-chunk,
	// claimed) of the zero-based range. completed feeds progress reporting.
	var nextChunk atomic.Int64
	var completed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				hi := nextChunk.Add(chunk)
				lo := hi - chunk
				if lo >= total {
					return nil
				}
				if hi > total {
					hi = total
				}
				if err := s.computeChunk(ctx, req.Start, lo, hi, values, &completed, total, reporter); err != nil {
					return err
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		// All-or-nothing: drop whatever was computed.
		return nil, apperrors.WrapError(err, "range [%d, %d] failed", req.Start, req.End)
	}

	if reporter != nil {
		reporter(1.0)
	}
	return &Result{Start: req.Start, Values: values}, nil
}

// computeChunk fills the slots [lo, hi) of the zero-based range. Each slot
// is owned by exactly this call; no other goroutine reads or writes it until
// ComputeRange returns.
func (s *Scheduler) computeChunk(ctx context.Context, base, lo, hi int64, values []*big.Int, completed *atomic.Int64, total int64, reporter fibonacci.ProgressReporter) error {
	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := s.calc.Calculate(ctx, nil, uint64(base+i), s.opts)
		if err != nil {
			return err
		}
		values[i] = v
		rangeIndexesComputed.Inc()

		done := completed.Add(1)
		if reporter != nil {
			reporter(float64(done) / float64(total))
		}
	}
	return nil
}
