// Package fibonacci provides exact Fibonacci number computation over
// arbitrary-precision integers. It exposes a Calculator interface that
// abstracts the underlying algorithm, allowing different strategies (Fast
// Doubling, Matrix Exponentiation, iterative addition) to be selected
// explicitly by name. The package integrates optimizations such as memory
// pooling and parallel execution of the doubling-step multiplications.
package fibonacci

//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/parallel"
)

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibrange_calculations_total",
			Help: "The total number of Fibonacci calculations processed",
		},
		[]string{"algorithm", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fibrange_calculation_duration_seconds",
			Help: "The duration of Fibonacci calculations in seconds",
		},
		[]string{"algorithm"},
	)
)

// Calculator defines the public interface for a Fibonacci calculator.
// It is the primary abstraction used by the scheduler and the application
// layers to interact with different calculation algorithms. Implementations
// are safe for concurrent use: every call acquires its own scratch state.
type Calculator interface {
	// Calculate executes the calculation of the n-th Fibonacci number.
	// It supports cancellation through the provided context and reports
	// normalized progress through reporter (which may be nil).
	Calculate(ctx context.Context, reporter ProgressReporter, n uint64, opts Options) (*big.Int, error)

	// Name returns the display name of the calculation algorithm.
	Name() string
}

// coreCalculator defines the internal interface for a pure calculation
// algorithm, without the cross-cutting concerns handled by the decorator.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, opts Options) (*big.Int, error)
	Name() string
}

// FibCalculator implements Calculator by wrapping a coreCalculator with
// cross-cutting concerns: the small-n fast path, metrics, tracing, panic
// containment, and progress completion.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator constructs a FibCalculator around the given core algorithm.
// It panics if core is nil, ensuring system integrity at wiring time.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("fibonacci: the coreCalculator implementation cannot be nil")
	}
	return &FibCalculator{core: core}
}

// Name returns the name of the encapsulated coreCalculator.
func (c *FibCalculator) Name() string {
	return c.core.Name()
}

// Calculate orchestrates the calculation process.
// It first checks for small values of n (≤93) which can be computed with
// plain uint64-range iterative addition without the overhead of the full
// algorithm. For larger values it delegates to the wrapped core, records
// metrics and tracing, and guarantees that a successful run reports full
// progress.
//
// An allocation failure inside the computation surfaces as a runtime panic in
// math/big; it is contained here and converted into an
// apperrors.ResourceError so that a single oversized request fails cleanly
// instead of crashing the process.
func (c *FibCalculator) Calculate(ctx context.Context, reporter ProgressReporter, n uint64, opts Options) (result *big.Int, err error) {
	tracer := otel.Tracer("fibonacci")
	ctx, span := tracer.Start(ctx, "Calculate")
	defer span.End()

	if reporter == nil {
		reporter = nopReporter
	}

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		algoName := c.core.Name()
		calculationsTotal.WithLabelValues(algoName, status).Inc()
		calculationDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Uint64("n", n).
			Float64("duration", duration).
			Str("status", status).
			Msg("calculation completed")
	}()

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = apperrors.ResourceError{
				Operation: fmt.Sprintf("F(%d) with %s", n, c.core.Name()),
				Cause:     fmt.Errorf("%v", r),
			}
		}
	}()

	if n <= MaxFibUint64 {
		reporter(1.0)
		return calculateSmall(n), nil
	}

	result, err = c.core.CalculateCore(ctx, reporter, n, opts)
	if err == nil && result != nil {
		reporter(1.0)
	}
	return result, err
}

// calculateSmall returns the n-th Fibonacci number for n ≤ MaxFibUint64 using
// uint64 iterative addition.
func calculateSmall(n uint64) *big.Int {
	var a, b uint64 = 0, 1
	for i := uint64(0); i < n; i++ {
		a, b = b, a+b
	}
	return new(big.Int).SetUint64(a)
}

// recoverToCollector converts a panic in a multiplication goroutine into a
// ResourceError recorded on the collector. Used by the parallel doubling
// step so a failed allocation never escapes a worker goroutine.
func recoverToCollector(ec *parallel.ErrorCollector, operation string) {
	if r := recover(); r != nil {
		ec.SetError(apperrors.ResourceError{
			Operation: operation,
			Cause:     fmt.Errorf("%v", r),
		})
	}
}
