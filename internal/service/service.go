// Package service centralizes boundary validation, algorithm retrieval and
// execution options for the Fibonacci calculators and the range scheduler.
// The CLI, the HTTP server and the TUI all consume this package instead of
// wiring the lower layers themselves.
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"math/big"

	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/fibonacci"
	"github.com/agbru/fibrange/internal/scheduler"
)

var (
	// ErrMaxValueExceeded is returned when an index exceeds the configured
	// maximum limit.
	ErrMaxValueExceeded = errors.New("maximum index exceeded")
)

// Service defines the interface for Fibonacci computation services.
// Indexes cross this boundary as int64 so that negative input from any
// surface (CLI flag, query parameter) is rejected here with a typed error
// instead of silently wrapping around in uint64 space.
type Service interface {
	// Compute calculates F(n) with the named algorithm.
	Compute(ctx context.Context, algoName string, n int64) (*big.Int, error)

	// ComputeRange calculates F(n) for every n in the request's range with
	// the named algorithm, in index order.
	ComputeRange(ctx context.Context, algoName string, req scheduler.Request) (*scheduler.Result, error)

	// EstimateDigits returns the decimal digit count of F(n) without
	// computing the value.
	EstimateDigits(n int64) (int, error)

	// Algorithms returns the sorted names of the available algorithms.
	Algorithms() []string
}

// BatchService implements Service on top of the calculator factory and the
// range scheduler.
type BatchService struct {
	factory fibonacci.CalculatorFactory
	opts    fibonacci.Options
	maxN    int64
}

// Ensure BatchService implements the Service interface.
var _ Service = (*BatchService)(nil)

// NewBatchService creates a new BatchService.
//
// Parameters:
//   - factory: The factory to retrieve calculators from.
//   - opts: Calculation options applied to every computation.
//   - maxN: The maximum allowed index (0 for no limit).
func NewBatchService(factory fibonacci.CalculatorFactory, opts fibonacci.Options, maxN int64) *BatchService {
	return &BatchService{factory: factory, opts: opts, maxN: maxN}
}

// validateIndex applies the boundary invariants shared by every operation:
// indexes are non-negative and, when a limit is configured, at most maxN.
func (s *BatchService) validateIndex(n int64) error {
	if n < 0 {
		return apperrors.IndexError{N: n}
	}
	if s.maxN > 0 && n > s.maxN {
		return ErrMaxValueExceeded
	}
	return nil
}

// Compute calculates F(n) with the named algorithm. Validation happens
// before the calculator is invoked; a negative index never reaches the
// engine.
func (s *BatchService) Compute(ctx context.Context, algoName string, n int64) (*big.Int, error) {
	if err := s.validateIndex(n); err != nil {
		return nil, err
	}
	calc, err := s.factory.Get(algoName)
	if err != nil {
		return nil, err
	}
	return calc.Calculate(ctx, nil, uint64(n), s.opts)
}

// ComputeRange calculates the request's full range with the named algorithm.
// Range invariants are re-checked by the scheduler; the index ceiling is
// enforced here since the scheduler has no notion of it.
func (s *BatchService) ComputeRange(ctx context.Context, algoName string, req scheduler.Request) (*scheduler.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.maxN > 0 && req.End > s.maxN {
		return nil, ErrMaxValueExceeded
	}
	calc, err := s.factory.Get(algoName)
	if err != nil {
		return nil, err
	}
	return scheduler.New(calc, s.opts).ComputeRange(ctx, req, nil)
}

// EstimateDigits returns the decimal digit count of F(n) in O(1) time.
func (s *BatchService) EstimateDigits(n int64) (int, error) {
	if n < 0 {
		return 0, apperrors.IndexError{N: n}
	}
	return fibonacci.EstimateDigits(uint64(n)), nil
}

// Algorithms returns the sorted names of the registered algorithms.
func (s *BatchService) Algorithms() []string {
	return s.factory.List()
}
