package server

import (
	"math/big"
)

// Response represents the standardized JSON response for a single
// calculation request.
type Response struct {
	// N is the index of the Fibonacci number requested.
	N int64 `json:"n"`
	// Result is the calculated Fibonacci number. It is omitted if an error occurred.
	Result *big.Int `json:"result,omitempty"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Error contains the error message if the calculation failed.
	Error string `json:"error,omitempty"`
	// Algorithm is the name of the algorithm used for the calculation.
	Algorithm string `json:"algorithm"`
}

// RangeResponse represents the standardized JSON response for a range
// calculation request. Values are decimal strings in index order.
type RangeResponse struct {
	// Start is the first index of the computed range (inclusive).
	Start int64 `json:"start"`
	// End is the last index of the computed range (inclusive).
	End int64 `json:"end"`
	// Workers is the worker pool size used for the computation.
	Workers int `json:"workers"`
	// Results holds F(Start)..F(End) in decimal, in index order.
	// Omitted if an error occurred.
	Results []string `json:"results,omitempty"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Error contains the error message if the calculation failed.
	Error string `json:"error,omitempty"`
	// Algorithm is the name of the algorithm used for the calculation.
	Algorithm string `json:"algorithm"`
}

// DigitsResponse represents the standardized JSON response for a digit
// count estimation request.
type DigitsResponse struct {
	// N is the index of the Fibonacci number.
	N int64 `json:"n"`
	// Digits is the exact decimal digit count of F(N).
	Digits int `json:"digits"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// paramError represents a parameter parsing error with HTTP status.
type paramError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e paramError) Error() string {
	return e.Message
}
