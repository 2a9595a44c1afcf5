package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/scheduler"
	"github.com/agbru/fibrange/internal/service"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleAlgorithms returns the list of available Fibonacci calculation
// algorithms. It queries the internal registry and returns the names as a
// JSON array.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"algorithms": s.service.Algorithms(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleFib processes requests to calculate a single Fibonacci number.
// It parses the query parameters 'n' (the index) and 'algo' (the algorithm),
// executes the calculation, and returns the result in JSON format.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, err := parseIndexParam(r, "n")
	if err != nil {
		s.writeParamError(w, err)
		return
	}
	algo := algoParam(r)

	// Create a context with timeout for the calculation
	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.Compute(ctx, algo, n)
	duration := time.Since(start)

	if s.handleServiceError(w, err) {
		return
	}

	resp := buildFibResponse(n, algo, result, duration)
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleRange processes requests to calculate every Fibonacci number in an
// inclusive index range. It parses 'start', 'end', optional 'workers' and
// 'algo' parameters, runs the range computation and returns the ordered
// values as decimal strings.
func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseRangeParams(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}
	algo := algoParam(r)

	// The length check runs in uint64 space: End-Start+1 overflows int64 for
	// a span covering the whole index range, and a wrapped negative length
	// must not slip under the cap. Malformed ranges (end < start) fall
	// through to the service's own validation.
	if req.End >= req.Start {
		if length := uint64(req.End-req.Start) + 1; length > uint64(s.securityConfig.MaxRangeLen) {
			s.writeErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("Range length %d exceeds maximum allowed (%d). This limit prevents resource exhaustion.",
					length, s.securityConfig.MaxRangeLen))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.ComputeRange(ctx, algo, req)
	duration := time.Since(start)

	if s.handleServiceError(w, err) {
		return
	}

	resp := RangeResponse{
		Start:     req.Start,
		End:       req.End,
		Workers:   req.Workers,
		Results:   result.Strings(),
		Duration:  duration.String(),
		Algorithm: algo,
	}

	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleDigits processes requests to estimate the decimal digit count of a
// Fibonacci number without computing it. This is an O(1) operation, so no
// timeout or algorithm selection applies.
func (s *Server) handleDigits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, err := parseIndexParam(r, "n")
	if err != nil {
		s.writeParamError(w, err)
		return
	}

	digits, err := s.service.EstimateDigits(n)
	if s.handleServiceError(w, err) {
		return
	}

	s.writeJSONResponse(w, http.StatusOK, DigitsResponse{N: n, Digits: digits})
}

// handleServiceError translates service-layer errors into HTTP error
// responses. It reports whether the request has been answered.
func (s *Server) handleServiceError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrMaxValueExceeded):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Index exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxNValue))
		return true
	case apperrors.IsValidationError(err):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return true
	case apperrors.IsContextError(err):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "Calculation timed out")
		return true
	default:
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return true
	}
}

// writeParamError writes a parameter parsing failure with its HTTP status.
func (s *Server) writeParamError(w http.ResponseWriter, err error) {
	var pe paramError
	if errors.As(err, &pe) {
		s.writeErrorResponse(w, pe.StatusCode, pe.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// parseIndexParam extracts a non-negative integer query parameter.
func parseIndexParam(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, paramError{
			Message:    fmt.Sprintf("Missing '%s' parameter", name),
			StatusCode: http.StatusBadRequest,
		}
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, paramError{
			Message:    fmt.Sprintf("Invalid '%s' parameter: must be a non-negative integer", name),
			StatusCode: http.StatusBadRequest,
		}
	}
	return n, nil
}

// parseRangeParams extracts and validates the range computation parameters
// from the request. Range bound validation proper happens in the service;
// this only rejects syntactically invalid input.
func parseRangeParams(r *http.Request) (scheduler.Request, error) {
	start, err := parseIndexParam(r, "start")
	if err != nil {
		return scheduler.Request{}, err
	}
	end, err := parseIndexParam(r, "end")
	if err != nil {
		return scheduler.Request{}, err
	}

	req := scheduler.Request{Start: start, End: end}

	if raw := r.URL.Query().Get("workers"); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil || workers < 0 {
			return scheduler.Request{}, paramError{
				Message:    "Invalid 'workers' parameter: must be a non-negative integer",
				StatusCode: http.StatusBadRequest,
			}
		}
		req.Workers = workers
	}

	return req, nil
}

// algoParam returns the requested algorithm name, defaulting to "fast".
func algoParam(r *http.Request) string {
	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = "fast"
	}
	return algo
}

// buildFibResponse constructs the response struct for a single calculation.
func buildFibResponse(n int64, algo string, result *big.Int, duration time.Duration) Response {
	return Response{
		N:         n,
		Result:    result,
		Duration:  duration.String(),
		Algorithm: algo,
	}
}

// writeJSONResponse writes a JSON response with the correct content type.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
