package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/agbru/fibrange/internal/cli"
	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/fibonacci"
	"github.com/agbru/fibrange/internal/metrics"
	"github.com/agbru/fibrange/internal/scheduler"
	"github.com/agbru/fibrange/internal/ui"
)

// memCollector feeds the verbose post-run memory report.
var memCollector = metrics.NewMemoryCollector()

// runSingle computes F(n) for the configured index and displays the result.
func (a *Application) runSingle(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calc, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		a.reportError(err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	reporter, finish := a.startProgressDisplay(out)

	var memBefore metrics.MemorySnapshot
	if a.Config.Verbose {
		memBefore = memCollector.Snapshot()
	}

	start := time.Now()
	result, err := calc.Calculate(ctx, reporter, uint64(a.Config.N), a.Config.ToCalculationOptions())
	duration := time.Since(start)
	finish()

	if err != nil {
		a.reportError(err)
		return apperrors.ExitCodeForError(err)
	}

	if a.Config.JSONOutput {
		return a.writeJSON(out, singleJSON{
			N:         a.Config.N,
			Result:    result.String(),
			Digits:    len(result.String()),
			Duration:  duration.String(),
			Algorithm: a.Config.Algo,
		})
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, result, a.Config.N, duration, a.Config.Algo, outputCfg); err != nil {
		a.reportError(err)
		return apperrors.ExitErrorGeneric
	}
	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryReport(out, memBefore.Delta(memCollector.Snapshot()))
	}
	return apperrors.ExitSuccess
}

// runRange computes F(n) for every index of the configured range and
// displays the results in index order.
func (a *Application) runRange(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calc, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		a.reportError(err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	req := scheduler.Request{
		Start:     a.Config.Start,
		End:       a.Config.End,
		Workers:   a.Config.Workers,
		ChunkSize: a.Config.ChunkSize,
	}

	reporter, finish := a.startProgressDisplay(out)

	var memBefore metrics.MemorySnapshot
	if a.Config.Verbose {
		memBefore = memCollector.Snapshot()
	}

	start := time.Now()
	result, err := scheduler.New(calc, a.Config.ToCalculationOptions()).ComputeRange(ctx, req, reporter)
	duration := time.Since(start)
	finish()

	if err != nil {
		a.reportError(err)
		return apperrors.ExitCodeForError(err)
	}

	if a.Config.JSONOutput {
		return a.writeJSON(out, rangeJSON{
			Start:     req.Start,
			End:       req.End,
			Workers:   req.Workers,
			Results:   result.Strings(),
			Duration:  duration.String(),
			Algorithm: a.Config.Algo,
		})
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayRangeWithConfig(out, result, duration, a.Config.Algo, outputCfg); err != nil {
		a.reportError(err)
		return apperrors.ExitErrorGeneric
	}
	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryReport(out, memBefore.Delta(memCollector.Snapshot()))
	}
	return apperrors.ExitSuccess
}

// runEstimate prints the digit count of F(n) without computing the value.
func (a *Application) runEstimate(out io.Writer) int {
	digits := fibonacci.EstimateDigits(uint64(a.Config.N))

	if a.Config.JSONOutput {
		return a.writeJSON(out, estimateJSON{N: a.Config.N, Digits: digits})
	}
	if a.Config.Quiet {
		fmt.Fprintln(out, digits)
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "F(%d) has %s%d%s decimal digits.\n",
		a.Config.N, ui.ColorCyan(), digits, ui.ColorReset())
	return apperrors.ExitSuccess
}

// startProgressDisplay wires a progress reporter to the spinner display
// unless quiet or JSON mode suppresses it. The returned finish function
// closes the channel and waits for the display goroutine to settle.
func (a *Application) startProgressDisplay(out io.Writer) (fibonacci.ProgressReporter, func()) {
	if a.Config.Quiet || a.Config.JSONOutput {
		return nil, func() {}
	}

	progressChan := make(chan float64, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, out)

	reporter := func(progress float64) {
		select {
		case progressChan <- progress:
		default:
			// Drop updates rather than block the computation.
		}
	}
	finish := func() {
		close(progressChan)
		wg.Wait()
	}
	return reporter, finish
}

// reportError prints an error to the configured error writer.
func (a *Application) reportError(err error) {
	fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

// writeJSON encodes a payload to the output writer.
func (a *Application) writeJSON(out io.Writer, payload any) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		a.reportError(err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// singleJSON is the JSON output shape for single-index mode.
type singleJSON struct {
	N         int64  `json:"n"`
	Result    string `json:"result"`
	Digits    int    `json:"digits"`
	Duration  string `json:"duration"`
	Algorithm string `json:"algorithm"`
}

// rangeJSON is the JSON output shape for range mode.
type rangeJSON struct {
	Start     int64    `json:"start"`
	End       int64    `json:"end"`
	Workers   int      `json:"workers"`
	Results   []string `json:"results"`
	Duration  string   `json:"duration"`
	Algorithm string   `json:"algorithm"`
}

// estimateJSON is the JSON output shape for estimate mode.
type estimateJSON struct {
	N      int64 `json:"n"`
	Digits int   `json:"digits"`
}
