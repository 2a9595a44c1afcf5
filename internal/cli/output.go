// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatTruncated], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile], [WriteRangeToFile].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibrange/internal/format"
	"github.com/agbru/fibrange/internal/metrics"
	"github.com/agbru/fibrange/internal/scheduler"
	"github.com/agbru/fibrange/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full result value regardless of its length.
	Verbose bool
}

// FormatTruncated renders a big integer in decimal, abbreviating values
// longer than TruncationLimit digits to their first and last DisplayEdges
// digits with the total digit count, e.g. "3542248...6937501 (20899 digits)".
// Shorter values are returned in full.
func FormatTruncated(v *big.Int) string {
	s := v.String()
	if len(s) <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (%s digits)",
		s[:DisplayEdges], s[len(s)-DisplayEdges:], format.FormatNumberString(fmt.Sprintf("%d", len(s))))
}

// DisplayResult displays a single calculation result.
// Values longer than TruncationLimit digits are truncated unless verbose is
// set; the digit count is always shown.
func DisplayResult(out io.Writer, result *big.Int, n int64, duration time.Duration, verbose bool) {
	digits := len(result.String())

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Computed %sF(%s)%s in %s%s%s.\n",
		ui.ColorMagenta(), format.FormatNumberString(fmt.Sprintf("%d", n)), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "Digits: %s%s%s, bits: %s%s%s.\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", digits)), ui.ColorReset(),
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", result.BitLen())), ui.ColorReset())

	if verbose {
		fmt.Fprintf(out, "F(%d) = %s\n", n, result.String())
	} else {
		fmt.Fprintf(out, "F(%d) = %s%s%s\n", n, ui.ColorGreen(), FormatTruncated(result), ui.ColorReset())
	}
}

// DisplayMemoryReport prints the heap and GC activity of a finished run.
// The delta's gauge fields carry the post-run reading; the counters carry
// what the computation itself incurred.
func DisplayMemoryReport(out io.Writer, delta metrics.MemorySnapshot) {
	fmt.Fprintf(out, "Memory: heap %s%s%s in use (%s reserved), %s GC cycles, %s%s%s paused.\n",
		ui.ColorCyan(), format.FormatBytes(delta.HeapAlloc), ui.ColorReset(),
		format.FormatBytes(delta.HeapSys),
		format.FormatCount(int64(delta.NumGC)),
		ui.ColorYellow(), time.Duration(delta.PauseTotalNs), ui.ColorReset())
}

// DisplayQuietResult outputs a result in quiet mode: the bare decimal value
// on a single line, suitable for scripting.
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, result.String())
}

// DisplayResultWithConfig displays a result with the given output
// configuration. This is a unified function that handles all output modes.
//
// Returns an error if file output fails.
func DisplayResultWithConfig(out io.Writer, result *big.Int, n int64, duration time.Duration, algo string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(out, result, n, duration, config.Verbose)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, n, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}

// DisplayRangeResult displays the outcome of a range computation: one line
// per index, truncated per the standard display policy.
func DisplayRangeResult(out io.Writer, res *scheduler.Result, duration time.Duration, verbose bool) {
	fmt.Fprintf(out, "\n%s--- Range Result ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Computed %s%s%s values in %s%s%s.\n",
		ui.ColorCyan(), format.FormatCount(int64(res.Len())), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())

	for i, v := range res.Values {
		n := res.Start + int64(i)
		if verbose {
			fmt.Fprintf(out, "F(%d) = %s\n", n, v.String())
		} else {
			fmt.Fprintf(out, "F(%d) = %s\n", n, FormatTruncated(v))
		}
	}
}

// DisplayQuietRangeResult outputs a range result in quiet mode: one bare
// decimal value per line, in index order.
func DisplayQuietRangeResult(out io.Writer, res *scheduler.Result) {
	for _, v := range res.Values {
		fmt.Fprintln(out, v.String())
	}
}

// DisplayRangeWithConfig displays a range result with the given output
// configuration, mirroring DisplayResultWithConfig for range mode.
func DisplayRangeWithConfig(out io.Writer, res *scheduler.Result, duration time.Duration, algo string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietRangeResult(out, res)
	} else {
		DisplayRangeResult(out, res, duration, config.Verbose)
	}

	if config.OutputFile != "" {
		if err := WriteRangeToFile(res, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}

// ensureOutputDir creates the parent directory of the output path when
// needed.
func ensureOutputDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// WriteResultToFile writes a calculation result to a file, preceded by a
// commented header describing the run.
func WriteResultToFile(result *big.Int, n int64, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if err := ensureOutputDir(config.OutputFile); err != nil {
		return err
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Fibonacci Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", n)
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(result.String()))
	fmt.Fprintf(file, "\n")

	fmt.Fprintf(file, "F(%d) =\n%s\n", n, result.String())

	return nil
}

// WriteRangeToFile writes every value of a range computation to a file, one
// "F(n) = value" line per index, preceded by a commented header.
func WriteRangeToFile(res *scheduler.Result, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if err := ensureOutputDir(config.OutputFile); err != nil {
		return err
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	end := res.Start + int64(res.Len()) - 1
	fmt.Fprintf(file, "# Fibonacci Range Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Range: [%d, %d]\n", res.Start, end)
	fmt.Fprintf(file, "\n")

	for i, v := range res.Values {
		fmt.Fprintf(file, "F(%d) = %s\n", res.Start+int64(i), v.String())
	}

	return nil
}
