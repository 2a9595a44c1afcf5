// Package config provides the configuration management for the fibrange
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments and environment variables, and
// performs validation on the configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/fibonacci"
)

const (
	// EnvPrefix is the prefix for all environment variables used by fibrange.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "FIBRANGE_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultN is the default Fibonacci index to calculate.
	DefaultN int64 = 10_000_000
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo is the default algorithm selection.
	DefaultAlgo = "fast"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the Fibonacci indexes to calculate, to performance-tuning
// parameters.
type AppConfig struct {
	// N is the index of the Fibonacci number to be calculated in single mode.
	N int64
	// Start is the first index of the range to calculate in range mode.
	Start int64
	// End is the last index of the range to calculate in range mode.
	// Range mode is active when End >= 0.
	End int64
	// Workers is the worker pool size for range mode. Zero means all
	// available hardware parallelism.
	Workers int
	// ChunkSize overrides the number of indexes claimed per work chunk in
	// range mode. Zero selects an adaptive size.
	ChunkSize int
	// EstimateOnly, if true, prints the digit count of F(n) without
	// computing the value.
	EstimateOnly bool
	// Verbose, if true, instructs the application to display the full
	// calculated number instead of the truncated form.
	Verbose bool
	// Timeout sets the maximum duration for the calculation.
	Timeout time.Duration
	// Algo specifies the algorithm to use ("fast", "matrix", "iterative").
	Algo string
	// Threshold determines the bit size at which the three multiplications
	// of a doubling step are parallelized.
	Threshold int
	// MaxN caps the accepted index (0 for no limit). Mostly useful in
	// server mode to bound per-request work.
	MaxN int64
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses progress bars, banners, and informational messages.
	Quiet bool
	// TUI, if true, runs range mode inside the terminal dashboard.
	TUI bool
}

// RangeMode reports whether the configuration selects a range computation.
func (c AppConfig) RangeMode() bool {
	return c.End >= 0
}

// ToCalculationOptions converts the application configuration into
// fibonacci.Options for use by the calculators.
func (c AppConfig) ToCalculationOptions() fibonacci.Options {
	return fibonacci.Options{
		ParallelThreshold: c.Threshold,
	}
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen algorithm is supported.
//
// Parameters:
//   - availableAlgos: A slice of strings listing the valid algorithm names
//     (e.g., ["fast", "iterative", "matrix"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.N < 0 {
		return apperrors.NewConfigError("index cannot be negative: %d", c.N)
	}
	if c.RangeMode() {
		if c.Start < 0 {
			return apperrors.NewConfigError("range start cannot be negative: %d", c.Start)
		}
		if c.Start > c.End {
			return apperrors.NewConfigError("range start %d exceeds range end %d", c.Start, c.End)
		}
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count cannot be negative: %d", c.Workers)
	}
	if c.MaxN < 0 {
		return apperrors.NewConfigError("maximum index cannot be negative: %d", c.MaxN)
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, environment variable
// overrides are applied for flags not explicitly set, then the resulting
// configuration is validated.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableAlgos: A slice of valid algorithm names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Algorithm to use: one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.Int64Var(&config.N, "n", DefaultN, "Index n of the Fibonacci number to calculate.")
	fs.Int64Var(&config.Start, "start", 0, "First index of the range to calculate (range mode).")
	fs.Int64Var(&config.End, "end", -1, "Last index of the range to calculate; enables range mode when set.")
	fs.IntVar(&config.Workers, "workers", 0, "Worker pool size for range mode (0 = all CPUs).")
	fs.IntVar(&config.ChunkSize, "chunk", 0, "Indexes claimed per work chunk in range mode (0 = adaptive).")
	fs.BoolVar(&config.EstimateOnly, "estimate", false, "Print the digit count of F(n) without computing the value.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of the result (can be very long).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the calculation.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&config.Threshold, "threshold", 0, "Threshold (in bits) for activating parallelism in multiplications (0 = adaptive).")
	fs.Int64Var(&config.MaxN, "max-n", 0, "Maximum accepted index (0 = unlimited).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.TUI, "tui", false, "Run range mode inside the terminal dashboard.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config = ApplyAdaptiveThresholds(config)

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
