package cli

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibrange/internal/metrics"
	"github.com/agbru/fibrange/internal/scheduler"
	"github.com/agbru/fibrange/internal/ui"
)

func init() {
	// Color codes would make the string assertions brittle.
	ui.SetCurrentTheme(ui.NoColorTheme)
}

// bigIntWithDigits builds a positive integer with exactly n decimal digits.
func bigIntWithDigits(t *testing.T, n int) *big.Int {
	t.Helper()
	s := "1" + strings.Repeat("2", n-1)
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("failed to build %d-digit integer", n)
	}
	return v
}

func TestFormatTruncated(t *testing.T) {
	tests := []struct {
		name   string
		digits int
		full   bool
	}{
		{"short value stays full", 5, true},
		{"at the limit stays full", TruncationLimit, true},
		{"just above the limit truncates", TruncationLimit + 1, false},
		{"large value truncates", 250, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			v := bigIntWithDigits(t, tt.digits)
			s := v.String()
			got := FormatTruncated(v)

			if tt.full {
				if got != s {
					t.Errorf("FormatTruncated() = %q, want the full value", got)
				}
				return
			}

			if !strings.HasPrefix(got, s[:DisplayEdges]) {
				t.Errorf("truncated value %q missing leading digits", got)
			}
			if !strings.Contains(got, "..."+s[len(s)-DisplayEdges:]) {
				t.Errorf("truncated value %q missing trailing digits", got)
			}
			if !strings.Contains(got, "digits)") {
				t.Errorf("truncated value %q missing digit count", got)
			}
		})
	}
}

func TestDisplayResult(t *testing.T) {
	var buf bytes.Buffer
	DisplayResult(&buf, big.NewInt(55), 10, 5*time.Millisecond, false)

	out := buf.String()
	if !strings.Contains(out, "F(10) = 55") {
		t.Errorf("output missing result line: %q", out)
	}
	if !strings.Contains(out, "Digits: 2") {
		t.Errorf("output missing digit count: %q", out)
	}
}

func TestDisplayResult_VerboseShowsFullValue(t *testing.T) {
	v := bigIntWithDigits(t, 150)
	var buf bytes.Buffer
	DisplayResult(&buf, v, 720, time.Second, true)

	if !strings.Contains(buf.String(), v.String()) {
		t.Error("verbose output does not contain the full value")
	}
}

func TestDisplayQuietResult(t *testing.T) {
	var buf bytes.Buffer
	DisplayQuietResult(&buf, big.NewInt(55))

	if got := buf.String(); got != "55\n" {
		t.Errorf("quiet output = %q, want %q", got, "55\n")
	}
}

func TestDisplayQuietRangeResult(t *testing.T) {
	res := &scheduler.Result{
		Start:  10,
		Values: []*big.Int{big.NewInt(55), big.NewInt(89), big.NewInt(144)},
	}

	var buf bytes.Buffer
	DisplayQuietRangeResult(&buf, res)

	if got := buf.String(); got != "55\n89\n144\n" {
		t.Errorf("quiet range output = %q, want %q", got, "55\n89\n144\n")
	}
}

func TestDisplayRangeResult(t *testing.T) {
	res := &scheduler.Result{
		Start:  10,
		Values: []*big.Int{big.NewInt(55), big.NewInt(89)},
	}

	var buf bytes.Buffer
	DisplayRangeResult(&buf, res, time.Second, false)

	out := buf.String()
	for _, line := range []string{"F(10) = 55", "F(11) = 89"} {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q: %q", line, out)
		}
	}
}

func TestWriteResultToFile(t *testing.T) {
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "write result to file",
			outputFile: filepath.Join(tmpDir, "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("failed to read output file: %v", err)
				}
				contentStr := string(content)
				if !strings.Contains(contentStr, "F(10) =") {
					t.Error("file should contain 'F(10) ='")
				}
				if !strings.Contains(contentStr, "55") {
					t.Error("file should contain result '55'")
				}
				if !strings.Contains(contentStr, "# Algorithm: fast") {
					t.Error("file should contain the algorithm header")
				}
			},
		},
		{
			name:       "empty output file is a no-op",
			outputFile: "",
			checkFunc:  nil,
		},
		{
			name:       "nested directories are created",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("file should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := OutputConfig{OutputFile: tc.outputFile}
			if err := WriteResultToFile(big.NewInt(55), 10, time.Millisecond, "fast", cfg); err != nil {
				t.Fatalf("WriteResultToFile failed: %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestWriteRangeToFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "range.txt")

	res := &scheduler.Result{
		Start:  10,
		Values: []*big.Int{big.NewInt(55), big.NewInt(89), big.NewInt(144)},
	}
	cfg := OutputConfig{OutputFile: path}
	if err := WriteRangeToFile(res, time.Millisecond, "fast", cfg); err != nil {
		t.Fatalf("WriteRangeToFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	contentStr := string(content)
	if !strings.Contains(contentStr, "# Range: [10, 12]") {
		t.Error("file should contain the range header")
	}
	for _, line := range []string{"F(10) = 55", "F(11) = 89", "F(12) = 144"} {
		if !strings.Contains(contentStr, line) {
			t.Errorf("file should contain %q", line)
		}
	}
}

func TestDisplayResultWithConfig_SavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	var buf bytes.Buffer
	cfg := OutputConfig{OutputFile: path}
	if err := DisplayResultWithConfig(&buf, big.NewInt(55), 10, time.Millisecond, "fast", cfg); err != nil {
		t.Fatalf("DisplayResultWithConfig failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file was not created: %v", err)
	}
	if !strings.Contains(buf.String(), "saved to") {
		t.Errorf("output missing save confirmation: %q", buf.String())
	}
}

func TestDisplayMemoryReport(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryReport(&buf, metrics.MemorySnapshot{
		HeapAlloc:    1536,
		HeapSys:      4096,
		NumGC:        3,
		PauseTotalNs: 1_500_000,
	})

	out := buf.String()
	for _, want := range []string{"Memory:", "1.50 KiB", "4.00 KiB", "3 GC cycles", "1.5ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("memory report missing %q: %q", want, out)
		}
	}
}
