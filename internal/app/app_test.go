package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	apperrors "github.com/agbru/fibrange/internal/errors"
)

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	application, err := New(append([]string{"fibrange"}, args...), io.Discard)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", args, err)
	}
	application.ErrWriter = io.Discard
	return application
}

func TestNew_HelpFlag(t *testing.T) {
	_, err := New([]string{"fibrange", "-h"}, io.Discard)
	if err == nil {
		t.Fatal("expected error for -h")
	}
	if !IsHelpError(err) {
		t.Errorf("expected help error, got %v", err)
	}
}

func TestNew_InvalidConfiguration(t *testing.T) {
	_, err := New([]string{"fibrange", "-algo", "quantum"}, io.Discard)
	if err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
	if IsHelpError(err) {
		t.Error("configuration error misreported as help")
	}
}

func TestRun_SingleQuiet(t *testing.T) {
	app := newTestApp(t, "-n", "90", "-q", "-no-color")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if got := out.String(); got != "2880067194370816120\n" {
		t.Errorf("output = %q, want bare F(90)", got)
	}
}

func TestRun_SingleJSON(t *testing.T) {
	app := newTestApp(t, "-n", "100", "-json", "-no-color")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}

	var resp struct {
		N         int64  `json:"n"`
		Result    string `json:"result"`
		Digits    int    `json:"digits"`
		Algorithm string `json:"algorithm"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %q (%v)", out.String(), err)
	}
	if resp.N != 100 || resp.Result != "354224848179261915075" || resp.Digits != 21 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRun_SingleVerboseMemoryReport(t *testing.T) {
	app := newTestApp(t, "-n", "90", "-v", "-no-color")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	got := out.String()
	if !strings.Contains(got, "F(90) = 2880067194370816120") {
		t.Errorf("verbose output missing the result: %q", got)
	}
	if !strings.Contains(got, "Memory:") {
		t.Errorf("verbose output missing the memory report: %q", got)
	}
}

func TestRun_RangeQuiet(t *testing.T) {
	app := newTestApp(t, "-start", "10", "-end", "15", "-workers", "2", "-q", "-no-color")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	want := "55\n89\n144\n233\n377\n610\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_RangeJSON(t *testing.T) {
	app := newTestApp(t, "-start", "10", "-end", "12", "-json", "-no-color")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}

	var resp struct {
		Start   int64    `json:"start"`
		End     int64    `json:"end"`
		Results []string `json:"results"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %q (%v)", out.String(), err)
	}
	if len(resp.Results) != 3 || resp.Results[0] != "55" || resp.Results[2] != "144" {
		t.Errorf("results = %v, want [55 89 144]", resp.Results)
	}
}

func TestRun_EstimateQuiet(t *testing.T) {
	app := newTestApp(t, "-n", "100", "-estimate", "-q", "-no-color")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if got := out.String(); got != "21\n" {
		t.Errorf("output = %q, want %q", got, "21\n")
	}
}

func TestRun_EstimateJSON(t *testing.T) {
	app := newTestApp(t, "-n", "1000", "-estimate", "-json", "-no-color")

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}

	var resp struct {
		N      int64 `json:"n"`
		Digits int   `json:"digits"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %q (%v)", out.String(), err)
	}
	if resp.N != 1000 || resp.Digits != 209 {
		t.Errorf("response = %+v, want n=1000 digits=209", resp)
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-server", "--version"}, true},
		{[]string{"-n", "100"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var out strings.Builder
	PrintVersion(&out)

	s := out.String()
	for _, want := range []string{"fibrange", "Commit:", "Go version:", "OS/Arch:"} {
		if !strings.Contains(s, want) {
			t.Errorf("version output missing %q: %q", want, s)
		}
	}
}
