package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the estimated time remaining; anything beyond this is noise
// from a rate sample taken too early.
const maxETA = 24 * time.Hour

// ProgressBar generates a string representing a textual progress bar.
// The progress value is clamped to [0, 1].
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatETA formats an estimated time remaining for display.
// Non-positive durations render as "calculating..." since the rate sample is
// not yet meaningful.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatProgressBarWithETA renders a progress bar with percentage and ETA,
// e.g. "[█████░░░░░] 50.0% ETA: 30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// ProgressTracker tracks the progress of a single computation over time and
// derives an estimated time remaining from the observed completion rate.
// It is safe for concurrent use.
type ProgressTracker struct {
	mu        sync.Mutex
	progress  float64
	startTime time.Time
}

// NewProgressTracker creates a tracker with the clock started.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{startTime: time.Now()}
}

// Update records a new progress value and returns the current progress and
// estimated time remaining.
func (p *ProgressTracker) Update(value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if value > p.progress {
		p.progress = value
	}
	return p.progress, p.etaLocked()
}

// ETA returns the current estimated time remaining.
func (p *ProgressTracker) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked()
}

func (p *ProgressTracker) etaLocked() time.Duration {
	if p.progress <= 0 {
		return 0
	}
	elapsed := time.Since(p.startTime)
	remaining := time.Duration(float64(elapsed) * (1 - p.progress) / p.progress)
	if remaining > maxETA {
		remaining = maxETA
	}
	return remaining
}
