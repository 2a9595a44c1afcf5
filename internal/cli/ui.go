package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibrange/internal/format"
)

const (
	// TruncationLimit is the digit threshold from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 50
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// 200ms keeps the terminal responsive without flooding it with updates.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the DisplayProgress function to be decoupled from a specific
// spinner implementation, facilitating easier testing. It defines the
// essential controls for a spinner: starting, stopping, and updating its
// status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the spinner.Spinner that implements the
// Spinner interface. This adapter allows the spinner library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with a progress bar and ETA while a
// computation runs. It consumes progress values in [0, 1] from progressChan
// until the channel closes, then signals completion on wg.
//
// Updates are throttled to ProgressRefreshRate; intermediate values that
// arrive faster are coalesced into the next refresh.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan float64, out io.Writer) {
	defer wg.Done()

	sp := newSpinner(spinner.WithWriter(out))
	tracker := format.NewProgressTracker()
	sp.UpdateSuffix(fmt.Sprintf("  %s", format.FormatProgressBarWithETA(0, 0, ProgressBarWidth)))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var latest float64
	dirty := false
	for {
		select {
		case p, ok := <-progressChan:
			if !ok {
				sp.UpdateSuffix(fmt.Sprintf("  %s", format.FormatProgressBarWithETA(1.0, 0, ProgressBarWidth)))
				return
			}
			latest = p
			dirty = true
		case <-ticker.C:
			if !dirty {
				continue
			}
			progress, eta := tracker.Update(latest)
			sp.UpdateSuffix(fmt.Sprintf("  %s", format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth)))
			dirty = false
		}
	}
}
