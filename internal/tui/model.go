// Package tui implements the terminal dashboard for range computations.
// It renders live progress, resource usage and the final results of a
// scheduler run inside an alternate-screen bubbletea program.
package tui

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibrange/internal/config"
	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/fibonacci"
	"github.com/agbru/fibrange/internal/format"
	"github.com/agbru/fibrange/internal/metrics"
	"github.com/agbru/fibrange/internal/scheduler"
	"github.com/agbru/fibrange/internal/sysmon"
)

// memCollector backs the dashboard's process-memory pane.
var memCollector = metrics.NewMemoryCollector()

// progressGranularity is the resolution of forwarded progress updates.
// Workers report per-index completion; only changes of at least one
// granularity step reach the UI loop.
const progressGranularity = 1000

// Model is the root bubbletea model for the range dashboard.
type Model struct {
	parentCtx context.Context
	ctx       context.Context
	cancel    context.CancelFunc

	calc    fibonacci.Calculator
	cfg     config.AppConfig
	version string
	ref     *programRef
	keymap  KeyMap

	width  int
	height int

	generation uint64
	startTime  time.Time
	progress   float64
	done       bool
	err        error
	result     *scheduler.Result
	duration   time.Duration
	exitCode   int

	memStats MemStatsMsg
	sysStats SysStatsMsg
}

// NewModel creates a new dashboard model.
func NewModel(parentCtx context.Context, calc fibonacci.Calculator, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		parentCtx: parentCtx,
		ctx:       ctx,
		cancel:    cancel,
		calc:      calc,
		cfg:       cfg,
		version:   version,
		ref:       &programRef{},
		keymap:    DefaultKeyMap(),
		startTime: time.Now(),
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRangeCmd(m.ref, m.ctx, m.calc, m.cfg, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProgressMsg:
		if msg.Value > m.progress {
			m.progress = msg.Value
		}
		return m, nil

	case RangeDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from previous run
		}
		m.done = true
		m.err = msg.Err
		m.result = msg.Result
		m.duration = msg.Duration
		if msg.Err != nil {
			m.exitCode = apperrors.ExitCodeForError(msg.Err)
		} else {
			m.progress = 1.0
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.memStats = msg
		return m, nil

	case SysStatsMsg:
		m.sysStats = msg
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Restart):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel
		m.startTime = time.Now()
		m.progress = 0
		m.done = false
		m.err = nil
		m.result = nil
		m.duration = 0
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startRangeCmd(m.ref, m.ctx, m.calc, m.cfg, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := headerStyle.Width(m.width - 2).Render(fmt.Sprintf("%s %s",
		titleStyle.Render("fibrange"),
		versionStyle.Render(m.version)))

	barWidth := m.width - 20
	if barWidth < 10 {
		barWidth = 10
	}

	var status string
	switch {
	case m.err != nil:
		status = statusErrorStyle.Render("FAILED")
	case m.done:
		status = statusDoneStyle.Render("DONE")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}

	lines := []string{
		fmt.Sprintf("%s %s",
			metricLabelStyle.Render("Range:"),
			metricValueStyle.Render(fmt.Sprintf("F(%s) .. F(%s)",
				format.FormatNumberString(fmt.Sprintf("%d", m.cfg.Start)),
				format.FormatNumberString(fmt.Sprintf("%d", m.cfg.End))))),
		fmt.Sprintf("%s %s   %s",
			progressBarStyle.Render(format.ProgressBar(m.progress, barWidth)),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.progress*100)),
			status),
		fmt.Sprintf("%s %s   %s %s   %s %d",
			metricLabelStyle.Render("Elapsed:"),
			metricValueStyle.Render(format.FormatExecutionDuration(time.Since(m.startTime))),
			metricLabelStyle.Render("Heap:"),
			metricValueStyle.Render(format.FormatBytes(m.memStats.Alloc)),
			metricLabelStyle.Render("Goroutines:"),
			m.memStats.NumGoroutine),
		fmt.Sprintf("%s %s   %s %s",
			metricLabelStyle.Render("CPU:"),
			metricValueStyle.Render(fmt.Sprintf("%.1f%%", m.sysStats.CPUPercent)),
			metricLabelStyle.Render("Mem:"),
			metricValueStyle.Render(fmt.Sprintf("%.1f%%", m.sysStats.MemPercent))),
	}

	if m.done {
		if m.err != nil {
			lines = append(lines, statusErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else if m.result != nil {
			last := m.result.Values[m.result.Len()-1]
			lines = append(lines,
				resultStyle.Render(fmt.Sprintf("Computed %s values in %s; F(%d) has %s digits",
					format.FormatCount(int64(m.result.Len())),
					format.FormatExecutionDuration(m.duration),
					m.cfg.End,
					format.FormatNumberString(fmt.Sprintf("%d", len(last.String()))))))
		}
	}

	body := panelStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	var footer string
	for i, b := range m.keymap.ShortHelp() {
		if i > 0 {
			footer += footerDescStyle.Render("  •  ")
		}
		footer += footerKeyStyle.Render(b.Help().Key) + footerDescStyle.Render(" "+b.Help().Desc)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Run is the public entry point for the dashboard mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, calc fibonacci.Calculator, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, calc, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRangeCmd returns a tea.Cmd that launches the range computation.
// Progress updates are forwarded through the program reference, quantized so
// the UI loop is not flooded by per-index reports.
func startRangeCmd(ref *programRef, ctx context.Context, calc fibonacci.Calculator, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		var lastStep atomic.Int64
		lastStep.Store(-1)
		reporter := func(progress float64) {
			step := int64(math.Floor(progress * progressGranularity))
			if prev := lastStep.Load(); step > prev && lastStep.CompareAndSwap(prev, step) {
				ref.Send(ProgressMsg{Value: progress})
			}
		}

		sched := scheduler.New(calc, cfg.ToCalculationOptions())
		req := scheduler.Request{
			Start:     cfg.Start,
			End:       cfg.End,
			Workers:   cfg.Workers,
			ChunkSize: cfg.ChunkSize,
		}

		start := time.Now()
		res, err := sched.ComputeRange(ctx, req, reporter)
		return RangeDoneMsg{
			Result:     res,
			Err:        err,
			Duration:   time.Since(start),
			Generation: gen,
		}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads process memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		snap := memCollector.Snapshot()
		return MemStatsMsg{
			Alloc:        snap.HeapAlloc,
			HeapSys:      snap.HeapSys,
			NumGC:        snap.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		u := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: u.CPU,
			MemPercent: u.Memory,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
