// Package app wires the configuration, the calculator factory and the
// execution surfaces (CLI, dashboard, HTTP server) into a runnable
// application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/fibrange/internal/config"
	"github.com/agbru/fibrange/internal/fibonacci"
	"github.com/agbru/fibrange/internal/server"
	"github.com/agbru/fibrange/internal/service"
	"github.com/agbru/fibrange/internal/tui"
	"github.com/agbru/fibrange/internal/ui"
)

// Application represents the fibrange application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	Service   service.Service
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithService sets a custom Service for the application.
// This is primarily used by tests to inject mocks.
func WithService(svc service.Service) AppOption {
	return func(a *Application) { a.Service = svc }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}

	availableAlgos := app.Factory.List()

	programName := "fibrange"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	if app.Service == nil {
		app.Service = service.NewBatchService(app.Factory, cfg.ToCalculationOptions(), cfg.MaxN)
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Quiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.EstimateOnly:
		return a.runEstimate(out)
	case a.Config.TUI && a.Config.RangeMode():
		return a.runTUI(ctx)
	case a.Config.RangeMode():
		return a.runRange(ctx, out)
	default:
		return a.runSingle(ctx, out)
	}
}

// runServer starts the HTTP API server.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config, server.WithService(a.Service))
	if err := srv.Start(); err != nil {
		a.reportError(err)
		return 1
	}
	return 0
}

// runTUI launches the interactive range dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calc, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		a.reportError(err)
		return 1
	}
	return tui.Run(ctx, calc, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
