// Package casecheck wires the registry, runner, scheduler and reporting
// together into a black-box conformance harness.
package casecheck

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/casecheck/casecheck/exitcodes"
	"github.com/casecheck/casecheck/logging"
	"github.com/casecheck/casecheck/registry"
	"github.com/casecheck/casecheck/runner"
	"github.com/casecheck/casecheck/types"
)

// Harness drives complete runs against the program under test.
type Harness struct {
	ctx        context.Context
	config     *Config
	version    string
	registry   *registry.Registry
	runner     runner.CaseRunner
	scheduler  RunScheduler
	executor   CaseExecutor
	formatter  ResultFormatter
	reporter   MetricsReporter
	fileLogger *logging.FileLogger
	result     *runner.Result

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*Harness, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating harness with config",
		"fixture", config.FixtureFile,
		"manifest", config.ManifestFile,
		"program", config.Program,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	reg, err := registry.NewRegistry(registry.Config{
		Log:          config.Log,
		ManifestFile: config.ManifestFile,
		FixtureFile:  config.FixtureFile,
		Program:      config.Program,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	// Create runner with registry
	caseRunner, err := runner.NewCaseRunner(runner.Config{
		Registry: reg,
		WorkDir:  config.WorkDir,
		Log:      config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create case runner: %w", err)
	}
	config.Log.Info("casecheck.New: created registry and case runner")

	var fileLogger *logging.FileLogger
	if config.LogDir != "" {
		fileLogger = logging.NewFileLogger(config.LogDir, config.Log)
	}

	h := &Harness{
		ctx:              ctx,
		config:           config,
		version:          version,
		registry:         reg,
		runner:           caseRunner,
		executor:         NewDefaultCaseExecutor(caseRunner, config.Log),
		formatter:        NewConsoleResultFormatter(config.Log),
		reporter:         NewDefaultMetricsReporter(),
		scheduler:        NewDefaultRunScheduler(config.RunInterval, config.RunOnce, config.Log),
		fileLogger:       fileLogger,
		shutdownCallback: shutdownCallback,
	}
	h.scheduler.RegisterCallback(h.runCases)
	return h, nil
}

// Start begins executing runs per the configured schedule.
func (h *Harness) Start(ctx context.Context) error {
	// Set up panic recovery to ensure we exit with code 2 for runtime errors
	defer func() {
		if r := recover(); r != nil {
			h.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	h.ctx = ctx

	if h.config.RunOnce {
		h.config.Log.Info("Starting casecheck in run-once mode")
	} else {
		h.config.Log.Info("Starting casecheck in continuous mode", "interval", h.config.RunInterval)
	}

	if err := h.scheduler.Start(ctx); err != nil {
		// This is a runtime error (not a case failure)
		h.config.Log.Error("Runtime error running cases", "error", err)
		return NewRuntimeError(err)
	}

	if h.config.RunOnce {
		h.config.Log.Info("Run completed, exiting (run-once mode)")

		// Check if any cases failed and return appropriate exit code
		if h.result != nil && h.result.Status == types.StatusFail {
			h.config.Log.Warn("Run-once completed with failures, returning exit code 1")
			return NewCaseFailureError(h.result.String())
		}

		// Only need to call this when we're in run-once mode and all cases passed
		go func() {
			h.shutdownCallback(nil)
		}()
	}
	return nil
}

// runCases executes one complete run and reports the results.
func (h *Harness) runCases() error {
	result, err := h.executor.RunCases(h.ctx)
	if err != nil {
		return err
	}
	h.result = result

	if err := h.formatter.FormatResults(result); err != nil {
		h.config.Log.Error("Error formatting results", "error", err)
	}
	fmt.Println(result.String())
	h.reporter.ReportResults(result)
	if h.fileLogger != nil {
		if err := h.fileLogger.LogResult(result); err != nil {
			h.config.Log.Error("Error writing run logs", "error", err)
		}
	}
	h.config.Log.Info("Run completed", "run_id", result.RunID, "status", result.Status)
	return nil
}

// Result returns the most recent run result, nil before the first run.
func (h *Harness) Result() *runner.Result {
	return h.result
}

// Stop stops the harness.
func (h *Harness) Stop(ctx context.Context) error {
	h.config.Log.Info("Stopping casecheck")
	return h.scheduler.Stop()
}

// Stopped returns true if the harness is stopped.
func (h *Harness) Stopped() bool {
	return h.scheduler.Stopped()
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving on.
func (h *Harness) WaitForShutdown(ctx context.Context) error {
	return h.scheduler.WaitForShutdown(ctx)
}
