package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	casecheck "github.com/casecheck/casecheck"
	"github.com/casecheck/casecheck/flags"
	"github.com/casecheck/casecheck/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "casecheck"
	app.Usage = "Black-box conformance checker"
	app.Description = "casecheck runs fixture-defined cases against a program and compares its output"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			// Use the exit code from the ExitCoder
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			// Check for typed runtime errors
			if casecheck.IsRuntimeError(err) {
				// For runtime errors, use exit code 2
				cli.HandleExitCoder(cli.Exit(err.Error(), 2))
			} else if casecheck.IsCaseFailureError(err) {
				// For case failures, use exit code 1
				cli.HandleExitCoder(cli.Exit(err.Error(), 1))
			} else {
				// For other unspecified errors, default to exit code 1
				cli.HandleExitCoder(cli.Exit(err.Error(), 1))
			}
		}
	}

	// Start telemetry
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer otelShutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	svc := service.New()
	svc.Start(ctx)
	defer svc.Shutdown()

	// Start CLI
	err = app.RunContext(ctx, os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func run(cliCtx *cli.Context) error {
	level, err := casecheck.LevelFromString(cliCtx.String(flags.LogLevel.Name))
	if err != nil {
		return casecheck.NewRuntimeError(err)
	}
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, true))
	log.SetDefault(logger)

	cfg, err := casecheck.NewConfig(cliCtx, logger)
	if err != nil {
		// Wrap in RuntimeError to signal this should exit with code 2
		return casecheck.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	cfg.Log.Debug("Config", "config", cfg)

	ctx, cancel := context.WithCancelCause(cliCtx.Context)
	defer cancel(nil)

	harness, err := casecheck.New(ctx, cfg, Version, cancel)
	if err != nil {
		// Wrap in RuntimeError to signal this should exit with code 2
		return casecheck.NewRuntimeError(fmt.Errorf("failed to create harness: %w", err))
	}

	if err := harness.Start(ctx); err != nil {
		return err
	}

	if cfg.RunOnce {
		return nil
	}

	// Continuous mode: block until interrupted, then drain the scheduler.
	<-ctx.Done()
	if err := harness.Stop(context.Background()); err != nil {
		return casecheck.NewRuntimeError(err)
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return harness.WaitForShutdown(shutdownCtx)
}
