package casecheck

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/casecheck/casecheck/flags"
	"github.com/ethereum/go-ethereum/log"
)

// Config holds the application configuration
type Config struct {
	FixtureFile  string
	ManifestFile string
	Program      string        // Path to the program under test
	WorkDir      string        // Working directory for program invocations
	RunInterval  time.Duration // Interval between runs
	RunOnce      bool          // Indicates if the service should exit after one run
	LogDir       string        // Directory to store run logs, empty disables file logging
	Log          log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	fixtureFile := ctx.String(flags.Fixture.Name)
	manifestFile := ctx.String(flags.Manifest.Name)
	logDir := ctx.String(flags.LogDir.Name)

	// Resolve the absolute paths
	var err error
	if fixtureFile != "" {
		fixtureFile, err = filepath.Abs(fixtureFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for fixture '%s': %w", ctx.String(flags.Fixture.Name), err)
		}
	}
	if manifestFile != "" {
		manifestFile, err = filepath.Abs(manifestFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for manifest '%s': %w", ctx.String(flags.Manifest.Name), err)
		}
	}
	if logDir != "" {
		logDir, err = filepath.Abs(logDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for log directory '%s': %w", ctx.String(flags.LogDir.Name), err)
		}
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)

	return &Config{
		FixtureFile:  fixtureFile,
		ManifestFile: manifestFile,
		Program:      ctx.String(flags.Program.Name),
		WorkDir:      ctx.String(flags.WorkDir.Name),
		RunInterval:  runInterval,
		RunOnce:      runInterval == 0,
		LogDir:       logDir,
		Log:          logger,
	}, nil
}

// LevelFromString maps a --log-level value to a slog level.
func LevelFromString(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return log.LevelInfo, errors.New("unknown log level: " + s)
	}
}
