package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "CASECHECK"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Fixture = &cli.StringFlag{
		Name:    "fixture",
		Value:   "",
		EnvVars: prefixEnvVars("FIXTURE"),
		Usage:   "Path to a fixture file holding test groups and cases",
	}
	Manifest = &cli.StringFlag{
		Name:    "manifest",
		Value:   "",
		EnvVars: prefixEnvVars("MANIFEST"),
		Usage:   "Path to a YAML manifest naming the program under test and its fixtures (eg. 'casecheck.yaml')",
	}
	Program = &cli.StringFlag{
		Name:    "program",
		Value:   "",
		EnvVars: prefixEnvVars("PROGRAM"),
		Usage:   "Path to the program under test (overrides the manifest's program)",
	}
	WorkDir = &cli.StringFlag{
		Name:    "workdir",
		Value:   "",
		EnvVars: prefixEnvVars("WORKDIR"),
		Usage:   "Working directory for program invocations",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	LogDir = &cli.StringFlag{
		Name:    "log-dir",
		Value:   "",
		EnvVars: prefixEnvVars("LOG_DIR"),
		Usage:   "Directory to store per-run summary and failure logs (disabled when empty)",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}
)

var requiredFlags = []cli.Flag{
	Fixture,
	Manifest,
	Program,
}

var optionalFlags = []cli.Flag{
	WorkDir,
	RunInterval,
	LogDir,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

// CheckRequired validates the flag combination: at least one fixture source,
// and a program reachable from the flag, the environment or the manifest.
// The manifest's program is only resolvable later, so it is checked by the
// registry rather than here.
func CheckRequired(ctx *cli.Context) error {
	fixtureSet := ctx.String(Fixture.Name) != ""
	manifestSet := ctx.String(Manifest.Name) != ""
	if !fixtureSet && !manifestSet {
		return fmt.Errorf("flag %s or %s is required", Fixture.Name, Manifest.Name)
	}
	if !manifestSet && ctx.String(Program.Name) == "" {
		return fmt.Errorf("flag %s is required when running a bare fixture", Program.Name)
	}
	return nil
}
