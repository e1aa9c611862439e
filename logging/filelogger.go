// Package logging persists run results to per-run log directories.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/casecheck/casecheck/runner"
)

// FileLogger writes a summary and failure details for each run under
// baseDir/testrun-<runID>/.
type FileLogger struct {
	baseDir string
	log     log.Logger
}

// NewFileLogger creates a FileLogger rooted at baseDir.
func NewFileLogger(baseDir string, logger log.Logger) *FileLogger {
	return &FileLogger{
		baseDir: baseDir,
		log:     logger,
	}
}

// RunDir returns the directory used for a given run.
func (l *FileLogger) RunDir(runID string) string {
	return filepath.Join(l.baseDir, fmt.Sprintf("testrun-%s", runID))
}

// LogResult writes summary.log and, if any cases failed, failures.log.
func (l *FileLogger) LogResult(result *runner.Result) error {
	runDir := l.RunDir(result.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create run log directory %s", runDir)
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "run_id: %s\n", result.RunID)
	fmt.Fprintf(&summary, "status: %s\n", result.Status)
	fmt.Fprintf(&summary, "duration: %s\n", result.Duration)
	fmt.Fprintf(&summary, "cases: %d passed=%d failed=%d\n", result.Stats.Total, result.Stats.Passed, result.Stats.Failed)
	for _, group := range result.Groups {
		fmt.Fprintf(&summary, "group %s: %s (%d/%d passed)\n",
			group.Identifier, group.Status, group.Stats.Passed, group.Stats.Total)
	}

	summaryPath := filepath.Join(runDir, "summary.log")
	if err := os.WriteFile(summaryPath, []byte(summary.String()), 0644); err != nil {
		return errors.Wrapf(err, "failed to write summary log %s", summaryPath)
	}

	if len(result.Failures) > 0 {
		var failures strings.Builder
		for _, failure := range result.Failures {
			fmt.Fprintln(&failures, strings.Repeat("=", 40))
			fmt.Fprintf(&failures, "%s / %s %s\n", failure.Group, failure.Label, strings.Join(failure.Arguments, " "))
			fmt.Fprintln(&failures, strings.Repeat("-", 20))
			fmt.Fprintln(&failures, stripansi.Strip(failure.Output))
			fmt.Fprintf(&failures, " ** %s\n", failure.Reason)
			if failure.Diff != "" {
				fmt.Fprintln(&failures, stripansi.Strip(failure.Diff))
			}
		}

		failuresPath := filepath.Join(runDir, "failures.log")
		if err := os.WriteFile(failuresPath, []byte(failures.String()), 0644); err != nil {
			return errors.Wrapf(err, "failed to write failures log %s", failuresPath)
		}
	}

	l.log.Info("Wrote run logs", "dir", runDir)
	return nil
}
