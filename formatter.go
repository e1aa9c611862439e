package casecheck

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/casecheck/casecheck/runner"
	"github.com/casecheck/casecheck/types"
)

// ResultFormatter is responsible for formatting and displaying run results.
type ResultFormatter interface {
	FormatResults(result *runner.Result) error
}

// ConsoleResultFormatter renders run results to the console.
type ConsoleResultFormatter struct {
	logger log.Logger
	out    io.Writer
}

// NewConsoleResultFormatter creates a new ConsoleResultFormatter.
func NewConsoleResultFormatter(logger log.Logger) *ConsoleResultFormatter {
	return &ConsoleResultFormatter{
		logger: logger,
		out:    os.Stdout,
	}
}

// FormatResults prints failure details followed by a per-group summary table.
func (f *ConsoleResultFormatter) FormatResults(result *runner.Result) error {
	if result == nil {
		return fmt.Errorf("no result to format")
	}

	for _, failure := range result.Failures {
		f.printFailure(failure)
	}

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle("Run Results (RunID: %s)", result.RunID)
	t.AppendHeader(table.Row{"Group", "Duration", "Cases", "Passed", "Failed", "Status"})

	for _, group := range result.Groups {
		t.AppendRow(table.Row{
			group.Identifier,
			formatDuration(group.Duration),
			group.Stats.Total,
			group.Stats.Passed,
			group.Stats.Failed,
			getResultString(group.Status),
		})
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		formatDuration(result.Duration),
		result.Stats.Total,
		result.Stats.Passed,
		result.Stats.Failed,
		getResultString(result.Status),
	})

	style := table.StyleColoredBright
	if result.Status == types.StatusFail {
		style.Color.Header = text.Colors{text.BgRed, text.FgWhite}
		style.Color.Footer = text.Colors{text.BgRed, text.FgWhite}
	} else {
		style.Color.Header = text.Colors{text.BgGreen, text.FgBlack}
		style.Color.Footer = text.Colors{text.BgGreen, text.FgBlack}
	}
	t.SetStyle(style)

	t.Render()
	return nil
}

// printFailure writes one failed case in full, with the command line that
// produced it, the raw output and the reason the case failed.
func (f *ConsoleResultFormatter) printFailure(failure types.FailureRecord) {
	fmt.Fprintln(f.out, strings.Repeat("=", 40))
	fmt.Fprintln(f.out, failure.Group)
	fmt.Fprintln(f.out, strings.Repeat(":", 20))
	fmt.Fprintln(f.out, failure.Label, strings.Join(failure.Arguments, " "))
	fmt.Fprintln(f.out, strings.Repeat("-", 20))
	fmt.Fprintln(f.out, failure.Output)
	fmt.Fprintln(f.out, " **", failure.Reason)
	if failure.Diff != "" {
		fmt.Fprintln(f.out, failure.Diff)
	}
}
