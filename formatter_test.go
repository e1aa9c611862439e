package casecheck

import (
	"bytes"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casecheck/casecheck/runner"
	"github.com/casecheck/casecheck/types"
)

func newBufferFormatter() (*ConsoleResultFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &ConsoleResultFormatter{logger: log.New(), out: &buf}, &buf
}

func TestFormatResultsPassing(t *testing.T) {
	formatter, buf := newBufferFormatter()

	result := &runner.Result{
		RunID:  "run-1",
		Status: types.StatusPass,
		Groups: []*runner.GroupResult{
			{
				Identifier: "usage: prog",
				Status:     types.StatusPass,
				Duration:   1500 * time.Millisecond,
				Stats:      types.Stats{Total: 2, Passed: 2},
			},
		},
		Duration: 2 * time.Second,
		Stats:    types.Stats{Total: 2, Passed: 2},
	}

	err := formatter.FormatResults(result)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "usage: prog")
	assert.Contains(t, out, "✓ pass")
	assert.Contains(t, out, "TOTAL")
	assert.NotContains(t, out, "✗ fail")
}

func TestFormatResultsWithFailures(t *testing.T) {
	formatter, buf := newBufferFormatter()

	result := &runner.Result{
		RunID:  "run-2",
		Status: types.StatusFail,
		Groups: []*runner.GroupResult{
			{
				Identifier: "usage: prog",
				Status:     types.StatusFail,
				Stats:      types.Stats{Total: 2, Passed: 1, Failed: 1},
			},
		},
		Failures: []types.FailureRecord{
			{
				Group:     "usage: prog",
				Label:     "prog",
				Arguments: []string{"-v"},
				Output:    `{"-v": false}`,
				Reason:    "output does not match expected",
				Diff:      "-v: true != false",
			},
		},
		Stats: types.Stats{Total: 2, Passed: 1, Failed: 1},
	}

	err := formatter.FormatResults(result)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "✗ fail")
	assert.Contains(t, out, "prog -v")
	assert.Contains(t, out, `{"-v": false}`)
	assert.Contains(t, out, "** output does not match expected")
	assert.Contains(t, out, "-v: true != false")
}

func TestFormatResultsNilResult(t *testing.T) {
	formatter, _ := newBufferFormatter()
	err := formatter.FormatResults(nil)
	assert.Error(t, err)
}

func TestGetResultString(t *testing.T) {
	assert.Equal(t, "✓ pass", getResultString(types.StatusPass))
	assert.Equal(t, "✗ fail", getResultString(types.StatusFail))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "0.0s", formatDuration(0))
}
