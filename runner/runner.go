// Package runner invokes the program under test once per fixture case and
// classifies each invocation against the case's expectation.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/casecheck/casecheck/fixture"
	"github.com/casecheck/casecheck/metrics"
	"github.com/casecheck/casecheck/registry"
	"github.com/casecheck/casecheck/types"
)

// GroupResult captures aggregated results for one fixture group
type GroupResult struct {
	Identifier string
	Status     types.Status
	Duration   time.Duration
	Stats      types.Stats
}

// Result captures the complete outcome of one harness run
type Result struct {
	Groups   []*GroupResult
	Failures []types.FailureRecord // declaration order
	Status   types.Status
	Duration time.Duration
	Stats    types.Stats
	RunID    string
}

// Outcome is the classification of a single invocation.
type Outcome struct {
	Status types.Status
	Output []byte // combined stdout+stderr
	Reason string // set when Status is fail
	Diff   string // expected/actual diff for value mismatches
}

// CaseRunner defines the interface for executing fixture cases
type CaseRunner interface {
	RunAllCases(ctx context.Context) (*Result, error)
	RunCase(ctx context.Context, identifier string, c fixture.Case) (Outcome, error)
}

// caseRunner struct implements CaseRunner interface
type caseRunner struct {
	registry *registry.Registry
	groups   []fixture.Group
	program  string // path to the program under test
	workDir  string // working directory for invocations
	log      log.Logger
	runID    string
	tracer   trace.Tracer
}

// Config holds configuration for creating a new runner
type Config struct {
	Registry *registry.Registry
	WorkDir  string
	Log      log.Logger
}

// NewCaseRunner creates a new case runner instance
func NewCaseRunner(cfg Config) (CaseRunner, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	return &caseRunner{
		registry: cfg.Registry,
		groups:   cfg.Registry.Groups(),
		program:  cfg.Registry.Program(),
		workDir:  cfg.WorkDir,
		log:      cfg.Log,
		runID:    uuid.New().String(),
		tracer:   otel.Tracer("casecheck/runner"),
	}, nil
}

// RunAllCases executes every case of every group sequentially, in declaration
// order. A failing case never aborts the run; only a malformed expectation
// does, since guessing its meaning would hide a broken fixture.
func (r *caseRunner) RunAllCases(ctx context.Context) (*Result, error) {
	start := time.Now()
	r.log.Info("Running all cases",
		"program", r.program,
		"groups", len(r.groups),
		"run_id", r.runID)

	ctx, span := r.tracer.Start(ctx, "casecheck run")
	defer span.End()

	result := &Result{RunID: r.runID, Status: types.StatusPass}
	for _, g := range r.groups {
		if len(g.Cases) == 0 {
			// A group with an identifier but no cases contributes nothing.
			r.log.Debug("Skipping empty group", "group", g.Identifier)
			continue
		}
		gr, err := r.runGroup(ctx, g, result)
		if err != nil {
			return nil, err
		}
		result.Groups = append(result.Groups, gr)
	}

	result.Duration = time.Since(start)
	if result.Stats.Failed > 0 {
		result.Status = types.StatusFail
	}
	return result, nil
}

func (r *caseRunner) runGroup(ctx context.Context, g fixture.Group, result *Result) (*GroupResult, error) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("group %s", g.Identifier))
	defer span.End()

	gr := &GroupResult{Identifier: g.Identifier, Status: types.StatusPass}
	for _, c := range g.Cases {
		outcome, err := r.RunCase(ctx, g.Identifier, c)
		if err != nil {
			return nil, err
		}

		gr.Stats.Total++
		result.Stats.Total++
		if outcome.Status == types.StatusPass {
			gr.Stats.Passed++
			result.Stats.Passed++
		} else {
			gr.Stats.Failed++
			result.Stats.Failed++
			gr.Status = types.StatusFail
			result.Failures = append(result.Failures, types.FailureRecord{
				Group:     g.Identifier,
				Label:     c.Label,
				Arguments: c.Arguments,
				Output:    string(outcome.Output),
				Reason:    outcome.Reason,
				Diff:      outcome.Diff,
			})
		}
		metrics.RecordCase(r.runID, g.Identifier, outcome.Status)
	}
	gr.Duration = time.Since(start)
	return gr, nil
}

// RunCase invokes the program under test once and classifies the outcome
// against the case expectation. The invocation blocks until the child exits
// and its output is fully drained; there is no timeout.
func (r *caseRunner) RunCase(ctx context.Context, identifier string, c fixture.Case) (Outcome, error) {
	if c.Err != nil {
		return Outcome{}, fmt.Errorf("group %q case %q: %w", identifier, c.Label, c.Err)
	}

	args := append([]string{identifier}, c.Arguments...)
	cmd := exec.CommandContext(ctx, r.program, args...)
	cmd.Dir = r.workDir

	// stdout and stderr are captured merged; the program may write its result
	// to either stream.
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	r.log.Debug("Running case",
		"group", identifier,
		"label", c.Label,
		"command", cmd.String())

	err := cmd.Run()
	return classify(c.Expectation, combined.Bytes(), err), nil
}

// classify applies an expectation to an invocation result. A startup failure
// (program missing, not executable) counts as a non-zero exit, with its own
// reason text preserved for the failure record.
func classify(expectation fixture.Expectation, output []byte, runErr error) Outcome {
	out := Outcome{Status: types.StatusPass, Output: output}

	switch expectation.Kind {
	case fixture.ExpectFailure:
		if runErr == nil {
			out.Status = types.StatusFail
			out.Reason = "expected an error but it succeeded"
		}

	case fixture.ExpectSuccess:
		if runErr != nil {
			out.Status = types.StatusFail
			var exitErr *exec.ExitError
			if errors.As(runErr, &exitErr) {
				out.Reason = fmt.Sprintf("should have succeeded, exit code = %d", exitErr.ExitCode())
			} else {
				out.Reason = fmt.Sprintf("could not invoke program: %v", runErr)
			}
			return out
		}

		actual, err := fixture.DecodeValue(output)
		if err != nil {
			out.Status = types.StatusFail
			out.Reason = fmt.Sprintf("output is not a valid structured value: %v", err)
			return out
		}
		expected := any(expectation.Value)
		if !fixture.Equal(expected, actual) {
			out.Status = types.StatusFail
			out.Reason = "output does not match expected"
			out.Diff = fixture.Diff(expected, actual)
		}
	}
	return out
}

// String renders the one-line summary printed after the results table.
func (r *Result) String() string {
	if r.Status == types.StatusPass {
		return fmt.Sprintf("PASS (%d cases)", r.Stats.Passed)
	}
	return fmt.Sprintf("FAIL (%d of %d cases failed)", r.Stats.Failed, r.Stats.Total)
}
