package casecheck

import (
	"context"

	"github.com/ethereum/go-ethereum/log"

	"github.com/casecheck/casecheck/runner"
)

// CaseExecutor is responsible for executing runs.
type CaseExecutor interface {
	RunCases(ctx context.Context) (*runner.Result, error)
}

// DefaultCaseExecutor implements the CaseExecutor interface.
type DefaultCaseExecutor struct {
	runner runner.CaseRunner
	logger log.Logger
}

// NewDefaultCaseExecutor creates a new DefaultCaseExecutor.
func NewDefaultCaseExecutor(runner runner.CaseRunner, logger log.Logger) *DefaultCaseExecutor {
	return &DefaultCaseExecutor{
		runner: runner,
		logger: logger,
	}
}

// RunCases runs all cases and returns the results.
func (e *DefaultCaseExecutor) RunCases(ctx context.Context) (*runner.Result, error) {
	e.logger.Info("Running all cases...")
	result, err := e.runner.RunAllCases(ctx)
	if err != nil {
		e.logger.Error("Error running cases", "error", err)
		return nil, err
	}
	e.logger.Info("Run completed", "run_id", result.RunID, "status", result.Status)
	return result, nil
}
