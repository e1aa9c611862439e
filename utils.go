package casecheck

import (
	"fmt"
	"time"

	"github.com/casecheck/casecheck/types"
)

// getResultString returns a human readable string for a case status.
func getResultString(status types.Status) string {
	if status == types.StatusPass {
		return "✓ pass"
	}
	return "✗ fail"
}

// formatDuration renders a duration with one decimal of seconds.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
