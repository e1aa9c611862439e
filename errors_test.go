package casecheck

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeError(t *testing.T) {
	inner := errors.New("bad config")
	err := NewRuntimeError(inner)

	assert.True(t, IsRuntimeError(err))
	assert.Equal(t, inner, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "runtime error")
	assert.Contains(t, err.Error(), "bad config")

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsRuntimeError(wrapped))

	assert.False(t, IsRuntimeError(nil))
	assert.False(t, IsRuntimeError(errors.New("plain")))
	assert.False(t, IsCaseFailureError(err))
}

func TestCaseFailureError(t *testing.T) {
	err := NewCaseFailureError("FAIL (1 of 2 cases failed)")

	assert.True(t, IsCaseFailureError(err))
	assert.Contains(t, err.Error(), "case failure")
	assert.Contains(t, err.Error(), "FAIL (1 of 2 cases failed)")

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsCaseFailureError(wrapped))

	assert.False(t, IsCaseFailureError(nil))
	assert.False(t, IsRuntimeError(err))
}
