package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/casecheck/casecheck/types"
)

func TestErrToLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "nil"},
		{"simple", errors.New("connection refused"), "connection_refused"},
		{"punctuation stripped", errors.New("read /tmp/x: no such file"), "read_tmpx_no_such_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errToLabel(tt.err))
		})
	}
}

func TestIsValidResult(t *testing.T) {
	assert.True(t, isValidResult(types.StatusPass))
	assert.True(t, isValidResult(types.StatusFail))
	assert.False(t, isValidResult(types.Status("bogus")))
}

func TestRecordersDoNotPanic(t *testing.T) {
	RecordError("some_error")
	RecordErrorDetails("label", errors.New("boom"))
	RecordErrorDetails("label", nil)
	RecordCase("run-1", "group", types.StatusPass)
	RecordCase("run-1", "group", types.StatusFail)
	RecordCase("run-1", "group", types.Status("bogus"))
	RecordRun("run-1", string(types.StatusFail), 10, 7, 3, 42*time.Second)
}
