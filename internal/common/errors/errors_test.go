package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"job", NewJobNotFoundError(1), true},
		{"candidate", NewCandidateNotFoundError(2), true},
		{"application", NewApplicationNotFoundError(3), true},
		{"wrapped", fmt.Errorf("scoring: %w", NewApplicationNotFoundError(3)), true},
		{"query failure", NewQueryExecutionFailedError("find_job", stderrors.New("boom")), false},
		{"plain error", stderrors.New("APPLICATION_NOT_FOUND"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFound(tt.err))
		})
	}
}

func TestStandardErrorUnwrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseUpdateFailedError(7, cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, HasCode(fmt.Errorf("save: %w", err), ErrCodeDatabaseUpdateFailed))
	assert.Contains(t, err.Details, "applicationId: 7")
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable keeps retry count", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewQueryExecutionFailedError("list", stderrors.New("x")))
		assert.Equal(t, "QUERY_EXECUTION_FAILED", bpmn.Code)
		assert.Equal(t, 3, bpmn.Retries)
		assert.True(t, bpmn.Retryable)
	})

	t.Run("not found is terminal", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewJobNotFoundError(42))
		assert.Equal(t, "JOB_NOT_FOUND", bpmn.Code)
		assert.Equal(t, 0, bpmn.Retries)

		vars := bpmn.ToErrorVariables()
		assert.Equal(t, "JOB_NOT_FOUND", vars["errorCode"])
		assert.Equal(t, "JOB_NOT_FOUND", vars["originalErrorCode"])
	})

	t.Run("unknown code falls back to itself", func(t *testing.T) {
		bpmn := ConvertToBPMNError(&StandardError{Code: "SOMETHING_ELSE"})
		assert.Equal(t, "SOMETHING_ELSE", bpmn.Code)
	})
}

func TestNormalize(t *testing.T) {
	plain := stderrors.New("unexpected")
	std := Normalize(plain)
	require.NotNil(t, std)
	assert.Equal(t, ErrCodeInternal, std.Code)
	assert.False(t, std.Retryable)
	assert.True(t, stderrors.Is(std, plain))

	invalid := NewInvalidInputError("applicationId is required")
	assert.Same(t, invalid, Normalize(fmt.Errorf("wrapped: %w", invalid)))
}

func TestRetriesLeft(t *testing.T) {
	assert.Equal(t, int32(2), RetriesLeft(3, 3))
	assert.Equal(t, int32(3), RetriesLeft(10, 3))
	assert.Equal(t, int32(0), RetriesLeft(1, 3))
	assert.Equal(t, int32(0), RetriesLeft(0, 3))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", GetErrorCategory(ErrCodeCandidateNotFound))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseUpdateFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexingFailed))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidInput))
	assert.True(t, IsRetryableErrorCode(ErrCodeQueryTimeout))
}
