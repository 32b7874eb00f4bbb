package sdkerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := NewValidationError("bad filter: %s", "tools+toolkits")
	assert.Equal(t, "VALIDATION_ERROR: bad filter: tools+toolkits", err.Error())

	wrapped := NewExecutionError("GMAIL_SEND_EMAIL", errors.New("boom"))
	assert.Contains(t, wrapped.Error(), "TOOL_EXECUTION_FAILED")
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestUnwrapChain(t *testing.T) {
	cause := NewNotFoundError("tool", "MISSING")
	err := NewExecutionError("MISSING", cause)

	require.ErrorIs(t, err, error(&Error{Code: CodeExecution}))
	// The cause stays reachable through the chain.
	var inner *Error
	require.True(t, errors.As(errors.Unwrap(err), &inner))
	assert.Equal(t, CodeNotFound, inner.Code)
}

func TestMetadataAndFixes(t *testing.T) {
	err := NewConflictError("account already exists").
		WithMetadata("userId", "u-1").
		WithFix("pass AllowMultiple to create another account")

	assert.Equal(t, "u-1", err.Metadata["userId"])
	assert.Len(t, err.PossibleFixes, 1)
}

func TestNotFoundMetadata(t *testing.T) {
	err := NewNotFoundError("connected account", "ca_123")
	assert.Equal(t, "connected account", err.Metadata["kind"])
	assert.Equal(t, "ca_123", err.Metadata["id"])
	assert.True(t, IsNotFound(err))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"validation", NewValidationError("x"), CodeValidation},
		{"timeout", NewTimeoutError("x"), CodeTimeout},
		{"wrapped in fmt", fmt.Errorf("outer: %w", NewConflictError("x")), CodeConflict},
		{"plain error", errors.New("x"), Code("")},
		{"nil-adjacent", fmt.Errorf("no sdk error"), Code("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.True(t, IsConflict(NewConflictError("x")))
	assert.True(t, IsTimeout(NewTimeoutError("x")))
	assert.False(t, IsNotFound(NewTimeoutError("x")))
}
