package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "credential missing")
	assert.Equal(t, "credential missing", err.Error())
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeInternal))
}

func TestErrorFallsBackToCode(t *testing.T) {
	err := &Error{Code: CodeInternal}
	assert.Equal(t, "internal_error", err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeCollaboratorUnavailable, "pinning service unreachable")

	assert.Equal(t, "pinning service unreachable", err.Error())
	assert.True(t, HasCode(err, CodeCollaboratorUnavailable))
	assert.ErrorIs(t, err, cause)
}

func TestWrapPreservesExistingCode(t *testing.T) {
	inner := New(CodeValidation, "field missing")
	outer := Wrap(inner, CodeInternal, "request rejected")

	assert.Equal(t, "request rejected", outer.Error())
	assert.True(t, HasCode(outer, CodeValidation))
	assert.False(t, HasCode(outer, CodeInternal))
}

func TestWrapThroughFmtChain(t *testing.T) {
	inner := New(CodeTimeout, "deadline exceeded")
	wrapped := fmt.Errorf("lookup: %w", inner)

	assert.True(t, HasCode(wrapped, CodeTimeout))
	assert.True(t, HasCode(Wrap(wrapped, CodeInternal, "lookup failed"), CodeTimeout))
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeBadRequest, "one")
	target := New(CodeBadRequest, "another")
	require.True(t, errors.Is(err, target))
	assert.False(t, errors.Is(err, New(CodeNotFound, "other")))
}

func TestHasCodeOnForeignError(t *testing.T) {
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}
