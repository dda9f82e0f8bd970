package errors

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_FluentConstruction(t *testing.T) {
	err := NewBuilder(CodeToolExecutionFailed, "tool blew up").
		Temporary().
		WithSuggestion("try again").
		WithContext("tool", "create_file").
		Build()

	assert.Equal(t, CodeToolExecutionFailed, err.Code)
	assert.Equal(t, CategoryTemporary, err.Category)
	assert.True(t, err.Retryable)
	assert.Equal(t, []string{"try again"}, err.Suggestions)
	assert.Equal(t, "create_file", err.Context["tool"])
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, CodeFileAccessDenied, "cannot write", CategorySystem)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "cannot write")
	assert.Contains(t, err.Error(), "disk full")
}

func TestWrap_AppErrorKeepsRetryability(t *testing.T) {
	inner := Temporary(CodeNetworkUnavailable, "timeout")
	outer := Wrap(inner, CodeModelUnavailable, "model call failed", CategorySystem)

	assert.True(t, outer.Retryable)
	assert.Equal(t, CodeModelUnavailable, outer.Code)
	assert.Equal(t, CategorySystem, GetCategory(outer))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeConfigInvalid, "ignored", CategoryPermanent))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Temporary(CodeNetworkUnavailable, "timeout")))
	assert.True(t, IsRetryable(RateLimit(CodeModelRateLimit, "slow down", time.Second)))
	assert.False(t, IsRetryable(Permanent(CodeConfigInvalid, "bad config")))
	assert.False(t, IsRetryable(User(CodeToolInvalidParams, "missing path")))
	// Unknown errors are assumed retryable.
	assert.True(t, IsRetryable(stderrors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestRateLimit_SuggestsWaiting(t *testing.T) {
	err := RateLimit(CodeModelRateLimit, "too many requests", 2*time.Second)

	assert.Equal(t, CategoryRateLimit, err.Category)
	assert.Equal(t, 2*time.Second, err.RetryAfter)
	require.NotEmpty(t, err.Suggestions)
	assert.Contains(t, err.Suggestions[0], "2s")
}

func TestError_RendersCodeAndCause(t *testing.T) {
	err := Wrap(stderrors.New("dial tcp: refused"), CodeServerUnavailable, "server down", CategoryTemporary)

	msg := err.Error()
	assert.Contains(t, msg, "[SERVER_UNAVAILABLE]")
	assert.Contains(t, msg, "server down")
	assert.Contains(t, msg, "dial tcp: refused")
}

func TestFormatUserMessage_WithSuggestions(t *testing.T) {
	err := NewBuilder(CodeServerUnavailable, "tool server unreachable").
		Temporary().
		WithSuggestion("Start relay-server").
		WithSuggestion("Check PATH").
		Build()

	msg := FormatUserMessage(err)
	assert.Contains(t, msg, "tool server unreachable")
	assert.Contains(t, msg, "Start relay-server")
	assert.Contains(t, msg, "Check PATH")
}

func TestFormatUserMessage_NilAndPlain(t *testing.T) {
	assert.Equal(t, "", FormatUserMessage(nil))
	require.NotEmpty(t, FormatUserMessage(stderrors.New("plain failure")))
}

func TestGetSuggestions(t *testing.T) {
	err := NewBuilder(CodeModelUnavailable, "no key").
		System().
		WithSuggestion("Set NVIDIA_API_KEY").
		Build()

	assert.Equal(t, []string{"Set NVIDIA_API_KEY"}, GetSuggestions(err))
	assert.Empty(t, GetSuggestions(stderrors.New("plain")))
}
