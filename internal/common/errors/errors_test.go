package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	lc := NewLowConfidenceError(20)
	assert.Equal(t, ErrCodeLowConfidence, lc.Code)
	assert.False(t, lc.Retryable)
	assert.Contains(t, lc.Details, "20")

	mf := NewMissingFieldError("domain")
	assert.Equal(t, ErrCodeMissingRequiredField, mf.Code)
	assert.Contains(t, mf.Message, "domain")

	ext := NewExternalOpError("create_domain", errors.New("connection refused"))
	assert.Equal(t, ErrCodeExternalOpFailed, ext.Code)
	assert.True(t, ext.Retryable)
	assert.Contains(t, ext.Details, "connection refused")
}

func TestRetrySemantics(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeQueryExecutionFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodeSearchTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeLowConfidence))

	assert.True(t, IsRetryableErrorCode(ErrCodeMailboxCommandFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeMissingRequiredField))
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeRecordNotFound))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchTimeout))
	assert.Equal(t, "MAILBOX", GetErrorCategory(ErrCodeNoHostingAccount))
	assert.Equal(t, "CHAT", GetErrorCategory(ErrCodeLowConfidence))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
