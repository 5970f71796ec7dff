// Package errors provides standardized error handling for the assistant service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Chat command boundary
	ErrCodeLowConfidence        ErrorCode = "LOW_CONFIDENCE"
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeExternalOpFailed     ErrorCode = "EXTERNAL_OPERATION_FAILED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"

	// Record store
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeRecordNotFound           ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeDuplicateRecord          ErrorCode = "DUPLICATE_RECORD"

	// Knowledge base search
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"

	// Mailbox proxy
	ErrCodeMailboxCommandFailed ErrorCode = "MAILBOX_COMMAND_FAILED"
	ErrCodeMailboxTimeout       ErrorCode = "MAILBOX_TIMEOUT"
	ErrCodeNoHostingAccount     ErrorCode = "NO_HOSTING_ACCOUNT_SELECTED"

	// Notifications / workflow
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeWorkflowStartFailed    ErrorCode = "WORKFLOW_START_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Constructors

// NewLowConfidenceError marks an utterance the router declined to dispatch.
func NewLowConfidenceError(confidence int) *StandardError {
	return &StandardError{
		Code:      ErrCodeLowConfidence,
		Message:   "Command confidence below routing threshold",
		Details:   fmt.Sprintf("confidence: %d", confidence),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingFieldError reports a handler-level validation failure.
func NewMissingFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Message:   fmt.Sprintf("Required field %q was not found in the command", field),
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalOpError wraps a record-store or proxy operation failure.
func NewExternalOpError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalOpFailed,
		Message:   fmt.Sprintf("Operation %q failed", operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewRecordNotFoundError(entity, key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   fmt.Sprintf("%s not found", entity),
		Details:   fmt.Sprintf("key: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Knowledge base search error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewMailboxCommandFailedError(action string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailboxCommandFailed,
		Message:   "Mailbox proxy command failed",
		Details:   fmt.Sprintf("action: %s, error: %s", action, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewNoHostingAccountError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoHostingAccount,
		Message:   "No hosting account selected for mailbox operation",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewWorkflowStartFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowStartFailed,
		Message:   "Workflow process start failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count for external operations.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeMailboxCommandFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeWorkflowStartFailed:
		return 3

	case ErrCodeSearchTimeout,
		ErrCodeMailboxTimeout:
		return 2

	default:
		return 0 // validation / business errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "RECORD"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "MAILBOX") || strings.Contains(codeStr, "HOSTING_ACCOUNT"):
		return "MAILBOX"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "CONFIDENCE") || strings.Contains(codeStr, "MISSING"):
		return "CHAT"
	default:
		return "OTHER"
	}
}
