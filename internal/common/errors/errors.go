// Package errors provides standardized error handling for the loan console.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation: caught before any request is sent.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidFilter    ErrorCode = "INVALID_FILTER"

	// Request: the API answered with a non-success status or never answered.
	ErrCodeRequestFailed        ErrorCode = "REQUEST_FAILED"
	ErrCodeNetworkError         ErrorCode = "NETWORK_ERROR"
	ErrCodeResponseDecodeFailed ErrorCode = "RESPONSE_DECODE_FAILED"

	// Session: malformed or expired token. Never shown to the user.
	ErrCodeSessionInvalid ErrorCode = "SESSION_INVALID"
	ErrCodeStorageError   ErrorCode = "STORAGE_ERROR"

	// Workflow: trigger actions refused locally.
	ErrCodeActionNotPermitted ErrorCode = "ACTION_NOT_PERMITTED"
	ErrCodeActionInFlight     ErrorCode = "ACTION_IN_FLIGHT"
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

// RequestError is a non-success HTTP response from the loan API.
type RequestError struct {
	Method string
	Path   string
	Status int
	// Detail is the server's human readable message, empty when the body had none.
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError reports missing or malformed form input.
func NewValidationError(message string, fields ...string) *StandardError {
	e := &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if len(fields) > 0 {
		e.Details = "fields: " + strings.Join(fields, ", ")
		e.Metadata = map[string]interface{}{"fields": fields}
	}
	return e
}

// NewInvalidFilterError reports an admin list filter the API does not document.
func NewInvalidFilterError(name, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFilter,
		Message:   fmt.Sprintf("Invalid %s filter", name),
		Details:   fmt.Sprintf("%s: %q", name, value),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestFailedError wraps a non-success response.
func NewRequestFailedError(reqErr *RequestError) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestFailed,
		Message:   "API request failed",
		Details:   reqErr.Error(),
		Retryable: reqErr.Status >= 500,
		Metadata: map[string]interface{}{
			"status": reqErr.Status,
			"detail": reqErr.Detail,
			"cause":  reqErr,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError wraps a transport failure (dial, timeout, cancelled context).
func NewNetworkError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkError,
		Message:   "Failed to reach the loan service",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseDecodeError reports a body that does not match the endpoint's schema.
func NewResponseDecodeError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseDecodeFailed,
		Message:   "Unexpected response from the loan service",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionInvalidError reports a token that cannot be decoded or has expired.
func NewSessionInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionInvalid,
		Message:   "Session token is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageError wraps a token persistence failure.
func NewStorageError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageError,
		Message:   "Token storage error",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewActionNotPermittedError reports a trigger the current status does not allow.
func NewActionNotPermittedError(action, status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActionNotPermitted,
		Message:   fmt.Sprintf("%s is not available for status %s", action, status),
		Details:   fmt.Sprintf("action: %s, status: %s", action, status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewActionInFlightError reports a trigger attempted while another is outstanding.
func NewActionInFlightError(action string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActionInFlight,
		Message:   "Another action is still running",
		Details:   fmt.Sprintf("action: %s", action),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification
// ==========================

// CodeOf returns the code of the first StandardError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// DetailOf returns the server-provided detail of a failed request, if any.
func DetailOf(err error) string {
	var reqErr *RequestError
	if stderrors.As(err, &reqErr) {
		return reqErr.Detail
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		if cause, ok := stdErr.Metadata["cause"].(*RequestError); ok {
			return cause.Detail
		}
	}
	return ""
}

// StatusOf returns the HTTP status of a failed request, 0 if err is not one.
func StatusOf(err error) int {
	var reqErr *RequestError
	if stderrors.As(err, &reqErr) {
		return reqErr.Status
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		if status, ok := stdErr.Metadata["status"].(int); ok {
			return status
		}
	}
	return 0
}

// UserMessage picks the text shown to the user: validation and workflow errors
// carry their own message, failed requests use the server detail, everything
// else falls back to the action-specific string.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	switch CodeOf(err) {
	case ErrCodeValidationFailed, ErrCodeInvalidFilter, ErrCodeActionNotPermitted, ErrCodeActionInFlight:
		var stdErr *StandardError
		stderrors.As(err, &stdErr)
		return stdErr.Message
	}
	if detail := DetailOf(err); detail != "" {
		return detail
	}
	return fallback
}

// Unwrap exposes the originating RequestError so errors.As sees through StandardError.
func (e *StandardError) Unwrap() error {
	if cause, ok := e.Metadata["cause"].(error); ok {
		return cause
	}
	return nil
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "FILTER"):
		return "VALIDATION"
	case strings.Contains(codeStr, "REQUEST") || strings.Contains(codeStr, "NETWORK") || strings.Contains(codeStr, "RESPONSE"):
		return "REQUEST"
	case strings.Contains(codeStr, "SESSION") || strings.Contains(codeStr, "STORAGE"):
		return "SESSION"
	case strings.Contains(codeStr, "ACTION"):
		return "WORKFLOW"
	default:
		return "OTHER"
	}
}
