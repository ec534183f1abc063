// internal/common/errors/handler.go
package errors

import (
	"time"
)

// ErrorHandler turns view action failures into the text a view displays.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleActionError logs the failure and returns the message to render.
// Session errors are logged but yield an empty message: they are never shown.
func (h *ErrorHandler) HandleActionError(action string, err error, fallback string) string {
	if err == nil {
		return ""
	}

	stdErr := h.normalizeError(err)
	fields := map[string]interface{}{
		"action":        action,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if status := StatusOf(err); status != 0 {
		fields["status"] = status
	}

	switch GetErrorCategory(stdErr.Code) {
	case "SESSION":
		h.logger.Warn("session error", fields)
		return ""
	case "VALIDATION", "WORKFLOW":
		h.logger.Warn("action rejected", fields)
	default:
		h.logger.Error("action failed", fields)
	}

	return UserMessage(err, fallback)
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	if reqErr, ok := err.(*RequestError); ok {
		return NewRequestFailedError(reqErr)
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
