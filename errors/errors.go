package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the application error type carried across job boundaries.
// HTTPCode is only consulted by the trigger server when a job is invoked
// over HTTP; CLI invocations just log Code and Message.
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the ErrorCode of err if it is (or wraps) an AppError.
func CodeOf(err error) (ErrorCode, bool) {
	var ae AppError
	if errors.As(err, &ae) {
		return ae.Code, true
	}
	return ErrorCode_INTERNAL, false
}

// General errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

// ErrMissingConfiguration means a required identifier (series key, channel,
// document) is absent. The current job aborts; nothing else is affected.
func ErrMissingConfiguration(name string) AppError {
	return AppError{
		HTTPCode: http.StatusPreconditionFailed,
		Code:     ErrorCode_MISSING_CONFIGURATION,
		Message:  fmt.Sprintf("%s is required", name),
	}
}

// ErrNotFound means an expected record (meeting, thread, item) is absent.
// Jobs log it and abort gracefully; it never propagates to the scheduler.
func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// Job errors

func ErrJobUnknown(name string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_JOB_UNKNOWN,
		Message:  "Unknown job",
	}.WithDetail("job", name)
}

func ErrJobAlreadyRunning(name string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_JOB_ALREADY_RUNNING,
		Message:  "Job of this type is already running",
	}.WithDetail("job", name)
}

func ErrJobAborted(job string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_JOB_ABORTED,
		Message:  fmt.Sprintf("Job %s aborted", job),
	}
}

// External service errors

func ErrDocumentServiceFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_DOCUMENT_SERVICE_FAILED,
		Message:  fmt.Sprintf("Document service operation failed: %s", operation),
	}
}

func ErrChatServiceFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_CHAT_SERVICE_FAILED,
		Message:  fmt.Sprintf("Chat service operation failed: %s", operation),
	}
}

func ErrCalendarServiceFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_CALENDAR_SERVICE_FAILED,
		Message:  fmt.Sprintf("Calendar service operation failed: %s", operation),
	}
}

// ErrGenerationFailed covers the generative-text path, after caller-side
// retry/backoff has been exhausted.
func ErrGenerationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_GENERATION_FAILED,
		Message:  "Text generation failed",
	}
}

// ErrEmptyGeneration fails closed: an empty model output must never be
// persisted or posted.
func ErrEmptyGeneration() AppError {
	return AppError{
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_GENERATION_EMPTY,
		Message:  "Text generation returned empty output",
	}
}

func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

// Database errors

func ErrDBConnectionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_CONNECTION_FAILED,
		Message:  "Database connection failed",
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

// Auth errors (trigger server)

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid trigger token",
	}
}
