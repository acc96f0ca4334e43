package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindUnauthorized
	KindForbidden
	KindConflict
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFoundError"
	case KindValidation:
		return "ValidationError"
	case KindUnauthorized:
		return "UnauthorizedError"
	case KindForbidden:
		return "ForbiddenError"
	case KindConflict:
		return "ConflictError"
	case KindBadRequest:
		return "BadRequestError"
	default:
		return "InternalError"
	}
}

// StatusOf returns the HTTP status fixed for a kind.
func StatusOf(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func defaultMessage(k Kind) string {
	switch k {
	case KindNotFound:
		return "Resource not found"
	case KindValidation:
		return "Validation failed"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindConflict:
		return "Conflict"
	case KindBadRequest:
		return "Bad request"
	default:
		return "Internal server error"
	}
}

// AppError is a classified error raised on purpose by services and repositories.
// StatusCode follows Kind unless overridden through New.
type AppError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Trace returns diagnostic detail for server-side logs only.
func (e *AppError) Trace() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s\ncaused by: %+v", e.Kind, e.Message, e.Cause)
}

// New builds an AppError with an explicit status. status <= 0 keeps the kind default.
func New(kind Kind, message string, status int) *AppError {
	if message == "" {
		message = defaultMessage(kind)
	}
	if status <= 0 {
		status = StatusOf(kind)
	}
	return &AppError{Kind: kind, Message: message, StatusCode: status}
}

// NewNotFound produces "<resource> not found".
func NewNotFound(resource string) *AppError {
	if resource == "" {
		resource = "Resource"
	}
	return New(KindNotFound, resource+" not found", 0)
}

func NewValidation(message string) *AppError   { return New(KindValidation, message, 0) }
func NewUnauthorized(message string) *AppError { return New(KindUnauthorized, message, 0) }
func NewForbidden(message string) *AppError    { return New(KindForbidden, message, 0) }
func NewConflict(message string) *AppError     { return New(KindConflict, message, 0) }
func NewBadRequest(message string) *AppError   { return New(KindBadRequest, message, 0) }

// NewInternal keeps cause as diagnostic data; it never reaches the client.
func NewInternal(message string, cause error) *AppError {
	e := New(KindInternal, message, 0)
	e.Cause = cause
	return e
}

// FromError returns err itself when it already is an AppError, otherwise an
// Internal error carrying err's message (or fallback) and err as cause.
func FromError(err error, fallback string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if fallback == "" {
		fallback = "Unexpected error"
	}
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return NewInternal(msg, err)
}

// HandleServiceError is the single seam services use around persistence calls.
// Recognized kinds pass through untouched; anything else becomes Internal.
// The result is always non-nil and must be returned by the caller.
func HandleServiceError(err error, fallback string) error {
	var appErr *AppError
	if errors.As(err, &appErr) && isRecognized(appErr.Kind) {
		return appErr
	}
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return NewInternal(msg, err)
}

func isRecognized(k Kind) bool {
	switch k {
	case KindNotFound, KindValidation, KindUnauthorized, KindForbidden, KindConflict, KindBadRequest:
		return true
	default:
		return false
	}
}

// IsKind reports whether err is an AppError of kind k.
func IsKind(err error, k Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == k
}

func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
func IsInternal(err error) bool   { return IsKind(err, KindInternal) }
