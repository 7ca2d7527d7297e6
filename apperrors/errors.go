package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for the HTTP layer.
type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidDate        Kind = "INVALID_DATE"
	KindValidation         Kind = "VALIDATION_ERROR"
	KindServiceUnavailable Kind = "SERVICE_UNAVAILABLE"
	KindDomainRule         Kind = "DOMAIN_RULE"
	KindInternal           Kind = "INTERNAL_ERROR"
)

// Error carries a Kind and a client-facing message. Err is the underlying
// cause and is never rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	return StatusFor(e.Kind)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidDate, KindValidation, KindDomainRule:
		return http.StatusBadRequest
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidDate(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidDate, Message: fmt.Sprintf(format, args...)}
}

func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func DomainRule(format string, args ...any) *Error {
	return &Error{Kind: KindDomainRule, Message: fmt.Sprintf(format, args...)}
}

// ServiceUnavailable wraps an upstream failure. Callers only ever see the
// generic message; cause stays available through errors.Unwrap for logging.
func ServiceUnavailable(cause error) *Error {
	return &Error{Kind: KindServiceUnavailable, Message: "AI service unavailable", Err: cause}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
