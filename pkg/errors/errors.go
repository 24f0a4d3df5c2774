package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is the stable, machine-checkable category of an application error.
type Kind string

const (
	KindValidation   Kind = "validation_failure"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindInvalidToken Kind = "invalid_or_expired_token"
	KindUpstream     Kind = "upstream_failure"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "internal"
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same kind, so errors.Is(err, errors.NotFound("", nil)) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(message string, err error) *AppError {
	return newError(KindValidation, message, err)
}

// NotFound builds "<resource> not found".
func NotFound(resource string, err error) *AppError {
	return newError(KindNotFound, fmt.Sprintf("%s not found", resource), err)
}

// Conflict builds "<resource> already exists".
func Conflict(resource string, err error) *AppError {
	return newError(KindConflict, fmt.Sprintf("%s already exists", resource), err)
}

func Unauthorized(message string, err error) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return newError(KindUnauthorized, message, err)
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return newError(KindForbidden, message, nil)
}

func InvalidToken(err error) *AppError {
	return newError(KindInvalidToken, "invalid or expired token", err)
}

func Upstream(message string, err error) *AppError {
	return newError(KindUpstream, message, err)
}

func RateLimited() *AppError {
	return newError(KindRateLimited, "rate limit exceeded", nil)
}

func Internal(err error) *AppError {
	return newError(KindInternal, "internal server error", err)
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As is a shorthand for extracting an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}
