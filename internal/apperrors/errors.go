// Package apperrors defines the error taxonomy shared by the booking
// workflow and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of its transport status.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindNotFound      Kind = "not_found"
	KindInternal      Kind = "internal"
)

// AppError is an error that knows how it should be reported to a client.
type AppError struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithStatus returns a copy of e reported with a different HTTP status.
func (e *AppError) WithStatus(status int) *AppError {
	cp := *e
	cp.HTTPStatus = status
	return &cp
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

func Authorization(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// Conflict reports a state conflict. Booking conflicts surface as 400.
func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message, HTTPStatus: http.StatusBadRequest}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal when err is not an *AppError.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
