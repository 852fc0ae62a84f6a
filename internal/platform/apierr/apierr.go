package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrAlreadyExists      = errors.New("already exists")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrUnauthorized       = errors.New("unauthorized")
	// ErrUpstream marks failures of an external provider (completion API).
	ErrUpstream = errors.New("upstream failure")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Wrap builds an *Error whose message is msg and which matches kind under errors.Is.
func Wrap(kind error, code string, msg string) *Error {
	return &Error{Status: statusForKind(kind), Code: code, Err: fmt.Errorf("%s: %w", msg, kind)}
}

// StatusOf maps any error to the HTTP status it should surface as.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	for _, kind := range []error{ErrNotFound, ErrInvalidArgument, ErrAlreadyExists, ErrFailedPrecondition, ErrUnauthorized, ErrUpstream} {
		if errors.Is(err, kind) {
			return statusForKind(kind)
		}
	}
	return http.StatusInternalServerError
}

// CodeOf returns the machine readable code carried by err, or fallback.
func CodeOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrFailedPrecondition):
		return "failed_precondition"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	}
	return fallback
}

func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(kind, ErrAlreadyExists), errors.Is(kind, ErrFailedPrecondition):
		return http.StatusConflict
	case errors.Is(kind, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		// Upstream provider failures surface as a plain 500 to clients.
		return http.StatusInternalServerError
	}
}
