// Package apperr carries request failures across the service boundary as
// values: a kind, a caller-safe message, and the HTTP status the handlers
// should answer with. Internal details (driver errors, SMTP errors) stay
// below this boundary.
package apperr

import "net/http"

type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindConflict     Kind = "conflict"
	KindExpired      Kind = "expired"
	KindNotFound     Kind = "not_found"
	KindNotification Kind = "notification"
	KindInternal     Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Status: http.StatusBadRequest}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg, Status: http.StatusUnauthorized}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg, Status: http.StatusBadRequest}
}

func Expired(msg string) *Error {
	return &Error{Kind: KindExpired, Message: msg, Status: http.StatusBadRequest}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Status: http.StatusNotFound}
}

// Invalid reports a presented artifact (OTP, reset token, email) that
// matches nothing. Same kind as NotFound but answered as a bad request,
// matching what the frontend expects.
func Invalid(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Status: http.StatusBadRequest}
}

func Notification(msg string) *Error {
	return &Error{Kind: KindNotification, Message: msg, Status: http.StatusInternalServerError}
}

func Internal(msg string) *Error {
	return &Error{Kind: KindInternal, Message: msg, Status: http.StatusInternalServerError}
}
