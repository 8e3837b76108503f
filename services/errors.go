package services

import (
	"errors"
	"net/http"
)

// Error is a user-facing failure. Message is shown to the user as is and
// Status is the HTTP status the failure maps to.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

var (
	ErrUsernameRequired = newError("USERNAME_REQUIRED", http.StatusBadRequest, "You have to enter a username")
	ErrEmailRequired    = newError("EMAIL_REQUIRED", http.StatusBadRequest, "You have to enter an email address")
	ErrEmailInvalid     = newError("EMAIL_INVALID", http.StatusBadRequest, "You have to enter a valid email address")
	ErrPasswordRequired = newError("PASSWORD_REQUIRED", http.StatusBadRequest, "You have to enter a password")
	ErrPasswordMismatch = newError("PASSWORD_MISMATCH", http.StatusBadRequest, "The two passwords do not match")
	// 409 is reserved; a taken username is reported as a validation failure.
	ErrUsernameTaken = newError("USERNAME_TAKEN", http.StatusBadRequest, "The username is already taken")

	ErrInvalidUsername = newError("INVALID_USERNAME", http.StatusUnauthorized, "Invalid username")
	ErrInvalidPassword = newError("INVALID_PASSWORD", http.StatusUnauthorized, "Invalid password")
	ErrUnauthorized    = newError("UNAUTHORIZED", http.StatusUnauthorized, "Unauthorized")

	ErrUserNotFound = newError("USER_NOT_FOUND", http.StatusNotFound, "User not found")
)

// AsError reports whether err is (or wraps) a user-facing Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
