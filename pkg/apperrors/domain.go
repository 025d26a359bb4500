package apperrors

import (
	"net/http"
)

// ErrAuthMissing is returned before any network call when the session has no usable token.
var ErrAuthMissing = New(
	CodeAuthMissing,
	"auth",
	"Authentication token is missing. Please log in.",
	http.StatusUnauthorized,
)

// ErrInvalidToken rejects tokens whose signature or claims cannot be verified.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Your session could not be verified. Please log in again.",
	http.StatusUnauthorized,
)

// ErrConfigMissing marks a deployment that cannot reach the API at all.
var ErrConfigMissing = New(
	CodeConfigMissing,
	"config",
	"API URL is not configured",
	http.StatusInternalServerError,
)

// ErrAPIRequest wraps a failed HTTP call; message is the text shown inline on the page.
func ErrAPIRequest(err error, domain, message string) *AppError {
	return Wrap(err, CodeAPIRequestFailed, domain, message, http.StatusBadGateway)
}

// ErrUnexpected wraps anything that failed before a request could be sent.
func ErrUnexpected(err error, domain, message string) *AppError {
	return Wrap(err, CodeUnexpectedError, domain, message, http.StatusInternalServerError)
}
