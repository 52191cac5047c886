package apperrors

import (
	"net/http"
)

// =========================================================================
// Predefined errors shared by several services
// =========================================================================

var ErrAdminOnly = New(
	CodeForbidden,
	"auth",
	"Admin access required",
	http.StatusForbidden,
)

var ErrNotOwner = New(
	CodeForbidden,
	"auth",
	"Access to another account's data denied",
	http.StatusForbidden,
)

var ErrMissingCredential = New(
	CodeUnauthorized,
	"auth",
	"Not authorized, no token",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Not authorized, token failed",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeConflict,
	"account",
	"Email already in use",
	http.StatusConflict,
)

var ErrNoFile = New(
	CodeValidationFailed,
	"gallery",
	"No file uploaded",
	http.StatusBadRequest,
)

var ErrRateLimited = New(
	CodeLimitExceeded,
	"request",
	"Too many requests",
	http.StatusTooManyRequests,
)
