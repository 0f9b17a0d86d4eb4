package apperrors

import (
	"net/http"
)

// =========================================================================
// Factories
// =========================================================================

// ErrNotFound converts a repository sentinel into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrInvalidStatus is returned for forbidden approval state transitions (409).
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Predefined errors
// =========================================================================

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
	ErrMissingToken       = New(CodeUnauthorized, "auth", "Authorization token required", http.StatusUnauthorized)
	ErrTooManyRequests    = New(CodeRateLimited, "http", "Too many requests. Please slow down.", http.StatusTooManyRequests)
)

// --- Uploads ---

var (
	ErrFileTooLarge    = New(CodeFileTooLarge, "upload", "File size exceeds limit", http.StatusBadRequest)
	ErrInvalidFileType = New(CodeInvalidFileType, "upload", "Only JPEG and PNG images are allowed", http.StatusBadRequest)
	ErrFileRequired    = New(CodeValidationFailed, "upload", "No photo file provided", http.StatusBadRequest)
)
