package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the single error type handed from services to the HTTP layer.
type AppError struct {
	Code      ErrorCode   `json:"code"`
	Domain    string      `json:"domain"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Retryable bool        `json:"retryable"`
	Err       error       `json:"-"`
	HTTPCode  int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New - base constructor
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying cause to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func (e *AppError) AsRetryable() *AppError {
	e.Retryable = true
	return e
}

// MarshalJSON hides the wrapped cause and the HTTP code.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code      ErrorCode   `json:"code"`
		Domain    string      `json:"domain"`
		Message   string      `json:"message"`
		Details   interface{} `json:"details,omitempty"`
		Retryable bool        `json:"retryable"`
	}
	return json.Marshal(&alias{
		Code:      e.Code,
		Domain:    e.Domain,
		Message:   e.Message,
		Details:   e.Details,
		Retryable: e.Retryable,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError unwraps err until it finds an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsRetryable reports whether the caller may safely repeat the operation.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}

// ============================================
// Taxonomy constructors
// ============================================

// InternalError wraps an unexpected system failure.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// StoreError wraps a persistence failure. Persistence failures are transient from the caller's view.
func StoreError(err error, domain string) *AppError {
	return Wrap(err, CodeDatabaseError, domain, "Storage backend failure", http.StatusInternalServerError).AsRetryable()
}

// ValidationError carries field level details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func NewValidationError(domain, message string) *AppError {
	return New(CodeValidationFailed, domain, message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

// NewForbiddenError is the authorization error of the taxonomy.
func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

func NewNotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

func NewConflictError(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusConflict)
}

// NewUploadError reports an object store failure. Nothing was persisted, so the upload may be retried.
func NewUploadError(err error) *AppError {
	return Wrap(err, CodeUploadFailed, "gallery", "Upload failed", http.StatusInternalServerError).AsRetryable()
}

// NewPartialUpdateError reports that the primary write committed but a dependent write did not.
func NewPartialUpdateError(err error, domain, message string) *AppError {
	return Wrap(err, CodePartialUpdate, domain, message, http.StatusInternalServerError).AsRetryable()
}
