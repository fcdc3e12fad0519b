package errors

import (
	"fmt"
	"net/http"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap returns the internal error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Common error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeDatabase     = "DATABASE_ERROR"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// Account and audit error codes
const (
	ErrCodeDuplicateAccount  = "DUPLICATE_ACCOUNT"
	ErrCodeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	ErrCodeInvalidCredential = "INVALID_CREDENTIAL"
	ErrCodeWeakCredential    = "WEAK_CREDENTIAL"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeQuotaExceeded     = "QUOTA_EXCEEDED"
	ErrCodeAnalysisFailed    = "ANALYSIS_FAILED"
)

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with an AppError
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Internal:   err,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// Common error constructors

// Internal creates an internal server error
func Internal(message string, err error) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

// Forbidden creates a forbidden error
func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message, http.StatusForbidden)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Conflict creates a conflict error
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

// ValidationError creates a validation error
func ValidationError(message string, details interface{}) *AppError {
	return New(ErrCodeValidation, message, http.StatusBadRequest).WithDetails(details)
}

// DatabaseError creates a database error
func DatabaseError(message string, err error) *AppError {
	return Wrap(err, ErrCodeDatabase, message, http.StatusInternalServerError)
}

// RateLimited creates a rate limited error
func RateLimited(message string) *AppError {
	return New(ErrCodeRateLimited, message, http.StatusTooManyRequests)
}

// Domain error constructors

// DuplicateAccount signals a signup against an email that already has an account
func DuplicateAccount() *AppError {
	return New(ErrCodeDuplicateAccount, "An account with this email already exists", http.StatusConflict)
}

// AccountNotFound signals a login or password reset against an unknown email
func AccountNotFound() *AppError {
	return New(ErrCodeAccountNotFound, "No account found with this email address", http.StatusNotFound)
}

// InvalidCredential signals a password mismatch at login
func InvalidCredential() *AppError {
	return New(ErrCodeInvalidCredential, "Incorrect password. Please try again", http.StatusUnauthorized)
}

// WeakCredential signals a password that fails the minimum length policy
func WeakCredential(minLength int) *AppError {
	return New(ErrCodeWeakCredential,
		fmt.Sprintf("Password must be at least %d characters long", minLength),
		http.StatusBadRequest)
}

// UserNotFound signals an operation against a user ID with no backing record
func UserNotFound() *AppError {
	return New(ErrCodeUserNotFound, "User not found", http.StatusNotFound)
}

// QuotaExceeded signals a starter-plan user hitting the audit limit
func QuotaExceeded(limit int) *AppError {
	return New(ErrCodeQuotaExceeded,
		fmt.Sprintf("Plan limit of %d audits reached. Upgrade to Pro for unlimited audits", limit),
		http.StatusPaymentRequired)
}

// AnalysisFailed signals any transport, decode, or schema failure from the
// analysis provider. No partial result ever accompanies it.
func AnalysisFailed(err error) *AppError {
	return Wrap(err, ErrCodeAnalysisFailed,
		"Failed to analyze the contract. Please ensure you provided valid text",
		http.StatusBadGateway)
}
