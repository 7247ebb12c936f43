package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
//
// Codes have the form SL-<CATEGORY>-<HTTP><SEQ>, e.g. "SL-AUTH-4030". The
// HTTP layer maps them to a status code; callers compare with errors.Is.
type DomainError struct {
	Code    string // Error code (e.g., "SL-INTG-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Error codes.
const (
	CodeUnauthorized    = "SL-AUTH-4030"
	CodeIntegrityFailed = "SL-INTG-4000"
	CodeHistoryEmpty    = "SL-RCVR-4040"
	CodeBadRequest      = "SL-SYS-4000"
	CodePayloadTooLarge = "SL-SYS-4130"
	CodeRateLimited     = "SL-SYS-4290"
	CodeInternalServer  = "SL-SYS-5000"
	CodeUnavailable     = "SL-SYS-5030"
)

// ============================================================================
// Protocol Errors
// ============================================================================

var (
	// ErrUnauthorized indicates the client token did not resolve to an identity.
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "unauthorized")

	// ErrIntegrityFailed indicates a submitted record failed checksum or
	// tag verification. The stored record is unchanged.
	ErrIntegrityFailed = NewDomainError(CodeIntegrityFailed, "data integrity verification failed")

	// ErrHistoryEmpty indicates the store has no entry to recover. The
	// in-memory store always has its seed, so it never returns this.
	ErrHistoryEmpty = NewDomainError(CodeHistoryEmpty, "no history available")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrBadRequest indicates a malformed request body.
	ErrBadRequest = NewDomainError(CodeBadRequest, "bad request")

	// ErrPayloadTooLarge indicates the request body exceeded the configured limit.
	ErrPayloadTooLarge = NewDomainError(CodePayloadTooLarge, "request body too large")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError(CodeRateLimited, "too many requests")

	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError(CodeInternalServer, "internal server error")

	// ErrServiceUnavailable indicates the service is not ready.
	ErrServiceUnavailable = NewDomainError(CodeUnavailable, "service unavailable")
)
