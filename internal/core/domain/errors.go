package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a failure with a structured error code.
//
// Codes follow the format PM-<AREA>-<NNNN>, where the numeric part mirrors
// the closest HTTP status class.
type DomainError struct {
	Code    string // Error code (e.g., "PM-STORE-5000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
// Two domain errors match when their codes match.
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

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
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

// ============================================================================
// Store Errors (STORE)
// ============================================================================

var (
	// ErrStore covers every failure on the save path: opening the write
	// transaction, writing any single key, and committing.
	ErrStore = NewDomainError("PM-STORE-5000", "settings store error")
)

// ============================================================================
// Setting Errors (SET)
// ============================================================================

var (
	// ErrUnknownSetting indicates a key name with no catalog entry.
	ErrUnknownSetting = NewDomainError("PM-SET-4040", "unknown setting")

	// ErrInvalidValue indicates text that cannot be parsed as the key's type.
	ErrInvalidValue = NewDomainError("PM-SET-4000", "invalid setting value")

	// ErrInvalidPublicKey indicates a malformed public key.
	ErrInvalidPublicKey = NewDomainError("PM-SET-4001", "invalid public key")
)
