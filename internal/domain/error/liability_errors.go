// Package error defines domain-specific errors for the savings ledger.
package error

import "errors"

// Liability domain errors.
var (
	// ErrLiabilityNotFound is returned when a liability does not exist or belongs to another user.
	ErrLiabilityNotFound = errors.New("liability not found")

	// ErrInvalidLiabilityTitle is returned when the title is empty or too long.
	ErrInvalidLiabilityTitle = errors.New("invalid liability title")

	// ErrInvalidLiabilityType is returned when the type is unknown.
	ErrInvalidLiabilityType = errors.New("invalid liability type")

	// ErrInvalidLiabilityAmount is returned when an amount is negative or paid exceeds total.
	ErrInvalidLiabilityAmount = errors.New("invalid liability amount")

	// ErrInvalidInstallment is returned when there is no positive installment to pay.
	ErrInvalidInstallment = errors.New("installment must be greater than zero")

	// ErrInvalidLiabilityDates is returned when the end date precedes the start date.
	ErrInvalidLiabilityDates = errors.New("end date must not be before start date")
)

// LiabilityErrorCode defines error codes for liability errors.
// Format: LIA-XXYYYY where XX is category and YYYY is specific error.
type LiabilityErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeLiabilityNotFound      LiabilityErrorCode = "LIA-010001"
	ErrCodeInvalidLiabilityTitle  LiabilityErrorCode = "LIA-010002"
	ErrCodeInvalidLiabilityType   LiabilityErrorCode = "LIA-010003"
	ErrCodeInvalidLiabilityAmount LiabilityErrorCode = "LIA-010004"
	ErrCodeInvalidInstallment     LiabilityErrorCode = "LIA-010005"
	ErrCodeInvalidLiabilityDates  LiabilityErrorCode = "LIA-010006"
	ErrCodeMissingLiabilityFields LiabilityErrorCode = "LIA-010007"
)

// LiabilityError represents a liability error with code and message.
type LiabilityError struct {
	Code    LiabilityErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LiabilityError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LiabilityError) Unwrap() error {
	return e.Err
}

// NewLiabilityError creates a new LiabilityError with the given code and message.
func NewLiabilityError(code LiabilityErrorCode, message string, err error) *LiabilityError {
	return &LiabilityError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
