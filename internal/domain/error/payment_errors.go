// Package error defines domain-specific errors for the savings ledger.
package error

import "errors"

// Payment event domain errors.
var (
	// ErrPaymentEventNotFound is returned when an event does not exist or belongs to another user.
	ErrPaymentEventNotFound = errors.New("payment event not found")

	// ErrInvalidPaymentTitle is returned when the title is empty or too long.
	ErrInvalidPaymentTitle = errors.New("invalid payment title")

	// ErrInvalidPaymentAmount is returned when the amount is not positive.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidFrequency is returned when the frequency is unknown.
	ErrInvalidFrequency = errors.New("invalid payment frequency")

	// ErrInvalidDateRange is returned when a range ends before it starts or is too wide.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// PaymentErrorCode defines error codes for payment event errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodePaymentEventNotFound PaymentErrorCode = "PAY-010001"
	ErrCodeInvalidPaymentTitle  PaymentErrorCode = "PAY-010002"
	ErrCodeInvalidPaymentAmount PaymentErrorCode = "PAY-010003"
	ErrCodeInvalidFrequency     PaymentErrorCode = "PAY-010004"
	ErrCodeInvalidDateRange     PaymentErrorCode = "PAY-010005"
	ErrCodeMissingPaymentFields PaymentErrorCode = "PAY-010006"

	// Business rule errors (02XXXX)
	ErrCodePaymentConflict PaymentErrorCode = "PAY-020001"
)

// PaymentError represents a payment event error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
