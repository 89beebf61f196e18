// Package error defines domain-specific errors for the savings ledger.
package error

import "errors"

// Savings goal domain errors.
var (
	// ErrSavingsGoalNotFound is returned when a goal does not exist or belongs to another user.
	ErrSavingsGoalNotFound = errors.New("savings goal not found")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the goal balance.
	ErrInsufficientFunds = errors.New("insufficient funds in savings goal")

	// ErrInvalidGoalName is returned when the goal name is empty or too long.
	ErrInvalidGoalName = errors.New("invalid goal name")

	// ErrInvalidTargetAmount is returned when the target amount is not positive.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidAutoSaveAmount is returned when the auto-save amount is negative.
	ErrInvalidAutoSaveAmount = errors.New("invalid auto-save amount")

	// ErrInvalidAutoSaveDay is returned when the auto-save day is outside 1..28.
	ErrInvalidAutoSaveDay = errors.New("auto-save day must be between 1 and 28")

	// ErrInvalidSavingsAmount is returned when a deposit or withdrawal has more than two decimal places.
	ErrInvalidSavingsAmount = errors.New("invalid savings amount")

	// ErrConcurrentModification is returned when a versioned record changed between read and write.
	ErrConcurrentModification = errors.New("record was modified concurrently")
)

// SavingsErrorCode defines error codes for savings goal errors.
// Format: SAV-XXYYYY where XX is category and YYYY is specific error.
type SavingsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSavingsGoalNotFound   SavingsErrorCode = "SAV-010001"
	ErrCodeInvalidGoalName       SavingsErrorCode = "SAV-010002"
	ErrCodeInvalidTargetAmount   SavingsErrorCode = "SAV-010003"
	ErrCodeInvalidAutoSaveAmount SavingsErrorCode = "SAV-010004"
	ErrCodeInvalidAutoSaveDay    SavingsErrorCode = "SAV-010005"
	ErrCodeMissingSavingsFields  SavingsErrorCode = "SAV-010006"
	ErrCodeInvalidSavingsAmount  SavingsErrorCode = "SAV-010007"

	// Business rule errors (02XXXX)
	ErrCodeInsufficientFunds SavingsErrorCode = "SAV-020001"
	ErrCodeSavingsConflict   SavingsErrorCode = "SAV-020002"
)

// SavingsError represents a savings goal error with code and message.
type SavingsError struct {
	Code    SavingsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SavingsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SavingsError) Unwrap() error {
	return e.Err
}

// NewSavingsError creates a new SavingsError with the given code and message.
func NewSavingsError(code SavingsErrorCode, message string, err error) *SavingsError {
	return &SavingsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
