// Package error defines domain-specific errors for the savings ledger.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget does not exist or belongs to another user.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when a budget for the category and month already exists.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category and month")

	// ErrInvalidBudgetAmount is returned when the budget amount is not positive.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrInvalidBudgetPriority is returned when the priority is unknown.
	ErrInvalidBudgetPriority = errors.New("invalid budget priority")

	// ErrInvalidBudgetMonth is returned when month or year are out of range.
	ErrInvalidBudgetMonth = errors.New("invalid budget month")

	// ErrBudgetCategoryNotFound is returned when the referenced category is not owned by the user.
	ErrBudgetCategoryNotFound = errors.New("budget category not found")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound         BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidBudgetAmount    BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetPriority  BudgetErrorCode = "BUD-010003"
	ErrCodeInvalidBudgetMonth     BudgetErrorCode = "BUD-010004"
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BUD-010005"
	ErrCodeMissingBudgetFields    BudgetErrorCode = "BUD-010006"

	// Conflict errors (02XXXX)
	ErrCodeBudgetAlreadyExists BudgetErrorCode = "BUD-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
