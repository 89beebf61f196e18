// Package error defines domain-specific errors for the savings ledger.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidReportPeriod is returned when the month/year or date range is invalid.
	ErrInvalidReportPeriod = errors.New("invalid report period")

	// ErrReportExportFailed is returned when the spreadsheet cannot be generated.
	ErrReportExportFailed = errors.New("failed to export report")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReportPeriod ReportErrorCode = "RPT-010001"

	// Export errors (02XXXX)
	ErrCodeReportExportFailed ReportErrorCode = "RPT-020001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
