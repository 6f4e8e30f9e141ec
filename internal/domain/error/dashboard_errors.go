package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidBreakdownType is returned when the breakdown tab is neither expense nor income.
	ErrInvalidBreakdownType = errors.New("type must be: expense or income")

	// ErrRecordSourceUnavailable is returned when the user's records could not be loaded.
	// It is distinct from an empty record set.
	ErrRecordSourceUnavailable = errors.New("record source unavailable")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBreakdownType DashboardErrorCode = "DSH-010001"

	// Internal errors (99XXXX)
	ErrCodeRecordSourceUnavailable DashboardErrorCode = "DSH-990001"
	ErrCodeDashboardInternalError  DashboardErrorCode = "DSH-990002"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
