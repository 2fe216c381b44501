package errors

import "net/http"

// Assignment-specific error types layered on the common taxonomy.
const (
	// ErrorTypeInvalidAssignee indicates a manual override targeted a staff
	// profile that does not exist or is not active.
	ErrorTypeInvalidAssignee ErrorType = "invalid_assignee"
)

// NewInvalidAssigneeError creates an error for an override whose target is
// not a valid, active staff profile.
func NewInvalidAssigneeError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidAssignee,
		Message: message,
		Code:    http.StatusUnprocessableEntity,
		Details: firstDetail(details),
	}
}

// IsInvalidAssigneeError checks if the error is an invalid assignee error
func IsInvalidAssigneeError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeInvalidAssignee
}

// IsForbiddenError checks if the error is a forbidden error
func IsForbiddenError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeForbidden
}
