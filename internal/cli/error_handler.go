package cli

import (
	stderrors "errors"

	"todo/internal/config"
	"todo/internal/errors"
	"todo/internal/validation"
)

// Process exit codes
const (
	ExitOK           = 0
	ExitUserError    = 1
	ExitStorageError = 2
	ExitUnknownError = 3
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Message returns the sentence shown to the user for err. Domain errors
// map to their fixed messages; storage details never reach the user.
func (eh *ErrorHandler) Message(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}

	var configErr *config.ConfigError
	if stderrors.As(err, &configErr) {
		return "invalid configuration: " + configErr.Error()
	}

	// Usage errors from cobra and the like
	return err.Error()
}

// ExitCode returns the process exit code for err: 1 for input the user can
// fix, 2 for storage failures, 3 for unknown failures.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case eh.IsValidationError(err), eh.IsNotFoundError(err), eh.IsInvalidInputError(err):
		return ExitUserError
	case eh.IsDatabaseError(err):
		return ExitStorageError
	case errors.IsAppError(err):
		return ExitUnknownError
	default:
		return ExitUserError
	}
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}

// IsInvalidInputError checks if an error is an invalid input error
func (eh *ErrorHandler) IsInvalidInputError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}
