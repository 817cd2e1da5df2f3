package domain

import (
	"errors"
	"fmt"
)

// DataAccessError reports a failure to reach or query the backend.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func NewDataAccessError(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *DataAccessError
	if errors.As(err, &existing) {
		return err
	}
	return &DataAccessError{Op: op, Err: err}
}

func IsDataAccess(err error) bool {
	var target *DataAccessError
	return errors.As(err, &target)
}

// ValidationError reports malformed input rejected before any remote call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// RetryMessage is shown to users when the backend cannot be reached.
const RetryMessage = "Something went wrong talking to the store, please try again"
