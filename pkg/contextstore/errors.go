package contextstore

import (
	"errors"
	"fmt"
)

// Standard context store error types that all implementations should use.
var (
	// ErrExecutionNotFound indicates no execution context exists for the
	// given id, or its TTL has elapsed.
	ErrExecutionNotFound = errors.New("execution context not found")

	// ErrIndexNotFound indicates no index entry exists for the given key,
	// or its TTL has elapsed.
	ErrIndexNotFound = errors.New("index entry not found")
)

// StoreError wraps store-level errors with operation context.
type StoreError struct {
	Op          string // Operation being performed (e.g., "SaveExecution", "ExecutionByID")
	ExecutionID string // Execution ID if applicable
	Err         error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.ExecutionID != "" {
		return fmt.Sprintf("%s failed for execution %s: %v", e.Op, e.ExecutionID, e.Err)
	}

	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a store error with operation context.
func NewStoreError(op, executionID string, err error) *StoreError {
	return &StoreError{
		Op:          op,
		ExecutionID: executionID,
		Err:         err,
	}
}

// IsExecutionNotFound checks if an error indicates a missing or expired execution context.
func IsExecutionNotFound(err error) bool {
	return errors.Is(err, ErrExecutionNotFound)
}

// IsIndexNotFound checks if an error indicates a missing or expired index entry.
func IsIndexNotFound(err error) bool {
	return errors.Is(err, ErrIndexNotFound)
}
