// Package saga provides the error taxonomy for orchestrated workflow steps.
package saga

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a step failure for status reporting and HTTP mapping.
type ErrorKind string

const (
	// KindValidation marks malformed or missing inputs. Validation failures
	// are caught before dispatch and never produce an execution record.
	KindValidation ErrorKind = "validation"

	// KindAuthorization marks signature gate rejections. The execution
	// records a truthful FAILED status; the request itself was well-formed.
	KindAuthorization ErrorKind = "authorization"

	// KindBusiness marks downstream rejections for domain reasons, such as
	// insufficient listing quantity or an order in the wrong state.
	KindBusiness ErrorKind = "business"

	// KindInfrastructure marks transport failures, store failures, and
	// downstream 5xx responses.
	KindInfrastructure ErrorKind = "infrastructure"
)

// Sentinel errors shared across pipelines and the executor.
var (
	ErrUnknownWorkflow      = errors.New("unknown workflow")
	ErrMissingRequiredInput = errors.New("missing required input")
	ErrSignatureRejected    = errors.New("signature validation rejected")
	ErrEmptyValidationID    = errors.New("signature service returned empty validation id")
)

// StepError wraps a pipeline step failure with the step name and its kind.
type StepError struct {
	Step    string    // Step name within the pipeline
	Kind    ErrorKind // Failure classification
	Message string    // Human-readable message
	Err     error     // Underlying error
}

func (e *StepError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Step, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func (e *StepError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewValidationError creates a validation-kind step error.
func NewValidationError(step, message string, err error) *StepError {
	return &StepError{Step: step, Kind: KindValidation, Message: message, Err: err}
}

// NewAuthorizationError creates an authorization-kind step error.
func NewAuthorizationError(step, message string, err error) *StepError {
	return &StepError{Step: step, Kind: KindAuthorization, Message: message, Err: err}
}

// NewBusinessError creates a business-kind step error.
func NewBusinessError(step, message string, err error) *StepError {
	return &StepError{Step: step, Kind: KindBusiness, Message: message, Err: err}
}

// NewInfrastructureError creates an infrastructure-kind step error.
func NewInfrastructureError(step, message string, err error) *StepError {
	return &StepError{Step: step, Kind: KindInfrastructure, Message: message, Err: err}
}

// KindOf extracts the classification from an error chain. Errors that carry
// no StepError default to infrastructure, the safest reporting class.
func KindOf(err error) ErrorKind {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Kind
	}

	return KindInfrastructure
}

// IsValidationError checks if an error chain carries a validation failure.
func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation || errors.Is(err, ErrMissingRequiredInput)
}

// IsAuthorizationError checks if an error chain carries a signature gate rejection.
func IsAuthorizationError(err error) bool {
	return KindOf(err) == KindAuthorization || errors.Is(err, ErrSignatureRejected)
}

// IsBusinessError checks if an error chain carries a downstream business rejection.
func IsBusinessError(err error) bool {
	return KindOf(err) == KindBusiness
}

// IsInfrastructureError checks if an error chain carries a transport or store failure.
func IsInfrastructureError(err error) bool {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Kind == KindInfrastructure
	}

	return err != nil
}
