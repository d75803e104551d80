package clients

import (
	"errors"
	"fmt"
)

// Standard downstream error types shared by all clients.
var (
	// ErrServiceUnavailable indicates a transport failure or a 5xx response
	// that survived the retry policy.
	ErrServiceUnavailable = errors.New("downstream service unavailable")

	// ErrRequestRejected indicates the downstream answered 4xx. Rejections
	// are never retried.
	ErrRequestRejected = errors.New("downstream request rejected")
)

// DownstreamError wraps a failed downstream call with service context.
type DownstreamError struct {
	Service    string // Downstream service name (e.g., "marketplace")
	Operation  string // Operation being performed (e.g., "CreateOrder")
	StatusCode int    // HTTP status code, 0 for transport failures
	Message    string // Downstream-provided message if any
	Err        error  // Underlying error
}

func (e *DownstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s failed (status %d): %s", e.Service, e.Operation, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Operation, e.Err)
}

func (e *DownstreamError) Unwrap() error {
	return e.Err
}

func (e *DownstreamError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsRejection checks if an error indicates a downstream 4xx rejection.
func IsRejection(err error) bool {
	return errors.Is(err, ErrRequestRejected)
}

// IsUnavailable checks if an error indicates a transport failure or 5xx response.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}
