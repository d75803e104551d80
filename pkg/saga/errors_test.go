package saga

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		err      *StepError
		expected string
	}{
		{
			name:     "with message",
			err:      &StepError{Step: "validate-signature", Kind: KindAuthorization, Message: "nonce already used"},
			expected: "validate-signature: nonce already used",
		},
		{
			name:     "without message",
			err:      &StepError{Step: "create-order", Kind: KindInfrastructure, Err: errors.New("connection refused")},
			expected: "create-order: connection refused",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestStepError_Unwrap(t *testing.T) {
	underlying := errors.New("dial tcp: connection refused")
	stepErr := NewInfrastructureError("process-payment", "payment service unreachable", underlying)

	assert.ErrorIs(t, stepErr, underlying)
}

func TestStepError_IsSentinel(t *testing.T) {
	stepErr := NewAuthorizationError("validate-signature", "signature invalid", ErrSignatureRejected)

	assert.ErrorIs(t, stepErr, ErrSignatureRejected)
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{
			name:     "validation step error",
			err:      NewValidationError("inputs", "missing paymentRequest", ErrMissingRequiredInput),
			expected: KindValidation,
		},
		{
			name:     "authorization step error",
			err:      NewAuthorizationError("gate", "rejected", ErrSignatureRejected),
			expected: KindAuthorization,
		},
		{
			name:     "business step error",
			err:      NewBusinessError("check-availability", "insufficient quantity", nil),
			expected: KindBusiness,
		},
		{
			name:     "infrastructure step error",
			err:      NewInfrastructureError("store", "put failed", errors.New("redis down")),
			expected: KindInfrastructure,
		},
		{
			name:     "wrapped step error",
			err:      fmt.Errorf("pipeline failed: %w", NewBusinessError("get-order", "order not pending", nil)),
			expected: KindBusiness,
		},
		{
			name:     "plain error defaults to infrastructure",
			err:      errors.New("something broke"),
			expected: KindInfrastructure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, KindOf(tc.err))
		})
	}
}

func TestPredicates(t *testing.T) {
	validationErr := NewValidationError("inputs", "missing field", ErrMissingRequiredInput)
	authErr := NewAuthorizationError("gate", "bad signature", ErrSignatureRejected)
	businessErr := NewBusinessError("check", "rejected", nil)
	infraErr := NewInfrastructureError("client", "timeout", errors.New("deadline exceeded"))

	assert.True(t, IsValidationError(validationErr))
	assert.False(t, IsValidationError(authErr))

	assert.True(t, IsAuthorizationError(authErr))
	assert.True(t, IsAuthorizationError(fmt.Errorf("step: %w", ErrSignatureRejected)))
	assert.False(t, IsAuthorizationError(businessErr))

	assert.True(t, IsBusinessError(businessErr))
	assert.False(t, IsBusinessError(infraErr))

	assert.True(t, IsInfrastructureError(infraErr))
	assert.True(t, IsInfrastructureError(errors.New("plain")))
	assert.False(t, IsInfrastructureError(nil))
	assert.False(t, IsInfrastructureError(businessErr))
}

func TestIsValidationError_BareSentinel(t *testing.T) {
	assert.True(t, IsValidationError(fmt.Errorf("workflow inputs: %w", ErrMissingRequiredInput)))
}
