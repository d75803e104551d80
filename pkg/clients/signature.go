package clients

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// SignatureClient talks to the signature verification service. Its policy
// is aggressively short: zero-trust gates must fail fast, never mask
// replay-sensitive latency behind retries.
type SignatureClient struct {
	core *httpCore
}

// NewSignatureClient creates a signature service client.
func NewSignatureClient(logger *slog.Logger, baseURL string) *SignatureClient {
	return &SignatureClient{
		core: newHTTPCore("signature", baseURL, SignaturePolicy, logger),
	}
}

type signatureValidateRequest struct {
	Signature models.SignaturePayload `json:"signature"`
}

type signatureValidateDualRequest struct {
	Signature           models.SignaturePayload `json:"signature"`
	RequestValidationID string                  `json:"request_validation_id"`
}

// ValidateRequest verifies an inbound request signature (nonce, sequence
// number, timestamp, algorithm) and issues the validation id that later
// steps thread through dependent downstream calls.
func (c *SignatureClient) ValidateRequest(ctx context.Context, payload models.SignaturePayload) (*models.SignatureValidationResult, error) {
	var result models.SignatureValidationResult

	err := c.core.postJSON(ctx, "ValidateRequest", "/api/v1/signatures/validate-request",
		signatureValidateRequest{Signature: payload}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ValidateResult verifies a signature attached to a downstream response
// before its content is trusted.
func (c *SignatureClient) ValidateResult(ctx context.Context, payload models.SignaturePayload) (*models.SignatureValidationResult, error) {
	var result models.SignatureValidationResult

	err := c.core.postJSON(ctx, "ValidateResult", "/api/v1/signatures/validate-result",
		signatureValidateRequest{Signature: payload}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ValidateDual verifies a result signature and binds it to the validation id
// issued for the originating request, closing the causal chain between the
// gate and the final downstream effect.
func (c *SignatureClient) ValidateDual(ctx context.Context, payload models.SignaturePayload, requestValidationID string) (*models.SignatureValidationResult, error) {
	var result models.SignatureValidationResult

	err := c.core.postJSON(ctx, "ValidateDual", "/api/v1/signatures/validate-dual",
		signatureValidateDualRequest{Signature: payload, RequestValidationID: requestValidationID}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
