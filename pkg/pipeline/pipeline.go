package pipeline

import (
	"context"
	"fmt"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/clients"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
)

// Pipeline runs the fixed step sequence of one workflow type against an
// execution context. Run mutates only the context it is handed; the executor
// owns persistence and terminal status transitions.
type Pipeline interface {
	WorkflowID() string
	TotalSteps() int
	Run(ctx context.Context, execution *models.ExecutionContext) error
}

// requestObject extracts a named object from the execution's input bag. The
// executor validated presence and type before dispatch, so a miss here means
// the bag was mutated or the definition disagrees with the pipeline.
func requestObject(execution *models.ExecutionContext, key string) (map[string]any, error) {
	raw, ok := execution.Inputs[key]
	if !ok {
		return nil, saga.NewValidationError("inputs", fmt.Sprintf("input '%s' is missing", key), saga.ErrMissingRequiredInput)
	}

	request, ok := raw.(map[string]any)
	if !ok {
		return nil, saga.NewValidationError("inputs", fmt.Sprintf("input '%s' is not an object", key), saga.ErrMissingRequiredInput)
	}

	return request, nil
}

// signatureFromRequest pulls the embedded signature object out of a request.
func signatureFromRequest(step string, request map[string]any) (models.SignaturePayload, error) {
	raw, ok := request["signature"].(map[string]any)
	if !ok {
		return models.SignaturePayload{}, saga.NewAuthorizationError(step, "request carries no signature", saga.ErrSignatureRejected)
	}

	payload, err := models.SignatureFromMap(raw)
	if err != nil {
		return models.SignaturePayload{}, saga.NewAuthorizationError(step, err.Error(), saga.ErrSignatureRejected)
	}

	return payload, nil
}

// validateRequestSignature runs the signature gate for one request: extract
// the embedded signature, submit it for verification, and require a verdict
// with a usable validation id. Any failure aborts the pipeline.
func validateRequestSignature(ctx context.Context, signatures SignatureService, step string, request map[string]any) (*models.SignatureValidationResult, error) {
	payload, err := signatureFromRequest(step, request)
	if err != nil {
		return nil, err
	}

	result, err := signatures.ValidateRequest(ctx, payload)
	if err != nil {
		return nil, downstreamError(step, err)
	}

	if !result.Valid {
		return nil, saga.NewAuthorizationError(step, result.Message, saga.ErrSignatureRejected)
	}

	if result.ValidationID == "" {
		return nil, saga.NewAuthorizationError(step, "", saga.ErrEmptyValidationID)
	}

	return result, nil
}

// downstreamError classifies a client error: 4xx rejections are business
// failures, everything else is infrastructure.
func downstreamError(step string, err error) error {
	if clients.IsRejection(err) {
		return saga.NewBusinessError(step, "", err)
	}

	return saga.NewInfrastructureError(step, "", err)
}

// stringField reads an optional string member of a request object.
func stringField(request map[string]any, key string) string {
	value, _ := request[key].(string)

	return value
}

// numberField reads an optional numeric member of a request object. JSON
// decoding yields float64 for all numbers.
func numberField(request map[string]any, key string) int64 {
	value, _ := request[key].(float64)

	return int64(value)
}
