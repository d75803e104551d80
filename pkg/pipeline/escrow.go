package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
)

const escrowTotalSteps = 3

// Escrow actions accepted by the pipeline.
const (
	EscrowActionFund    = "fund"
	EscrowActionRelease = "release"
	EscrowActionRefund  = "refund"
)

// EscrowPipeline applies escrow state transitions to an order. The signature
// gate requires the seller's signature for "release" and the buyer's for
// every other action; the order's current state must allow the transition.
type EscrowPipeline struct {
	collaborators Collaborators
	logger        *slog.Logger
}

// NewEscrowPipeline creates the marketplace-escrow-management pipeline.
func NewEscrowPipeline(collaborators Collaborators, logger *slog.Logger) *EscrowPipeline {
	return &EscrowPipeline{
		collaborators: collaborators,
		logger:        logger.With("module", "escrow_pipeline"),
	}
}

func (p *EscrowPipeline) WorkflowID() string {
	return catalog.WorkflowEscrowManagement
}

func (p *EscrowPipeline) TotalSteps() int {
	return escrowTotalSteps
}

func (p *EscrowPipeline) Run(ctx context.Context, execution *models.ExecutionContext) error {
	request, err := requestObject(execution, catalog.InputEscrowRequest)
	if err != nil {
		return err
	}

	action := stringField(request, "action")
	if action == "" {
		return saga.NewValidationError("inputs", "escrowRequest is missing action", saga.ErrMissingRequiredInput)
	}

	orderID := stringField(request, "orderId")
	if orderID == "" {
		return saga.NewValidationError("inputs", "escrowRequest is missing orderId", saga.ErrMissingRequiredInput)
	}

	gate, err := p.validateSigner(ctx, request, action)
	if err != nil {
		return err
	}

	execution.RecordStep("request signature validated")
	execution.MergeResults(map[string]any{"validationId": gate.ValidationID})

	if err := p.verifyOrderState(ctx, orderID, action); err != nil {
		return err
	}

	execution.RecordStep("order state verified")

	escrow, err := p.collaborators.Marketplace.UpdateEscrow(ctx, orderID, action, gate.ValidationID)
	if err != nil {
		return downstreamError("update-escrow", err)
	}

	execution.RecordStep("escrow updated")
	execution.MergeResults(map[string]any{
		"escrowId":     escrow.EscrowID,
		"orderId":      escrow.OrderID,
		"action":       action,
		"escrowStatus": escrow.Status,
	})

	return nil
}

// validateSigner runs the signature gate with the action-dependent signer:
// a release must be signed by the seller, anything else by the buyer.
func (p *EscrowPipeline) validateSigner(ctx context.Context, request map[string]any, action string) (*models.SignatureValidationResult, error) {
	const step = "validate-request-signature"

	expectedSigner := stringField(request, "buyerId")
	if action == EscrowActionRelease {
		expectedSigner = stringField(request, "sellerId")
	}

	if expectedSigner == "" {
		return nil, saga.NewAuthorizationError(step,
			fmt.Sprintf("escrowRequest names no signer for action '%s'", action), saga.ErrSignatureRejected)
	}

	payload, err := signatureFromRequest(step, request)
	if err != nil {
		return nil, err
	}

	if payload.Signer != expectedSigner {
		return nil, saga.NewAuthorizationError(step,
			fmt.Sprintf("action '%s' requires signature from '%s', got '%s'", action, expectedSigner, payload.Signer),
			saga.ErrSignatureRejected)
	}

	result, err := p.collaborators.Signature.ValidateRequest(ctx, payload)
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

// verifyOrderState fetches the order and checks its state allows the action:
// funding requires a pending order, release and refund require a funded one.
func (p *EscrowPipeline) verifyOrderState(ctx context.Context, orderID, action string) error {
	const step = "verify-order-state"

	order, err := p.collaborators.Marketplace.GetOrder(ctx, orderID)
	if err != nil {
		return downstreamError(step, err)
	}

	allowed := map[string]string{
		EscrowActionFund:    "pending",
		EscrowActionRelease: "funded",
		EscrowActionRefund:  "funded",
	}

	requiredState, ok := allowed[action]
	if !ok {
		return saga.NewBusinessError(step, fmt.Sprintf("unsupported escrow action '%s'", action), nil)
	}

	if order.Status != requiredState {
		return saga.NewBusinessError(step,
			fmt.Sprintf("order %s is '%s', action '%s' requires '%s'", orderID, order.Status, action, requiredState), nil)
	}

	return nil
}
