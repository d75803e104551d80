package pipeline

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
)

const paymentTotalSteps = 4

// PaymentPipeline runs the zero-trust payment sequence: request signature
// gate, ledger validation, payment execution, and dual validation of the
// payment result signature against the gate's validation id.
type PaymentPipeline struct {
	collaborators Collaborators
	logger        *slog.Logger
}

// NewPaymentPipeline creates the payment-processing-zero-trust pipeline.
func NewPaymentPipeline(collaborators Collaborators, logger *slog.Logger) *PaymentPipeline {
	return &PaymentPipeline{
		collaborators: collaborators,
		logger:        logger.With("module", "payment_pipeline"),
	}
}

func (p *PaymentPipeline) WorkflowID() string {
	return catalog.WorkflowPaymentProcessing
}

func (p *PaymentPipeline) TotalSteps() int {
	return paymentTotalSteps
}

func (p *PaymentPipeline) Run(ctx context.Context, execution *models.ExecutionContext) error {
	request, err := requestObject(execution, catalog.InputPaymentRequest)
	if err != nil {
		return err
	}

	gate, err := validateRequestSignature(ctx, p.collaborators.Signature, "validate-request-signature", request)
	if err != nil {
		return err
	}

	execution.RecordStep("request signature validated")
	execution.MergeResults(map[string]any{"validationId": gate.ValidationID})

	if err := p.validateWithLedger(ctx, execution, request); err != nil {
		return err
	}

	payment, err := p.collaborators.Payment.Process(ctx, request, gate.ValidationID)
	if err != nil {
		return downstreamError("process-payment", err)
	}

	execution.RecordStep("payment executed")

	if err := p.validatePaymentResult(ctx, execution, payment.Signature, gate.ValidationID); err != nil {
		return err
	}

	execution.MergeResults(map[string]any{
		"paymentId":     payment.PaymentID,
		"transactionId": payment.TransactionID,
		"paymentStatus": payment.Status,
	})

	return nil
}

// validateWithLedger submits the transaction for ledger validation and
// verifies the ledger's own result signature before trusting the verdict.
func (p *PaymentPipeline) validateWithLedger(ctx context.Context, execution *models.ExecutionContext, request map[string]any) error {
	const step = "validate-ledger"

	verdict, err := p.collaborators.Ledger.ValidateTransaction(ctx, request)
	if err != nil {
		return downstreamError(step, err)
	}

	if verdict.Signature != nil {
		result, err := p.collaborators.Signature.ValidateResult(ctx, *verdict.Signature)
		if err != nil {
			return downstreamError(step, err)
		}

		if !result.Valid {
			return saga.NewAuthorizationError(step, "ledger result signature invalid: "+result.Message, saga.ErrSignatureRejected)
		}
	}

	if !verdict.Approved {
		return saga.NewBusinessError(step, "ledger rejected transaction: "+verdict.Message, nil)
	}

	execution.RecordStep("ledger validation passed")
	execution.MergeResults(map[string]any{"ledgerRef": verdict.LedgerRef})

	return nil
}

// validatePaymentResult binds the payment result signature to the request
// gate's validation id, closing the causal chain.
func (p *PaymentPipeline) validatePaymentResult(ctx context.Context, execution *models.ExecutionContext, signature *models.SignaturePayload, requestValidationID string) error {
	const step = "validate-result-signature"

	if signature == nil {
		return saga.NewAuthorizationError(step, "payment result carries no signature", saga.ErrSignatureRejected)
	}

	result, err := p.collaborators.Signature.ValidateDual(ctx, *signature, requestValidationID)
	if err != nil {
		return downstreamError(step, err)
	}

	if !result.Valid {
		return saga.NewAuthorizationError(step, result.Message, saga.ErrSignatureRejected)
	}

	execution.RecordStep("payment result signature validated")

	return nil
}
