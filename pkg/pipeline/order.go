package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
)

const orderTotalSteps = 3

// OrderPipeline creates a marketplace order behind a signature gate, with a
// listing availability check between the gate and the order creation.
type OrderPipeline struct {
	collaborators Collaborators
	logger        *slog.Logger
}

// NewOrderPipeline creates the marketplace-order-processing pipeline.
func NewOrderPipeline(collaborators Collaborators, logger *slog.Logger) *OrderPipeline {
	return &OrderPipeline{
		collaborators: collaborators,
		logger:        logger.With("module", "order_pipeline"),
	}
}

func (p *OrderPipeline) WorkflowID() string {
	return catalog.WorkflowOrderProcessing
}

func (p *OrderPipeline) TotalSteps() int {
	return orderTotalSteps
}

func (p *OrderPipeline) Run(ctx context.Context, execution *models.ExecutionContext) error {
	request, err := requestObject(execution, catalog.InputOrderRequest)
	if err != nil {
		return err
	}

	gate, err := validateRequestSignature(ctx, p.collaborators.Signature, "validate-request-signature", request)
	if err != nil {
		return err
	}

	execution.RecordStep("request signature validated")
	execution.MergeResults(map[string]any{"validationId": gate.ValidationID})

	listingID := stringField(request, "listingId")
	if listingID == "" {
		return saga.NewValidationError("check-availability", "orderRequest is missing listingId", saga.ErrMissingRequiredInput)
	}

	quantity := numberField(request, "quantity")
	if quantity <= 0 {
		quantity = 1
	}

	availability, err := p.collaborators.Marketplace.CheckListingAvailability(ctx, listingID, quantity)
	if err != nil {
		return downstreamError("check-availability", err)
	}

	if !availability.Available {
		message := availability.Message
		if message == "" {
			message = fmt.Sprintf("listing %s cannot cover quantity %d (available %d)",
				listingID, quantity, availability.QuantityAvailable)
		}

		return saga.NewBusinessError("check-availability", message, nil)
	}

	execution.RecordStep("listing availability confirmed")

	order, err := p.collaborators.Marketplace.CreateOrder(ctx, request, gate.ValidationID)
	if err != nil {
		return downstreamError("create-order", err)
	}

	execution.RecordStep("order created")
	execution.MergeResults(map[string]any{
		"orderId":   order.OrderID,
		"listingId": order.ListingID,
	})

	return nil
}
