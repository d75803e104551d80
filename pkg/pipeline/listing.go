package pipeline

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

const listingTotalSteps = 2

// ListingPipeline creates a marketplace listing behind a signature gate.
type ListingPipeline struct {
	collaborators Collaborators
	logger        *slog.Logger
}

// NewListingPipeline creates the marketplace-listing-creation pipeline.
func NewListingPipeline(collaborators Collaborators, logger *slog.Logger) *ListingPipeline {
	return &ListingPipeline{
		collaborators: collaborators,
		logger:        logger.With("module", "listing_pipeline"),
	}
}

func (p *ListingPipeline) WorkflowID() string {
	return catalog.WorkflowListingCreation
}

func (p *ListingPipeline) TotalSteps() int {
	return listingTotalSteps
}

func (p *ListingPipeline) Run(ctx context.Context, execution *models.ExecutionContext) error {
	request, err := requestObject(execution, catalog.InputListingRequest)
	if err != nil {
		return err
	}

	gate, err := validateRequestSignature(ctx, p.collaborators.Signature, "validate-request-signature", request)
	if err != nil {
		return err
	}

	execution.RecordStep("request signature validated")
	execution.MergeResults(map[string]any{"validationId": gate.ValidationID})

	listing, err := p.collaborators.Marketplace.CreateListing(ctx, request, gate.ValidationID)
	if err != nil {
		return downstreamError("create-listing", err)
	}

	execution.RecordStep("listing created")
	execution.MergeResults(map[string]any{
		"listingId": listing.ListingID,
		"tokenId":   listing.TokenID,
	})

	return nil
}
