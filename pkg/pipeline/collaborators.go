// Package pipeline contains the per-workflow step pipelines and the registry
// the executor dispatches through. Each pipeline is a fixed, ordered sequence
// of signature-gated downstream calls; steps fail fast unless a step is
// explicitly declared non-fatal.
package pipeline

import (
	"context"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/clients"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// SignatureService verifies request and result signatures. Every mutating
// pipeline opens with a ValidateRequest gate.
type SignatureService interface {
	ValidateRequest(ctx context.Context, payload models.SignaturePayload) (*models.SignatureValidationResult, error)
	ValidateResult(ctx context.Context, payload models.SignaturePayload) (*models.SignatureValidationResult, error)
	ValidateDual(ctx context.Context, payload models.SignaturePayload, requestValidationID string) (*models.SignatureValidationResult, error)
}

// LedgerService validates transactions before funds move.
type LedgerService interface {
	ValidateTransaction(ctx context.Context, transaction map[string]any) (*clients.LedgerValidation, error)
}

// PaymentService executes payments that passed the signature gate.
type PaymentService interface {
	Process(ctx context.Context, payment map[string]any, validationID string) (*clients.PaymentResult, error)
}

// MarketplaceService covers listing, order, escrow, and analytics operations.
type MarketplaceService interface {
	CreateListing(ctx context.Context, listing map[string]any, validationID string) (*clients.ListingResult, error)
	CheckListingAvailability(ctx context.Context, listingID string, quantity int64) (*clients.ListingAvailability, error)
	CreateOrder(ctx context.Context, order map[string]any, validationID string) (*clients.OrderResult, error)
	GetOrder(ctx context.Context, orderID string) (*clients.Order, error)
	UpdateEscrow(ctx context.Context, orderID, action, validationID string) (*clients.EscrowResult, error)
	ListingAnalytics(ctx context.Context, period string) (*clients.AnalyticsSlice, error)
	OrderAnalytics(ctx context.Context, period string) (*clients.AnalyticsSlice, error)
}

// UserService looks up user profiles during onboarding.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*clients.UserProfile, error)
}

// MultisigService provisions multisig wallet artifacts during onboarding.
type MultisigService interface {
	Generate(ctx context.Context, userID string) (*clients.MultisigWallet, error)
	Persist(ctx context.Context, wallet clients.MultisigWallet) (*clients.PersistReceipt, error)
	Publish(ctx context.Context, wallet clients.MultisigWallet) (*clients.PublishReceipt, error)
	Ingest(ctx context.Context, multisigID, s3Key string) (*clients.IngestReceipt, error)
}

// Collaborators bundles the downstream services the pipelines call.
type Collaborators struct {
	Signature   SignatureService
	Ledger      LedgerService
	Payment     PaymentService
	Marketplace MarketplaceService
	User        UserService
	Multisig    MultisigService
}

// CollaboratorsFromSet adapts the HTTP client set to the pipeline interfaces.
func CollaboratorsFromSet(set *clients.Set) Collaborators {
	return Collaborators{
		Signature:   set.Signature,
		Ledger:      set.Ledger,
		Payment:     set.Payment,
		Marketplace: set.Marketplace,
		User:        set.User,
		Multisig:    set.Multisig,
	}
}
