package pipeline

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
)

const onboardingTotalSteps = 5

// OnboardingPipeline provisions a multisig wallet for a new user: profile
// fetch (non-fatal), artifact generation, durable persistence, object storage
// publication, and ingest confirmation (non-fatal). The two non-fatal steps
// are deliberate best-effort exceptions to the fail-fast rule.
type OnboardingPipeline struct {
	collaborators Collaborators
	logger        *slog.Logger
}

// NewOnboardingPipeline creates the user-onboarding-optimized pipeline.
func NewOnboardingPipeline(collaborators Collaborators, logger *slog.Logger) *OnboardingPipeline {
	return &OnboardingPipeline{
		collaborators: collaborators,
		logger:        logger.With("module", "onboarding_pipeline"),
	}
}

func (p *OnboardingPipeline) WorkflowID() string {
	return catalog.WorkflowUserOnboarding
}

func (p *OnboardingPipeline) TotalSteps() int {
	return onboardingTotalSteps
}

func (p *OnboardingPipeline) Run(ctx context.Context, execution *models.ExecutionContext) error {
	registration, err := requestObject(execution, catalog.InputUserRegistration)
	if err != nil {
		return err
	}

	userID := stringField(registration, "userId")
	if userID == "" {
		return saga.NewValidationError("inputs", "userRegistration is missing userId", saga.ErrMissingRequiredInput)
	}

	execution.MergeResults(map[string]any{"userId": userID})

	p.fetchProfile(ctx, execution, userID)

	wallet, err := p.collaborators.Multisig.Generate(ctx, userID)
	if err != nil {
		return downstreamError("generate-multisig", err)
	}

	if wallet.MultisigID == "" {
		return saga.NewBusinessError("generate-multisig", "multisig generation produced no artifacts", nil)
	}

	execution.RecordStep("multisig artifacts generated")
	execution.MergeResults(map[string]any{
		"multisigId": wallet.MultisigID,
		"chain":      wallet.Chain,
		"address":    wallet.Address,
	})

	receipt, err := p.collaborators.Multisig.Persist(ctx, *wallet)
	if err != nil {
		return downstreamError("persist-multisig", err)
	}

	if !receipt.Persisted {
		return saga.NewBusinessError("persist-multisig", "multisig service declined to persist artifacts", nil)
	}

	execution.RecordStep("multisig artifacts persisted")

	published, err := p.collaborators.Multisig.Publish(ctx, *wallet)
	if err != nil {
		return downstreamError("publish-multisig", err)
	}

	execution.RecordStep("multisig artifacts published")
	execution.MergeResults(map[string]any{
		"s3Key":  published.S3Key,
		"s3ETag": published.S3ETag,
	})

	p.confirmIngest(ctx, execution, wallet.MultisigID, published.S3Key)

	return nil
}

// fetchProfile enriches the results bag with profile fields when the user
// service is reachable. Non-fatal: onboarding proceeds without a profile.
func (p *OnboardingPipeline) fetchProfile(ctx context.Context, execution *models.ExecutionContext, userID string) {
	profile, err := p.collaborators.User.GetProfile(ctx, userID)
	if err != nil {
		p.logger.WarnContext(ctx, "User profile unavailable, continuing onboarding",
			"execution_id", execution.ID, "user_id", userID, "error", err)
		execution.RecordStep("user profile unavailable, continuing")

		return
	}

	execution.RecordStep("user profile fetched")
	execution.MergeResults(map[string]any{
		"userEmail":    profile.Email,
		"userKycLevel": profile.KYCLevel,
	})
}

// confirmIngest asks the downstream consumer to acknowledge the published
// artifacts. Non-fatal: a missing acknowledgment never fails onboarding, it
// only withholds the ingestConfirmed marker.
func (p *OnboardingPipeline) confirmIngest(ctx context.Context, execution *models.ExecutionContext, multisigID, s3Key string) {
	receipt, err := p.collaborators.Multisig.Ingest(ctx, multisigID, s3Key)
	if err != nil || !receipt.Confirmed {
		p.logger.WarnContext(ctx, "Ingest confirmation failed, continuing onboarding",
			"execution_id", execution.ID, "multisig_id", multisigID, "error", err)
		execution.RecordStep("ingest confirmation unavailable, continuing")

		return
	}

	execution.RecordStep("ingest confirmed")
	execution.MergeResults(map[string]any{"ingestConfirmed": true})
}
