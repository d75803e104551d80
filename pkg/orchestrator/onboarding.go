package orchestrator

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// userIndexPrefix namespaces the user to execution secondary index.
const userIndexPrefix = "user:"

// OnboardingService wraps the onboarding workflow behind a user-id-first
// interface and maintains the user to execution secondary index.
type OnboardingService struct {
	executor *Executor
	store    contextstore.ContextStore
	logger   *slog.Logger
}

// NewOnboardingService creates the onboarding convenience service.
func NewOnboardingService(executor *Executor, store contextstore.ContextStore, logger *slog.Logger) *OnboardingService {
	return &OnboardingService{
		executor: executor,
		store:    store,
		logger:   logger.With("module", "onboarding_service"),
	}
}

// Run executes the onboarding workflow for a user and records the
// user-to-execution index entry for later status lookups by user id.
func (s *OnboardingService) Run(ctx context.Context, userID string) (*models.ExecutionContext, error) {
	inputs := map[string]any{
		catalog.InputUserRegistration: map[string]any{"userId": userID},
	}

	execution, err := s.executor.Execute(ctx, catalog.WorkflowUserOnboarding, inputs, "onboarding-api", nil)
	if execution == nil {
		return nil, err
	}

	if indexErr := s.store.SaveIndex(ctx, userIndexPrefix+userID, execution.ID); indexErr != nil {
		// The execution exists and is queryable by id; only the user-id
		// convenience lookup is degraded.
		s.logger.ErrorContext(ctx, "Failed to save user execution index",
			"user_id", userID, "execution_id", execution.ID, "error", indexErr)
	}

	return execution, err
}

// Status resolves id first through the user index, then falls back to
// treating it as a raw execution id.
func (s *OnboardingService) Status(ctx context.Context, id string) (*models.ExecutionContext, error) {
	executionID, err := s.store.ExecutionIDByIndex(ctx, userIndexPrefix+id)
	if err != nil {
		if !contextstore.IsIndexNotFound(err) {
			return nil, err
		}

		executionID = id
	}

	return s.store.ExecutionByID(ctx, executionID)
}
