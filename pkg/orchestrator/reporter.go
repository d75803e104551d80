package orchestrator

import (
	"context"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/pipeline"
)

const maxNonTerminalProgress = 99

// Reporter provides read-only status and progress views over the context
// store. Unknown or expired executions report not-found, never an error.
type Reporter struct {
	store     contextstore.ContextStore
	pipelines *pipeline.Registry
}

// NewReporter creates a status and progress reporter.
func NewReporter(store contextstore.ContextStore, pipelines *pipeline.Registry) *Reporter {
	return &Reporter{
		store:     store,
		pipelines: pipelines,
	}
}

// Status returns the stored execution context for the given id.
func (r *Reporter) Status(ctx context.Context, executionID string) (*models.ExecutionContext, error) {
	return r.store.ExecutionByID(ctx, executionID)
}

// Progress reports completion as an integer in [0,100]. The value is a
// deterministic function of recorded steps: it only reaches 100 once the
// execution is SUCCESS, and it never decreases across step boundaries.
func (r *Reporter) Progress(ctx context.Context, executionID string) (int, error) {
	execution, err := r.store.ExecutionByID(ctx, executionID)
	if err != nil {
		return 0, err
	}

	if execution.Status == models.ExecutionStatusSuccess {
		return 100, nil
	}

	total := execution.TotalSteps
	if total == 0 {
		total = r.pipelines.TotalSteps(execution.WorkflowID)
	}

	if total == 0 {
		return 0, nil
	}

	progress := execution.StepsCompleted * 100 / total
	if progress > maxNonTerminalProgress {
		progress = maxNonTerminalProgress
	}

	return progress, nil
}
