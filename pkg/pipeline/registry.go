package pipeline

import (
	"fmt"
	"log/slog"
)

// Registry maps workflow ids to their step pipelines. The executor looks a
// pipeline up once per execution and invokes it uniformly; adding a workflow
// means registering a new pipeline, not touching dispatch code.
type Registry struct {
	logger    *slog.Logger
	pipelines map[string]Pipeline
}

// NewRegistry creates an empty pipeline registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:    logger.With("module", "pipeline_registry"),
		pipelines: make(map[string]Pipeline),
	}
}

// NewDefaultRegistry creates a registry with every shipped pipeline wired to
// the given collaborators.
func NewDefaultRegistry(collaborators Collaborators, logger *slog.Logger) *Registry {
	registry := NewRegistry(logger)

	registry.Register(NewPaymentPipeline(collaborators, logger))
	registry.Register(NewOnboardingPipeline(collaborators, logger))
	registry.Register(NewTreasuryPipeline(logger))
	registry.Register(NewListingPipeline(collaborators, logger))
	registry.Register(NewOrderPipeline(collaborators, logger))
	registry.Register(NewEscrowPipeline(collaborators, logger))
	registry.Register(NewAnalyticsPipeline(collaborators, logger))

	return registry
}

// Register adds a pipeline under its workflow id, replacing any previous
// registration.
func (r *Registry) Register(pipeline Pipeline) {
	r.pipelines[pipeline.WorkflowID()] = pipeline
	r.logger.Debug("Registered pipeline", "workflow_id", pipeline.WorkflowID(), "total_steps", pipeline.TotalSteps())
}

// Get returns the pipeline for the given workflow id.
func (r *Registry) Get(workflowID string) (Pipeline, error) {
	pipeline, ok := r.pipelines[workflowID]
	if !ok {
		return nil, fmt.Errorf("pipeline for workflow '%s' not registered", workflowID)
	}

	return pipeline, nil
}

// TotalSteps returns the declared step count for a workflow id, or zero when
// no pipeline is registered.
func (r *Registry) TotalSteps(workflowID string) int {
	pipeline, ok := r.pipelines[workflowID]
	if !ok {
		return 0
	}

	return pipeline.TotalSteps()
}

// HealthCheck reports the registry state for the health endpoint.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.pipelines) == 0 {
		return "no pipelines registered", false
	}

	return fmt.Sprintf("%d pipelines registered", len(r.pipelines)), true
}
