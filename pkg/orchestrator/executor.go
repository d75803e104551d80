// Package orchestrator contains the workflow executor and the services that
// sit beside it: pure validation, status and progress reporting, event
// trigger mapping, and the onboarding convenience wrapper. The executor is
// the single place a step failure becomes a terminal execution state and a
// lifecycle event.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/otelhelper"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/pipeline"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InvalidInputError carries the full validation result for a rejected
// execute call so the API can name every missing field.
type InvalidInputError struct {
	WorkflowID string
	Result     models.ValidationResult
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("workflow '%s' input validation failed: %s", e.WorkflowID, strings.Join(e.Result.Errors, "; "))
}

// Executor validates input, creates execution contexts, dispatches to the
// pipeline registry, finalizes terminal status exactly once, and triggers
// lifecycle event publication. The pipeline runs to completion inside the
// calling request; the returned context carries the genuine terminal status.
type Executor struct {
	catalog   *catalog.Catalog
	store     contextstore.ContextStore
	pipelines *pipeline.Registry
	publisher *Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewExecutor creates an executor over an explicit catalog, store, pipeline
// registry, and publisher. All collaborators are injected; there is no
// hidden global state.
func NewExecutor(
	workflowCatalog *catalog.Catalog,
	store contextstore.ContextStore,
	pipelines *pipeline.Registry,
	publisher *Publisher,
	logger *slog.Logger,
) *Executor {
	return &Executor{
		catalog:   workflowCatalog,
		store:     store,
		pipelines: pipelines,
		publisher: publisher,
		logger:    logger.With("module", "workflow_executor"),
	}
}

// WithTracer enables span creation around executions.
func (e *Executor) WithTracer(tracer trace.Tracer) *Executor {
	e.tracer = tracer

	return e
}

// Execute runs one workflow to its terminal status. Validation failures
// return before any side effect; once a context is created the returned
// context is always terminal, alongside the pipeline error if any.
func (e *Executor) Execute(ctx context.Context, workflowID string, inputs map[string]any, triggeredBy string, metadata map[string]string) (*models.ExecutionContext, error) {
	definition, err := e.catalog.Get(workflowID)
	if err != nil {
		return nil, saga.NewValidationError("resolve-workflow", fmt.Sprintf("unknown workflow '%s'", workflowID), err)
	}

	validation := Validate(definition, inputs)
	if !validation.Valid {
		return nil, saga.NewValidationError("validate-inputs", "", &InvalidInputError{WorkflowID: workflowID, Result: validation})
	}

	flow, err := e.pipelines.Get(workflowID)
	if err != nil {
		return nil, saga.NewInfrastructureError("resolve-pipeline", "", err)
	}

	execution := models.NewExecutionContext(generateExecutionID(), workflowID, inputs)
	execution.TriggeredBy = triggeredBy
	execution.Metadata = metadata
	execution.TotalSteps = flow.TotalSteps()

	logger := e.logger.With("workflow_id", workflowID, "execution_id", execution.ID)

	if err := e.store.SaveExecution(ctx, execution); err != nil {
		return nil, saga.NewInfrastructureError("persist-context", "", err)
	}

	logger.InfoContext(ctx, "Starting workflow execution", "triggered_by", triggeredBy)
	e.publisher.ExecutionStarted(ctx, definition, execution)

	ctx, span := e.startSpan(ctx, definition, execution)

	runErr := flow.Run(ctx, execution)
	if runErr != nil {
		execution.MarkFailed(runErr.Error())
		otelhelper.SetError(span, runErr, attribute.String(otelhelper.ErrorKindKey, string(saga.KindOf(runErr))))
		span.End()

		logger.ErrorContext(ctx, "Workflow execution failed",
			"error", runErr, "error_kind", saga.KindOf(runErr), "steps_completed", execution.StepsCompleted)

		if err := e.store.SaveExecution(ctx, execution); err != nil {
			logger.ErrorContext(ctx, "Failed to persist failed execution", "error", err)
		}

		e.publisher.ExecutionFailed(ctx, execution, saga.KindOf(runErr))

		return execution, runErr
	}

	execution.MarkSuccess()
	span.End()

	if err := e.store.SaveExecution(ctx, execution); err != nil {
		logger.ErrorContext(ctx, "Failed to persist completed execution", "error", err)

		return execution, saga.NewInfrastructureError("persist-context", "", err)
	}

	logger.InfoContext(ctx, "Workflow execution completed", "steps_completed", execution.StepsCompleted)
	e.publisher.ExecutionCompleted(ctx, execution)

	return execution, nil
}

// Catalog exposes the injected definition table for read-only consumers.
func (e *Executor) Catalog() *catalog.Catalog {
	return e.catalog
}

// ValidateInputs resolves a definition and runs pure validation; unknown
// workflow ids surface as a validation-kind error.
func (e *Executor) ValidateInputs(workflowID string, inputs map[string]any) (models.ValidationResult, error) {
	definition, err := e.catalog.Get(workflowID)
	if err != nil {
		return models.ValidationResult{}, saga.NewValidationError("resolve-workflow", fmt.Sprintf("unknown workflow '%s'", workflowID), err)
	}

	return Validate(definition, inputs), nil
}

func (e *Executor) startSpan(ctx context.Context, definition models.WorkflowDefinition, execution *models.ExecutionContext) (context.Context, trace.Span) {
	if e.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	return otelhelper.StartSpan(ctx, e.tracer, "workflow.execute",
		attribute.String(otelhelper.WorkflowIDKey, definition.ID),
		attribute.String(otelhelper.WorkflowNameKey, definition.Name),
		attribute.String(otelhelper.ExecutionIDKey, execution.ID),
		attribute.String(otelhelper.TriggeredByKey, execution.TriggeredBy),
	)
}

func generateExecutionID() string {
	return "exec-" + uuid.New().String()
}
