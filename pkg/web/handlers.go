package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/orchestrator"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/pipeline"
)

// APIHandlers exposes the orchestration surface over HTTP. Execute responses
// carry the genuine terminal status of the execution: a pipeline failure is a
// 200 with status FAILED, never a stale RUNNING.
type APIHandlers struct {
	executor   *orchestrator.Executor
	reporter   *orchestrator.Reporter
	triggers   *orchestrator.TriggerService
	onboarding *orchestrator.OnboardingService
	store      contextstore.ContextStore
	pipelines  *pipeline.Registry
	validator  *validator.Validate
}

func NewAPIHandlers(
	executor *orchestrator.Executor,
	reporter *orchestrator.Reporter,
	triggers *orchestrator.TriggerService,
	onboarding *orchestrator.OnboardingService,
	store contextstore.ContextStore,
	pipelines *pipeline.Registry,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		executor:   executor,
		reporter:   reporter,
		triggers:   triggers,
		onboarding: onboarding,
		store:      store,
		pipelines:  pipelines,
		validator:  validator,
	}
}

// GetWorkflows lists the workflow catalog.
func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	definitions := h.executor.Catalog().List()

	return c.JSON(fiber.Map{
		"workflows":   definitions,
		"total_count": len(definitions),
	})
}

// ExecuteWorkflow runs a workflow synchronously to its terminal status.
func (h *APIHandlers) ExecuteWorkflow(c fiber.Ctx) error {
	workflowID := c.Params("workflowId")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req ExecuteWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	triggeredBy := req.TriggeredBy
	if triggeredBy == "" {
		triggeredBy = "api"
	}

	execution, err := h.executor.Execute(c.Context(), workflowID, req.Inputs, triggeredBy, req.Context)
	if execution == nil {
		return handleExecutorError(c, err)
	}

	// The execution reached a terminal state; report it as it is, failed
	// business outcomes included.
	return c.JSON(TransformExecutionResponse(execution))
}

// ValidateWorkflow dry-runs input validation without creating an execution.
func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	workflowID := c.Params("workflowId")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req ValidateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	result, err := h.executor.ValidateInputs(workflowID, req.Inputs)
	if err != nil {
		return handleExecutorError(c, err)
	}

	return c.JSON(TransformValidationResponse(result))
}

// GetExecutionStatus returns the stored execution context by id.
func (h *APIHandlers) GetExecutionStatus(c fiber.Ctx) error {
	executionID := c.Params("executionId")
	if executionID == "" {
		return badRequest(c, "Execution ID is required")
	}

	execution, err := h.reporter.Status(c.Context(), executionID)
	if err != nil {
		if contextstore.IsExecutionNotFound(err) {
			return notFound(c, "Execution not found or expired")
		}

		return internalError(c, err)
	}

	return c.JSON(TransformExecutionResponse(execution))
}

// GetExecutionProgress returns percent completion for an execution.
func (h *APIHandlers) GetExecutionProgress(c fiber.Ctx) error {
	executionID := c.Params("executionId")
	if executionID == "" {
		return badRequest(c, "Execution ID is required")
	}

	progress, err := h.reporter.Progress(c.Context(), executionID)
	if err != nil {
		if contextstore.IsExecutionNotFound(err) {
			return notFound(c, "Execution not found or expired")
		}

		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"execution_id": executionID,
		"progress":     progress,
	})
}

// TriggerEvent maps an external event onto a workflow execution. Unknown
// event types are acknowledged as IGNORED; this endpoint never fails the
// caller for an unrecognized event.
func (h *APIHandlers) TriggerEvent(c fiber.Ctx) error {
	var req TriggerEventRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	response := h.triggers.HandleEvent(c.Context(), models.EventTriggerRequest{
		EventType: req.EventType,
		Source:    req.Source,
		EventData: req.EventData,
		Headers:   req.Headers,
	})

	return c.JSON(response)
}

// RunOnboarding executes the onboarding workflow for a user.
func (h *APIHandlers) RunOnboarding(c fiber.Ctx) error {
	var req OnboardingRunRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	execution, err := h.onboarding.Run(c.Context(), req.UserID)
	if execution == nil {
		return handleExecutorError(c, err)
	}

	return c.JSON(TransformExecutionResponse(execution))
}

// GetOnboardingStatus resolves onboarding state by user id, falling back to
// a raw execution id.
func (h *APIHandlers) GetOnboardingStatus(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "User ID is required")
	}

	execution, err := h.onboarding.Status(c.Context(), id)
	if err != nil {
		if contextstore.IsExecutionNotFound(err) {
			return notFound(c, "Onboarding execution not found or expired")
		}

		return internalError(c, err)
	}

	return c.JSON(TransformExecutionResponse(execution))
}

// HealthCheck aggregates the context store and pipeline registry checks.
func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.pipelines.HealthCheck()

	storeCheck := "context store is healthy"
	storeOk := true

	if err := h.store.HealthCheck(c.Context()); err != nil {
		storeCheck = err.Error()
		storeOk = false
	}

	status := "unhealthy"
	message := "Orchestrator API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && storeOk {
		status = "healthy"
		message = "Orchestrator API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"pipelines":     registryCheck,
			"context_store": storeCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
