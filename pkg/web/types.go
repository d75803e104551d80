// Package web provides the HTTP handlers and request types for the workflow
// orchestration API.
package web

import (
	"time"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// ExecuteWorkflowRequest is the request body for running a workflow.
type ExecuteWorkflowRequest struct {
	Inputs      map[string]any    `json:"inputs"`
	TriggeredBy string            `json:"triggered_by,omitempty"`
	Context     map[string]string `json:"context,omitempty"`
}

// ValidateWorkflowRequest is the request body for dry-run input validation.
type ValidateWorkflowRequest struct {
	Inputs map[string]any `json:"inputs"`
}

// TriggerEventRequest is the request body for external event notifications.
type TriggerEventRequest struct {
	EventType string            `json:"event_type" validate:"required"`
	Source    string            `json:"source"`
	EventData map[string]any    `json:"event_data"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// OnboardingRunRequest is the request body for starting user onboarding.
type OnboardingRunRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// ExecutionResponse is the API view of an execution context.
type ExecutionResponse struct {
	ExecutionID    string            `json:"execution_id"`
	WorkflowID     string            `json:"workflow_id"`
	Status         string            `json:"status"`
	TriggeredBy    string            `json:"triggered_by,omitempty"`
	StartedAt      string            `json:"started_at"`
	CompletedAt    *string           `json:"completed_at,omitempty"`
	StepsCompleted int               `json:"steps_completed"`
	TotalSteps     int               `json:"total_steps"`
	Results        map[string]any    `json:"results,omitempty"`
	Highlights     []string          `json:"highlights,omitempty"`
	Error          string            `json:"error,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// TransformExecutionResponse converts a stored execution context into its
// API representation.
func TransformExecutionResponse(execution *models.ExecutionContext) ExecutionResponse {
	response := ExecutionResponse{
		ExecutionID:    execution.ID,
		WorkflowID:     execution.WorkflowID,
		Status:         string(execution.Status),
		TriggeredBy:    execution.TriggeredBy,
		StartedAt:      execution.StartedAt.UTC().Format(time.RFC3339),
		StepsCompleted: execution.StepsCompleted,
		TotalSteps:     execution.TotalSteps,
		Results:        execution.Results,
		Highlights:     execution.Highlights,
		Error:          execution.ErrorMessage,
		Metadata:       execution.Metadata,
	}

	if execution.CompletedAt != nil {
		completed := execution.CompletedAt.UTC().Format(time.RFC3339)
		response.CompletedAt = &completed
	}

	return response
}

// ValidationResponse is the API view of a dry-run validation result.
type ValidationResponse struct {
	Valid               bool     `json:"valid"`
	Errors              []string `json:"errors,omitempty"`
	EstimatedDurationMs int64    `json:"estimated_duration_ms"`
}

// TransformValidationResponse converts a validation result into its API
// representation.
func TransformValidationResponse(result models.ValidationResult) ValidationResponse {
	return ValidationResponse{
		Valid:               result.Valid,
		Errors:              result.Errors,
		EstimatedDurationMs: result.EstimatedDuration.Milliseconds(),
	}
}
