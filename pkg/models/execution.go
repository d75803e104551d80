package models

import "time"

// ExecutionStatus is the lifecycle state of a workflow execution.
type ExecutionStatus string

const (
	ExecutionStatusRunning ExecutionStatus = "RUNNING"
	ExecutionStatusSuccess ExecutionStatus = "SUCCESS"
	ExecutionStatusFailed  ExecutionStatus = "FAILED"
)

// ExecutionContext is the per-execution record threaded through a pipeline
// and persisted in the context store. Steps communicate exclusively through
// the Results bag; no step holds private state between invocations.
type ExecutionContext struct {
	ID             string            `json:"id"`
	WorkflowID     string            `json:"workflow_id"`
	Inputs         map[string]any    `json:"inputs"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	TriggeredBy    string            `json:"triggered_by,omitempty"`
	StartedAt      time.Time         `json:"started_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	Status         ExecutionStatus   `json:"status"`
	Results        map[string]any    `json:"results"`
	Highlights     []string          `json:"highlights,omitempty"`
	StepsCompleted int               `json:"steps_completed"`
	TotalSteps     int               `json:"total_steps"`
	ErrorMessage   string            `json:"error_message,omitempty"`
}

// NewExecutionContext creates a RUNNING execution record for the given
// workflow with an empty results bag.
func NewExecutionContext(id, workflowID string, inputs map[string]any) *ExecutionContext {
	return &ExecutionContext{
		ID:         id,
		WorkflowID: workflowID,
		Inputs:     inputs,
		StartedAt:  time.Now().UTC(),
		Status:     ExecutionStatusRunning,
		Results:    make(map[string]any),
	}
}

// MarkSuccess transitions the execution to SUCCESS and stamps completion.
func (ec *ExecutionContext) MarkSuccess() {
	now := time.Now().UTC()
	ec.Status = ExecutionStatusSuccess
	ec.CompletedAt = &now
}

// MarkFailed transitions the execution to FAILED with the failure message
// and stamps completion.
func (ec *ExecutionContext) MarkFailed(message string) {
	now := time.Now().UTC()
	ec.Status = ExecutionStatusFailed
	ec.ErrorMessage = message
	ec.CompletedAt = &now
}

// RecordStep counts one completed step and optionally records a highlight
// line for progress reporting.
func (ec *ExecutionContext) RecordStep(highlight string) {
	ec.StepsCompleted++
	if highlight != "" {
		ec.Highlights = append(ec.Highlights, highlight)
	}
}

// MergeResults copies the given key/value pairs into the results bag,
// overwriting existing keys.
func (ec *ExecutionContext) MergeResults(results map[string]any) {
	if ec.Results == nil {
		ec.Results = make(map[string]any, len(results))
	}

	for key, value := range results {
		ec.Results[key] = value
	}
}

// Finished reports whether the execution reached a terminal status.
func (ec *ExecutionContext) Finished() bool {
	return ec.Status == ExecutionStatusSuccess || ec.Status == ExecutionStatusFailed
}
