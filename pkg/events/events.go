// Package events defines event types and structures for workflow lifecycle notifications.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Kafka topics.
const WorkflowExecutionTopic = "skylink.workflow.executions" // Topic for workflow execution lifecycle events

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Workflow execution lifecycle events.
	WorkflowExecutionStartedEvent   EventType = "workflow.execution.started"
	WorkflowExecutionCompletedEvent EventType = "workflow.execution.completed"
	WorkflowExecutionFailedEvent    EventType = "workflow.execution.failed"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// WorkflowExecutionStarted is published when an execution context is created
// and the pipeline is about to run.
type WorkflowExecutionStarted struct {
	BaseEvent

	ExecutionID  string         `json:"execution_id"`
	WorkflowName string         `json:"workflow_name"`
	Inputs       map[string]any `json:"inputs,omitempty"`
	TriggeredBy  string         `json:"triggered_by,omitempty"`
}

func (w WorkflowExecutionStarted) GetType() EventType {
	return WorkflowExecutionStartedEvent
}

// WorkflowExecutionCompleted is published when every pipeline step succeeded
// and the execution reached SUCCESS.
type WorkflowExecutionCompleted struct {
	BaseEvent

	ExecutionID    string         `json:"execution_id"`
	Status         string         `json:"status"`
	DurationMs     int64          `json:"duration_ms"`
	StepsCompleted int            `json:"steps_completed"`
	Results        map[string]any `json:"results,omitempty"`
}

func (w WorkflowExecutionCompleted) GetType() EventType {
	return WorkflowExecutionCompletedEvent
}

// WorkflowExecutionFailed is published when a pipeline step aborted the
// execution and it reached FAILED.
type WorkflowExecutionFailed struct {
	BaseEvent

	ExecutionID    string         `json:"execution_id"`
	Status         string         `json:"status"`
	DurationMs     int64          `json:"duration_ms"`
	Error          string         `json:"error"`
	ErrorKind      string         `json:"error_kind,omitempty"`
	StepsCompleted int            `json:"steps_completed"`
	PartialResults map[string]any `json:"partial_results,omitempty"`
}

func (w WorkflowExecutionFailed) GetType() EventType {
	return WorkflowExecutionFailedEvent
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
		Metadata:   make(map[string]any),
	}
}
