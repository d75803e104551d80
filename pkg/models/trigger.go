package models

// TriggerStatus reports how the trigger mapper disposed of an inbound event.
type TriggerStatus string

const (
	// TriggerStatusTriggered means an execution context was created for the
	// mapped workflow.
	TriggerStatusTriggered TriggerStatus = "TRIGGERED"

	// TriggerStatusRejected means the event mapped to a workflow but its
	// payload failed validation, so no execution exists.
	TriggerStatusRejected TriggerStatus = "REJECTED"

	// TriggerStatusIgnored means the event type is not in the mapping table.
	TriggerStatusIgnored TriggerStatus = "IGNORED"
)

// EventTriggerRequest is an inbound external event offered to the trigger
// mapper for translation into workflow executions.
type EventTriggerRequest struct {
	EventType string            `json:"event_type" validate:"required"`
	Source    string            `json:"source,omitempty"`
	EventData map[string]any    `json:"event_data"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// EventTriggerResponse reports the mapper's disposition and any executions
// it started.
type EventTriggerResponse struct {
	Status       TriggerStatus `json:"status"`
	WorkflowID   string        `json:"workflow_id,omitempty"`
	ExecutionIDs []string      `json:"execution_ids,omitempty"`
	Message      string        `json:"message,omitempty"`
}
