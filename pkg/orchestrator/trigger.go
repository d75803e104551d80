package orchestrator

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// Event types accepted by the trigger mapper. The table is closed: new
// mappings require a new build, matching the static workflow catalog.
const (
	EventPaymentRequested  = "payment_requested"
	EventUserRegistration  = "user_registration"
	EventTreasuryRequested = "treasury_operation_requested"
)

// TriggerMapper translates inbound external event types to workflow ids.
type TriggerMapper struct {
	table map[string]string
}

// NewTriggerMapper creates the mapper with the closed event table.
func NewTriggerMapper() *TriggerMapper {
	return &TriggerMapper{
		table: map[string]string{
			EventPaymentRequested:  catalog.WorkflowPaymentProcessing,
			EventUserRegistration:  catalog.WorkflowUserOnboarding,
			EventTreasuryRequested: catalog.WorkflowTreasuryOperations,
		},
	}
}

// Map resolves an event type to a workflow id. Unknown event types report
// false; Map never fails.
func (m *TriggerMapper) Map(eventType string) (string, bool) {
	workflowID, ok := m.table[eventType]

	return workflowID, ok
}

// TriggerService turns external event notifications into workflow executions.
type TriggerService struct {
	mapper   *TriggerMapper
	executor *Executor
	logger   *slog.Logger
}

// NewTriggerService creates the event trigger service.
func NewTriggerService(mapper *TriggerMapper, executor *Executor, logger *slog.Logger) *TriggerService {
	return &TriggerService{
		mapper:   mapper,
		executor: executor,
		logger:   logger.With("module", "trigger_service"),
	}
}

// HandleEvent maps the event to a workflow and runs it with the event data
// as the input bag. Unrecognized events are IGNORED; mapped events whose
// payload fails validation are REJECTED. Neither creates an execution, and
// this path never returns an error to the caller.
func (s *TriggerService) HandleEvent(ctx context.Context, request models.EventTriggerRequest) models.EventTriggerResponse {
	workflowID, ok := s.mapper.Map(request.EventType)
	if !ok {
		s.logger.InfoContext(ctx, "Ignoring unrecognized event", "event_type", request.EventType, "source", request.Source)

		return models.EventTriggerResponse{Status: models.TriggerStatusIgnored}
	}

	triggeredBy := "event"
	if request.Source != "" {
		triggeredBy = "event:" + request.Source
	}

	execution, err := s.executor.Execute(ctx, workflowID, request.EventData, triggeredBy, request.Headers)
	if execution == nil {
		// Validation rejected the event payload before a context existed, so
		// TRIGGERED would be a lie. Report the rejection with its reason.
		s.logger.WarnContext(ctx, "Mapped event rejected before execution",
			"event_type", request.EventType, "workflow_id", workflowID, "error", err)

		response := models.EventTriggerResponse{Status: models.TriggerStatusRejected, WorkflowID: workflowID}
		if err != nil {
			response.Message = err.Error()
		}

		return response
	}

	if err != nil {
		s.logger.WarnContext(ctx, "Triggered execution finished failed",
			"event_type", request.EventType, "execution_id", execution.ID, "error", err)
	}

	return models.EventTriggerResponse{
		Status:       models.TriggerStatusTriggered,
		WorkflowID:   workflowID,
		ExecutionIDs: []string{execution.ID},
	}
}
