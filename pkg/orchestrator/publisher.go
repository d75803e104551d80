package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/clients"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/eventbus"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/events"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
)

// NotificationSender delivers terminal outcome notifications. Satisfied by
// the notification client.
type NotificationSender interface {
	Send(ctx context.Context, notification clients.Notification) error
}

// Publisher emits workflow lifecycle events to the event bus and terminal
// notifications to the notification collaborator. Everything here is
// fire-and-forget: failures are logged and never reach the pipeline outcome,
// so a notification outage cannot fail a business workflow.
type Publisher struct {
	bus      eventbus.EventPublisher
	notifier NotificationSender
	logger   *slog.Logger
}

// NewPublisher creates a lifecycle event publisher. Both the bus and the
// notifier may be nil, disabling that channel.
func NewPublisher(bus eventbus.EventPublisher, notifier NotificationSender, logger *slog.Logger) *Publisher {
	return &Publisher{
		bus:      bus,
		notifier: notifier,
		logger:   logger.With("module", "event_publisher"),
	}
}

// ExecutionStarted publishes the started event for a fresh RUNNING context.
func (p *Publisher) ExecutionStarted(ctx context.Context, definition models.WorkflowDefinition, execution *models.ExecutionContext) {
	p.publish(ctx, execution.ID, events.WorkflowExecutionStarted{
		BaseEvent:    events.NewBaseEvent(events.WorkflowExecutionStartedEvent, execution.WorkflowID),
		ExecutionID:  execution.ID,
		WorkflowName: definition.Name,
		TriggeredBy:  execution.TriggeredBy,
	})
}

// ExecutionCompleted publishes the completed event and notifies the terminal
// SUCCESS outcome.
func (p *Publisher) ExecutionCompleted(ctx context.Context, execution *models.ExecutionContext) {
	p.publish(ctx, execution.ID, events.WorkflowExecutionCompleted{
		BaseEvent:      events.NewBaseEvent(events.WorkflowExecutionCompletedEvent, execution.WorkflowID),
		ExecutionID:    execution.ID,
		Status:         string(execution.Status),
		DurationMs:     durationMs(execution),
		StepsCompleted: execution.StepsCompleted,
		Results:        execution.Results,
	})

	p.notify(ctx, execution, "")
}

// ExecutionFailed publishes the failed event and notifies the terminal
// FAILED outcome.
func (p *Publisher) ExecutionFailed(ctx context.Context, execution *models.ExecutionContext, kind saga.ErrorKind) {
	p.publish(ctx, execution.ID, events.WorkflowExecutionFailed{
		BaseEvent:      events.NewBaseEvent(events.WorkflowExecutionFailedEvent, execution.WorkflowID),
		ExecutionID:    execution.ID,
		Status:         string(execution.Status),
		DurationMs:     durationMs(execution),
		Error:          execution.ErrorMessage,
		ErrorKind:      string(kind),
		StepsCompleted: execution.StepsCompleted,
		PartialResults: execution.Results,
	})

	p.notify(ctx, execution, execution.ErrorMessage)
}

func (p *Publisher) publish(ctx context.Context, key string, event eventbus.Event) {
	if p.bus == nil {
		return
	}

	if err := p.bus.Publish(ctx, key, event); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish lifecycle event",
			"event_type", event.GetType(), "key", key, "error", err)
	}
}

func (p *Publisher) notify(ctx context.Context, execution *models.ExecutionContext, message string) {
	if p.notifier == nil {
		return
	}

	err := p.notifier.Send(ctx, clients.Notification{
		ExecutionID: execution.ID,
		WorkflowID:  execution.WorkflowID,
		Status:      string(execution.Status),
		Message:     message,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to send outcome notification",
			"execution_id", execution.ID, "error", err)
	}
}

func durationMs(execution *models.ExecutionContext) int64 {
	if execution.CompletedAt == nil {
		return 0
	}

	return int64(execution.CompletedAt.Sub(execution.StartedAt) / time.Millisecond)
}
