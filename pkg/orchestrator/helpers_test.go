package orchestrator

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/clients"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore/memory"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/eventbus"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/pipeline"
)

// recordingBus captures published lifecycle events in order.
type recordingBus struct {
	published []eventbus.Event
	err       error
}

func (b *recordingBus) Publish(_ context.Context, _ string, event eventbus.Event) error {
	if b.err != nil {
		return b.err
	}

	b.published = append(b.published, event)

	return nil
}

func (b *recordingBus) eventTypes() []string {
	types := make([]string, 0, len(b.published))
	for _, event := range b.published {
		types = append(types, string(event.GetType()))
	}

	return types
}

// recordingNotifier captures terminal outcome notifications.
type recordingNotifier struct {
	sent []clients.Notification
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, notification clients.Notification) error {
	if n.err != nil {
		return n.err
	}

	n.sent = append(n.sent, notification)

	return nil
}

// stubPipeline is a scripted pipeline for executor tests.
type stubPipeline struct {
	workflowID string
	steps      int
	runErr     error
	runs       int
	onRun      func(execution *models.ExecutionContext)
}

func (p *stubPipeline) WorkflowID() string { return p.workflowID }

func (p *stubPipeline) TotalSteps() int { return p.steps }

func (p *stubPipeline) Run(_ context.Context, execution *models.ExecutionContext) error {
	p.runs++
	if p.onRun != nil {
		p.onRun(execution)
	}

	return p.runErr
}

type executorFixture struct {
	executor  *Executor
	store     *memory.ContextStore
	bus       *recordingBus
	notifier  *recordingNotifier
	pipelines *pipeline.Registry
}

func newExecutorFixture(stubs ...*stubPipeline) *executorFixture {
	logger := slog.Default()
	store := memory.NewContextStore()
	bus := &recordingBus{}
	notifier := &recordingNotifier{}
	registry := pipeline.NewRegistry(logger)

	if len(stubs) == 0 {
		for _, definition := range catalog.Default().List() {
			registry.Register(&stubPipeline{workflowID: definition.ID, steps: 3, onRun: completeAllSteps})
		}
	}

	for _, stub := range stubs {
		registry.Register(stub)
	}

	publisher := NewPublisher(bus, notifier, logger)
	executor := NewExecutor(catalog.Default(), store, registry, publisher, logger)

	return &executorFixture{
		executor:  executor,
		store:     store,
		bus:       bus,
		notifier:  notifier,
		pipelines: registry,
	}
}

func completeAllSteps(execution *models.ExecutionContext) {
	for i := 0; i < execution.TotalSteps; i++ {
		execution.RecordStep("step completed")
	}
}

func paymentInputs() map[string]any {
	return map[string]any{
		catalog.InputPaymentRequest: map[string]any{"amount": float64(100)},
	}
}
