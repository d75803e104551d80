package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_UnknownWorkflow(t *testing.T) {
	fixture := newExecutorFixture()

	execution, err := fixture.executor.Execute(context.Background(), "no-such-workflow", map[string]any{}, "tester", nil)
	require.Error(t, err)
	assert.Nil(t, execution)
	assert.True(t, saga.IsValidationError(err))
	assert.ErrorIs(t, err, saga.ErrUnknownWorkflow)
	assert.Empty(t, fixture.bus.published, "no side effects on validation failure")
}

func TestExecutor_MissingRequiredInputsNamed(t *testing.T) {
	fixture := newExecutorFixture()

	execution, err := fixture.executor.Execute(context.Background(), catalog.WorkflowPaymentProcessing, map[string]any{}, "tester", nil)
	require.Error(t, err)
	assert.Nil(t, execution)
	assert.True(t, saga.IsValidationError(err))

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Result.Errors, "required input 'paymentRequest' is missing")
	assert.Empty(t, fixture.bus.published)
}

func TestExecutor_SuccessIsTerminalAndPersisted(t *testing.T) {
	fixture := newExecutorFixture()
	ctx := context.Background()

	execution, err := fixture.executor.Execute(ctx, catalog.WorkflowPaymentProcessing, paymentInputs(), "tester", map[string]string{"channel": "api"})
	require.NoError(t, err)
	require.NotNil(t, execution)

	assert.Equal(t, models.ExecutionStatusSuccess, execution.Status)
	assert.NotNil(t, execution.CompletedAt)
	assert.Equal(t, "tester", execution.TriggeredBy)

	// Read-after-write: the store holds exactly the terminal state.
	stored, err := fixture.store.ExecutionByID(ctx, execution.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusSuccess, stored.Status)
	assert.Equal(t, execution.StepsCompleted, stored.StepsCompleted)

	assert.Equal(t, []string{"workflow.execution.started", "workflow.execution.completed"}, fixture.bus.eventTypes())
	require.Len(t, fixture.notifier.sent, 1)
	assert.Equal(t, "SUCCESS", fixture.notifier.sent[0].Status)
}

func TestExecutor_PipelineFailureIsTerminalFailed(t *testing.T) {
	stub := &stubPipeline{
		workflowID: catalog.WorkflowPaymentProcessing,
		steps:      4,
		runErr:     saga.NewAuthorizationError("validate-request-signature", "signature invalid", saga.ErrSignatureRejected),
		onRun: func(execution *models.ExecutionContext) {
			execution.RecordStep("partial progress")
		},
	}
	fixture := newExecutorFixture(stub)
	ctx := context.Background()

	execution, err := fixture.executor.Execute(ctx, catalog.WorkflowPaymentProcessing, paymentInputs(), "tester", nil)
	require.Error(t, err)
	require.NotNil(t, execution)
	assert.Equal(t, models.ExecutionStatusFailed, execution.Status)
	assert.Contains(t, execution.ErrorMessage, "signature invalid")
	assert.True(t, execution.Finished(), "never left RUNNING once the pipeline returned")

	stored, storeErr := fixture.store.ExecutionByID(ctx, execution.ID)
	require.NoError(t, storeErr)
	assert.Equal(t, models.ExecutionStatusFailed, stored.Status)

	assert.Equal(t, []string{"workflow.execution.started", "workflow.execution.failed"}, fixture.bus.eventTypes())
	require.Len(t, fixture.notifier.sent, 1)
	assert.Equal(t, "FAILED", fixture.notifier.sent[0].Status)
}

func TestExecutor_EveryWorkflowReachesTerminalStatus(t *testing.T) {
	fixture := newExecutorFixture()
	ctx := context.Background()

	inputs := map[string]map[string]any{
		catalog.WorkflowPaymentProcessing:   {catalog.InputPaymentRequest: map[string]any{}},
		catalog.WorkflowUserOnboarding:      {catalog.InputUserRegistration: map[string]any{"userId": "u1"}},
		catalog.WorkflowTreasuryOperations:  {catalog.InputTreasuryRequest: map[string]any{}},
		catalog.WorkflowListingCreation:     {catalog.InputListingRequest: map[string]any{}},
		catalog.WorkflowOrderProcessing:     {catalog.InputOrderRequest: map[string]any{}},
		catalog.WorkflowEscrowManagement:    {catalog.InputEscrowRequest: map[string]any{}},
		catalog.WorkflowAnalyticsProcessing: {catalog.InputAnalyticsRequest: map[string]any{}},
	}

	for _, definition := range fixture.executor.Catalog().List() {
		execution, err := fixture.executor.Execute(ctx, definition.ID, inputs[definition.ID], "tester", nil)
		require.NoError(t, err, "workflow %s", definition.ID)
		assert.True(t, execution.Finished(), "workflow %s left non-terminal status %s", definition.ID, execution.Status)
	}
}

func TestExecutor_TwoExecutesProduceDistinctIDs(t *testing.T) {
	fixture := newExecutorFixture()
	ctx := context.Background()

	first, err := fixture.executor.Execute(ctx, catalog.WorkflowPaymentProcessing, paymentInputs(), "tester", nil)
	require.NoError(t, err)

	second, err := fixture.executor.Execute(ctx, catalog.WorkflowPaymentProcessing, paymentInputs(), "tester", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestExecutor_MissingPipelineIsInfrastructure(t *testing.T) {
	// Register only the payment pipeline; the rest of the catalog dangles.
	stub := &stubPipeline{workflowID: catalog.WorkflowPaymentProcessing, steps: 1, onRun: completeAllSteps}
	fixture := newExecutorFixture(stub)

	execution, err := fixture.executor.Execute(context.Background(), catalog.WorkflowUserOnboarding,
		map[string]any{catalog.InputUserRegistration: map[string]any{"userId": "u1"}}, "tester", nil)
	require.Error(t, err)
	assert.Nil(t, execution)
	assert.Equal(t, saga.KindInfrastructure, saga.KindOf(err))
	assert.Empty(t, fixture.bus.published)
}

func TestExecutor_ValidateInputsIsPure(t *testing.T) {
	fixture := newExecutorFixture()
	ctx := context.Background()

	first, err := fixture.executor.ValidateInputs(catalog.WorkflowPaymentProcessing, map[string]any{})
	require.NoError(t, err)

	second, err := fixture.executor.ValidateInputs(catalog.WorkflowPaymentProcessing, map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, first.Errors, second.Errors)
	assert.False(t, first.Valid)

	// No execution context was created by validation.
	_, storeErr := fixture.store.ExecutionIDByIndex(ctx, "anything")
	assert.True(t, contextstore.IsIndexNotFound(storeErr))
	assert.Empty(t, fixture.bus.published)
}

func TestExecutor_PublisherFailureDoesNotChangeOutcome(t *testing.T) {
	fixture := newExecutorFixture()
	fixture.bus.err = errors.New("kafka unreachable")
	fixture.notifier.err = errors.New("notification service down")

	execution, err := fixture.executor.Execute(context.Background(), catalog.WorkflowPaymentProcessing, paymentInputs(), "tester", nil)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusSuccess, execution.Status)
}
