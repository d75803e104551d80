package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore/memory"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

func TestSaveAndRetrieveExecution(t *testing.T) {
	store := memory.NewContextStore()
	ctx := context.Background()

	execution := models.NewExecutionContext("exec-11112222", "payment-processing-zero-trust", map[string]any{
		"paymentRequest": map[string]any{"amount": float64(100)},
	})
	execution.TriggeredBy = "api"

	err := store.SaveExecution(ctx, execution)
	require.NoError(t, err)

	retrieved, err := store.ExecutionByID(ctx, "exec-11112222")
	require.NoError(t, err)

	assert.Equal(t, execution.ID, retrieved.ID)
	assert.Equal(t, execution.WorkflowID, retrieved.WorkflowID)
	assert.Equal(t, models.ExecutionStatusRunning, retrieved.Status)
	assert.Equal(t, "api", retrieved.TriggeredBy)
}

func TestExecutionByID_NotFound(t *testing.T) {
	store := memory.NewContextStore()

	_, err := store.ExecutionByID(context.Background(), "exec-missing")
	require.Error(t, err)
	assert.True(t, contextstore.IsExecutionNotFound(err))
}

func TestSaveExecution_SnapshotSemantics(t *testing.T) {
	store := memory.NewContextStore()
	ctx := context.Background()

	execution := models.NewExecutionContext("exec-33334444", "marketplace-order-processing", nil)

	err := store.SaveExecution(ctx, execution)
	require.NoError(t, err)

	// Mutations after a save must not leak into the stored snapshot.
	execution.MarkFailed("late mutation")

	retrieved, err := store.ExecutionByID(ctx, "exec-33334444")
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusRunning, retrieved.Status)
	assert.Empty(t, retrieved.ErrorMessage)
}

func TestSaveExecution_Overwrites(t *testing.T) {
	store := memory.NewContextStore()
	ctx := context.Background()

	execution := models.NewExecutionContext("exec-55556666", "user-onboarding-optimized", nil)
	require.NoError(t, store.SaveExecution(ctx, execution))

	execution.MergeResults(map[string]any{"multisigId": "ms-77"})
	execution.MarkSuccess()
	require.NoError(t, store.SaveExecution(ctx, execution))

	retrieved, err := store.ExecutionByID(ctx, "exec-55556666")
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusSuccess, retrieved.Status)
	assert.Equal(t, "ms-77", retrieved.Results["multisigId"])
}

func TestExpiredExecutionIsNotFound(t *testing.T) {
	store := memory.NewContextStoreWithTTL(-time.Second)
	ctx := context.Background()

	execution := models.NewExecutionContext("exec-expired", "treasury-operations-secure", nil)
	require.NoError(t, store.SaveExecution(ctx, execution))

	_, err := store.ExecutionByID(ctx, "exec-expired")
	assert.True(t, contextstore.IsExecutionNotFound(err))
}

func TestIndexRoundTrip(t *testing.T) {
	store := memory.NewContextStore()
	ctx := context.Background()

	err := store.SaveIndex(ctx, "onboarding:user-42", "exec-aaaa1111")
	require.NoError(t, err)

	executionID, err := store.ExecutionIDByIndex(ctx, "onboarding:user-42")
	require.NoError(t, err)
	assert.Equal(t, "exec-aaaa1111", executionID)
}

func TestIndexNotFound(t *testing.T) {
	store := memory.NewContextStore()

	_, err := store.ExecutionIDByIndex(context.Background(), "onboarding:nobody")
	require.Error(t, err)
	assert.True(t, contextstore.IsIndexNotFound(err))
}

func TestExpiredIndexIsNotFound(t *testing.T) {
	store := memory.NewContextStoreWithTTL(-time.Second)
	ctx := context.Background()

	require.NoError(t, store.SaveIndex(ctx, "onboarding:user-9", "exec-bbbb2222"))

	_, err := store.ExecutionIDByIndex(ctx, "onboarding:user-9")
	assert.True(t, contextstore.IsIndexNotFound(err))
}

func TestHealthCheckAndClose(t *testing.T) {
	store := memory.NewContextStore()
	ctx := context.Background()

	assert.NoError(t, store.HealthCheck(ctx))

	execution := models.NewExecutionContext("exec-gone", "treasury-operations-secure", nil)
	require.NoError(t, store.SaveExecution(ctx, execution))
	require.NoError(t, store.Close(ctx))

	_, err := store.ExecutionByID(ctx, "exec-gone")
	assert.True(t, contextstore.IsExecutionNotFound(err))
}
