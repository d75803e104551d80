package postgresql_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore/postgresql"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

var postgresContainer *postgres.PostgresContainer

func dropDb(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	for _, table := range []string{"workflow_execution_index", "workflow_execution_contexts", "schema_migrations"} {
		_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}

	err = db.Close()
	require.NoError(t, err)
}

func setupTestStore(t *testing.T) (*postgresql.ContextStore, context.Context, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("skylink_test"),
			postgres.WithUsername("skylink"),
			postgres.WithPassword("skylink"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dropDb(ctx, t, databaseURL)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := postgresql.NewContextStore(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDb(ctx, t, databaseURL)

		err = store.Close(ctx)
		require.NoError(t, err)

		cancel()
	})

	return store, ctx, databaseURL
}

func TestNewContextStore_Migrations(t *testing.T) {
	_, ctx, databaseURL := setupTestStore(t)

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer func() {
		err := db.Close()
		require.NoError(t, err)
	}()

	var exists bool

	err = db.QueryRowContext(ctx, `SELECT EXISTS (SELECT FROM
information_schema.tables WHERE table_name = 'workflow_execution_contexts')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "workflow_execution_contexts table should exist")

	err = db.QueryRowContext(ctx, `SELECT EXISTS (SELECT FROM
information_schema.tables WHERE table_name = 'workflow_execution_index')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "workflow_execution_index table should exist")

	var version int

	err = db.QueryRowContext(ctx, "SELECT version FROM schema_migrations WHERE version = 1").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewContextStore_HealthCheck(t *testing.T) {
	store, ctx, _ := setupTestStore(t)

	err := store.HealthCheck(ctx)
	assert.NoError(t, err)
}

func TestContextStore_SaveAndRetrieveExecution(t *testing.T) {
	store, ctx, _ := setupTestStore(t)

	execution := models.NewExecutionContext("exec-pg111111", "payment-processing-zero-trust", map[string]any{
		"paymentRequest": map[string]any{
			"amount":   float64(250),
			"currency": "USD",
		},
	})
	execution.TriggeredBy = "api"
	execution.Metadata = map[string]string{"request_id": "req-1"}

	err := store.SaveExecution(ctx, execution)
	require.NoError(t, err)

	retrieved, err := store.ExecutionByID(ctx, "exec-pg111111")
	require.NoError(t, err)

	assert.Equal(t, execution.ID, retrieved.ID)
	assert.Equal(t, execution.WorkflowID, retrieved.WorkflowID)
	assert.Equal(t, models.ExecutionStatusRunning, retrieved.Status)
	assert.Equal(t, "api", retrieved.TriggeredBy)
	assert.Equal(t, "req-1", retrieved.Metadata["request_id"])

	paymentRequest, ok := retrieved.Inputs["paymentRequest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(250), paymentRequest["amount"])
	assert.Nil(t, retrieved.CompletedAt)
}

func TestContextStore_UpdateExecution(t *testing.T) {
	store, ctx, _ := setupTestStore(t)

	execution := models.NewExecutionContext("exec-pg222222", "marketplace-order-processing", nil)
	require.NoError(t, store.SaveExecution(ctx, execution))

	execution.RecordStep("signature validated")
	execution.RecordStep("listing availability confirmed")
	execution.MergeResults(map[string]any{"orderId": "order-55", "validationId": "val-9"})
	execution.TotalSteps = 3
	execution.MarkSuccess()
	require.NoError(t, store.SaveExecution(ctx, execution))

	retrieved, err := store.ExecutionByID(ctx, "exec-pg222222")
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionStatusSuccess, retrieved.Status)
	assert.Equal(t, 2, retrieved.StepsCompleted)
	assert.Equal(t, 3, retrieved.TotalSteps)
	assert.Equal(t, "order-55", retrieved.Results["orderId"])
	assert.Equal(t, []string{"signature validated", "listing availability confirmed"}, retrieved.Highlights)
	require.NotNil(t, retrieved.CompletedAt)
}

func TestContextStore_ExecutionNotFound(t *testing.T) {
	store, ctx, _ := setupTestStore(t)

	_, err := store.ExecutionByID(ctx, "exec-missing")
	require.Error(t, err)
	assert.True(t, contextstore.IsExecutionNotFound(err))
}

func TestContextStore_ExpiredExecutionIsNotFound(t *testing.T) {
	store, ctx, databaseURL := setupTestStore(t)

	execution := models.NewExecutionContext("exec-pg333333", "treasury-operations-secure", nil)
	require.NoError(t, store.SaveExecution(ctx, execution))

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer func() {
		err := db.Close()
		require.NoError(t, err)
	}()

	_, err = db.ExecContext(ctx,
		"UPDATE workflow_execution_contexts SET expires_at = NOW() - INTERVAL '1 hour' WHERE id = $1",
		"exec-pg333333")
	require.NoError(t, err)

	_, err = store.ExecutionByID(ctx, "exec-pg333333")
	assert.True(t, contextstore.IsExecutionNotFound(err))
}

func TestContextStore_IndexRoundTrip(t *testing.T) {
	store, ctx, _ := setupTestStore(t)

	err := store.SaveIndex(ctx, "onboarding:user-7", "exec-pg444444")
	require.NoError(t, err)

	executionID, err := store.ExecutionIDByIndex(ctx, "onboarding:user-7")
	require.NoError(t, err)
	assert.Equal(t, "exec-pg444444", executionID)

	// Re-pointing the key replaces the previous entry.
	err = store.SaveIndex(ctx, "onboarding:user-7", "exec-pg555555")
	require.NoError(t, err)

	executionID, err = store.ExecutionIDByIndex(ctx, "onboarding:user-7")
	require.NoError(t, err)
	assert.Equal(t, "exec-pg555555", executionID)
}

func TestContextStore_IndexNotFound(t *testing.T) {
	store, ctx, _ := setupTestStore(t)

	_, err := store.ExecutionIDByIndex(ctx, "onboarding:nobody")
	require.Error(t, err)
	assert.True(t, contextstore.IsIndexNotFound(err))
}
