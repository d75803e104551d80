// Package postgresql provides a PostgreSQL-backed context store. Expiry is
// enforced at read time against a persisted expires_at column, so expired
// contexts are indistinguishable from missing ones.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore/sqlbase"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// ContextStore implements contextstore.ContextStore on PostgreSQL.
type ContextStore struct {
	db     *sql.DB
	logger *slog.Logger
	ttl    time.Duration
}

// NewContextStore connects to PostgreSQL and runs migrations before returning.
func NewContextStore(ctx context.Context, logger *slog.Logger, databaseURL string) (*ContextStore, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &ContextStore{
		db:     database,
		logger: logger.With("module", "postgres_context_store"),
		ttl:    contextstore.ContextTTL,
	}, nil
}

// SaveExecution upserts the execution context row and refreshes its expiry.
func (s *ContextStore) SaveExecution(ctx context.Context, execution *models.ExecutionContext) error {
	inputsJSON, err := json.Marshal(execution.Inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}

	metadataJSON, err := json.Marshal(execution.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	resultsJSON, err := json.Marshal(execution.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	highlightsJSON, err := json.Marshal(execution.Highlights)
	if err != nil {
		return fmt.Errorf("failed to marshal highlights: %w", err)
	}

	query := `
		INSERT INTO workflow_execution_contexts (
			id, workflow_id, status, inputs, metadata, triggered_by, results,
			highlights, steps_completed, total_steps, error_message,
			started_at, completed_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			metadata = EXCLUDED.metadata,
			results = EXCLUDED.results,
			highlights = EXCLUDED.highlights,
			steps_completed = EXCLUDED.steps_completed,
			total_steps = EXCLUDED.total_steps,
			error_message = EXCLUDED.error_message,
			completed_at = EXCLUDED.completed_at,
			expires_at = EXCLUDED.expires_at
	`

	_, err = s.db.ExecContext(ctx, query,
		execution.ID,
		execution.WorkflowID,
		execution.Status,
		inputsJSON,
		metadataJSON,
		execution.TriggeredBy,
		resultsJSON,
		highlightsJSON,
		execution.StepsCompleted,
		execution.TotalSteps,
		execution.ErrorMessage,
		execution.StartedAt,
		execution.CompletedAt,
		time.Now().Add(s.ttl),
	)
	if err != nil {
		return contextstore.NewStoreError("SaveExecution", execution.ID, err)
	}

	return nil
}

// ExecutionByID retrieves a non-expired execution context by id.
func (s *ContextStore) ExecutionByID(ctx context.Context, id string) (*models.ExecutionContext, error) {
	query := `
		SELECT id, workflow_id, status, inputs, metadata, triggered_by, results,
			   highlights, steps_completed, total_steps, error_message,
			   started_at, completed_at
		FROM workflow_execution_contexts
		WHERE id = $1 AND expires_at > NOW()
	`

	row := s.db.QueryRowContext(ctx, query, id)

	execution, err := s.scanExecution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contextstore.NewStoreError("ExecutionByID", id, contextstore.ErrExecutionNotFound)
		}

		return nil, fmt.Errorf("failed to scan execution context: %w", err)
	}

	return execution, nil
}

// SaveIndex upserts an index entry and refreshes its expiry.
func (s *ContextStore) SaveIndex(ctx context.Context, key, executionID string) error {
	query := `
		INSERT INTO workflow_execution_index (index_key, execution_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (index_key) DO UPDATE SET
			execution_id = EXCLUDED.execution_id,
			expires_at = EXCLUDED.expires_at
	`

	_, err := s.db.ExecContext(ctx, query, key, executionID, time.Now().Add(s.ttl))
	if err != nil {
		return contextstore.NewStoreError("SaveIndex", executionID, err)
	}

	return nil
}

// ExecutionIDByIndex resolves a non-expired index entry to its execution id.
func (s *ContextStore) ExecutionIDByIndex(ctx context.Context, key string) (string, error) {
	query := `
		SELECT execution_id
		FROM workflow_execution_index
		WHERE index_key = $1 AND expires_at > NOW()
	`

	var executionID string

	err := s.db.QueryRowContext(ctx, query, key).Scan(&executionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", contextstore.NewStoreError("ExecutionIDByIndex", "", contextstore.ErrIndexNotFound)
		}

		return "", fmt.Errorf("failed to scan index entry: %w", err)
	}

	return executionID, nil
}

// HealthCheck verifies the database connection is healthy.
func (s *ContextStore) HealthCheck(ctx context.Context) error {
	err := s.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *ContextStore) Close(ctx context.Context) error {
	if s.db != nil {
		err := s.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// scanExecution scans an execution context from a database row.
func (s *ContextStore) scanExecution(scanner interface {
	Scan(dest ...any) error
}) (*models.ExecutionContext, error) {
	var (
		execution                                             models.ExecutionContext
		inputsJSON, metadataJSON, resultsJSON, highlightsJSON []byte
	)

	err := scanner.Scan(
		&execution.ID,
		&execution.WorkflowID,
		&execution.Status,
		&inputsJSON,
		&metadataJSON,
		&execution.TriggeredBy,
		&resultsJSON,
		&highlightsJSON,
		&execution.StepsCompleted,
		&execution.TotalSteps,
		&execution.ErrorMessage,
		&execution.StartedAt,
		&execution.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if inputsJSON != nil {
		err := json.Unmarshal(inputsJSON, &execution.Inputs)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal inputs: %w", err)
		}
	}

	if metadataJSON != nil {
		err := json.Unmarshal(metadataJSON, &execution.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	if resultsJSON != nil {
		err := json.Unmarshal(resultsJSON, &execution.Results)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal results: %w", err)
		}
	}

	if highlightsJSON != nil {
		err := json.Unmarshal(highlightsJSON, &execution.Highlights)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal highlights: %w", err)
		}
	}

	return &execution, nil
}
