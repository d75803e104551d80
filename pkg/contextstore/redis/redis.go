// Package redis provides a Redis-backed context store. Execution contexts
// and index entries are stored as JSON strings with the context TTL applied
// on every write, so Redis performs expiry without a reaper process.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

const connectTimeout = 5 * time.Second

// ContextStore implements contextstore.ContextStore on Redis.
type ContextStore struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewContextStore connects to Redis using a redis:// URL and verifies the
// connection before returning.
func NewContextStore(ctx context.Context, logger *slog.Logger, redisURL string) (*ContextStore, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	err = client.Ping(pingCtx).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.InfoContext(ctx, "Connected to Redis", "addr", options.Addr, "db", options.DB)

	return &ContextStore{
		client: client,
		logger: logger.With("module", "redis_context_store"),
		ttl:    contextstore.ContextTTL,
	}, nil
}

func executionKey(id string) string {
	return "execution:" + id
}

func indexKey(key string) string {
	return "index:" + key
}

// SaveExecution stores the execution context as JSON under execution:<id>.
func (s *ContextStore) SaveExecution(ctx context.Context, execution *models.ExecutionContext) error {
	payload, err := json.Marshal(execution)
	if err != nil {
		return fmt.Errorf("failed to marshal execution context: %w", err)
	}

	err = s.client.Set(ctx, executionKey(execution.ID), payload, s.ttl).Err()
	if err != nil {
		return contextstore.NewStoreError("SaveExecution", execution.ID, err)
	}

	return nil
}

// ExecutionByID loads the execution context stored under execution:<id>.
func (s *ContextStore) ExecutionByID(ctx context.Context, id string) (*models.ExecutionContext, error) {
	payload, err := s.client.Get(ctx, executionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, contextstore.NewStoreError("ExecutionByID", id, contextstore.ErrExecutionNotFound)
		}

		return nil, contextstore.NewStoreError("ExecutionByID", id, err)
	}

	var execution models.ExecutionContext
	if err := json.Unmarshal(payload, &execution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal execution context: %w", err)
	}

	return &execution, nil
}

// SaveIndex stores an index entry under index:<key>.
func (s *ContextStore) SaveIndex(ctx context.Context, key, executionID string) error {
	err := s.client.Set(ctx, indexKey(key), executionID, s.ttl).Err()
	if err != nil {
		return contextstore.NewStoreError("SaveIndex", executionID, err)
	}

	return nil
}

// ExecutionIDByIndex resolves the execution id stored under index:<key>.
func (s *ContextStore) ExecutionIDByIndex(ctx context.Context, key string) (string, error) {
	executionID, err := s.client.Get(ctx, indexKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", contextstore.NewStoreError("ExecutionIDByIndex", "", contextstore.ErrIndexNotFound)
		}

		return "", contextstore.NewStoreError("ExecutionIDByIndex", "", err)
	}

	return executionID, nil
}

// HealthCheck verifies the Redis connection is healthy.
func (s *ContextStore) HealthCheck(ctx context.Context) error {
	err := s.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}

	return nil
}

// Close closes the Redis client.
func (s *ContextStore) Close(ctx context.Context) error {
	err := s.client.Close()
	if err != nil {
		s.logger.ErrorContext(ctx, "Error closing Redis client", "error", err)

		return fmt.Errorf("failed to close Redis client: %w", err)
	}

	return nil
}
