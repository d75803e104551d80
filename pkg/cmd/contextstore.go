// Package cmd provides common initialization for command-line entry points.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore/memory"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore/postgresql"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore/redis"
)

// NewContextStore selects a context store backend from the URL scheme.
// Redis and PostgreSQL URLs pick their backends; anything else, including an
// empty URL, falls back to the in-memory store.
func NewContextStore(ctx context.Context, logger *slog.Logger, storeURL string) (contextstore.ContextStore, error) {
	switch {
	case strings.HasPrefix(storeURL, "redis://"), strings.HasPrefix(storeURL, "rediss://"):
		store, err := redis.NewContextStore(ctx, logger, storeURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis context store: %w", err)
		}

		return store, nil

	case strings.HasPrefix(storeURL, "postgres://"), strings.HasPrefix(storeURL, "postgresql://"):
		store, err := postgresql.NewContextStore(ctx, logger, storeURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgresql context store: %w", err)
		}

		return store, nil

	default:
		return memory.NewContextStore(), nil
	}
}
