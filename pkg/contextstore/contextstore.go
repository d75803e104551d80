// Package contextstore provides the storage abstraction for workflow
// execution contexts and their secondary index entries.
package contextstore

import (
	"context"
	"time"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// ContextTTL bounds how long execution contexts and index entries remain
// retrievable. Status and progress queries past this window observe not-found.
const ContextTTL = 24 * time.Hour

// ContextStore persists execution contexts keyed by execution id, plus a
// string index used to resolve domain keys (such as a user id) to the
// execution they started.
type ContextStore interface {
	SaveExecution(ctx context.Context, execution *models.ExecutionContext) error
	ExecutionByID(ctx context.Context, id string) (*models.ExecutionContext, error)
	SaveIndex(ctx context.Context, key, executionID string) error
	ExecutionIDByIndex(ctx context.Context, key string) (string, error)
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
