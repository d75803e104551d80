// Package memory provides an in-memory context store used for development
// and tests. Entries are serialized on save so callers observe the same
// snapshot semantics as the Redis and PostgreSQL backends.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/contextstore"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// sweepInterval is how often the janitor removes expired entries.
const sweepInterval = time.Minute

type entry struct {
	payload   []byte
	expiresAt time.Time
}

type indexEntry struct {
	executionID string
	expiresAt   time.Time
}

// ContextStore implements contextstore.ContextStore in process memory. Reads
// never return expired entries; a background janitor reclaims their memory on
// a fixed sweep interval until Close.
type ContextStore struct {
	mu         sync.RWMutex
	ttl        time.Duration
	executions map[string]entry
	index      map[string]indexEntry
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewContextStore creates an in-memory store with the standard context TTL.
func NewContextStore() *ContextStore {
	return NewContextStoreWithTTL(contextstore.ContextTTL)
}

// NewContextStoreWithTTL creates an in-memory store with a custom TTL.
func NewContextStoreWithTTL(ttl time.Duration) *ContextStore {
	store := &ContextStore{
		ttl:        ttl,
		executions: make(map[string]entry),
		index:      make(map[string]indexEntry),
		stop:       make(chan struct{}),
	}

	go store.janitor()

	return store
}

func (s *ContextStore) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

// sweep deletes every expired execution and index entry.
func (s *ContextStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, stored := range s.executions {
		if now.After(stored.expiresAt) {
			delete(s.executions, id)
		}
	}

	for key, stored := range s.index {
		if now.After(stored.expiresAt) {
			delete(s.index, key)
		}
	}
}

// SaveExecution stores a serialized snapshot of the execution context.
func (s *ContextStore) SaveExecution(_ context.Context, execution *models.ExecutionContext) error {
	payload, err := json.Marshal(execution)
	if err != nil {
		return fmt.Errorf("failed to marshal execution context: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.executions[execution.ID] = entry{
		payload:   payload,
		expiresAt: time.Now().Add(s.ttl),
	}

	return nil
}

// ExecutionByID returns the stored snapshot for the given execution id.
func (s *ContextStore) ExecutionByID(_ context.Context, id string) (*models.ExecutionContext, error) {
	s.mu.RLock()
	stored, ok := s.executions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(stored.expiresAt) {
		return nil, contextstore.NewStoreError("ExecutionByID", id, contextstore.ErrExecutionNotFound)
	}

	var execution models.ExecutionContext
	if err := json.Unmarshal(stored.payload, &execution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal execution context: %w", err)
	}

	return &execution, nil
}

// SaveIndex stores a key to execution id mapping.
func (s *ContextStore) SaveIndex(_ context.Context, key, executionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index[key] = indexEntry{
		executionID: executionID,
		expiresAt:   time.Now().Add(s.ttl),
	}

	return nil
}

// ExecutionIDByIndex resolves a key to the execution it maps to.
func (s *ContextStore) ExecutionIDByIndex(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	stored, ok := s.index[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(stored.expiresAt) {
		return "", contextstore.NewStoreError("ExecutionIDByIndex", "", contextstore.ErrIndexNotFound)
	}

	return stored.executionID, nil
}

// HealthCheck always succeeds for the in-memory store.
func (s *ContextStore) HealthCheck(_ context.Context) error {
	return nil
}

// Close stops the janitor and releases all stored entries. Close is
// idempotent.
func (s *ContextStore) Close(_ context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	defer s.mu.Unlock()

	s.executions = make(map[string]entry)
	s.index = make(map[string]indexEntry)

	return nil
}
