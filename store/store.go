// Package store persists games as board snapshots.
package store

import (
	"context"
	"fmt"
	"sync"

	uuid "github.com/satori/go.uuid"

	"github.com/edjones079/chess-ai-engine/board"
	"github.com/edjones079/chess-ai-engine/internal/errors"
)

// Store saves and loads game snapshots. Get and Update return an error
// wrapping errors.ErrGameNotFound for unknown ids.
type Store interface {
	Create(ctx context.Context, s board.Snapshot) error
	Get(ctx context.Context, id uuid.UUID) (board.Snapshot, error)
	Update(ctx context.Context, s board.Snapshot) error
	List(ctx context.Context) ([]board.Snapshot, error)
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("game %s: %w", id, errors.ErrGameNotFound)
}

// MemStore keeps snapshots in memory. It is safe for concurrent use.
type MemStore struct {
	mu    sync.RWMutex
	games map[uuid.UUID]board.Snapshot
	order []uuid.UUID
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{games: make(map[uuid.UUID]board.Snapshot)}
}

func (m *MemStore) Create(_ context.Context, s board.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[s.ID]; ok {
		return fmt.Errorf("game %s already exists", s.ID)
	}
	m.games[s.ID] = s
	m.order = append(m.order, s.ID)
	return nil
}

func (m *MemStore) Get(_ context.Context, id uuid.UUID) (board.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return board.Snapshot{}, notFound(id)
	}
	return s, nil
}

func (m *MemStore) Update(_ context.Context, s board.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[s.ID]; !ok {
		return notFound(s.ID)
	}
	m.games[s.ID] = s
	return nil
}

// List returns snapshots in creation order.
func (m *MemStore) List(_ context.Context) ([]board.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]board.Snapshot, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.games[id])
	}
	return out, nil
}
