package ledger

import (
	"context"
	"sync"

	"boj-notion/internal/domain/ports"
)

// MemoryStore is a process-local ledger.
type MemoryStore struct {
	mu    sync.Mutex
	ids   []string
	saves int
}

var _ ports.LedgerStore = (*MemoryStore)(nil)

// NewMemory returns a ledger seeded with ids.
func NewMemory(ids ...string) *MemoryStore {
	return &MemoryStore{ids: append([]string(nil), ids...)}
}

func (m *MemoryStore) Load(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.ids...), nil
}

func (m *MemoryStore) Save(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append([]string(nil), ids...)
	m.saves++
	return nil
}

func (m *MemoryStore) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = nil
	return nil
}

// Saves reports how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
