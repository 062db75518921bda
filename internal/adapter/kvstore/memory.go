package kvstore

import (
	"context"
	"slices"
	"sync"

	"github.com/vastrakart/assistant/internal/core/port"
)

var _ port.KeyValueStorage = (*Memory)(nil)

// Memory is a transient process-local store with the same contract as
// the durable backing. It never fails and holds nothing across
// restarts.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.data[key]), nil
}
