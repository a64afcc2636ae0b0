package storage

import (
	"context"
	"sync"

	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// Memory is a process-local store. Nothing survives a restart.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ ports.KeyValueStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }
