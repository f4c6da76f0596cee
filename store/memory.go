package store

import (
	"sync"
)

// Memory is an in-memory KV used by tests and as a fallback when no
// database path is configured.
type Memory struct {
	mutex sync.RWMutex
	data  map[string][]byte

	// FailWrites makes Set and Remove return failErr; tests use it to
	// exercise the store-unavailable path.
	FailWrites bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
	}
}

type writeError struct{}

func (writeError) Error() string { return "store: write refused" }

// ErrWriteRefused is returned by a Memory store with FailWrites set
var ErrWriteRefused error = writeError{}

// Get returns the value stored under key
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}

	// copy so callers can't mutate the stored slice
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores value under key
func (m *Memory) Set(key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.FailWrites {
		return ErrWriteRefused
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Remove deletes key
func (m *Memory) Remove(key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.FailWrites {
		return ErrWriteRefused
	}

	delete(m.data, key)
	return nil
}

// Keys returns all stored keys; handy for assertions in tests
func (m *Memory) Keys() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
