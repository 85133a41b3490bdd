package store

import (
	"context"
	"sync"
)

// Memory is a map-backed Store. It is used when the database cannot be
// opened and in tests.
type Memory struct {
	mu    sync.Mutex
	slots map[int]byte

	// Writes counts successful WriteSlot calls.
	Writes int

	// WriteError, if set, will be returned by WriteSlot()
	WriteError error
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[int]byte)}
}

func (m *Memory) ReadSlot(_ context.Context, slot int) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[slot]
	if !ok {
		return Erased, nil
	}
	return v, nil
}

func (m *Memory) WriteSlot(_ context.Context, slot int, value byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	m.slots[slot] = value
	m.Writes++
	return nil
}
