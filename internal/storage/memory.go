package storage

import (
	"slices"
	"sync"
)

// Memory keeps the record in process memory.
type Memory struct {
	mu   sync.Mutex
	data []byte
	// Set to make the next calls fail.
	ReadErr  error
	WriteErr error
}

// NewMemory returns a memory backend holding a copy of data.
func NewMemory(data []byte) *Memory {
	return &Memory{data: slices.Clone(data)}
}

func (m *Memory) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return slices.Clone(m.data), nil
}

func (m *Memory) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data = slices.Clone(data)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

var _ Backend = (*Memory)(nil)
