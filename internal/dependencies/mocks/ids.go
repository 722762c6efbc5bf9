package mocks

import (
	"fmt"

	"github.com/gamehub/gamehub-go/internal/dependencies/ids"
)

// MockIDs is a mock implementation of ids.Generator for testing
type MockIDs struct {
	// Results is a queue of IDs to return from NewID
	Results []string
	index   int

	// fallback numbers IDs once the queue is exhausted
	fallback int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewID returns the next queued ID, or a sequential "id-N" if none remain
func (m *MockIDs) NewID() string {
	if m.index < len(m.Results) {
		result := m.Results[m.index]
		m.index++
		return result
	}
	m.fallback++
	return fmt.Sprintf("id-%d", m.fallback)
}

// Queue adds IDs to the result queue
func (m *MockIDs) Queue(values ...string) {
	m.Results = append(m.Results, values...)
}
