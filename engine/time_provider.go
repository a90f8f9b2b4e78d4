package engine

import (
	"sync"
	"time"
)

// TimeProvider supplies wall-clock readings to the simulation clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock, time.Now carries a monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the real time source
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually advanced time source for deterministic tests
type MockTimeProvider struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockTimeProvider creates a mock frozen at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{current: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
