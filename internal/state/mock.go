// internal/state/mock.go
package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu        sync.Mutex
	navState  *NavigationState
	indicator *Indicator
	saves     int
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveNavigation(state NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navState = &state
	m.saves++
}

func (m *Mock) GetNavigation() (*NavigationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.navState, nil
}

func (m *Mock) SaveIndicator(ind Indicator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indicator = &ind
	return nil
}

func (m *Mock) GetIndicator() (*Indicator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indicator, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetNavigation(state *NavigationState) { m.navState = state }

func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
