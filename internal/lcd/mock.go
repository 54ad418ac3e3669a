package lcd

import (
	"slices"
	"sync"

	"github.com/sylvandb/radio/internal/keymap"
)

// Color is one SetColor call.
type Color struct {
	R, G, B bool
}

// Mock is an in-memory Device for tests. Button snapshots are scripted: each
// Buttons call consumes the next queued snapshot and repeats the last one
// once the script runs out.
type Mock struct {
	mu         sync.Mutex
	writes     [][]string
	backlights []bool
	colors     []Color
	clears     int
	closed     bool
	script     []keymap.State
	current    keymap.State
	polls      int
	onPoll     func(n int)
	writeErr   error
	buttonsErr error
}

// NewMock creates a mock device with no buttons pressed.
func NewMock() *Mock {
	return &Mock{}
}

// Verify Mock implements Device at compile time.
var _ Device = (*Mock)(nil)

func (m *Mock) Write(lines []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, slices.Clone(lines))
	return nil
}

func (m *Mock) Buttons() (keymap.State, error) {
	m.mu.Lock()
	m.polls++
	n := m.polls
	if len(m.script) > 0 {
		m.current = m.script[0]
		m.script = m.script[1:]
	}
	s, err, hook := m.current, m.buttonsErr, m.onPoll
	m.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return s, err
}

func (m *Mock) SetBacklight(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backlights = append(m.backlights, on)
	return nil
}

func (m *Mock) SetColor(r, g, b bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colors = append(m.colors, Color{r, g, b})
	return nil
}

func (m *Mock) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// Script queues button snapshots returned by successive Buttons calls.
func (m *Mock) Script(states ...keymap.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, states...)
}

// Hold sets the snapshot returned once the script is exhausted.
func (m *Mock) Hold(s keymap.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
}

// OnPoll registers fn, called after every Buttons call with the poll count.
func (m *Mock) OnPoll(fn func(n int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPoll = fn
}

func (m *Mock) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

func (m *Mock) SetButtonsError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttonsErr = err
}

func (m *Mock) Writes() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.writes)
}

// LastWrite returns the most recent frame, or nil.
func (m *Mock) LastWrite() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return nil
	}
	return m.writes[len(m.writes)-1]
}

func (m *Mock) Backlights() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.backlights)
}

func (m *Mock) Colors() []Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.colors)
}

func (m *Mock) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

func (m *Mock) Polls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
