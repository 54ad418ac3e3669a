// internal/player/mock.go
package player

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Mock is a test double for a player backend.
type Mock struct {
	mu        sync.Mutex
	volume    int
	playlists []string
	track     Track
	loaded    []string
	state     State
	errs      map[string]error
	calls     []string
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{volume: 50, errs: make(map[string]error)}
}

func (m *Mock) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	name, _, _ := strings.Cut(call, " ")
	return m.errs[name]
}

func (m *Mock) Clear(_ context.Context) error {
	if err := m.record("clear"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = nil
	m.state = Stopped
	return nil
}

func (m *Mock) Volume(_ context.Context) (int, error) {
	if err := m.record("volume"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume, nil
}

func (m *Mock) SetVolume(_ context.Context, percent int) error {
	if err := m.record(fmt.Sprintf("setvolume %d", percent)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = percent
	return nil
}

func (m *Mock) Playlists(_ context.Context) ([]string, error) {
	if err := m.record("playlists"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playlists...), nil
}

func (m *Mock) Load(_ context.Context, name string) error {
	if err := m.record("load " + name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = append(m.loaded, name)
	return nil
}

func (m *Mock) Play(_ context.Context) error {
	if err := m.record("play"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Playing
	return nil
}

func (m *Mock) Pause(_ context.Context) error {
	if err := m.record("pause"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
	return nil
}

func (m *Mock) Current(_ context.Context) (Track, error) {
	if err := m.record("current"); err != nil {
		return Track{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.track, nil
}

// Test helpers

// SetError makes the named call ("clear", "volume", "setvolume", "playlists",
// "load", "play", "pause", "current") fail with err; nil clears it.
func (m *Mock) SetError(call string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, call)
		return
	}
	m.errs[call] = err
}

func (m *Mock) SetPlaylists(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playlists = names
}

func (m *Mock) SetTrack(t Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track = t
}

func (m *Mock) SetVolumeLevel(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
}

func (m *Mock) VolumeLevel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loaded...)
}

// Calls returns every call made, e.g. "setvolume 70" or "load jazz".
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
