package lcd

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylvandb/radio/internal/keymap"
)

type simClock struct {
	t time.Time
}

func (c *simClock) Now() time.Time { return c.t }

func newTestSim() (*Sim, *simClock, *int) {
	clock := &simClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	quits := 0
	s := newSim(SimOptions{}, nil)
	s.now = clock.Now
	s.quit = func() { quits++ }
	return s, clock, &quits
}

func send(s *Sim, msg tea.Msg) {
	m := simModel{sim: s, keys: newSimKeys(s.resolver), help: help.New()}
	m.Update(msg)
}

func TestSim_KeysHoldButtons(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want keymap.Button
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, keymap.ButtonUp},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, keymap.ButtonLeft},
		{"vim down", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, keymap.ButtonDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, keymap.ButtonSelect},
		{"l", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, keymap.ButtonRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, clock, _ := newTestSim()
			send(s, tt.msg)

			st, err := s.Buttons()
			require.NoError(t, err)
			assert.Equal(t, []keymap.Button{tt.want}, st.Pressed())

			clock.t = clock.t.Add(DefaultHold)
			st, err = s.Buttons()
			require.NoError(t, err)
			assert.False(t, st.Any(), "released after the hold")
		})
	}
}

func TestSim_QuitKeys(t *testing.T) {
	s, _, quits := newTestSim()
	send(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	send(s, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, 2, *quits)

	st, err := s.Buttons()
	require.NoError(t, err)
	assert.False(t, st.Any())
}

func TestSimKeys_HelpFollowsButtons(t *testing.T) {
	r := keymap.NewResolver([]keymap.Binding{
		{Button: keymap.ButtonUp, Keys: []string{"up", "k"}, Description: "up"},
		{Button: keymap.ButtonUp, Keys: []string{"k", "w"}, Description: "up"},
		{Button: keymap.ButtonLeft, Keys: []string{"h"}, Description: "back"},
	})
	k := newSimKeys(r)

	require.Len(t, k.buttons, 2, "buttons without keys are left out")
	assert.Equal(t, "back", k.buttons[0].Help().Desc, "left comes first")
	assert.Equal(t, "h", k.buttons[0].Help().Key)
	assert.Equal(t, []string{"up", "k", "w"}, k.buttons[1].Keys())
	assert.Len(t, k.ShortHelp(), 3)

	full := newSimKeys(keymap.NewResolver(keymap.Bindings))
	assert.Len(t, full.buttons, int(keymap.NumButtons))
}

func TestSim_UnboundKey(t *testing.T) {
	s, _, quits := newTestSim()
	send(s, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})

	st, err := s.Buttons()
	require.NoError(t, err)
	assert.False(t, st.Any())
	assert.Zero(t, *quits)
}

func TestSim_WriteAndView(t *testing.T) {
	s, _, _ := newTestSim()
	require.NoError(t, s.Write([]string{"Playlists", "Settings"}))

	view := s.view()
	assert.Contains(t, view, "Playlists")
	assert.Contains(t, view, "Settings")

	require.NoError(t, s.Clear())
	assert.Equal(t, []string{"                ", "                "}, s.lines)
}

func TestSim_Background(t *testing.T) {
	s, _, _ := newTestSim()

	require.NoError(t, s.SetColor(true, false, false))
	bg := s.background()
	assert.InDelta(t, 1.0, bg.R, 0.001)
	assert.InDelta(t, 0.4, bg.G, 0.001)

	require.NoError(t, s.SetBacklight(false))
	assert.Equal(t, simOff, s.background())

	require.NoError(t, s.SetBacklight(true))
	require.NoError(t, s.SetColor(false, false, false))
	assert.Equal(t, simDark, s.background())
}

func TestSim_Closed(t *testing.T) {
	s, _, _ := newTestSim()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Write([]string{"x"}), ErrClosed)
	_, err := s.Buttons()
	assert.ErrorIs(t, err, ErrClosed)
}
