package applet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/lcd"
	"github.com/sylvandb/radio/internal/state"
)

func TestIndicator_Controls(t *testing.T) {
	dev := lcd.NewMock()
	dev.Script(taps(
		keymap.ButtonRight,  // Green
		keymap.ButtonSelect, // Green on
		keymap.ButtonRight,  // Blue
		keymap.ButtonUp,     // Blue on
		keymap.ButtonSelect, // Blue off
		keymap.ButtonDown,   // Blue off again
		keymap.ButtonLeft,
	)...)

	store := state.NewMock()
	a := NewIndicator(state.Indicator{Red: true}, store, quietLogger())
	require.NoError(t, a.Run(context.Background(), newTestLoop(dev)))

	assert.Equal(t, []lcd.Color{
		{R: true, G: true},
		{R: true, G: true, B: true},
		{R: true, G: true},
		{R: true, G: true},
	}, dev.Colors())
	assert.Equal(t, state.Indicator{Red: true, Green: true}, a.Channels())

	saved, err := store.GetIndicator()
	require.NoError(t, err)
	assert.Equal(t, &state.Indicator{Red: true, Green: true}, saved)
	assert.Equal(t, 1, dev.Clears())
}

func TestIndicator_FrameRotates(t *testing.T) {
	dev := lcd.NewMock()
	dev.Script(taps(keymap.ButtonRight, keymap.ButtonRight, keymap.ButtonRight, keymap.ButtonLeft)...)

	a := NewIndicator(state.Indicator{}, nil, quietLogger())
	require.NoError(t, a.Run(context.Background(), newTestLoop(dev)))

	var firstLines []string
	for _, w := range dev.Writes() {
		firstLines = append(firstLines, w[0])
		assert.Equal(t, "up-On, dn-Off   ", w[1])
	}
	assert.Equal(t, []string{
		"Red-Green-Blue  ",
		"Green-Blue-Red  ",
		"Blue-Red-Green  ",
		"Red-Green-Blue  ",
	}, firstLines)
}

func TestIndicator_Apply(t *testing.T) {
	dev := lcd.NewMock()
	a := NewIndicator(state.Indicator{Blue: true}, nil, nil)

	require.NoError(t, a.Apply(dev))
	assert.Equal(t, []lcd.Color{{B: true}}, dev.Colors())
}
