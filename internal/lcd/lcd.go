// Package lcd drives character displays with buttons: the Adafruit RGB LCD
// plate on I2C, a serial LCD backpack with keypad, and a terminal simulator.
package lcd

import (
	"errors"

	"github.com/sylvandb/radio/internal/keymap"
)

// Device is a character display with five buttons and an RGB backlight.
type Device interface {
	// Write homes the cursor and writes one string per row.
	Write(lines []string) error
	// Buttons returns the current button snapshot.
	Buttons() (keymap.State, error)
	SetBacklight(on bool) error
	// SetColor sets the backlight/indicator channels.
	SetColor(r, g, b bool) error
	Clear() error
	Close() error
}

// ErrClosed is returned by devices used after Close.
var ErrClosed = errors.New("device closed")
