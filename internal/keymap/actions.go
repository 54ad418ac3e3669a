// Package keymap defines the buttons, the actions they trigger and the
// edge-triggered dispatch between them.
package keymap

import "strings"

// Action represents a user-triggerable action.
type Action string

const (
	ActionLeft   Action = "left"   // go up a folder, leave an applet
	ActionUp     Action = "up"     // previous item, volume up
	ActionDown   Action = "down"   // next item, volume down
	ActionRight  Action = "right"  // enter folder or applet
	ActionSelect Action = "select" // activate, toggle
)

// Button identifies one of the physical buttons.
type Button int

// Buttons in dispatch order. Actions for buttons pressed on the same poll
// fire in this order.
const (
	ButtonLeft Button = iota
	ButtonUp
	ButtonDown
	ButtonRight
	ButtonSelect

	NumButtons = 5
)

var buttonActions = [NumButtons]Action{
	ButtonLeft:   ActionLeft,
	ButtonUp:     ActionUp,
	ButtonDown:   ActionDown,
	ButtonRight:  ActionRight,
	ButtonSelect: ActionSelect,
}

var buttonNames = [NumButtons]string{
	ButtonLeft:   "Left",
	ButtonUp:     "Up",
	ButtonDown:   "Down",
	ButtonRight:  "Right",
	ButtonSelect: "Select",
}

// Action returns the action the button triggers.
func (b Button) Action() Action {
	if b < 0 || b >= NumButtons {
		return ""
	}
	return buttonActions[b]
}

func (b Button) String() string {
	if b < 0 || b >= NumButtons {
		return "Unknown"
	}
	return buttonNames[b]
}

// ParseButton returns the button with the given name, case-insensitive.
func ParseButton(name string) (Button, bool) {
	for b, n := range buttonNames {
		if strings.EqualFold(n, name) {
			return Button(b), true
		}
	}
	return 0, false
}
