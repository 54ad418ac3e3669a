package keymap

// Binding maps terminal keys to a button for the terminal simulator.
type Binding struct {
	Button      Button
	Keys        []string
	Description string
}

// Bindings contains the simulator key bindings.
var Bindings = []Binding{
	{ButtonLeft, []string{"left", "h"}, "back"},
	{ButtonUp, []string{"up", "k"}, "up"},
	{ButtonDown, []string{"down", "j"}, "down"},
	{ButtonRight, []string{"right", "l"}, "enter"},
	{ButtonSelect, []string{"enter", " "}, "select"},
}

// QuitKeys stop the simulator.
var QuitKeys = []string{"q", "ctrl+c"}

// ForButton returns the binding of a button.
func ForButton(b Button) (Binding, bool) {
	for _, kb := range Bindings {
		if kb.Button == b {
			return kb, true
		}
	}
	return Binding{}, false
}
