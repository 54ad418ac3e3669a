package keymap

// State is one snapshot of the buttons, true meaning pressed.
type State [NumButtons]bool

// Any reports whether any button is pressed.
func (s State) Any() bool {
	for _, pressed := range s {
		if pressed {
			return true
		}
	}
	return false
}

// Pressed returns the pressed buttons in dispatch order.
func (s State) Pressed() []Button {
	var buttons []Button
	for b, pressed := range s {
		if pressed {
			buttons = append(buttons, Button(b))
		}
	}
	return buttons
}

// With returns a copy of s with b set to pressed.
func (s State) With(b Button, pressed bool) State {
	if b >= 0 && b < NumButtons {
		s[b] = pressed
	}
	return s
}

// Dispatcher turns successive button snapshots into actions. An action fires
// only on the poll where the snapshot differs from the previous one, so a
// held button fires once.
type Dispatcher struct {
	last   State
	primed bool
}

// Reset makes s the previous snapshot. Buttons held in s do not fire until
// they are released and pressed again.
func (d *Dispatcher) Reset(s State) {
	d.last = s
	d.primed = true
}

// Poll compares s with the previous snapshot. When they differ it returns
// the actions of every pressed button in dispatch order and changed=true.
func (d *Dispatcher) Poll(s State) (actions []Action, changed bool) {
	if d.primed && s == d.last {
		return nil, false
	}
	d.last = s
	d.primed = true
	for _, b := range s.Pressed() {
		actions = append(actions, b.Action())
	}
	return actions, true
}
