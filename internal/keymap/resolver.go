package keymap

// Resolver maps key strings to buttons.
type Resolver struct {
	bindings map[string]Button   // key -> button
	byButton map[Button][]string // button -> keys (for help)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Button),
		byButton: make(map[Button][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Button
		}
		r.byButton[b.Button] = append(r.byButton[b.Button], b.Keys...)
	}
	for button, keys := range r.byButton {
		r.byButton[button] = dedupe(keys)
	}
	return r
}

// Resolve returns the button for a key.
func (r *Resolver) Resolve(key string) (Button, bool) {
	b, ok := r.bindings[key]
	return b, ok
}

// KeysFor returns the keys bound to a button.
func (r *Resolver) KeysFor(b Button) []string {
	return r.byButton[b]
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
