//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonAction(t *testing.T) {
	tests := []struct {
		button Button
		want   Action
	}{
		{ButtonLeft, ActionLeft},
		{ButtonUp, ActionUp},
		{ButtonDown, ActionDown},
		{ButtonRight, ActionRight},
		{ButtonSelect, ActionSelect},
		{Button(9), ""},
	}

	for _, tt := range tests {
		t.Run(tt.button.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.button.Action())
		})
	}
}

func TestParseButton(t *testing.T) {
	b, ok := ParseButton("select")
	assert.True(t, ok)
	assert.Equal(t, ButtonSelect, b)

	b, ok = ParseButton("LEFT")
	assert.True(t, ok)
	assert.Equal(t, ButtonLeft, b)

	_, ok = ParseButton("menu")
	assert.False(t, ok)
}

func TestBindingsCoverEveryButton(t *testing.T) {
	for b := range Button(NumButtons) {
		kb, ok := ForButton(b)
		if !ok {
			t.Errorf("no binding for %s", b)
			continue
		}
		if len(kb.Keys) == 0 {
			t.Errorf("binding for %s has no keys", b)
		}
		if kb.Description == "" {
			t.Errorf("binding for %s has no description", b)
		}
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver(Bindings)

	b, ok := r.Resolve("k")
	assert.True(t, ok)
	assert.Equal(t, ButtonUp, b)

	b, ok = r.Resolve("enter")
	assert.True(t, ok)
	assert.Equal(t, ButtonSelect, b)

	_, ok = r.Resolve("x")
	assert.False(t, ok)

	assert.Equal(t, []string{"left", "h"}, r.KeysFor(ButtonLeft))
}

func TestResolver_DedupesKeys(t *testing.T) {
	r := NewResolver([]Binding{
		{ButtonUp, []string{"up", "k"}, "up"},
		{ButtonUp, []string{"k"}, "up again"},
	})
	assert.Equal(t, []string{"up", "k"}, r.KeysFor(ButtonUp))
}
