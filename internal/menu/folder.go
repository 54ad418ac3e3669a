package menu

import (
	"context"
	"slices"

	"github.com/sylvandb/radio/internal/render"
)

// Loader produces a folder's items on entry.
type Loader func(ctx context.Context) ([]Node, error)

// Folder is an ordered list of entries.
type Folder struct {
	base
	label  string
	items  []Node
	wrap   bool
	loader Loader
}

// NewFolder returns a folder holding items in order. With wrap, moving past
// either end continues at the other.
func NewFolder(label string, wrap bool, items ...Node) *Folder {
	f := &Folder{label: label, wrap: wrap}
	f.SetItems(items)
	return f
}

// NewLoaded returns a folder whose items are replaced by loader's result
// every time it is entered. A failing loader leaves a single error entry.
func NewLoaded(label string, wrap bool, loader Loader) *Folder {
	return &Folder{label: label, wrap: wrap, loader: loader}
}

// SetItems replaces the children and makes f their parent. Selection state
// held by the caller is not adjusted.
func (f *Folder) SetItems(items []Node) {
	f.items = slices.Clone(items)
	for _, item := range f.items {
		item.setParent(f)
	}
}

// Items returns the children.
func (f *Folder) Items() []Node { return f.items }

// Len returns the number of children.
func (f *Folder) Len() int { return len(f.items) }

// Item returns child i, or nil when i is out of range.
func (f *Folder) Item(i int) Node {
	if i < 0 || i >= len(f.items) {
		return nil
	}
	return f.items[i]
}

// Wrap reports the wrap policy.
func (f *Folder) Wrap() bool { return f.wrap }

// IndexOf returns the position of n, or -1.
func (f *Folder) IndexOf(n Node) int {
	return slices.Index(f.items, n)
}

// Find returns the position of the first child labelled label, or -1.
func (f *Folder) Find(label string) int {
	return slices.IndexFunc(f.items, func(n Node) bool { return n.Label() == label })
}

func (f *Folder) Label() string { return f.label }

func (f *Folder) Render(width int) string { return render.Fit(f.label, width) }

// Enter reloads a loaded folder.
func (f *Folder) Enter(ctx context.Context) {
	if f.loader == nil {
		return
	}
	items, err := f.loader(ctx)
	if err != nil {
		f.SetItems([]Node{NewComputed(ctx, func(context.Context) (string, error) { return "", err })})
		return
	}
	f.SetItems(items)
}

func (f *Folder) Marker() rune { return MarkFolder }

func (f *Folder) Kind() Kind { return KindFolder }
