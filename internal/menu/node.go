// Package menu holds the navigation tree: plain and computed entries, the
// clock, folders (static or loaded on entry) and applet entries.
package menu

import (
	"context"

	"github.com/sylvandb/radio/internal/errmsg"
	"github.com/sylvandb/radio/internal/render"
)

// Kind tags the node variants.
type Kind int

const (
	KindNode Kind = iota
	KindClock
	KindFolder
	KindApplet
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindClock:
		return "clock"
	case KindFolder:
		return "folder"
	case KindApplet:
		return "applet"
	default:
		return "unknown"
	}
}

// Markers shown in front of the selected row.
const (
	MarkNode   = '-'
	MarkFolder = '>'
	MarkApplet = '*'
)

// Node is one entry of the tree. The set of implementations is closed to
// this package.
type Node interface {
	Label() string
	// Render returns the label fitted to exactly width cells.
	Render(width int) string
	// Enter refreshes the node: a computed label is recomputed and a loaded
	// folder reloads its items. It never moves the selection.
	Enter(ctx context.Context)
	Marker() rune
	// Parent returns the folder holding the node, nil for the root.
	Parent() *Folder
	Kind() Kind

	setParent(f *Folder)
}

type base struct {
	parent *Folder
}

func (b *base) Parent() *Folder { return b.parent }

func (b *base) setParent(f *Folder) { b.parent = f }

// Producer computes a label.
type Producer func(ctx context.Context) (string, error)

// Static is a plain entry with a fixed or computed label.
type Static struct {
	base
	label    string
	producer Producer
}

// NewStatic returns an entry with a fixed label.
func NewStatic(label string) *Static {
	return &Static{label: label}
}

// NewComputed returns an entry whose label comes from producer, evaluated
// now and again on every Enter. A failing producer yields "callerr: <err>".
func NewComputed(ctx context.Context, producer Producer) *Static {
	s := &Static{producer: producer}
	s.refresh(ctx)
	return s
}

func (s *Static) refresh(ctx context.Context) {
	if s.producer == nil {
		return
	}
	label, err := s.producer(ctx)
	if err != nil {
		s.label = errmsg.Label(err)
		return
	}
	s.label = label
}

func (s *Static) Label() string { return s.label }

func (s *Static) Render(width int) string { return render.Fit(s.label, width) }

func (s *Static) Enter(ctx context.Context) { s.refresh(ctx) }

func (s *Static) Marker() rune { return MarkNode }

func (s *Static) Kind() Kind { return KindNode }
