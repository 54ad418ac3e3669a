package render

import "slices"

// Writer is the part of a display device the renderer needs.
type Writer interface {
	Write(lines []string) error
}

// Line is one menu entry as the renderer sees it.
type Line interface {
	Marker() rune
	Render(width int) string
}

// emptyLabel is shown on the first row of a folder without items.
const emptyLabel = "(empty)"

// Menu lays out a window of rows entries starting at top. Each line is cols
// cells: the marker of the selected entry (a blank for the others) followed
// by the entry's label. The window wraps around the end of items; rows past
// the number of items stay blank.
func Menu[T Line](items []T, selected, top, rows, cols int) []string {
	frame := make([]string, rows)
	n := len(items)
	for r := range rows {
		if r >= n {
			frame[r] = EmptyLine(cols)
			continue
		}
		idx := (top + r) % n
		mark := " "
		if idx == selected {
			mark = string(items[idx].Marker())
		}
		frame[r] = Fit(mark+items[idx].Render(cols-1), cols)
	}
	if n == 0 && rows > 0 {
		frame[0] = Fit(" "+emptyLabel, cols)
	}
	return frame
}

// Lines fits free text onto rows lines of cols cells.
func Lines(text []string, rows, cols int) []string {
	frame := make([]string, rows)
	for r := range rows {
		if r < len(text) {
			frame[r] = Fit(text[r], cols)
		} else {
			frame[r] = EmptyLine(cols)
		}
	}
	return frame
}

// Renderer pushes frames to a device, skipping frames identical to the last
// one written. Writes to character displays are slow.
type Renderer struct {
	w     Writer
	last  []string
	valid bool
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w Writer) *Renderer {
	return &Renderer{w: w}
}

// Show writes frame unless it matches the last frame written.
// A failed write leaves the last frame unknown so the next call retries.
func (r *Renderer) Show(frame []string) error {
	if r.valid && slices.Equal(frame, r.last) {
		return nil
	}
	if err := r.w.Write(frame); err != nil {
		r.valid = false
		return err
	}
	r.last = slices.Clone(frame)
	r.valid = true
	return nil
}

// Invalidate forgets the last frame so the next Show always writes.
func (r *Renderer) Invalidate() {
	r.valid = false
	r.last = nil
}

// Last returns the last frame written, or nil after Invalidate.
func (r *Renderer) Last() []string {
	return r.last
}
