// Package cursor tracks the selected row and the first visible row of a
// folder shown through a fixed number of display rows.
package cursor

// Cursor manages the selection and the scroll window of a list.
// The list length and the number of rows are passed to methods rather than
// stored, since the active folder changes underneath it.
type Cursor struct {
	pos    int // selected index
	offset int // index of the first visible row
}

// Pos returns the selected index.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the index shown on the first display row.
func (c Cursor) Offset() int {
	return c.offset
}

// Up moves the selection one item towards the start of the list.
// With wrap the selection goes from the first item to the last one and the
// window follows it; without wrap it stops at the first item.
func (c *Cursor) Up(listLen, rows int, wrap bool) {
	if listLen == 0 {
		return
	}
	c.pos--
	if c.pos < 0 {
		if wrap {
			c.pos = listLen - 1
		} else {
			c.pos = 0
		}
		if rows < listLen {
			c.offset = c.pos
		}
		return
	}
	if c.pos < c.offset {
		c.offset = c.pos
	}
}

// Down moves the selection one item towards the end of the list.
// The window is moved so the selection sits on the last display row.
func (c *Cursor) Down(listLen, rows int, wrap bool) {
	if listLen == 0 {
		return
	}
	if wrap {
		c.pos = (c.pos + 1) % listLen
		if rows < listLen {
			c.offset = (c.pos - rows + 1 + listLen) % listLen
		}
		return
	}
	c.pos = min(c.pos+1, listLen-1)
	c.offset = max(c.pos-rows+1, 0)
}

// Focus selects index and moves the window so it shows on the last row
// when it would otherwise fall below the window.
func (c *Cursor) Focus(index, listLen, rows int) {
	if listLen == 0 {
		c.Reset()
		return
	}
	c.pos = clamp(index, listLen-1)
	c.offset = max(c.pos-rows+1, 0)
}

// Reset resets the cursor to position 0 and offset 0.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
