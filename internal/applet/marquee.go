package applet

import "github.com/sylvandb/radio/internal/render"

// marquee scrolls lines wider than the display one grapheme per step. A line
// that reaches its end holds there for the dwell, jumps back to the start
// and holds again before scrolling on. All rows share one schedule.
type marquee struct {
	width int
	step  int64
	dwell int64
	pos   []int
	atEnd []bool
	next  int64
}

func newMarquee(rows, width, scrollTicks, dwellTicks int) *marquee {
	return &marquee{
		width: width,
		step:  int64(scrollTicks) + 1,
		dwell: int64(dwellTicks),
		pos:   make([]int, rows),
		atEnd: make([]bool, rows),
	}
}

// reset puts row r back at its start.
func (m *marquee) reset(r int) {
	m.pos[r] = 0
	m.atEnd[r] = false
}

// advance moves the rows on at tick t and reports whether any moved.
func (m *marquee) advance(t int64, lines []string) bool {
	if t < m.next {
		return false
	}
	m.next = t + m.step
	moved, hold := false, false
	for r := range m.pos {
		if r >= len(lines) || render.Len(lines[r]) <= m.width {
			if m.pos[r] != 0 {
				moved = true
			}
			m.reset(r)
			continue
		}
		switch {
		case m.atEnd[r]:
			m.reset(r)
			moved, hold = true, true
		case m.pos[r]+m.width < render.Len(lines[r]):
			m.pos[r]++
			moved = true
			if m.pos[r]+m.width >= render.Len(lines[r]) {
				m.atEnd[r] = true
				hold = true
			}
		}
	}
	if hold {
		m.next = t + m.dwell
	}
	return moved
}

// view returns row r as currently scrolled.
func (m *marquee) view(r int, line string) string {
	return render.Fit(render.Scroll(line, m.pos[r]), m.width)
}
