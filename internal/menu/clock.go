package menu

import (
	"context"
	"time"

	"github.com/sylvandb/radio/internal/render"
)

// Clock shows the current time in the widest of its layouts that fits the
// row. The choice is remembered until the width changes.
type Clock struct {
	base
	layouts []string
	now     func() time.Time

	width  int
	layout string
}

// NewClock returns a clock entry choosing among Go time layouts. now
// defaults to time.Now.
func NewClock(layouts []string, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{layouts: layouts, now: now, width: -1}
}

// Layout returns the layout used at width.
func (c *Clock) Layout(width int) string {
	if width != c.width {
		c.width = width
		c.layout = c.choose(width)
	}
	return c.layout
}

func (c *Clock) choose(width int) string {
	t := c.now()
	best, bestWidth := "", -1
	narrowest, narrowestWidth := "", -1
	for _, layout := range c.layouts {
		w := render.Width(t.Format(layout))
		if w <= width && w > bestWidth {
			best, bestWidth = layout, w
		}
		if narrowestWidth < 0 || w < narrowestWidth {
			narrowest, narrowestWidth = layout, w
		}
	}
	if bestWidth < 0 {
		return narrowest
	}
	return best
}

// Label formats the time with the layout last chosen, or the widest layout
// when the clock has not been rendered yet.
func (c *Clock) Label() string {
	layout := c.layout
	if c.width < 0 {
		layout = c.choose(1 << 16)
	}
	return c.now().Format(layout)
}

func (c *Clock) Render(width int) string {
	return render.Fit(c.now().Format(c.Layout(width)), width)
}

func (c *Clock) Enter(context.Context) {}

func (c *Clock) Marker() rune { return MarkNode }

func (c *Clock) Kind() Kind { return KindClock }
