package draw

import (
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// Box draws a single-line border with its top-left corner at (x, y). The
// title, if any, is written into the top edge.
func (c *Canvas) Box(x, y, width, height int, title string) {
	if width < 2 || height < 2 {
		return
	}
	right := x + width - 1
	bottom := y + height - 1

	c.SetPlain(x, y, '┌')
	c.SetPlain(right, y, '┐')
	c.SetPlain(x, bottom, '└')
	c.SetPlain(right, bottom, '┘')
	for col := x + 1; col < right; col++ {
		c.SetPlain(col, y, '─')
		c.SetPlain(col, bottom, '─')
	}
	for row := y + 1; row < bottom; row++ {
		c.SetPlain(x, row, '│')
		c.SetPlain(right, row, '│')
	}

	if title != "" {
		c.Text(x+2, y, " "+title+" ")
	}
}

// Text writes s in the default color starting at (x, y).
func (c *Canvas) Text(x, y int, s string) {
	for _, r := range s {
		c.SetPlain(x, y, r)
		x++
	}
}

// TextColor writes s in color fg starting at (x, y).
func (c *Canvas) TextColor(x, y int, s string, fg colorful.Color) {
	for _, r := range s {
		c.Set(x, y, r, fg)
		x++
	}
}

// TextCenter writes s centered on column cx.
func (c *Canvas) TextCenter(cx, y int, s string, fg colorful.Color) {
	c.TextColor(cx-utf8.RuneCountInString(s)/2, y, s, fg)
}

// Fill paints a rectangle with ch in the default color.
func (c *Canvas) Fill(x, y, width, height int, ch rune) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			c.SetPlain(col, row, ch)
		}
	}
}
