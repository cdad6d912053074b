// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import "strings"

// Canvas is a monochrome dot canvas rendered as braille text. Each terminal
// cell packs a 2x4 dot block, so a cols x rows canvas addresses cols*2 by
// rows*4 dots. Out-of-range dots are ignored, matching the usual
// framebuffer set-pixel contract.
type Canvas struct {
	cols, rows int
	dotsW      int
	dotsH      int
	cells      []uint8
}

const brailleBase = 0x2800

// Braille dot bit for cell-local (x, y), x in 0..1, y in 0..3.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// NewCanvas creates a canvas of cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Canvas{
		cols:  cols,
		rows:  rows,
		dotsW: cols * 2,
		dotsH: rows * 4,
		cells: make([]uint8, cols*rows),
	}
}

// Width returns the canvas width in dots.
func (c *Canvas) Width() int { return c.dotsW }

// Height returns the canvas height in dots.
func (c *Canvas) Height() int { return c.dotsH }

// Clear blanks every dot.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0
	}
}

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || x >= c.dotsW || y < 0 || y >= c.dotsH {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= brailleBits[y%4][x%2]
}

// Lit reports whether the dot at (x, y) is set. Out-of-range dots read as
// unset.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || x >= c.dotsW || y < 0 || y >= c.dotsH {
		return false
	}
	return c.cells[(y/4)*c.cols+x/2]&brailleBits[y%4][x%2] != 0
}

// Line draws a straight dot line from (x0, y0) to (x1, y1) inclusive using
// the integer midpoint walk.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas as rows of braille runes joined by newlines.
// Blank cells use the empty braille pattern so every row has equal width.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols*3 + 1))
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		base := row * c.cols
		for col := 0; col < c.cols; col++ {
			b.WriteRune(rune(brailleBase + int(c.cells[base+col])))
		}
	}
	return b.String()
}
