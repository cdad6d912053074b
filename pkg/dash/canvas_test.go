// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The statdeck authors

package dash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasDimensions(t *testing.T) {
	c := NewCanvas(10, 3)
	assert.Equal(t, 20, c.Width())
	assert.Equal(t, 12, c.Height())

	// Degenerate sizes are clamped to one cell.
	c = NewCanvas(0, -5)
	assert.Equal(t, 2, c.Width())
	assert.Equal(t, 4, c.Height())
}

func TestCanvasDotPacking(t *testing.T) {
	cases := []struct {
		x, y int
		want rune
	}{
		{0, 0, '⠁'},
		{1, 0, '⠈'},
		{0, 1, '⠂'},
		{1, 1, '⠐'},
		{0, 2, '⠄'},
		{1, 2, '⠠'},
		{0, 3, '⡀'},
		{1, 3, '⢀'},
	}
	for _, tc := range cases {
		c := NewCanvas(1, 1)
		c.Set(tc.x, tc.y)
		assert.Equal(t, string(tc.want), c.String(), "dot (%d,%d)", tc.x, tc.y)
		assert.True(t, c.Lit(tc.x, tc.y))
	}
}

func TestCanvasFullCell(t *testing.T) {
	c := NewCanvas(1, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			c.Set(x, y)
		}
	}
	assert.Equal(t, "⣿", c.String())
}

func TestCanvasOutOfRangeIgnored(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(c.Width(), 0)
	c.Set(0, c.Height())
	assert.Equal(t, strings.Repeat("⠀", 2)+"\n"+strings.Repeat("⠀", 2), c.String())
	assert.False(t, c.Lit(-1, 0))
	assert.False(t, c.Lit(c.Width(), 0))
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Clear()
	assert.Equal(t, strings.Repeat("⠀", 2), c.String())
}

func TestCanvasLineHorizontal(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Line(0, 2, c.Width()-1, 2)
	for x := 0; x < c.Width(); x++ {
		assert.True(t, c.Lit(x, 2), "x=%d", x)
	}
	for x := 0; x < c.Width(); x++ {
		assert.False(t, c.Lit(x, 0))
		assert.False(t, c.Lit(x, 3))
	}
}

func TestCanvasLineVertical(t *testing.T) {
	c := NewCanvas(1, 3)
	c.Line(1, 0, 1, c.Height()-1)
	for y := 0; y < c.Height(); y++ {
		assert.True(t, c.Lit(1, y), "y=%d", y)
		assert.False(t, c.Lit(0, y), "y=%d", y)
	}
}

func TestCanvasLineDiagonal(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Line(0, 0, 3, 3)
	for i := 0; i < 4; i++ {
		assert.True(t, c.Lit(i, i), "i=%d", i)
	}
}

func TestCanvasLineDirectionSymmetry(t *testing.T) {
	a := NewCanvas(3, 2)
	b := NewCanvas(3, 2)
	a.Line(0, 1, 5, 6)
	b.Line(5, 6, 0, 1)

	require.Equal(t, a.Width(), b.Width())
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			// Endpoints and the straight spans must agree; the walk is
			// symmetric for this slope.
			if a.Lit(x, y) != b.Lit(x, y) {
				t.Fatalf("dot (%d,%d) differs between directions", x, y)
			}
		}
	}
}

func TestCanvasRowLayout(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0) // first cell, first row
	c.Set(4, 7) // third cell, second row

	rows := strings.Split(c.String(), "\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "⠁⠀⠀", rows[0])
	assert.Equal(t, "⠀⠀⡀", rows[1])
}
