package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/tumble/vmath"
)

// Painter is implemented by elements that draw themselves
type Painter interface {
	Paint(c *Canvas)
}

// Viewport maps world units onto terminal cells
// Rows are reserved at the bottom for the status line
type Viewport struct {
	WorldWidth  float64
	WorldHeight float64
	Cols        int
	Rows        int
}

func (v Viewport) scaleX() float64 { return float64(v.Cols) / v.WorldWidth }
func (v Viewport) scaleY() float64 { return float64(v.Rows) / v.WorldHeight }

// Cell returns the terminal cell containing world point (x, y)
func (v Viewport) Cell(x, y float64) (int, int) {
	return int(math.Floor(x * v.scaleX())), int(math.Floor(y * v.scaleY()))
}

// Span returns the inclusive cell range covered by a rectangle
// A rectangle smaller than a cell still covers the cell holding its centre
func (v Viewport) Span(r vmath.AABB) (x0, y0, x1, y1 int) {
	sx, sy := v.scaleX(), v.scaleY()
	x0 = int(math.Floor(r.Left() * sx))
	y0 = int(math.Floor(r.Top() * sy))
	x1 = int(math.Ceil(r.Right()*sx)) - 1
	y1 = int(math.Ceil(r.Bottom()*sy)) - 1
	if x1 < x0 {
		x0 = int(math.Floor(r.Center[0] * sx))
		x1 = x0
	}
	if y1 < y0 {
		y0 = int(math.Floor(r.Center[1] * sy))
		y1 = y0
	}
	return
}

// Canvas clips drawing to the viewport area of a screen
type Canvas struct {
	screen tcell.Screen
	view   Viewport
}

// NewCanvas binds a screen area to a viewport
func NewCanvas(screen tcell.Screen, view Viewport) *Canvas {
	return &Canvas{screen: screen, view: view}
}

// Viewport returns the active world to cell mapping
func (c *Canvas) Viewport() Viewport { return c.view }

// SetCell writes one cell, out-of-view writes are dropped
func (c *Canvas) SetCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.view.Cols || y >= c.view.Rows {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// FillRect fills every cell covered by a world rectangle
func (c *Canvas) FillRect(rect vmath.AABB, r rune, style tcell.Style) {
	x0, y0, x1, y1 := c.view.Span(rect)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.SetCell(x, y, r, style)
		}
	}
}

// Glyph draws a single rune at the cell holding world point (x, y)
func (c *Canvas) Glyph(x, y float64, r rune, style tcell.Style) {
	cx, cy := c.view.Cell(x, y)
	c.SetCell(cx, cy, r, style)
}

// Text draws a string starting at a cell, used for overlays
func (c *Canvas) Text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.SetCell(x, y, r, style)
		x++
	}
}
