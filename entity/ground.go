package entity

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/tumble/physics"
	"github.com/lixenwraith/tumble/render"
)

// Ground is a static obstacle, its default mass makes it effectively immovable
type Ground struct {
	physics.Body
	Color [3]uint8
	style tcell.Style
}

// NewGround builds a ground block from its top-left corner
func NewGround(color [3]uint8, x, y, w, h float64) (*Ground, error) {
	b, err := physics.NewBody(physics.KindGround, x+w/2, y+h/2, w, h, physics.WithGravity(0))
	if err != nil {
		return nil, err
	}
	return &Ground{Body: *b, Color: color, style: solid(render.RGB(color))}, nil
}

func (g *Ground) Paint(c *render.Canvas) {
	c.FillRect(g.Rect(), ' ', g.style)
}
