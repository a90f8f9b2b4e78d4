package entity

import (
	"math"

	"github.com/lixenwraith/tumble/input"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
	"github.com/lixenwraith/tumble/render"
	"github.com/lixenwraith/tumble/vmath"
)

// Walker2D is the top-down player, it moves along one axis at a time
type Walker2D struct {
	physics.Body
}

// NewWalker2D creates a weightless walker centred at (x, y)
func NewWalker2D(x, y float64) (*Walker2D, error) {
	b, err := physics.NewBody(physics.KindWalker2D, x, y, parameter.Walker2DSize, parameter.Walker2DSize,
		physics.WithGravity(0),
		physics.WithMass(parameter.WalkerMass),
		physics.WithElasticity(0),
		physics.WithSolids(physics.KindGround))
	if err != nil {
		return nil, err
	}
	return &Walker2D{Body: *b}, nil
}

// Accelerate keeps only the dominant axis, snapped to the speed step
func (w *Walker2D) Accelerate(dt float64) {
	if math.Abs(w.Vel[1]) > math.Abs(w.Vel[0]) {
		w.Vel[0] = 0
		w.Vel[1] = vmath.Quantize(w.Vel[1], parameter.Walker2DSpeedStep, parameter.Walker2DMaxSpeed)
	} else {
		w.Vel[1] = 0
		w.Vel[0] = vmath.Quantize(w.Vel[0], parameter.Walker2DSpeedStep, parameter.Walker2DMaxSpeed)
	}
	w.Body.Accelerate(dt)
}

func (w *Walker2D) HandleKey(k input.Key) bool {
	step := parameter.Walker2DSpeedStep
	switch k {
	case input.KeyEscape:
		return false
	case input.KeyLeft:
		w.Vel = vmath.V(w.Vel[0]-step, 0)
	case input.KeyRight:
		w.Vel = vmath.V(w.Vel[0]+step, 0)
	case input.KeyUp:
		w.Vel = vmath.V(0, w.Vel[1]-step)
	case input.KeyDown:
		w.Vel = vmath.V(0, w.Vel[1]+step)
	case input.KeyJump:
		w.Vel = vmath.V(0, 0)
	default:
		return true
	}
	w.SkipAdjust = true
	return true
}

// Heading is the facing glyph: north when moving up, else west/east by vx, south at rest
func (w *Walker2D) Heading() rune {
	switch {
	case w.Vel[1] < 0:
		return '▲'
	case w.Vel[0] < 0:
		return '◄'
	case w.Vel[0] > 0:
		return '►'
	}
	return '▼'
}

// Frame returns the animation frame derived from distance walked
func (w *Walker2D) Frame() int {
	return int(w.Distance/parameter.Walker2DStride) % parameter.Walker2DFrames
}

func (w *Walker2D) Paint(c *render.Canvas) {
	style := fg(render.RgbWalker2D)
	if w.Frame()%2 == 1 {
		style = fg(render.Dim(render.RgbWalker2D, 0.75))
	}
	c.FillRect(w.Rect(), w.Heading(), style)
}
