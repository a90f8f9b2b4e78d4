package entity

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/physics"
	"github.com/lixenwraith/tumble/render"
)

// Ball is a light elastic body using the default reaction
type Ball struct {
	physics.Body
	style tcell.Style
}

func newBall(x, y, vx, vy, elasticity float64, color tcell.Color) (*Ball, error) {
	b, err := physics.NewBody(physics.KindBall, x, y, parameter.BallSize, parameter.BallSize,
		physics.WithVelocity(vx, vy),
		physics.WithMass(parameter.BallMass),
		physics.WithElasticity(elasticity),
		physics.WithSolids(physics.KindRock, physics.KindGround, physics.KindBall, physics.KindWalker))
	if err != nil {
		return nil, err
	}
	return &Ball{Body: *b, style: fg(color)}, nil
}

// NewBall creates a perfectly elastic ball
func NewBall(x, y, vx, vy float64) (*Ball, error) {
	return newBall(x, y, vx, vy, parameter.BallElasticity, render.RgbBall)
}

// NewBlueBall creates a ball that loses a tenth of its speed per bounce
func NewBlueBall(x, y, vx, vy float64) (*Ball, error) {
	return newBall(x, y, vx, vy, parameter.BlueBallElasticity, render.RgbBlueBall)
}

func (b *Ball) Paint(c *render.Canvas) {
	c.FillRect(b.Rect(), '●', b.style)
}
